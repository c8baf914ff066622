// internal/app/features/companies/delete.go
package companies

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	companystore "github.com/dalemusser/mentorhub/internal/app/store/companies"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/navigation"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete deletes a company together with its sessions and
// indicators, then redirects back to the list.
//
// Route: POST /companies/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/companies")
		return
	}
	oid, err := companyID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/companies")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	store := companystore.New(h.DB)
	c, err := store.GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "load company failed", err, "/companies")
		return
	}

	removed, err := store.Delete(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "delete company failed", err, "/companies")
		return
	}

	metrics.RecordWrite(audit.EntityCompany, metrics.OpDelete)
	h.Audit.RecordDeleted(ctx, r, audit.EntityCompany, oid, c.CompanyID, removed)
	h.Log.Info("company deleted",
		zap.String("company_id", c.CompanyID),
		zap.Int64("sessions", removed["mentorship_sessions"]),
		zap.Int64("indicators", removed["indicators"]))

	h.flash(w, r, MsgDeleted)
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.CompaniesBackURL), http.StatusSeeOther)
}
