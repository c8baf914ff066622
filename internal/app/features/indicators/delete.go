// internal/app/features/indicators/delete.go
package indicators

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	indicatorstore "github.com/dalemusser/mentorhub/internal/app/store/indicators"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/navigation"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
)

// HandleDelete removes one indicator. The redirect honors ?return= so a
// delete from a filtered list lands back on that list.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/indicators")
		return
	}
	oid, err := indicatorID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/indicators")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := indicatorstore.New(h.DB)
	ind, err := store.GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "load indicator failed", err, "/indicators")
		return
	}
	if err := store.Delete(ctx, oid); err != nil {
		h.ErrLog.LogAppError(w, r, "delete indicator failed", err, "/indicators")
		return
	}

	metrics.RecordWrite(audit.EntityIndicator, metrics.OpDelete)
	h.Audit.RecordDeleted(ctx, r, audit.EntityIndicator, oid, ind.Category+" / "+ind.Name, nil)

	h.flash(w, r, MsgDeleted)
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.IndicatorsBackURL), http.StatusSeeOther)
}
