// internal/app/features/companies/edit.go
package companies

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	companystore "github.com/dalemusser/mentorhub/internal/app/store/companies"
	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// companyID parses the {id} URL parameter. A malformed id is reported as
// not found, the same as a well-formed id with no record.
func companyID(r *http.Request) (primitive.ObjectID, error) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound("company", idHex)
	}
	return oid, nil
}

// ServeEdit renders the "Edit Company" form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/companies")
		return
	}
	oid, err := companyID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/companies")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := companystore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "load company failed", err, "/companies")
		return
	}

	h.showForm(w, r, ctx, oid.Hex(), formFrom(c), nil)
}

// HandleEdit processes the Edit Company form submission. Age is
// recomputed from the submitted founding date.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/companies")
		return
	}
	oid, err := companyID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/companies")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/companies")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := companystore.New(h.DB)
	if _, err := store.GetByID(ctx, oid); err != nil {
		h.ErrLog.LogAppError(w, r, "load company failed", err, "/companies")
		return
	}

	today := h.today()
	f := parseForm(r)
	if errs := f.validate(); len(errs) > 0 {
		metrics.Invalid(audit.EntityCompany)
		h.showForm(w, r, ctx, oid.Hex(), f, errs)
		return
	}

	c, err := store.Update(ctx, oid, f.model(), today)
	if err != nil {
		if errs := formutil.ValidationErrors(err); errs != nil {
			metrics.Invalid(audit.EntityCompany)
			h.showForm(w, r, ctx, oid.Hex(), f, errs)
			return
		}
		h.ErrLog.LogAppError(w, r, "update company failed", err, "/companies")
		return
	}

	metrics.RecordWrite(audit.EntityCompany, metrics.OpUpdate)
	h.Audit.RecordUpdated(ctx, r, audit.EntityCompany, c.ID, c.CompanyID)

	h.flash(w, r, MsgUpdated)
	http.Redirect(w, r, "/companies", http.StatusSeeOther)
}
