// internal/app/features/indicators/edit.go
package indicators

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	indicatorstore "github.com/dalemusser/mentorhub/internal/app/store/indicators"
	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func indicatorID(r *http.Request) (primitive.ObjectID, error) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound("indicator", idHex)
	}
	return oid, nil
}

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/indicators")
		return
	}
	oid, err := indicatorID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/indicators")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ind, err := indicatorstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "load indicator failed", err, "/indicators")
		return
	}
	h.showForm(w, r, ctx, oid.Hex(), formFrom(ind), nil)
}

func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/indicators")
		return
	}
	oid, err := indicatorID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/indicators")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/indicators")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := indicatorstore.New(h.DB)
	if _, err := store.GetByID(ctx, oid); err != nil {
		h.ErrLog.LogAppError(w, r, "load indicator failed", err, "/indicators")
		return
	}

	f := parseForm(r)
	if errs := f.validate(); len(errs) > 0 {
		metrics.Invalid(audit.EntityIndicator)
		h.showForm(w, r, ctx, oid.Hex(), f, errs)
		return
	}

	ind, err := store.Update(ctx, oid, f.model())
	if err != nil {
		if errs := formutil.ValidationErrors(err); errs != nil {
			metrics.Invalid(audit.EntityIndicator)
			h.showForm(w, r, ctx, oid.Hex(), f, errs)
			return
		}
		h.ErrLog.LogAppError(w, r, "update indicator failed", err, "/indicators")
		return
	}

	metrics.RecordWrite(audit.EntityIndicator, metrics.OpUpdate)
	h.Audit.RecordUpdated(ctx, r, audit.EntityIndicator, ind.ID, ind.Category+" / "+ind.Name)

	h.flash(w, r, MsgUpdated)
	http.Redirect(w, r, "/indicators", http.StatusSeeOther)
}
