// internal/app/features/mentors/edit.go
package mentors

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func mentorID(r *http.Request) (primitive.ObjectID, error) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound("mentor", idHex)
	}
	return oid, nil
}

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/mentors")
		return
	}
	oid, err := mentorID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/mentors")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := mentorstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "load mentor failed", err, "/mentors")
		return
	}
	h.showForm(w, r, ctx, oid.Hex(), formFrom(m), nil)
}

// HandleEdit saves the mentor and recounts companies_assigned for the
// submitted group.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/mentors")
		return
	}
	oid, err := mentorID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/mentors")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/mentors")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := mentorstore.New(h.DB)
	if _, err := store.GetByID(ctx, oid); err != nil {
		h.ErrLog.LogAppError(w, r, "load mentor failed", err, "/mentors")
		return
	}

	f := parseForm(r)
	if errs := f.validate(); len(errs) > 0 {
		metrics.Invalid(audit.EntityMentor)
		h.showForm(w, r, ctx, oid.Hex(), f, errs)
		return
	}

	m, err := store.Update(ctx, oid, f.model())
	if err != nil {
		if errs := formutil.ValidationErrors(err); errs != nil {
			metrics.Invalid(audit.EntityMentor)
			h.showForm(w, r, ctx, oid.Hex(), f, errs)
			return
		}
		h.ErrLog.LogAppError(w, r, "update mentor failed", err, "/mentors")
		return
	}

	metrics.RecordWrite(audit.EntityMentor, metrics.OpUpdate)
	h.Audit.RecordUpdated(ctx, r, audit.EntityMentor, m.ID, m.Name)

	h.flash(w, r, MsgUpdated)
	http.Redirect(w, r, "/mentors", http.StatusSeeOther)
}
