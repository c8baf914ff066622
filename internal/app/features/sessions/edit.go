// internal/app/features/sessions/edit.go
package sessions

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	sessionstore "github.com/dalemusser/mentorhub/internal/app/store/mentorsessions"
	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sessionID(r *http.Request) (primitive.ObjectID, error) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound("session", idHex)
	}
	return oid, nil
}

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/sessions")
		return
	}
	oid, err := sessionID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/sessions")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ms, err := sessionstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "load session failed", err, "/sessions")
		return
	}
	h.showForm(w, r, ctx, oid.Hex(), formFrom(ms), nil)
}

// HandleEdit saves changes to a session. A cleared duration is derived
// again from the start and end times.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/sessions")
		return
	}
	oid, err := sessionID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/sessions")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/sessions")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := sessionstore.New(h.DB)
	if _, err := store.GetByID(ctx, oid); err != nil {
		h.ErrLog.LogAppError(w, r, "load session failed", err, "/sessions")
		return
	}

	f := parseForm(r)
	if errs := f.validate(h.today()); len(errs) > 0 {
		metrics.Invalid(audit.EntitySession)
		h.showForm(w, r, ctx, oid.Hex(), f, errs)
		return
	}

	ms, err := store.Update(ctx, oid, f.model())
	if err != nil {
		if errs := formutil.ValidationErrors(err); errs != nil {
			metrics.Invalid(audit.EntitySession)
			h.showForm(w, r, ctx, oid.Hex(), f, errs)
			return
		}
		h.ErrLog.LogAppError(w, r, "update session failed", err, "/sessions")
		return
	}

	metrics.RecordWrite(audit.EntitySession, metrics.OpUpdate)
	h.Audit.RecordUpdated(ctx, r, audit.EntitySession, ms.ID, sessionLabel(ms))

	h.flash(w, r, MsgUpdated)
	http.Redirect(w, r, "/sessions/"+oid.Hex(), http.StatusSeeOther)
}
