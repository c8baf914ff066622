// internal/app/features/mentors/delete.go
package mentors

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/navigation"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete deletes a mentor and the mentor's sessions.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/mentors")
		return
	}
	oid, err := mentorID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/mentors")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	store := mentorstore.New(h.DB)
	m, err := store.GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "load mentor failed", err, "/mentors")
		return
	}
	removed, err := store.Delete(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "delete mentor failed", err, "/mentors")
		return
	}

	metrics.RecordWrite(audit.EntityMentor, metrics.OpDelete)
	h.Audit.RecordDeleted(ctx, r, audit.EntityMentor, oid, m.Name, removed)
	h.Log.Info("mentor deleted", zap.String("id", oid.Hex()), zap.Int64("sessions", removed["mentorship_sessions"]))

	h.flash(w, r, MsgDeleted)
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.MentorsBackURL), http.StatusSeeOther)
}
