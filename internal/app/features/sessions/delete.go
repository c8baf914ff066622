// internal/app/features/sessions/delete.go
package sessions

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	sessionstore "github.com/dalemusser/mentorhub/internal/app/store/mentorsessions"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/navigation"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	store := sessionstore.New(h.DB)
	ms, err := store.GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "load session failed", err, "/sessions")
		return
	}
	if err := store.Delete(ctx, oid); err != nil {
		h.ErrLog.LogAppError(w, r, "delete session failed", err, "/sessions")
		return
	}

	metrics.RecordWrite(audit.EntitySession, metrics.OpDelete)
	h.Audit.RecordDeleted(ctx, r, audit.EntitySession, oid, sessionLabel(ms), nil)
	h.Log.Info("session deleted", zap.String("id", oid.Hex()))

	h.flash(w, r, MsgDeleted)
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.SessionsBackURL), http.StatusSeeOther)
}
