// internal/app/features/groups/delete.go
package groups

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	groupstore "github.com/dalemusser/mentorhub/internal/app/store/groups"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/navigation"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDeleteGroup deletes a group. Companies and mentors in it are kept
// with their group cleared.
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/groups")
		return
	}
	oid, err := groupID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/groups")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	store := groupstore.New(h.DB)
	g, err := store.GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "load group failed", err, "/groups")
		return
	}

	detached, err := store.Delete(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "delete group failed", err, "/groups")
		return
	}

	metrics.RecordWrite(audit.EntityGroup, metrics.OpDelete)
	h.Audit.RecordDeleted(ctx, r, audit.EntityGroup, oid, g.Label(), detached)
	h.Log.Info("group deleted",
		zap.String("name", g.Name),
		zap.Int64("companies_detached", detached["companies"]),
		zap.Int64("mentors_detached", detached["mentors"]))

	h.flash(w, r, MsgDeleted)
	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.GroupsBackURL), http.StatusSeeOther)
}
