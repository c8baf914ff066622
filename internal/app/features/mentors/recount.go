// internal/app/features/mentors/recount.go
package mentors

import (
	"fmt"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleRecount re-derives companies_assigned for every mentor. Counts go
// stale when companies change group, since only a mentor save recounts.
//
// Route: POST /mentors/recount
func (h *Handler) HandleRecount(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/mentors")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "recount mentors")
	defer cancel()

	n, err := mentorstore.New(h.DB).RecountAll(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "recount mentors failed", err, "Unable to recount mentors.", "/mentors")
		return
	}

	h.Audit.MentorsRecounted(ctx, r, n)
	h.Log.Info("mentors recounted", zap.Int("updated", n))

	h.flash(w, r, fmt.Sprintf("Recounted assigned companies: %d mentor(s) updated.", n))
	http.Redirect(w, r, "/mentors", http.StatusSeeOther)
}
