// internal/app/features/groups/list.go
package groups

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	groupstore "github.com/dalemusser/mentorhub/internal/app/store/groups"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeGroupsList handles GET /groups. Groups are a closed set of five, so
// the list is not paged; each row carries its company and mentor counts.
func (h *Handler) ServeGroupsList(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Read(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/dashboard")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, err := groupstore.New(h.DB).List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list groups failed", err, "Unable to load groups.", "/dashboard")
		return
	}
	companyCounts, err := lookup.AggregateCountByField(ctx, h.DB, "companies", bson.M{}, "group_id")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count companies by group failed", err, "Unable to load groups.", "/dashboard")
		return
	}
	mentorCounts, err := lookup.AggregateCountByField(ctx, h.DB, "mentors", bson.M{}, "group_id")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count mentors by group failed", err, "Unable to load groups.", "/dashboard")
		return
	}

	rows := make([]groupRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, groupRow{
			ID:          g.ID.Hex(),
			Label:       g.Label(),
			Description: g.Description,
			Companies:   companyCounts[g.ID],
			Mentors:     mentorCounts[g.ID],
		})
	}

	h.render(w, r, "groups_list", listData{
		BaseVM:  viewdata.NewBaseVM(r, "Groups", "/dashboard"),
		Rows:    rows,
		Missing: len(models.GroupChoices) - len(groups),
	})
}
