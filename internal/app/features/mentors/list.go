// internal/app/features/mentors/list.go
package mentors

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/paging"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeList handles GET /mentors with ?q= (name prefix) and ?group=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Read(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/dashboard")
		return
	}

	q := query.Search(r, "q")
	groupHex := query.Get(r, "group")
	start := paging.ParseStart(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := mentorstore.ListFilter{
		Search: q,
		Before: query.Get(r, "before"),
		After:  query.Get(r, "after"),
	}
	if gid, err := lookup.ParseOptionalID(groupHex); err == nil {
		filter.GroupID = gid
	} else {
		groupHex = ""
	}

	win, err := mentorstore.New(h.DB).List(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list mentors failed", err, "Unable to load mentors.", "/dashboard")
		return
	}
	groups, err := lookup.GroupOptions(ctx, h.DB)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load groups failed", err, "Unable to load mentors.", "/dashboard")
		return
	}
	labels := lookup.Labels(groups)

	items := make([]listItem, 0, len(win.Rows))
	for _, m := range win.Rows {
		it := listItem{
			ID:                m.ID.Hex(),
			Name:              m.Name,
			Expertise:         m.Expertise,
			Email:             m.Email,
			Phone:             m.Phone,
			CompaniesAssigned: m.CompaniesAssigned,
			TotalHours:        m.TotalHours,
		}
		if m.GroupID != nil {
			it.GroupLabel = labels[*m.GroupID]
		}
		items = append(items, it)
	}

	rng := paging.ComputeRange(start, len(items))
	h.render(w, r, "mentors_list", listData{
		BaseVM:     viewdata.NewBaseVM(r, "Mentors", "/dashboard"),
		Q:          q,
		GroupID:    groupHex,
		Groups:     groups,
		Items:      items,
		Total:      win.Total,
		HasPrev:    win.HasPrev,
		HasNext:    win.HasNext,
		PrevCursor: win.PrevCursor,
		NextCursor: win.NextCursor,
		RangeStart: rng.Start,
		RangeEnd:   rng.End,
		PrevStart:  rng.PrevStart,
		NextStart:  rng.NextStart,
	})
}
