// internal/app/features/companies/list.go
package companies

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	companystore "github.com/dalemusser/mentorhub/internal/app/store/companies"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/paging"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeList handles GET /companies with optional filters:
// ?q= (name or Company ID prefix), ?group=, ?industry=, ?status=active|inactive.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Read(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/dashboard")
		return
	}

	q := query.Search(r, "q")
	groupHex := query.Get(r, "group")
	industry := query.Get(r, "industry")
	status := query.Get(r, "status")
	start := paging.ParseStart(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := companystore.ListFilter{
		Search:   q,
		Industry: industry,
		Before:   query.Get(r, "before"),
		After:    query.Get(r, "after"),
	}
	if gid, err := lookup.ParseOptionalID(groupHex); err == nil {
		filter.GroupID = gid
	} else {
		groupHex = ""
	}
	switch status {
	case "active":
		t := true
		filter.Active = &t
	case "inactive":
		f := false
		filter.Active = &f
	default:
		status = ""
	}

	win, err := companystore.New(h.DB).List(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list companies failed", err, "Unable to load companies.", "/dashboard")
		return
	}

	groups, err := lookup.GroupOptions(ctx, h.DB)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load groups failed", err, "Unable to load companies.", "/dashboard")
		return
	}
	industries, err := companystore.New(h.DB).Industries(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load industries failed", err, "Unable to load companies.", "/dashboard")
		return
	}
	labels := lookup.Labels(groups)

	items := make([]listItem, 0, len(win.Rows))
	for _, c := range win.Rows {
		it := listItem{
			ID:        c.ID.Hex(),
			CompanyID: c.CompanyID,
			Name:      c.Name,
			OwnerName: c.OwnerName,
			Industry:  c.Industry,
			City:      c.City,
			State:     c.State,
			IsActive:  c.IsActive,
			Age:       c.Age,
		}
		if c.GroupID != nil {
			it.GroupLabel = labels[*c.GroupID]
		}
		items = append(items, it)
	}

	rng := paging.ComputeRange(start, len(items))
	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, "Companies", "/dashboard"),
		Q:          q,
		GroupID:    groupHex,
		Industry:   industry,
		Status:     status,
		Groups:     groups,
		Industries: industries,
		Items:      items,

		Shown:      len(items),
		Total:      win.Total,
		HasPrev:    win.HasPrev,
		HasNext:    win.HasNext,
		PrevCursor: win.PrevCursor,
		NextCursor: win.NextCursor,
		RangeStart: rng.Start,
		RangeEnd:   rng.End,
		PrevStart:  rng.PrevStart,
		NextStart:  rng.NextStart,
	}

	h.render(w, r, "companies_list", data)
}
