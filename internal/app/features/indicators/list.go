// internal/app/features/indicators/list.go
package indicators

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	indicatorstore "github.com/dalemusser/mentorhub/internal/app/store/indicators"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/paging"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
	"github.com/dalemusser/mentorhub/internal/domain/rules"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeList handles GET /indicators with optional ?company= and ?category=
// filters. Rows are ordered by category, then name.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Read(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/dashboard")
		return
	}

	companyHex := query.Get(r, "company")
	category := query.Get(r, "category")
	start := paging.ParseStart(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := indicatorstore.ListFilter{Category: category}
	if cid, err := lookup.ParseOptionalID(companyHex); err == nil {
		filter.CompanyID = cid
	} else {
		companyHex = ""
	}

	store := indicatorstore.New(h.DB)
	rows, total, err := store.List(ctx, filter, start)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list indicators failed", err, "Unable to load indicators.", "/dashboard")
		return
	}
	companies, err := lookup.CompanyOptions(ctx, h.DB, false)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load companies failed", err, "Unable to load indicators.", "/dashboard")
		return
	}
	categories, err := store.Categories(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load categories failed", err, "Unable to load indicators.", "/dashboard")
		return
	}
	names := lookup.Labels(companies)

	items := make([]listItem, 0, len(rows))
	for _, ind := range rows {
		items = append(items, listItem{
			ID:          ind.ID.Hex(),
			CompanyID:   ind.CompanyID.Hex(),
			CompanyName: names[ind.CompanyID],
			Category:    ind.Category,
			Name:        ind.Name,
			Score:       ind.Score,
			Unit:        ind.Unit,
			MeasuredOn:  rules.FormatDate(ind.MeasuredOn),
		})
	}

	rng := paging.ComputeRange(start, len(items))
	h.render(w, r, "indicators_list", listData{
		BaseVM:     viewdata.NewBaseVM(r, "Indicators", "/dashboard"),
		CompanyID:  companyHex,
		Category:   category,
		Companies:  companies,
		Categories: categories,
		Items:      items,
		Total:      total,
		RangeStart: rng.Start,
		RangeEnd:   rng.End,
		HasPrev:    start > 1,
		HasNext:    int64(rng.End) < total,
		PrevStart:  rng.PrevStart,
		NextStart:  rng.NextStart,
	})
}
