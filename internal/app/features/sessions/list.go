// internal/app/features/sessions/list.go
package sessions

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	sessionstore "github.com/dalemusser/mentorhub/internal/app/store/mentorsessions"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/paging"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
	"github.com/dalemusser/mentorhub/internal/domain/rules"
	"github.com/dalemusser/waffle/pantry/query"
)

// parseDay reads an optional yyyy-mm-dd query value. An unparseable value
// is dropped and reported back to the page.
func parseDay(r *http.Request, key string) (*time.Time, string, bool) {
	raw := query.Get(r, key)
	if raw == "" {
		return nil, "", true
	}
	d, err := rules.ParseDate(raw)
	if err != nil {
		return nil, "", false
	}
	return &d, raw, true
}

// ServeList handles GET /sessions, filtered by ?mentor=, ?company=,
// ?start_date= and ?end_date= (inclusive).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Read(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/dashboard")
		return
	}

	mentorHex := query.Get(r, "mentor")
	companyHex := query.Get(r, "company")
	start := paging.ParseStart(r)

	var filter sessionstore.ListFilter
	if id, err := lookup.ParseOptionalID(mentorHex); err == nil {
		filter.MentorID = id
	} else {
		mentorHex = ""
	}
	if id, err := lookup.ParseOptionalID(companyHex); err == nil {
		filter.CompanyID = id
	} else {
		companyHex = ""
	}

	var filterErr string
	from, fromRaw, ok := parseDay(r, "start_date")
	if !ok {
		filterErr = "Start date must be a valid date (YYYY-MM-DD)."
	}
	to, toRaw, ok := parseDay(r, "end_date")
	if !ok {
		filterErr = "End date must be a valid date (YYYY-MM-DD)."
	}
	filter.Start, filter.End = from, to

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, total, err := sessionstore.New(h.DB).List(ctx, filter, start)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list sessions failed", err, "Unable to load sessions.", "/dashboard")
		return
	}
	mentors, err := lookup.MentorOptions(ctx, h.DB)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load mentors failed", err, "Unable to load sessions.", "/dashboard")
		return
	}
	companies, err := lookup.CompanyOptions(ctx, h.DB, false)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load companies failed", err, "Unable to load sessions.", "/dashboard")
		return
	}
	mentorNames, companyNames := lookup.Labels(mentors), lookup.Labels(companies)

	items := make([]listItem, 0, len(rows))
	for _, s := range rows {
		d := s.Date
		items = append(items, listItem{
			ID:          s.ID.Hex(),
			Date:        rules.FormatDate(&d),
			StartTime:   s.StartTime,
			EndTime:     s.EndTime,
			MentorID:    s.MentorID.Hex(),
			MentorName:  mentorNames[s.MentorID],
			CompanyID:   s.CompanyID.Hex(),
			CompanyName: companyNames[s.CompanyID],
			Topics:      s.TopicsCovered,
			Duration:    s.Duration,
		})
	}

	rng := paging.ComputeRange(start, len(items))
	h.render(w, r, "sessions_list", listData{
		BaseVM:      viewdata.NewBaseVM(r, "Mentorship Sessions", "/dashboard"),
		MentorID:    mentorHex,
		CompanyID:   companyHex,
		StartDate:   fromRaw,
		EndDate:     toRaw,
		Mentors:     mentors,
		Companies:   companies,
		Items:       items,
		FilterError: filterErr,
		Total:       total,
		RangeStart:  rng.Start,
		RangeEnd:    rng.End,
		HasPrev:     start > 1,
		HasNext:     int64(rng.End) < total,
		PrevStart:   rng.PrevStart,
		NextStart:   rng.NextStart,
	})
}
