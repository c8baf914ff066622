// internal/app/features/companies/view.go
package companies

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	companystore "github.com/dalemusser/mentorhub/internal/app/store/companies"
	groupstore "github.com/dalemusser/mentorhub/internal/app/store/groups"
	indicatorstore "github.com/dalemusser/mentorhub/internal/app/store/indicators"
	sessionstore "github.com/dalemusser/mentorhub/internal/app/store/mentorsessions"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/rules"
)

// ServeDetail handles GET /companies/{id}: the company record plus its
// sessions and indicators.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Read(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/companies")
		return
	}
	oid, err := companyID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/companies")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, err := companystore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "load company failed", err, "/companies")
		return
	}

	data := detailData{
		BaseVM:       viewdata.NewBaseVM(r, c.Name, "/companies"),
		Company:      c,
		FoundingDate: rules.FormatDate(c.FoundingDate),
	}

	if c.GroupID != nil {
		g, err := groupstore.New(h.DB).GetByID(ctx, *c.GroupID)
		switch {
		case err == nil:
			data.GroupLabel = g.Label()
		case !apperr.IsNotFound(err):
			h.ErrLog.LogServerError(w, r, "load group failed", err, "Unable to load company.", "/companies")
			return
		}
	}

	sessions, err := sessionstore.New(h.DB).All(ctx, sessionstore.ListFilter{CompanyID: &oid})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load sessions failed", err, "Unable to load company.", "/companies")
		return
	}
	mentors, err := lookup.MentorOptions(ctx, h.DB)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load mentors failed", err, "Unable to load company.", "/companies")
		return
	}
	names := lookup.Labels(mentors)
	for _, s := range sessions {
		d := s.Date
		data.Sessions = append(data.Sessions, sessionRow{
			ID:         s.ID.Hex(),
			Date:       rules.FormatDate(&d),
			MentorName: names[s.MentorID],
			Topics:     s.TopicsCovered,
			Duration:   s.Duration,
		})
	}

	data.Indicators, _, err = indicatorstore.New(h.DB).List(ctx, indicatorstore.ListFilter{CompanyID: &oid}, 1)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load indicators failed", err, "Unable to load company.", "/companies")
		return
	}

	h.render(w, r, "companies_detail", data)
}
