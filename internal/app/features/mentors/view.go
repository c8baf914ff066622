// internal/app/features/mentors/view.go
package mentors

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	groupstore "github.com/dalemusser/mentorhub/internal/app/store/groups"
	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	sessionstore "github.com/dalemusser/mentorhub/internal/app/store/mentorsessions"
	"github.com/dalemusser/mentorhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/rules"
)

// ServeView shows one mentor with their sessions, newest first.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Read(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/mentors")
		return
	}
	oid, err := mentorID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/mentors")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := mentorstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "load mentor failed", err, "/mentors")
		return
	}

	data := viewData{
		BaseVM:            viewdata.NewBaseVM(r, m.Name, "/mentors"),
		ID:                oid.Hex(),
		Name:              m.Name,
		Expertise:         m.Expertise,
		Bio:               htmlsanitize.PrepareForDisplay(m.Bio),
		Email:             m.Email,
		Phone:             m.Phone,
		CompaniesAssigned: m.CompaniesAssigned,
		TotalHours:        m.TotalHours,
	}
	if m.GroupID != nil {
		g, err := groupstore.New(h.DB).GetByID(ctx, *m.GroupID)
		switch {
		case err == nil:
			data.GroupLabel = g.Label()
		case !apperr.IsNotFound(err):
			h.ErrLog.LogServerError(w, r, "load group failed", err, "Unable to load mentor.", "/mentors")
			return
		}
	}

	sessions, err := sessionstore.New(h.DB).All(ctx, sessionstore.ListFilter{MentorID: &oid})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load sessions failed", err, "Unable to load mentor.", "/mentors")
		return
	}
	companies, err := lookup.CompanyOptions(ctx, h.DB, false)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load companies failed", err, "Unable to load mentor.", "/mentors")
		return
	}
	names := lookup.Labels(companies)
	for _, s := range sessions {
		d := s.Date
		data.Sessions = append(data.Sessions, sessionRow{
			ID:          s.ID.Hex(),
			Date:        rules.FormatDate(&d),
			CompanyName: names[s.CompanyID],
			Topics:      s.TopicsCovered,
			Duration:    s.Duration,
		})
	}

	h.render(w, r, "mentors_view", data)
}
