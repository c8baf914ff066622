// internal/app/features/sessions/view.go
package sessions

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	companystore "github.com/dalemusser/mentorhub/internal/app/store/companies"
	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	sessionstore "github.com/dalemusser/mentorhub/internal/app/store/mentorsessions"
	"github.com/dalemusser/mentorhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/rules"
)

func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Read(r); err != nil {
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

	ms, err := sessionstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "load session failed", err, "/sessions")
		return
	}

	d := ms.Date
	data := viewData{
		BaseVM:       viewdata.NewBaseVM(r, "Mentorship Session", "/sessions"),
		ID:           oid.Hex(),
		Date:         rules.FormatDate(&d),
		StartTime:    ms.StartTime,
		EndTime:      ms.EndTime,
		MentorID:     ms.MentorID.Hex(),
		CompanyID:    ms.CompanyID.Hex(),
		Topics:       ms.TopicsCovered,
		SessionNotes: htmlsanitize.PrepareForDisplay(ms.SessionNotes),
		ActionItems:  htmlsanitize.PrepareForDisplay(ms.ActionItems),
		Duration:     ms.Duration,
		Punctuality:  ms.Punctuality,
		Engagement:   ms.Engagement,
	}

	// Cascading deletes keep these present; a miss shows a blank name.
	m, err := mentorstore.New(h.DB).GetByID(ctx, ms.MentorID)
	switch {
	case err == nil:
		data.MentorName = m.Name
	case !apperr.IsNotFound(err):
		h.ErrLog.LogServerError(w, r, "load mentor failed", err, "Unable to load session.", "/sessions")
		return
	}
	c, err := companystore.New(h.DB).GetByID(ctx, ms.CompanyID)
	switch {
	case err == nil:
		data.CompanyName = c.Name
	case !apperr.IsNotFound(err):
		h.ErrLog.LogServerError(w, r, "load company failed", err, "Unable to load session.", "/sessions")
		return
	}

	h.render(w, r, "sessions_view", data)
}
