// internal/app/features/sessions/new.go
package sessions

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	sessionstore "github.com/dalemusser/mentorhub/internal/app/store/mentorsessions"
	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/rules"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

func (h *Handler) showForm(w http.ResponseWriter, r *http.Request, ctx context.Context, id string, f sessionForm, errs map[string]string) {
	mentors, err := lookup.MentorOptions(ctx, h.DB)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load mentors failed", err, "Unable to load the session form.", "/sessions")
		return
	}
	companies, err := lookup.CompanyOptions(ctx, h.DB, false)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load companies failed", err, "Unable to load the session form.", "/sessions")
		return
	}

	data := formData{
		ID:          id,
		Mentors:     mentors,
		Companies:   companies,
		Ratings:     models.Ratings,
		sessionForm: f,
	}
	if id == "" {
		data.Action = "/sessions"
		formutil.SetBase(&data.Base, r, "Log Session", "/sessions")
	} else {
		data.Action = "/sessions/" + id + "/edit"
		formutil.SetBase(&data.Base, r, "Edit Session", "/sessions/"+id)
	}
	data.SetFieldErrors(errs, fieldOrder)

	h.render(w, r, "sessions_form", data)
}

// ServeNew renders the "Log Session" form. ?mentor= and ?company=
// preselect the matching dropdowns; the date defaults to today.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/sessions")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	today := h.today()
	f := sessionForm{Date: rules.FormatDate(&today)}
	if id, err := lookup.ParseOptionalID(query.Get(r, "mentor")); err == nil && id != nil {
		f.MentorID = id.Hex()
	}
	if id, err := lookup.ParseOptionalID(query.Get(r, "company")); err == nil && id != nil {
		f.CompanyID = id.Hex()
	}
	h.showForm(w, r, ctx, "", f, nil)
}

// HandleCreate logs a new session. Sessions dated after today are
// rejected before anything is written.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/sessions")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/sessions")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f := parseForm(r)
	if errs := f.validate(h.today()); len(errs) > 0 {
		metrics.Invalid(audit.EntitySession)
		h.showForm(w, r, ctx, "", f, errs)
		return
	}

	ms, err := sessionstore.New(h.DB).Create(ctx, f.model())
	if err != nil {
		if errs := formutil.ValidationErrors(err); errs != nil {
			metrics.Invalid(audit.EntitySession)
			h.showForm(w, r, ctx, "", f, errs)
			return
		}
		h.ErrLog.LogServerError(w, r, "create session failed", err, "Database error while logging session.", "/sessions")
		return
	}

	metrics.RecordWrite(audit.EntitySession, metrics.OpCreate)
	h.Audit.RecordCreated(ctx, r, audit.EntitySession, ms.ID, sessionLabel(ms))
	h.Log.Info("session logged",
		zap.String("id", ms.ID.Hex()),
		zap.String("mentor_id", ms.MentorID.Hex()),
		zap.String("company_id", ms.CompanyID.Hex()))

	h.flash(w, r, MsgCreated)
	http.Redirect(w, r, "/sessions", http.StatusSeeOther)
}

func sessionLabel(ms models.MentorshipSession) string {
	d := ms.Date
	return rules.FormatDate(&d) + " " + ms.StartTime
}
