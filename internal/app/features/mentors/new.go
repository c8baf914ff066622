// internal/app/features/mentors/new.go
package mentors

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

func (h *Handler) showForm(w http.ResponseWriter, r *http.Request, ctx context.Context, id string, f mentorForm, errs map[string]string) {
	groups, err := lookup.GroupOptions(ctx, h.DB)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load groups failed", err, "Unable to load the mentor form.", "/mentors")
		return
	}

	data := formData{ID: id, Groups: groups, mentorForm: f}
	if id == "" {
		data.Action = "/mentors"
		formutil.SetBase(&data.Base, r, "New Mentor", "/mentors")
	} else {
		data.Action = "/mentors/" + id + "/edit"
		formutil.SetBase(&data.Base, r, "Edit Mentor", "/mentors/"+id)
	}
	data.SetFieldErrors(errs, fieldOrder)

	h.render(w, r, "mentors_form", data)
}

// ServeNew renders the "New Mentor" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/mentors")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	h.showForm(w, r, ctx, "", mentorForm{}, nil)
}

// HandleCreate saves a new mentor. The store counts the companies in the
// mentor's group as part of the same write.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/mentors")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/mentors")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f := parseForm(r)
	if errs := f.validate(); len(errs) > 0 {
		metrics.Invalid(audit.EntityMentor)
		h.showForm(w, r, ctx, "", f, errs)
		return
	}

	m, err := mentorstore.New(h.DB).Create(ctx, f.model())
	if err != nil {
		if errs := formutil.ValidationErrors(err); errs != nil {
			metrics.Invalid(audit.EntityMentor)
			h.showForm(w, r, ctx, "", f, errs)
			return
		}
		h.ErrLog.LogServerError(w, r, "create mentor failed", err, "Database error while creating mentor.", "/mentors")
		return
	}

	metrics.RecordWrite(audit.EntityMentor, metrics.OpCreate)
	h.Audit.RecordCreated(ctx, r, audit.EntityMentor, m.ID, m.Name)
	h.Log.Info("mentor created", zap.String("id", m.ID.Hex()), zap.Int("companies_assigned", m.CompaniesAssigned))

	h.flash(w, r, MsgCreated)
	http.Redirect(w, r, "/mentors", http.StatusSeeOther)
}
