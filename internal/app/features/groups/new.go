// internal/app/features/groups/new.go
package groups

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	groupstore "github.com/dalemusser/mentorhub/internal/app/store/groups"
	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/inputval"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.uber.org/zap"
)

var formFieldNames = map[string]string{"Name": "name", "Description": "description"}

var fieldOrder = []string{"name", "description"}

func parseForm(r *http.Request) groupForm {
	return groupForm{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
}

func (f groupForm) validate() map[string]string {
	errs := map[string]string{}
	for field, msg := range inputval.Validate(f).ByField() {
		errs[formFieldNames[field]] = msg
	}
	return errs
}

func (h *Handler) showForm(w http.ResponseWriter, r *http.Request, id string, f groupForm, errs map[string]string) {
	data := formData{ID: id, Choices: models.GroupChoices, groupForm: f}
	if id == "" {
		data.Action = "/groups"
		formutil.SetBase(&data.Base, r, "New Group", "/groups")
	} else {
		data.Action = "/groups/" + id + "/edit"
		formutil.SetBase(&data.Base, r, "Edit Group", "/groups/"+id+"/view")
	}
	data.SetFieldErrors(errs, fieldOrder)
	h.render(w, r, "groups_form", data)
}

// ServeNewGroup renders the new-group form.
func (h *Handler) ServeNewGroup(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/groups")
		return
	}
	h.showForm(w, r, "", groupForm{}, nil)
}

// HandleCreateGroup creates a group. Each name can exist only once.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/groups")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/groups")
		return
	}

	f := parseForm(r)
	if errs := f.validate(); len(errs) > 0 {
		metrics.Invalid(audit.EntityGroup)
		h.showForm(w, r, "", f, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := groupstore.New(h.DB).Create(ctx, models.Group{Name: f.Name, Description: f.Description})
	if err != nil {
		if errs := formutil.ValidationErrors(err); errs != nil {
			metrics.Invalid(audit.EntityGroup)
			h.showForm(w, r, "", f, errs)
			return
		}
		h.ErrLog.LogServerError(w, r, "create group failed", err, "Database error while creating group.", "/groups")
		return
	}

	metrics.RecordWrite(audit.EntityGroup, metrics.OpCreate)
	h.Audit.RecordCreated(ctx, r, audit.EntityGroup, g.ID, g.Label())
	h.Log.Info("group created", zap.String("name", g.Name))

	h.flash(w, r, MsgCreated)
	http.Redirect(w, r, "/groups", http.StatusSeeOther)
}
