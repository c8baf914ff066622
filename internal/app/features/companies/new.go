// internal/app/features/companies/new.go
package companies

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	companystore "github.com/dalemusser/mentorhub/internal/app/store/companies"
	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// showForm renders the company form with the submitted values and any
// field errors. id is empty for the create form.
func (h *Handler) showForm(w http.ResponseWriter, r *http.Request, ctx context.Context, id string, f companyForm, errs map[string]string) {
	groups, err := lookup.GroupOptions(ctx, h.DB)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load groups failed", err, "Unable to load the company form.", "/companies")
		return
	}

	data := formData{ID: id, Groups: groups, companyForm: f}
	if id == "" {
		data.Action = "/companies"
		formutil.SetBase(&data.Base, r, "New Company", "/companies")
	} else {
		data.Action = "/companies/" + id + "/edit"
		formutil.SetBase(&data.Base, r, "Edit Company", "/companies/"+id)
	}
	data.SetFieldErrors(errs, fieldOrder)

	h.render(w, r, "companies_form", data)
}

// ServeNew renders the "New Company" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/companies")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	h.showForm(w, r, ctx, "", companyForm{IsActive: true}, nil)
}

// HandleCreate processes the New Company form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/companies")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/companies")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	today := h.today()
	f := parseForm(r)
	if errs := f.validate(); len(errs) > 0 {
		metrics.Invalid(audit.EntityCompany)
		h.showForm(w, r, ctx, "", f, errs)
		return
	}

	c, err := companystore.New(h.DB).Create(ctx, f.model(), today)
	if err != nil {
		if errs := formutil.ValidationErrors(err); errs != nil {
			metrics.Invalid(audit.EntityCompany)
			h.showForm(w, r, ctx, "", f, errs)
			return
		}
		h.ErrLog.LogServerError(w, r, "create company failed", err, "Database error while creating company.", "/companies")
		return
	}

	metrics.RecordWrite(audit.EntityCompany, metrics.OpCreate)
	h.Audit.RecordCreated(ctx, r, audit.EntityCompany, c.ID, c.CompanyID)
	h.Log.Info("company created", zap.String("company_id", c.CompanyID), zap.String("id", c.ID.Hex()))

	h.flash(w, r, MsgCreated)
	http.Redirect(w, r, "/companies", http.StatusSeeOther)
}
