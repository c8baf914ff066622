// internal/app/features/indicators/new.go
package indicators

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	indicatorstore "github.com/dalemusser/mentorhub/internal/app/store/indicators"
	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

func (h *Handler) showForm(w http.ResponseWriter, r *http.Request, ctx context.Context, id string, f indicatorForm, errs map[string]string) {
	companies, err := lookup.CompanyOptions(ctx, h.DB, false)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load companies failed", err, "Unable to load the indicator form.", "/indicators")
		return
	}

	data := formData{ID: id, Companies: companies, indicatorForm: f}
	if id == "" {
		data.Action = "/indicators"
		formutil.SetBase(&data.Base, r, "New Indicator", "/indicators")
	} else {
		data.Action = "/indicators/" + id + "/edit"
		formutil.SetBase(&data.Base, r, "Edit Indicator", "/indicators")
	}
	data.SetFieldErrors(errs, fieldOrder)

	h.render(w, r, "indicators_form", data)
}

// ServeNew renders the new-indicator form. ?company= preselects a company,
// which is how the company detail page links here.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/indicators")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	h.showForm(w, r, ctx, "", indicatorForm{CompanyID: query.Get(r, "company")}, nil)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/indicators")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/indicators")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f := parseForm(r)
	if errs := f.validate(); len(errs) > 0 {
		metrics.Invalid(audit.EntityIndicator)
		h.showForm(w, r, ctx, "", f, errs)
		return
	}

	ind, err := indicatorstore.New(h.DB).Create(ctx, f.model())
	if err != nil {
		if errs := formutil.ValidationErrors(err); errs != nil {
			metrics.Invalid(audit.EntityIndicator)
			h.showForm(w, r, ctx, "", f, errs)
			return
		}
		h.ErrLog.LogServerError(w, r, "create indicator failed", err, "Database error while saving the indicator.", "/indicators")
		return
	}

	metrics.RecordWrite(audit.EntityIndicator, metrics.OpCreate)
	h.Audit.RecordCreated(ctx, r, audit.EntityIndicator, ind.ID, ind.Category+" / "+ind.Name)
	h.Log.Info("indicator created", zap.String("id", ind.ID.Hex()), zap.String("category", ind.Category))

	h.flash(w, r, MsgCreated)
	http.Redirect(w, r, "/indicators", http.StatusSeeOther)
}
