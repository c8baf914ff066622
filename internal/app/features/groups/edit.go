// internal/app/features/groups/edit.go
package groups

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	groupstore "github.com/dalemusser/mentorhub/internal/app/store/groups"
	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func groupID(r *http.Request) (primitive.ObjectID, error) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound("group", idHex)
	}
	return oid, nil
}

// ServeEditGroup renders the edit form for one group.
func (h *Handler) ServeEditGroup(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/groups")
		return
	}
	oid, err := groupID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/groups")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := groupstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "load group failed", err, "/groups")
		return
	}
	h.showForm(w, r, oid.Hex(), groupForm{Name: g.Name, Description: g.Description}, nil)
}

// HandleEditGroup saves the name and description.
func (h *Handler) HandleEditGroup(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Write(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/groups")
		return
	}
	oid, err := groupID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/groups")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/groups")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := groupstore.New(h.DB)
	if _, err := store.GetByID(ctx, oid); err != nil {
		h.ErrLog.LogAppError(w, r, "load group failed", err, "/groups")
		return
	}

	f := parseForm(r)
	if errs := f.validate(); len(errs) > 0 {
		metrics.Invalid(audit.EntityGroup)
		h.showForm(w, r, oid.Hex(), f, errs)
		return
	}

	if err := store.Update(ctx, oid, f.Name, f.Description); err != nil {
		if errs := formutil.ValidationErrors(err); errs != nil {
			metrics.Invalid(audit.EntityGroup)
			h.showForm(w, r, oid.Hex(), f, errs)
			return
		}
		h.ErrLog.LogAppError(w, r, "update group failed", err, "/groups")
		return
	}

	metrics.RecordWrite(audit.EntityGroup, metrics.OpUpdate)
	h.Audit.RecordUpdated(ctx, r, audit.EntityGroup, oid, models.GroupLabel(f.Name))

	h.flash(w, r, MsgUpdated)
	http.Redirect(w, r, "/groups", http.StatusSeeOther)
}
