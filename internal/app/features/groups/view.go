// internal/app/features/groups/view.go
package groups

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/policy/recordpolicy"
	companystore "github.com/dalemusser/mentorhub/internal/app/store/companies"
	groupstore "github.com/dalemusser/mentorhub/internal/app/store/groups"
	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
)

// ServeGroupView shows one group with the first page of its companies and
// mentors.
func (h *Handler) ServeGroupView(w http.ResponseWriter, r *http.Request) {
	if err := recordpolicy.Read(r); err != nil {
		uierrors.RenderAppError(w, r, err, "/groups")
		return
	}
	oid, err := groupID(r)
	if err != nil {
		uierrors.RenderAppError(w, r, err, "/groups")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := groupstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		h.ErrLog.LogAppError(w, r, "load group failed", err, "/groups")
		return
	}

	companies, err := companystore.New(h.DB).List(ctx, companystore.ListFilter{GroupID: &oid})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list group companies failed", err, "Unable to load group.", "/groups")
		return
	}
	mentors, err := mentorstore.New(h.DB).List(ctx, mentorstore.ListFilter{GroupID: &oid})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list group mentors failed", err, "Unable to load group.", "/groups")
		return
	}

	data := viewData{
		BaseVM:        viewdata.NewBaseVM(r, g.Label(), "/groups"),
		ID:            oid.Hex(),
		Label:         g.Label(),
		Description:   g.Description,
		MoreCompanies: companies.HasNext,
		MoreMentors:   mentors.HasNext,
	}
	for _, c := range companies.Rows {
		data.Companies = append(data.Companies, memberRow{ID: c.ID.Hex(), Name: c.Name, Extra: c.CompanyID})
	}
	for _, m := range mentors.Rows {
		data.Mentors = append(data.Mentors, memberRow{ID: m.ID.Hex(), Name: m.Name, Extra: m.Expertise})
	}

	h.render(w, r, "groups_view", data)
}
