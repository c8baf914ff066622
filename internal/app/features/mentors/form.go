// internal/app/features/mentors/form.go
package mentors

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/mentorhub/internal/app/system/inputval"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/domain/models"
)

type mentorForm struct {
	Name       string `validate:"required,max=200" label:"Name"`
	Expertise  string `validate:"required,max=200" label:"Expertise"`
	Bio        string `validate:"max=3000" label:"Bio"`
	Phone      string `validate:"required,max=11" label:"Phone"`
	Email      string `validate:"required,email,max=200" label:"Email"`
	GroupID    string `validate:"omitempty,objectid" label:"Group"`
	TotalHours string `validate:"omitempty,number" label:"Total hours"`
}

var formFieldNames = map[string]string{
	"Name":       "name",
	"Expertise":  "expertise",
	"Bio":        "bio",
	"Phone":      "phone",
	"Email":      "email",
	"GroupID":    "group_id",
	"TotalHours": "total_hours",
}

var fieldOrder = []string{"name", "expertise", "bio", "phone", "email", "group_id", "total_hours"}

func parseForm(r *http.Request) mentorForm {
	v := func(k string) string { return strings.TrimSpace(r.FormValue(k)) }
	return mentorForm{
		Name:       v("name"),
		Expertise:  v("expertise"),
		Bio:        v("bio"),
		Phone:      v("phone"),
		Email:      v("email"),
		GroupID:    v("group_id"),
		TotalHours: v("total_hours"),
	}
}

func formFrom(m models.Mentor) mentorForm {
	f := mentorForm{
		Name:      m.Name,
		Expertise: m.Expertise,
		Bio:       m.Bio,
		Phone:     m.Phone,
		Email:     m.Email,
	}
	if m.GroupID != nil {
		f.GroupID = m.GroupID.Hex()
	}
	if m.TotalHours != nil {
		f.TotalHours = strconv.Itoa(*m.TotalHours)
	}
	return f
}

func (f mentorForm) validate() map[string]string {
	errs := map[string]string{}
	for field, msg := range inputval.Validate(f).ByField() {
		errs[formFieldNames[field]] = msg
	}
	if _, bad := errs["total_hours"]; !bad && f.TotalHours != "" {
		if _, err := strconv.Atoi(f.TotalHours); err != nil {
			errs["total_hours"] = "Total hours is too large."
		}
	}
	return errs
}

// model converts a validated form. companies_assigned is derived by the
// store on save and never read from input.
func (f mentorForm) model() models.Mentor {
	m := models.Mentor{
		Name:      f.Name,
		Expertise: f.Expertise,
		Bio:       f.Bio,
		Phone:     f.Phone,
		Email:     f.Email,
	}
	m.GroupID, _ = lookup.ParseOptionalID(f.GroupID)
	if f.TotalHours != "" {
		if n, err := strconv.Atoi(f.TotalHours); err == nil {
			m.TotalHours = &n
		}
	}
	return m
}
