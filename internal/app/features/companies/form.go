// internal/app/features/companies/form.go
package companies

import (
	"net/http"
	"strings"

	"github.com/dalemusser/mentorhub/internal/app/system/inputval"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/rules"
)

// companyForm holds the raw submitted values so an invalid form can be
// re-rendered exactly as typed.
type companyForm struct {
	CompanyID    string `validate:"required,max=15" label:"Company ID"`
	IsActive     bool   `label:"Active"`
	Name         string `validate:"required,max=200" label:"Name"`
	OwnerName    string `validate:"required,max=200" label:"Owner name"`
	Email        string `validate:"required,email,max=200" label:"Email"`
	Phone        string `validate:"required,max=15" label:"Phone"`
	Industry     string `validate:"required,max=200" label:"Industry"`
	CompanySize  string `validate:"required,max=50" label:"Company size"`
	Description  string `validate:"required,max=500" label:"Description"`
	FoundingDate string `validate:"omitempty,isodate" label:"Founding date"`
	Address      string `validate:"required,max=200" label:"Address"`
	City         string `validate:"required,max=200" label:"City"`
	State        string `validate:"required,max=50" label:"State"`
	GroupID      string `validate:"omitempty,objectid" label:"Group"`
}

// formFieldNames maps struct fields to the form input names used in
// templates, so field errors can be shown next to their inputs.
var formFieldNames = map[string]string{
	"CompanyID":    "company_id",
	"Name":         "name",
	"OwnerName":    "owner_name",
	"Email":        "email",
	"Phone":        "phone",
	"Industry":     "industry",
	"CompanySize":  "company_size",
	"Description":  "description",
	"FoundingDate": "founding_date",
	"Address":      "address",
	"City":         "city",
	"State":        "state",
	"GroupID":      "group_id",
}

func parseForm(r *http.Request) companyForm {
	v := func(k string) string { return strings.TrimSpace(r.FormValue(k)) }
	return companyForm{
		CompanyID:    v("company_id"),
		IsActive:     r.FormValue("is_active") != "",
		Name:         v("name"),
		OwnerName:    v("owner_name"),
		Email:        v("email"),
		Phone:        v("phone"),
		Industry:     v("industry"),
		CompanySize:  v("company_size"),
		Description:  v("description"),
		FoundingDate: v("founding_date"),
		Address:      v("address"),
		City:         v("city"),
		State:        v("state"),
		GroupID:      v("group_id"),
	}
}

func formFrom(c models.Company) companyForm {
	f := companyForm{
		CompanyID:    c.CompanyID,
		IsActive:     c.IsActive,
		Name:         c.Name,
		OwnerName:    c.OwnerName,
		Email:        c.Email,
		Phone:        c.Phone,
		Industry:     c.Industry,
		CompanySize:  c.CompanySize,
		Description:  c.Description,
		FoundingDate: rules.FormatDate(c.FoundingDate),
		Address:      c.Address,
		City:         c.City,
		State:        c.State,
	}
	if c.GroupID != nil {
		f.GroupID = c.GroupID.Hex()
	}
	return f
}

// validate checks field rules and returns errors keyed by form input name.
func (f companyForm) validate() map[string]string {
	errs := map[string]string{}
	if res := inputval.Validate(f); res.HasErrors() {
		for field, msg := range res.ByField() {
			errs[formFieldNames[field]] = msg
		}
	}
	return errs
}

// model converts a validated form into a Company. Age is derived by the
// store and never taken from input.
func (f companyForm) model() models.Company {
	c := models.Company{
		CompanyID:   f.CompanyID,
		IsActive:    f.IsActive,
		Name:        f.Name,
		OwnerName:   f.OwnerName,
		Email:       f.Email,
		Phone:       f.Phone,
		Industry:    f.Industry,
		CompanySize: f.CompanySize,
		Description: f.Description,
		Address:     f.Address,
		City:        f.City,
		State:       f.State,
	}
	if f.FoundingDate != "" {
		if d, err := rules.ParseDate(f.FoundingDate); err == nil {
			c.FoundingDate = &d
		}
	}
	c.GroupID, _ = lookup.ParseOptionalID(f.GroupID)
	return c
}

// fieldOrder lists form inputs top to bottom so the page-level error is
// the first one a user would reach.
var fieldOrder = []string{
	"company_id", "name", "owner_name", "email", "phone", "industry",
	"company_size", "description", "founding_date", "address", "city",
	"state", "group_id",
}
