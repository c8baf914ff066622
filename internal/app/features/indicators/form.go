// internal/app/features/indicators/form.go
package indicators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/mentorhub/internal/app/system/inputval"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/rules"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type indicatorForm struct {
	CompanyID  string `validate:"required,objectid" label:"Company"`
	Category   string `validate:"required,max=100" label:"Category"`
	Name       string `validate:"required,max=200" label:"Name"`
	Score      string `validate:"required,numeric" label:"Score"`
	Unit       string `validate:"max=50" label:"Unit"`
	MeasuredOn string `validate:"omitempty,isodate" label:"Measured on"`
	Notes      string `validate:"max=1000" label:"Notes"`
}

var formFieldNames = map[string]string{
	"CompanyID":  "company_id",
	"Category":   "category",
	"Name":       "name",
	"Score":      "score",
	"Unit":       "unit",
	"MeasuredOn": "measured_on",
	"Notes":      "notes",
}

var fieldOrder = []string{"company_id", "category", "name", "score", "unit", "measured_on", "notes"}

func parseForm(r *http.Request) indicatorForm {
	v := func(k string) string { return strings.TrimSpace(r.FormValue(k)) }
	return indicatorForm{
		CompanyID:  v("company_id"),
		Category:   v("category"),
		Name:       v("name"),
		Score:      v("score"),
		Unit:       v("unit"),
		MeasuredOn: v("measured_on"),
		Notes:      v("notes"),
	}
}

func formFrom(ind models.Indicator) indicatorForm {
	return indicatorForm{
		CompanyID:  ind.CompanyID.Hex(),
		Category:   ind.Category,
		Name:       ind.Name,
		Score:      strconv.FormatFloat(ind.Score, 'f', -1, 64),
		Unit:       ind.Unit,
		MeasuredOn: rules.FormatDate(ind.MeasuredOn),
		Notes:      ind.Notes,
	}
}

func (f indicatorForm) validate() map[string]string {
	errs := map[string]string{}
	for field, msg := range inputval.Validate(f).ByField() {
		errs[formFieldNames[field]] = msg
	}
	return errs
}

// model converts a validated form. Parse errors cannot occur here because
// validate has already checked every field.
func (f indicatorForm) model() models.Indicator {
	ind := models.Indicator{
		Category: f.Category,
		Name:     f.Name,
		Unit:     f.Unit,
		Notes:    f.Notes,
	}
	ind.CompanyID, _ = primitive.ObjectIDFromHex(f.CompanyID)
	ind.Score, _ = strconv.ParseFloat(f.Score, 64)
	if f.MeasuredOn != "" {
		if d, err := rules.ParseDate(f.MeasuredOn); err == nil {
			ind.MeasuredOn = &d
		}
	}
	return ind
}
