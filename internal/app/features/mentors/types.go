// internal/app/features/mentors/types.go
package mentors

import (
	"html/template"

	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
)

type listItem struct {
	ID                string
	Name              string
	Expertise         string
	Email             string
	Phone             string
	GroupLabel        string
	CompaniesAssigned int
	TotalHours        *int
}

type listData struct {
	viewdata.BaseVM

	Q       string
	GroupID string
	Groups  []lookup.Option
	Items   []listItem

	Total      int64
	HasPrev    bool
	HasNext    bool
	PrevCursor string
	NextCursor string
	RangeStart int
	RangeEnd   int
	PrevStart  int
	NextStart  int
}

type formData struct {
	formutil.Base

	ID     string
	Action string
	Groups []lookup.Option

	mentorForm
}

type sessionRow struct {
	ID          string
	Date        string
	CompanyName string
	Topics      string
	Duration    *float64
}

type viewData struct {
	viewdata.BaseVM

	ID                string
	Name              string
	Expertise         string
	Bio               template.HTML
	Email             string
	Phone             string
	GroupLabel        string
	CompaniesAssigned int
	TotalHours        *int
	Sessions          []sessionRow
}
