// internal/app/features/sessions/types.go
package sessions

import (
	"html/template"

	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
)

type listItem struct {
	ID          string
	Date        string
	StartTime   string
	EndTime     string
	MentorID    string
	MentorName  string
	CompanyID   string
	CompanyName string
	Topics      string
	Duration    *float64
}

type listData struct {
	viewdata.BaseVM

	MentorID  string
	CompanyID string
	StartDate string
	EndDate   string
	Mentors   []lookup.Option
	Companies []lookup.Option
	Items     []listItem
	// FilterError explains a start/end date that could not be applied.
	FilterError string

	Total      int64
	RangeStart int
	RangeEnd   int
	HasPrev    bool
	HasNext    bool
	PrevStart  int
	NextStart  int
}

type formData struct {
	formutil.Base

	ID        string
	Action    string
	Mentors   []lookup.Option
	Companies []lookup.Option
	Ratings   []string

	sessionForm
}

type viewData struct {
	viewdata.BaseVM

	ID           string
	Date         string
	StartTime    string
	EndTime      string
	MentorID     string
	MentorName   string
	CompanyID    string
	CompanyName  string
	Topics       string
	SessionNotes template.HTML
	ActionItems  template.HTML
	Duration     *float64
	Punctuality  string
	Engagement   string
}
