// internal/app/features/companies/types.go
package companies

import (
	"github.com/dalemusser/mentorhub/internal/app/store/queries/summaryqueries"
	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
	"github.com/dalemusser/mentorhub/internal/domain/models"
)

// listItem is a single row in the companies list.
type listItem struct {
	ID         string
	CompanyID  string
	Name       string
	OwnerName  string
	Industry   string
	City       string
	State      string
	IsActive   bool
	Age        *int
	GroupLabel string
}

// listData is the view model for the companies list page.
type listData struct {
	viewdata.BaseVM

	Q          string
	GroupID    string
	Industry   string
	Status     string // "", "active", "inactive"
	Groups     []lookup.Option
	Industries []string
	Items      []listItem

	// Pagination
	Shown      int
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

// formData is the view model for the new and edit company forms.
type formData struct {
	formutil.Base

	ID     string // empty on create
	Action string
	Groups []lookup.Option

	companyForm
}

// detailData is the view model for the company detail page.
type detailData struct {
	viewdata.BaseVM

	Company      models.Company
	FoundingDate string
	GroupLabel   string
	Sessions     []sessionRow
	Indicators   []models.Indicator
}

type sessionRow struct {
	ID         string
	Date       string
	MentorName string
	Topics     string
	Duration   *float64
}

// summaryData is the view model for the company summary page.
type summaryData struct {
	viewdata.BaseVM
	summaryqueries.CompanySummaryData
}
