// internal/app/features/indicators/types.go
package indicators

import (
	"github.com/dalemusser/mentorhub/internal/app/store/queries/summaryqueries"
	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
)

type listItem struct {
	ID          string
	CompanyID   string
	CompanyName string
	Category    string
	Name        string
	Score       float64
	Unit        string
	MeasuredOn  string
}

type listData struct {
	viewdata.BaseVM

	CompanyID  string
	Category   string
	Companies  []lookup.Option
	Categories []string
	Items      []listItem

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
	Companies []lookup.Option

	indicatorForm
}

type summaryData struct {
	viewdata.BaseVM
	Categories []summaryqueries.CategoryStats
}
