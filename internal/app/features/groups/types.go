// internal/app/features/groups/types.go
package groups

import (
	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
	"github.com/dalemusser/mentorhub/internal/domain/models"
)

type groupRow struct {
	ID          string
	Label       string
	Description string
	Companies   int64
	Mentors     int64
}

type listData struct {
	viewdata.BaseVM
	Rows []groupRow
	// Missing counts the group names not created yet.
	Missing int
}

type groupForm struct {
	Name        string `validate:"required,groupname" label:"Group"`
	Description string `validate:"max=200" label:"Description"`
}

type formData struct {
	formutil.Base

	ID      string
	Action  string
	Choices []models.GroupChoice

	groupForm
}

type memberRow struct {
	ID    string
	Name  string
	Extra string
}

type viewData struct {
	viewdata.BaseVM

	ID          string
	Label       string
	Description string
	Companies   []memberRow
	Mentors     []memberRow
	// More* are set when the group holds more rows than a page shows.
	MoreCompanies bool
	MoreMentors   bool
}
