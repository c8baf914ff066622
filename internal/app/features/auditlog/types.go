// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/mentorhub/internal/app/system/viewdata"
)

// listItem represents a single audit event row for display.
type listItem struct {
	ID          string
	Timestamp   time.Time
	Category    string
	EventType   string
	ActorName   string
	Entity      string
	EntityLabel string
	IP          string
	Success     bool
	Reason      string
	Details     map[string]string
}

// listData is the view model for the audit log list page.
type listData struct {
	viewdata.BaseVM

	Items []listItem

	// Filters
	Category  string
	EventType string
	Entity    string
	StartDate string
	EndDate   string

	// Filter options
	Categories []option
	EventTypes []string
	Entities   []option

	// Pagination
	Page       int
	TotalPages int
	Total      int64
	Shown      int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

type option struct {
	Value string
	Label string
}

func allCategories() []option {
	return []option{
		{Value: audit.CategoryAuth, Label: "Authentication"},
		{Value: audit.CategoryAdmin, Label: "Records"},
	}
}

func allEntities() []option {
	return []option{
		{Value: audit.EntityGroup, Label: "Groups"},
		{Value: audit.EntityCompany, Label: "Companies"},
		{Value: audit.EntityMentor, Label: "Mentors"},
		{Value: audit.EntitySession, Label: "Sessions"},
		{Value: audit.EntityIndicator, Label: "Indicators"},
		{Value: audit.EntityUser, Label: "Users"},
	}
}

// eventTypesForCategory returns the event types for a given category.
// If category is empty, returns all event types.
func eventTypesForCategory(category string) []string {
	authEvents := []string{
		audit.EventLoginSuccess,
		audit.EventLoginFailedUserNotFound,
		audit.EventLoginFailedWrongPassword,
		audit.EventLoginFailedUserDisabled,
		audit.EventLogout,
	}
	adminEvents := []string{
		audit.EventRecordCreated,
		audit.EventRecordUpdated,
		audit.EventRecordDeleted,
		audit.EventMentorsRecounted,
		audit.EventRecordsExported,
	}

	switch category {
	case audit.CategoryAuth:
		return authEvents
	case audit.CategoryAdmin:
		return adminEvents
	case "":
		all := make([]string, 0, len(authEvents)+len(adminEvents))
		all = append(all, authEvents...)
		return append(all, adminEvents...)
	default:
		return nil
	}
}

func known(v string, opts []option) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}
