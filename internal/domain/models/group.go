// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group names are a closed set: the four numbered cohorts plus "All".
const (
	GroupOne   = "1"
	GroupTwo   = "2"
	GroupThree = "3"
	GroupFour  = "4"
	GroupAll   = "All"
)

// GroupChoice pairs a stored group name with its display label.
type GroupChoice struct {
	Value string
	Label string
}

// GroupChoices lists every valid group name in display order.
var GroupChoices = []GroupChoice{
	{Value: GroupOne, Label: "Group 1"},
	{Value: GroupTwo, Label: "Group 2"},
	{Value: GroupThree, Label: "Group 3"},
	{Value: GroupFour, Label: "Group 4"},
	{Value: GroupAll, Label: "All Groups"},
}

// GroupLabel returns the display label for a group name, or the name itself
// when it is not one of the known choices.
func GroupLabel(name string) string {
	for _, c := range GroupChoices {
		if c.Value == name {
			return c.Label
		}
	}
	return name
}

// IsValidGroupName reports whether name is one of GroupChoices.
func IsValidGroupName(name string) bool {
	for _, c := range GroupChoices {
		if c.Value == name {
			return true
		}
	}
	return false
}

// Group is a cohort that companies and mentors are assigned to.
type Group struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Label returns the display label for the group.
func (g Group) Label() string { return GroupLabel(g.Name) }
