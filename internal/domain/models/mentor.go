// internal/domain/models/mentor.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mentor is a consultant who runs sessions with companies.
//
// CompaniesAssigned is the number of companies sharing the mentor's group
// at the time of the mentor's last save. It is not refreshed when companies
// change; see mentorstore.RecountAll.
type Mentor struct {
	ID                primitive.ObjectID  `bson:"_id" json:"id"`
	Name              string              `bson:"name" json:"name"`
	NameCI            string              `bson:"name_ci" json:"name_ci"`
	Expertise         string              `bson:"expertise" json:"expertise"`
	Bio               string              `bson:"bio" json:"bio"` // sanitized HTML
	Phone             string              `bson:"phone" json:"phone"`
	Email             string              `bson:"email" json:"email"`
	GroupID           *primitive.ObjectID `bson:"group_id" json:"group_id,omitempty"`
	CompaniesAssigned int                 `bson:"companies_assigned" json:"companies_assigned"`
	TotalHours        *int                `bson:"total_hours" json:"total_hours,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
