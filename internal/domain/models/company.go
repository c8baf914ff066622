// internal/domain/models/company.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Company is a client business receiving mentorship.
//
// NOTE:
//   - Age is derived from FoundingDate on every save and is never
//     accepted from user input.
//   - GroupID is cleared (not cascaded) when its group is deleted.
type Company struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	CompanyID   string              `bson:"company_id" json:"company_id"`
	IsActive    bool                `bson:"is_active" json:"is_active"`
	Name        string              `bson:"name" json:"name"`
	NameCI      string              `bson:"name_ci" json:"name_ci"`
	OwnerName   string              `bson:"owner_name" json:"owner_name"`
	Email       string              `bson:"email" json:"email"`
	Phone       string              `bson:"phone" json:"phone"`
	Industry    string              `bson:"industry" json:"industry"`
	CompanySize string              `bson:"company_size" json:"company_size"`
	Description string              `bson:"description" json:"description"`
	Address     string              `bson:"address" json:"address"`
	City        string              `bson:"city" json:"city"`
	State       string              `bson:"state" json:"state"`
	GroupID     *primitive.ObjectID `bson:"group_id" json:"group_id,omitempty"`

	FoundingDate *time.Time `bson:"founding_date" json:"founding_date,omitempty"`
	Age          *int       `bson:"age" json:"age,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
