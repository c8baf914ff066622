// internal/domain/models/indicator.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Indicator is a categorized performance score recorded for a company.
type Indicator struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	CompanyID  primitive.ObjectID `bson:"company_id" json:"company_id"`
	Category   string             `bson:"category" json:"category"`
	Name       string             `bson:"name" json:"name"`
	Score      float64            `bson:"score" json:"score"`
	Unit       string             `bson:"unit" json:"unit"`
	MeasuredOn *time.Time         `bson:"measured_on" json:"measured_on,omitempty"`
	Notes      string             `bson:"notes" json:"notes"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
