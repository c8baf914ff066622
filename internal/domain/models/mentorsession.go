// internal/domain/models/mentorsession.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating levels used for session punctuality and engagement.
const (
	RatingLow    = "Low"
	RatingMedium = "Medium"
	RatingHigh   = "High"
)

// Ratings lists the rating levels in display order.
var Ratings = []string{RatingLow, RatingMedium, RatingHigh}

// IsValidRating reports whether v is one of Ratings.
func IsValidRating(v string) bool {
	for _, r := range Ratings {
		if r == v {
			return true
		}
	}
	return false
}

// MentorshipSession records one meeting between a mentor and a company.
// Date holds the calendar day at UTC midnight; StartTime and EndTime are
// "HH:MM" wall-clock strings.
type MentorshipSession struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	MentorID      primitive.ObjectID `bson:"mentor_id" json:"mentor_id"`
	CompanyID     primitive.ObjectID `bson:"company_id" json:"company_id"`
	Date          time.Time          `bson:"date" json:"date"`
	StartTime     string             `bson:"start_time" json:"start_time"`
	EndTime       string             `bson:"end_time" json:"end_time"`
	TopicsCovered string             `bson:"topics_covered" json:"topics_covered"`
	SessionNotes  string             `bson:"session_notes" json:"session_notes"`
	ActionItems   string             `bson:"action_items" json:"action_items"`
	Duration      *float64           `bson:"duration" json:"duration,omitempty"` // hours
	Punctuality   string             `bson:"punctuality" json:"punctuality"`
	Engagement    string             `bson:"engagement" json:"engagement"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
