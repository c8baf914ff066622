// internal/app/features/sessions/form.go
package sessions

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/system/inputval"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/rules"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sessionForm struct {
	MentorID      string `validate:"required,objectid" label:"Mentor"`
	CompanyID     string `validate:"required,objectid" label:"Company"`
	Date          string `validate:"required,isodate" label:"Date"`
	StartTime     string `validate:"required,clock" label:"Start time"`
	EndTime       string `validate:"required,clock" label:"End time"`
	TopicsCovered string `validate:"required,max=300" label:"Topics covered"`
	SessionNotes  string `validate:"max=4000" label:"Session notes"`
	ActionItems   string `validate:"max=4000" label:"Action items"`
	Duration      string `validate:"omitempty,numeric" label:"Duration"`
	Punctuality   string `validate:"required,rating" label:"Punctuality"`
	Engagement    string `validate:"required,rating" label:"Engagement"`
}

var formFieldNames = map[string]string{
	"MentorID":      "mentor_id",
	"CompanyID":     "company_id",
	"Date":          "date",
	"StartTime":     "start_time",
	"EndTime":       "end_time",
	"TopicsCovered": "topics_covered",
	"SessionNotes":  "session_notes",
	"ActionItems":   "action_items",
	"Duration":      "duration",
	"Punctuality":   "punctuality",
	"Engagement":    "engagement",
}

var fieldOrder = []string{
	"mentor_id", "company_id", "date", "start_time", "end_time",
	"topics_covered", "session_notes", "action_items", "duration",
	"punctuality", "engagement",
}

func parseForm(r *http.Request) sessionForm {
	v := func(k string) string { return strings.TrimSpace(r.FormValue(k)) }
	return sessionForm{
		MentorID:      v("mentor_id"),
		CompanyID:     v("company_id"),
		Date:          v("date"),
		StartTime:     v("start_time"),
		EndTime:       v("end_time"),
		TopicsCovered: v("topics_covered"),
		SessionNotes:  v("session_notes"),
		ActionItems:   v("action_items"),
		Duration:      v("duration"),
		Punctuality:   v("punctuality"),
		Engagement:    v("engagement"),
	}
}

func formFrom(ms models.MentorshipSession) sessionForm {
	d := ms.Date
	f := sessionForm{
		MentorID:      ms.MentorID.Hex(),
		CompanyID:     ms.CompanyID.Hex(),
		Date:          rules.FormatDate(&d),
		StartTime:     ms.StartTime,
		EndTime:       ms.EndTime,
		TopicsCovered: ms.TopicsCovered,
		SessionNotes:  ms.SessionNotes,
		ActionItems:   ms.ActionItems,
		Punctuality:   ms.Punctuality,
		Engagement:    ms.Engagement,
	}
	if ms.Duration != nil {
		f.Duration = strconv.FormatFloat(*ms.Duration, 'f', -1, 64)
	}
	return f
}

// validate applies the field rules, then the session date check against
// today. The date check runs only once the date itself parses.
func (f sessionForm) validate(today time.Time) map[string]string {
	errs := map[string]string{}
	for field, msg := range inputval.Validate(f).ByField() {
		errs[formFieldNames[field]] = msg
	}
	if _, bad := errs["date"]; !bad {
		d, _ := rules.ParseDate(f.Date)
		if err := rules.ValidateSessionDate(d, today); err != nil {
			errs["date"] = apperr.Message(err)
		}
	}
	if _, bad := errs["duration"]; !bad && f.Duration != "" {
		if n, _ := strconv.ParseFloat(f.Duration, 64); n < 0 {
			errs["duration"] = "Duration cannot be negative."
		}
	}
	return errs
}

// model converts a validated form. A blank duration stays nil so the store
// can derive it from the start and end times.
func (f sessionForm) model() models.MentorshipSession {
	ms := models.MentorshipSession{
		StartTime:     f.StartTime,
		EndTime:       f.EndTime,
		TopicsCovered: f.TopicsCovered,
		SessionNotes:  f.SessionNotes,
		ActionItems:   f.ActionItems,
		Punctuality:   f.Punctuality,
		Engagement:    f.Engagement,
	}
	ms.MentorID, _ = primitive.ObjectIDFromHex(f.MentorID)
	ms.CompanyID, _ = primitive.ObjectIDFromHex(f.CompanyID)
	ms.Date, _ = rules.ParseDate(f.Date)
	if f.Duration != "" {
		if n, err := strconv.ParseFloat(f.Duration, 64); err == nil {
			ms.Duration = &n
		}
	}
	return ms
}
