package metricsstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of totals shown on the dashboard.
type Counts struct {
	Groups          int64
	Companies       int64
	ActiveCompanies int64
	Mentors         int64
	Sessions        int64
	SessionsLast30  int64
	Indicators      int64
}

// FetchDashboardCounts returns the high-level counts used by the dashboard.
// Intentionally tolerant: on error it returns 0 for that counter.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database, today time.Time) Counts {
	var out Counts

	count := func(coll string, filter bson.M, dst *int64) {
		if n, err := db.Collection(coll).CountDocuments(ctx, filter); err == nil {
			*dst = n
		}
	}

	count("groups", bson.M{}, &out.Groups)
	count("companies", bson.M{}, &out.Companies)
	count("companies", bson.M{"is_active": true}, &out.ActiveCompanies)
	count("mentors", bson.M{}, &out.Mentors)
	count("mentorship_sessions", bson.M{}, &out.Sessions)
	count("indicators", bson.M{}, &out.Indicators)

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	count("mentorship_sessions", bson.M{"date": bson.M{"$gte": day.AddDate(0, 0, -30), "$lte": day}}, &out.SessionsLast30)

	return out
}
