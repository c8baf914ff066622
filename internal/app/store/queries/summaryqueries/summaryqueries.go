// Package summaryqueries provides the read-only aggregate reports shown on
// the company and indicator summary pages.
package summaryqueries

import (
	"context"

	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// KeyCount is one row of a grouped count.
type KeyCount struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

// CompanySummaryData holds totals over the companies collection.
// Age statistics are nil when no company has an age.
type CompanySummaryData struct {
	TotalCompanies    int64
	AvgAge            *float64
	YoungestAge       *int
	OldestAge         *int
	CompaniesByCity   []KeyCount
	CompaniesBySector []KeyCount
}

// CategoryStats is the score spread for one indicator category.
type CategoryStats struct {
	Category string  `bson:"_id"`
	AvgScore float64 `bson:"avg"`
	MinScore float64 `bson:"min"`
	MaxScore float64 `bson:"max"`
}

func countBy(field string) bson.A {
	return bson.A{
		bson.M{"$group": bson.M{
			"_id":   bson.M{"$ifNull": bson.A{"$" + field, ""}},
			"count": bson.M{"$sum": 1},
		}},
		bson.M{"$sort": bson.M{"_id": 1}},
	}
}

// CompanySummary computes the company report in one $facet pass.
// Companies without an age count toward the total but not the age stats.
func CompanySummary(ctx context.Context, db *mongo.Database) (CompanySummaryData, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$facet", Value: bson.M{
			"stats": bson.A{
				bson.M{"$group": bson.M{
					"_id":   nil,
					"total": bson.M{"$sum": 1},
					"avg":   bson.M{"$avg": "$age"},
					"min":   bson.M{"$min": "$age"},
					"max":   bson.M{"$max": "$age"},
				}},
			},
			"city":   countBy("city"),
			"sector": countBy("industry"),
		}}},
	}

	cur, err := db.Collection("companies").Aggregate(ctx, pipeline)
	if err != nil {
		return CompanySummaryData{}, apperr.Store("company summary", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Stats []struct {
			Total int64    `bson:"total"`
			Avg   *float64 `bson:"avg"`
			Min   *int     `bson:"min"`
			Max   *int     `bson:"max"`
		} `bson:"stats"`
		City   []KeyCount `bson:"city"`
		Sector []KeyCount `bson:"sector"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return CompanySummaryData{}, apperr.Store("decode company summary", err)
	}

	out := CompanySummaryData{
		CompaniesByCity:   []KeyCount{},
		CompaniesBySector: []KeyCount{},
	}
	if len(rows) == 0 {
		return out, nil
	}
	row := rows[0]
	if len(row.Stats) > 0 {
		s := row.Stats[0]
		out.TotalCompanies = s.Total
		out.AvgAge = s.Avg
		out.YoungestAge = s.Min
		out.OldestAge = s.Max
	}
	if row.City != nil {
		out.CompaniesByCity = row.City
	}
	if row.Sector != nil {
		out.CompaniesBySector = row.Sector
	}
	return out, nil
}

// IndicatorSummary returns average, minimum and maximum score per
// category, ordered by category.
func IndicatorSummary(ctx context.Context, db *mongo.Database) ([]CategoryStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": "$category",
			"avg": bson.M{"$avg": "$score"},
			"min": bson.M{"$min": "$score"},
			"max": bson.M{"$max": "$score"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := db.Collection("indicators").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Store("indicator summary", err)
	}
	defer cur.Close(ctx)

	out := []CategoryStats{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Store("decode indicator summary", err)
	}
	return out, nil
}
