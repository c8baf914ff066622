// Package lookup loads the small reference lists that forms and list pages
// need: group, mentor and company pickers, id → label maps and per-parent
// counts.
package lookup

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrBadID is returned by ParseOptionalID for a non-empty, non-hex value.
var ErrBadID = errors.New("invalid id")

// Option is one entry in a select list.
type Option struct {
	ID    primitive.ObjectID
	Label string
}

// Hex returns the option id as a hex string for templates.
func (o Option) Hex() string { return o.ID.Hex() }

// Aggregator is a minimal interface satisfied by *mongo.Database.
type Aggregator interface {
	Collection(name string, opts ...*options.CollectionOptions) *mongo.Collection
}

// GroupOptions returns every group labelled "Group 1".."All Groups", in the
// fixed display order of models.GroupChoices.
func GroupOptions(ctx context.Context, db *mongo.Database) ([]Option, error) {
	cur, err := db.Collection("groups").Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	rank := make(map[string]int, len(models.GroupChoices))
	for i, c := range models.GroupChoices {
		rank[c.Value] = i
	}
	out := make([]Option, 0, len(groups))
	for _, c := range models.GroupChoices {
		for _, g := range groups {
			if g.Name == c.Value {
				out = append(out, Option{ID: g.ID, Label: c.Label})
			}
		}
	}
	for _, g := range groups {
		if _, known := rank[g.Name]; !known {
			out = append(out, Option{ID: g.ID, Label: g.Name})
		}
	}
	return out, nil
}

// MentorOptions returns all mentors sorted case-insensitively by name.
func MentorOptions(ctx context.Context, db *mongo.Database) ([]Option, error) {
	return nameOptions(ctx, db.Collection("mentors"), bson.M{})
}

// CompanyOptions returns companies sorted case-insensitively by name. With
// activeOnly set, inactive companies are left out.
func CompanyOptions(ctx context.Context, db *mongo.Database, activeOnly bool) ([]Option, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	return nameOptions(ctx, db.Collection("companies"), filter)
}

func nameOptions(ctx context.Context, c *mongo.Collection, filter bson.M) ([]Option, error) {
	find := options.Find().
		SetProjection(bson.M{"name": 1, "name_ci": 1}).
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := c.Find(ctx, filter, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Option
	for cur.Next(ctx) {
		var row struct {
			ID   primitive.ObjectID `bson:"_id"`
			Name string             `bson:"name"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, Option{ID: row.ID, Label: row.Name})
	}
	return out, cur.Err()
}

// Labels turns options into an id → label map.
func Labels(opts []Option) map[primitive.ObjectID]string {
	m := make(map[primitive.ObjectID]string, len(opts))
	for _, o := range opts {
		m[o.ID] = o.Label
	}
	return m
}

// ParseOptionalID parses a hex id from a form or query value. Empty input
// (after trimming) yields nil, nil.
func ParseOptionalID(s string) (*primitive.ObjectID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, ErrBadID
	}
	return &id, nil
}

// AggregateCountByField computes counts grouped by a field.
//
//	coll     – collection name (e.g. "companies", "mentorship_sessions")
//	match    – base match filter (e.g. {"group_id": {"$in": ids}})
//	groupKey – field to group on (e.g. "group_id")
//
// Returns a map keyed by ObjectID to count. Documents with a null key are
// not counted.
func AggregateCountByField(
	ctx context.Context,
	db Aggregator,
	coll string,
	match bson.M,
	groupKey string,
) (map[primitive.ObjectID]int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + groupKey},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := db.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[primitive.ObjectID]int64)
	for cur.Next(ctx) {
		var row struct {
			ID *primitive.ObjectID `bson:"_id"`
			N  int64               `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if row.ID == nil {
			continue
		}
		out[*row.ID] = row.N
	}
	return out, cur.Err()
}
