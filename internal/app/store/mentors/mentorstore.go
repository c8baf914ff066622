// internal/app/store/mentors/mentorstore.go
package mentorstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mentorhub/internal/app/system/normalize"
	"github.com/dalemusser/mentorhub/internal/app/system/paging"
	"github.com/dalemusser/mentorhub/internal/app/system/txn"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Store persists mentors. Every Create and Update recounts
// companies_assigned from the companies collection in the same call; the
// count is not kept in sync when companies change afterwards.
type Store struct {
	db        *mongo.Database
	c         *mongo.Collection
	companies *mongo.Collection
	groups    *mongo.Collection
	log       *zap.Logger
}

// ErrDuplicateName is returned when another mentor already has the name.
var ErrDuplicateName = apperr.Validation("name", "A mentor with this name already exists.")

// ErrGroupMissing is returned when group_id names no existing group.
var ErrGroupMissing = apperr.Validation("group_id", "The selected group no longer exists.")

func New(db *mongo.Database) *Store {
	return &Store{
		db:        db,
		c:         db.Collection("mentors"),
		companies: db.Collection("companies"),
		groups:    db.Collection("groups"),
		log:       zap.L(),
	}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Mentor, error) {
	var m models.Mentor
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Mentor{}, apperr.NotFound("mentor", id.Hex())
		}
		return models.Mentor{}, apperr.Store("find mentor", err)
	}
	return m, nil
}

func (s *Store) checkGroup(ctx context.Context, groupID *primitive.ObjectID) error {
	if groupID == nil {
		return nil
	}
	n, err := s.groups.CountDocuments(ctx, bson.M{"_id": *groupID})
	if err != nil {
		return apperr.Store("check group", err)
	}
	if n == 0 {
		return ErrGroupMissing
	}
	return nil
}

// countAssigned returns the number of companies in groupID, or 0 for nil.
func (s *Store) countAssigned(ctx context.Context, groupID *primitive.ObjectID) (int, error) {
	if groupID == nil {
		return 0, nil
	}
	n, err := s.companies.CountDocuments(ctx, bson.M{"group_id": *groupID})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func prepare(m *models.Mentor) {
	m.Name = normalize.Name(m.Name)
	m.NameCI = text.Fold(m.Name)
	m.Email = normalize.Email(m.Email)
	m.Phone = normalize.Phone(m.Phone)
	m.Bio = htmlsanitize.Sanitize(m.Bio)
}

// Create inserts m with companies_assigned counted from its group.
func (s *Store) Create(ctx context.Context, m models.Mentor) (models.Mentor, error) {
	if err := s.checkGroup(ctx, m.GroupID); err != nil {
		return models.Mentor{}, err
	}
	prepare(&m)
	n, err := s.countAssigned(ctx, m.GroupID)
	if err != nil {
		return models.Mentor{}, apperr.Store("count assigned companies", err)
	}
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.CompaniesAssigned = n
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Mentor{}, ErrDuplicateName
		}
		return models.Mentor{}, apperr.Store("insert mentor", err)
	}
	return m, nil
}

// Update replaces the editable fields of mentor id and recounts
// companies_assigned for the (possibly new) group.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, m models.Mentor) (models.Mentor, error) {
	if err := s.checkGroup(ctx, m.GroupID); err != nil {
		return models.Mentor{}, err
	}
	prepare(&m)
	n, err := s.countAssigned(ctx, m.GroupID)
	if err != nil {
		return models.Mentor{}, apperr.Store("count assigned companies", err)
	}
	set := bson.M{
		"name":               m.Name,
		"name_ci":            m.NameCI,
		"expertise":          m.Expertise,
		"bio":                m.Bio,
		"phone":              m.Phone,
		"email":              m.Email,
		"group_id":           m.GroupID,
		"companies_assigned": n,
		"total_hours":        m.TotalHours,
		"updated_at":         time.Now().UTC(),
	}
	var out models.Mentor
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Mentor{}, apperr.NotFound("mentor", id.Hex())
		}
		if wafflemongo.IsDup(err) {
			return models.Mentor{}, ErrDuplicateName
		}
		return models.Mentor{}, apperr.Store("update mentor", err)
	}
	return out, nil
}

// RecountAll rewrites companies_assigned for every mentor whose stored
// count differs from the current count. It returns how many mentors changed.
func (s *Store) RecountAll(ctx context.Context) (int, error) {
	counts := map[primitive.ObjectID]int{}
	cur, err := s.companies.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"group_id": bson.M{"$ne": nil}}}},
		{{Key: "$group", Value: bson.M{"_id": "$group_id", "n": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return 0, apperr.Store("count companies by group", err)
	}
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
			N  int                `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			cur.Close(ctx)
			return 0, apperr.Store("decode group counts", err)
		}
		counts[row.ID] = row.N
	}
	if err := cur.Err(); err != nil {
		cur.Close(ctx)
		return 0, apperr.Store("count companies by group", err)
	}
	cur.Close(ctx)

	mcur, err := s.c.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"group_id": 1, "companies_assigned": 1}))
	if err != nil {
		return 0, apperr.Store("list mentors", err)
	}
	defer mcur.Close(ctx)

	var writes []mongo.WriteModel
	for mcur.Next(ctx) {
		var row struct {
			ID       primitive.ObjectID  `bson:"_id"`
			GroupID  *primitive.ObjectID `bson:"group_id"`
			Assigned int                 `bson:"companies_assigned"`
		}
		if err := mcur.Decode(&row); err != nil {
			return 0, apperr.Store("decode mentor", err)
		}
		want := 0
		if row.GroupID != nil {
			want = counts[*row.GroupID]
		}
		if want == row.Assigned {
			continue
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": row.ID}).
			SetUpdate(bson.M{"$set": bson.M{"companies_assigned": want, "updated_at": time.Now().UTC()}}))
	}
	if err := mcur.Err(); err != nil {
		return 0, apperr.Store("list mentors", err)
	}
	if len(writes) == 0 {
		return 0, nil
	}
	res, err := s.c.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, apperr.Store("recount mentors", err)
	}
	return int(res.ModifiedCount), nil
}

// Delete removes a mentor and all of the mentor's sessions. It returns how
// many sessions were removed, keyed by collection.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (map[string]int64, error) {
	var removed map[string]int64
	err := txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		removed = map[string]int64{}
		res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return apperr.NotFound("mentor", id.Hex())
		}
		dr, err := s.db.Collection("mentorship_sessions").DeleteMany(ctx, bson.M{"mentor_id": id})
		if err != nil {
			return err
		}
		removed["mentorship_sessions"] = dr.DeletedCount
		return nil
	})
	if err != nil {
		return nil, apperr.Store("delete mentor", err)
	}
	return removed, nil
}

// ListFilter narrows the mentor list. Zero values mean no filter.
type ListFilter struct {
	Search  string // name prefix, case-insensitive
	GroupID *primitive.ObjectID
	Before  string
	After   string
}

// List returns one page of mentors ordered by name.
func (s *Store) List(ctx context.Context, f ListFilter) (paging.Window[models.Mentor], error) {
	base := bson.M{}
	if q := text.Fold(f.Search); q != "" {
		base["name_ci"] = bson.M{"$gte": q, "$lt": q + "\uffff"}
	}
	if f.GroupID != nil {
		base["group_id"] = *f.GroupID
	}
	w, err := paging.Fetch(ctx, s.c, base, paging.Keyset[models.Mentor]{
		SortField: "name_ci",
		Before:    f.Before,
		After:     f.After,
		Key:       func(m models.Mentor) string { return m.NameCI },
		ID:        func(m models.Mentor) primitive.ObjectID { return m.ID },
	})
	if err != nil {
		return w, apperr.Store("list mentors", err)
	}
	return w, nil
}
