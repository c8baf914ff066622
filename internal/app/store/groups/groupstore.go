// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/system/txn"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Store struct {
	db  *mongo.Database
	c   *mongo.Collection
	log *zap.Logger
}

var ErrDuplicateGroupName = apperr.Validation("name", "A group with this name already exists.")

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("groups"), log: zap.L()}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Group{}, apperr.NotFound("group", id.Hex())
		}
		return models.Group{}, apperr.Store("find group", err)
	}
	return g, nil
}

// List returns every group in display order ("1".."4", then "All").
func (s *Store) List(ctx context.Context) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Store("list groups", err)
	}
	defer cur.Close(ctx)
	var all []models.Group
	if err := cur.All(ctx, &all); err != nil {
		return nil, apperr.Store("decode groups", err)
	}
	out := make([]models.Group, 0, len(all))
	for _, c := range models.GroupChoices {
		for _, g := range all {
			if g.Name == c.Value {
				out = append(out, g)
			}
		}
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.Name = strings.TrimSpace(g.Name)
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateGroupName
		}
		return models.Group{}, apperr.Store("insert group", err)
	}
	return g, nil
}

// Update replaces the name and description. Description can be cleared.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name, desc string) error {
	set := bson.M{
		"name":        strings.TrimSpace(name),
		"description": desc,
		"updated_at":  time.Now().UTC(),
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateGroupName
		}
		return apperr.Store("update group", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("group", id.Hex())
	}
	return nil
}

// Delete removes a group and clears group_id on the companies and mentors
// that referenced it. It returns how many of each were detached.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (map[string]int64, error) {
	var detached map[string]int64
	err := txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		detached = map[string]int64{}
		res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return apperr.NotFound("group", id.Hex())
		}
		unset := bson.M{"$set": bson.M{"group_id": nil, "updated_at": time.Now().UTC()}}
		for _, coll := range []string{"companies", "mentors"} {
			ur, err := s.db.Collection(coll).UpdateMany(ctx, bson.M{"group_id": id}, unset)
			if err != nil {
				return err
			}
			detached[coll] = ur.ModifiedCount
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Store("delete group", err)
	}
	return detached, nil
}

// Count returns the number of groups.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
