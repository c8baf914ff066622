// internal/app/store/logins/loginstore.go
package loginstore

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/system/ratelimit"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("login_records")}
}

// Create inserts a LoginRecord. If CreatedAt is zero, it's set to time.Now().UTC().
func (s *Store) Create(ctx context.Context, rec models.LoginRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		return apperr.Store("insert login record", err)
	}
	return nil
}

// CreateFrom records a sign-in by userID through provider, taking the
// client address and user agent from r.
func (s *Store) CreateFrom(ctx context.Context, r *http.Request, userID primitive.ObjectID, provider string) error {
	return s.Create(ctx, models.LoginRecord{
		UserID:    userID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Provider:  provider,
	})
}

// Recent returns up to n sign-ins for userID, newest first.
func (s *Store) Recent(ctx context.Context, userID primitive.ObjectID, n int64) ([]models.LoginRecord, error) {
	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(n)
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, find)
	if err != nil {
		return nil, apperr.Store("find login records", err)
	}
	defer cur.Close(ctx)
	var out []models.LoginRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Store("decode login records", err)
	}
	return out, nil
}

// Previous returns the sign-in before the most recent one for userID, or
// nil when there has been at most one.
func (s *Store) Previous(ctx context.Context, userID primitive.ObjectID) (*models.LoginRecord, error) {
	recs, err := s.Recent(ctx, userID, 2)
	if err != nil {
		return nil, err
	}
	if len(recs) < 2 {
		return nil, nil
	}
	return &recs[1], nil
}
