// internal/app/store/mentorsessions/sessionstore.go
package sessionstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/mentorhub/internal/app/system/paging"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/rules"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists mentorship sessions. The future-date rule is not checked
// here; callers run rules.ValidateSessionDate before saving.
type Store struct {
	c         *mongo.Collection
	mentors   *mongo.Collection
	companies *mongo.Collection
}

var (
	errMentorMissing  = apperr.Validation("mentor_id", "The selected mentor no longer exists.")
	errCompanyMissing = apperr.Validation("company_id", "The selected company no longer exists.")
)

func New(db *mongo.Database) *Store {
	return &Store{
		c:         db.Collection("mentorship_sessions"),
		mentors:   db.Collection("mentors"),
		companies: db.Collection("companies"),
	}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.MentorshipSession, error) {
	var ms models.MentorshipSession
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.MentorshipSession{}, apperr.NotFound("session", id.Hex())
		}
		return models.MentorshipSession{}, apperr.Store("find session", err)
	}
	return ms, nil
}

// checkRefs verifies the mentor and company exist.
func (s *Store) checkRefs(ctx context.Context, ms models.MentorshipSession) error {
	n, err := s.mentors.CountDocuments(ctx, bson.M{"_id": ms.MentorID})
	if err != nil {
		return apperr.Store("check mentor", err)
	}
	if n == 0 {
		return errMentorMissing
	}
	n, err = s.companies.CountDocuments(ctx, bson.M{"_id": ms.CompanyID})
	if err != nil {
		return apperr.Store("check company", err)
	}
	if n == 0 {
		return errCompanyMissing
	}
	return nil
}

func prepare(ms *models.MentorshipSession) {
	ms.Date = rules.Civil(ms.Date)
	ms.SessionNotes = htmlsanitize.Sanitize(ms.SessionNotes)
	ms.ActionItems = htmlsanitize.Sanitize(ms.ActionItems)
	if ms.Duration == nil {
		ms.Duration = rules.SessionDuration(ms.StartTime, ms.EndTime)
	}
}

// Create inserts ms. A missing duration is derived from the start and end
// times when both are set.
func (s *Store) Create(ctx context.Context, ms models.MentorshipSession) (models.MentorshipSession, error) {
	if err := s.checkRefs(ctx, ms); err != nil {
		return models.MentorshipSession{}, err
	}
	prepare(&ms)
	now := time.Now().UTC()
	ms.ID = primitive.NewObjectID()
	ms.CreatedAt = now
	ms.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, ms); err != nil {
		return models.MentorshipSession{}, apperr.Store("insert session", err)
	}
	return ms, nil
}

// Update replaces the editable fields of session id.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, ms models.MentorshipSession) (models.MentorshipSession, error) {
	if err := s.checkRefs(ctx, ms); err != nil {
		return models.MentorshipSession{}, err
	}
	prepare(&ms)
	set := bson.M{
		"mentor_id":      ms.MentorID,
		"company_id":     ms.CompanyID,
		"date":           ms.Date,
		"start_time":     ms.StartTime,
		"end_time":       ms.EndTime,
		"topics_covered": ms.TopicsCovered,
		"session_notes":  ms.SessionNotes,
		"action_items":   ms.ActionItems,
		"duration":       ms.Duration,
		"punctuality":    ms.Punctuality,
		"engagement":     ms.Engagement,
		"updated_at":     time.Now().UTC(),
	}
	var out models.MentorshipSession
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.MentorshipSession{}, apperr.NotFound("session", id.Hex())
		}
		return models.MentorshipSession{}, apperr.Store("update session", err)
	}
	return out, nil
}

// Delete removes one session.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Store("delete session", err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("session", id.Hex())
	}
	return nil
}

// ListFilter narrows the session list. Zero values mean no filter; Start
// and End are inclusive calendar days.
type ListFilter struct {
	MentorID  *primitive.ObjectID
	CompanyID *primitive.ObjectID
	Start     *time.Time
	End       *time.Time
}

func (f ListFilter) bson() bson.M {
	m := bson.M{}
	if f.MentorID != nil {
		m["mentor_id"] = *f.MentorID
	}
	if f.CompanyID != nil {
		m["company_id"] = *f.CompanyID
	}
	date := bson.M{}
	if f.Start != nil {
		date["$gte"] = rules.Civil(*f.Start)
	}
	if f.End != nil {
		date["$lte"] = rules.Civil(*f.End)
	}
	if len(date) > 0 {
		m["date"] = date
	}
	return m
}

var newestFirst = bson.D{
	{Key: "date", Value: -1},
	{Key: "start_time", Value: -1},
	{Key: "_id", Value: -1},
}

// List returns up to paging.PageSize sessions, newest first, starting at
// the 1-based row start, plus the total matching count.
func (s *Store) List(ctx context.Context, f ListFilter, start int) ([]models.MentorshipSession, int64, error) {
	filter := f.bson()
	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Store("count sessions", err)
	}
	if start < 1 {
		start = 1
	}
	find := options.Find().
		SetSort(newestFirst).
		SetSkip(int64(start - 1)).
		SetLimit(int64(paging.PageSize))
	out, err := s.find(ctx, filter, find)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// All returns every matching session, newest first, for exports.
func (s *Store) All(ctx context.Context, f ListFilter) ([]models.MentorshipSession, error) {
	return s.find(ctx, f.bson(), options.Find().SetSort(newestFirst))
}

// Recent returns the n most recent sessions.
func (s *Store) Recent(ctx context.Context, n int) ([]models.MentorshipSession, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(newestFirst).SetLimit(int64(n)))
}

func (s *Store) find(ctx context.Context, filter bson.M, find *options.FindOptions) ([]models.MentorshipSession, error) {
	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, apperr.Store("list sessions", err)
	}
	defer cur.Close(ctx)
	out := []models.MentorshipSession{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Store("decode sessions", err)
	}
	return out, nil
}
