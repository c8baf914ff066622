package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/roles"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data. Records are
// inserted directly so fixtures do not depend on store behavior.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to create test %s: %v", coll, err)
	}
}

// CreateGroup creates a group with one of the fixed names ("1".."4", "All").
func (f *Fixtures) CreateGroup(ctx context.Context, name string) models.Group {
	f.t.Helper()
	now := time.Now().UTC()
	g := models.Group{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: models.GroupLabel(name) + " cohort",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "groups", g)
	return g
}

// CreateCompany creates an active company. groupID may be nil.
func (f *Fixtures) CreateCompany(ctx context.Context, companyID, name string, groupID *primitive.ObjectID) models.Company {
	f.t.Helper()
	now := time.Now().UTC()
	c := models.Company{
		ID:          primitive.NewObjectID(),
		CompanyID:   companyID,
		IsActive:    true,
		Name:        name,
		NameCI:      text.Fold(name),
		OwnerName:   "Owner of " + name,
		Email:       "owner@example.com",
		Industry:    "Retail",
		CompanySize: "Small",
		City:        "Springfield",
		State:       "IL",
		GroupID:     groupID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "companies", c)
	return c
}

// CreateCompanyWith inserts c as given, filling only ID and timestamps when zero.
func (f *Fixtures) CreateCompanyWith(ctx context.Context, c models.Company) models.Company {
	f.t.Helper()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.NameCI == "" {
		c.NameCI = text.Fold(c.Name)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
		c.UpdatedAt = c.CreatedAt
	}
	f.insert(ctx, "companies", c)
	return c
}

// CreateMentor creates a mentor. CompaniesAssigned is stored as given (0);
// tests that need the derived count save through the mentor store.
func (f *Fixtures) CreateMentor(ctx context.Context, name string, groupID *primitive.ObjectID) models.Mentor {
	f.t.Helper()
	now := time.Now().UTC()
	m := models.Mentor{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Expertise: "Operations",
		Email:     "mentor@example.com",
		GroupID:   groupID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "mentors", m)
	return m
}

// CreateSession creates a session on the given calendar date.
func (f *Fixtures) CreateSession(ctx context.Context, mentorID, companyID primitive.ObjectID, date time.Time) models.MentorshipSession {
	f.t.Helper()
	now := time.Now().UTC()
	dur := 1.5
	s := models.MentorshipSession{
		ID:            primitive.NewObjectID(),
		MentorID:      mentorID,
		CompanyID:     companyID,
		Date:          time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:     "09:00",
		EndTime:       "10:30",
		TopicsCovered: "Cash flow",
		Duration:      &dur,
		Punctuality:   models.RatingHigh,
		Engagement:    models.RatingMedium,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.insert(ctx, "mentorship_sessions", s)
	return s
}

// CreateIndicator creates an indicator for a company.
func (f *Fixtures) CreateIndicator(ctx context.Context, companyID primitive.ObjectID, category, name string, score float64) models.Indicator {
	f.t.Helper()
	now := time.Now().UTC()
	ind := models.Indicator{
		ID:        primitive.NewObjectID(),
		CompanyID: companyID,
		Category:  category,
		Name:      name,
		Score:     score,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "indicators", ind)
	return ind
}

// CreateUser creates an active password user holding the given roles.
// passwordHash may be empty for users that never sign in.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, loginID, passwordHash string, userRoles ...string) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		LoginID:      loginID,
		LoginIDCI:    text.Fold(loginID),
		Email:        loginID,
		Roles:        roles.Clean(userRoles),
		AuthMethod:   models.AuthPassword,
		PasswordHash: passwordHash,
		Status:       models.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateMentorUser creates a user holding the mentor role.
func (f *Fixtures) CreateMentorUser(ctx context.Context, fullName, loginID string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, loginID, "", roles.Mentor)
}

// CreateConsultantUser creates a user holding the consultant role.
func (f *Fixtures) CreateConsultantUser(ctx context.Context, fullName, loginID string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, loginID, "", roles.Consultant)
}

// CreateGoogleUser creates an active Google-method user whose login id
// and email are both email.
func (f *Fixtures) CreateGoogleUser(ctx context.Context, fullName, email string, userRoles ...string) models.User {
	f.t.Helper()
	u := f.CreateUser(ctx, fullName, email, "", userRoles...)
	if _, err := f.db.Collection("users").UpdateByID(ctx, u.ID, map[string]any{
		"$set": map[string]any{"auth_method": models.AuthGoogle},
	}); err != nil {
		f.t.Fatalf("failed to set google auth method: %v", err)
	}
	u.AuthMethod = models.AuthGoogle
	return u
}

// CreateDisabledUser creates a disabled mentor user.
func (f *Fixtures) CreateDisabledUser(ctx context.Context, fullName, loginID string) models.User {
	f.t.Helper()
	u := f.CreateUser(ctx, fullName, loginID, "", roles.Mentor)
	if _, err := f.db.Collection("users").UpdateByID(ctx, u.ID, map[string]any{
		"$set": map[string]any{"status": models.StatusDisabled},
	}); err != nil {
		f.t.Fatalf("failed to disable test user: %v", err)
	}
	u.Status = models.StatusDisabled
	return u
}
