package userstore

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) that uniquely identifies a user record
//   - LoginID / loginID / login_id: The human-readable string users type to log in

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/system/normalize"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/roles"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateLoginID is returned when the login id is taken for the same auth method.
	ErrDuplicateLoginID = apperr.Validation("login_id", "A user with this login already exists.")
	errNoRoles          = apperr.Validation("roles", "Select at least one role.")
	errBadStatus        = apperr.Validation("status", `Status must be "active" or "disabled".`)
	errBadAuthMethod    = apperr.Validation("auth_method", "Please select a valid auth method.")
	errLoginNeeded      = apperr.Validation("login_id", "Login is required.")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("user", id.Hex())
		}
		return nil, apperr.Store("find user", err)
	}
	return &u, nil
}

// GetByLogin looks up a user by case-insensitive login id for one auth
// method. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByLogin(ctx context.Context, loginID, authMethod string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{
		"login_id_ci": text.Fold(normalize.Name(loginID)),
		"auth_method": normalize.AuthMethod(authMethod),
	}).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email for one auth method.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email, authMethod string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{
		"email":       normalize.Email(email),
		"auth_method": normalize.AuthMethod(authMethod),
	}).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.LoginID = normalize.Name(u.LoginID)
	u.LoginIDCI = text.Fold(u.LoginID)
	u.Email = normalize.Email(u.Email)
	u.AuthMethod = normalize.AuthMethod(u.AuthMethod)
	u.Status = normalize.Status(u.Status)
	u.Roles = roles.Clean(u.Roles)
	if u.AuthMethod == "" {
		u.AuthMethod = models.AuthPassword
	}
	if u.Status == "" {
		u.Status = models.StatusActive
	}

	if u.LoginID == "" {
		return models.User{}, errLoginNeeded
	}
	if len(u.Roles) == 0 {
		return models.User{}, errNoRoles
	}
	if u.Status != models.StatusActive && u.Status != models.StatusDisabled {
		return models.User{}, errBadStatus
	}
	if !models.IsValidAuthMethod(u.AuthMethod) {
		return models.User{}, errBadAuthMethod
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateLoginID
		}
		return models.User{}, apperr.Store("insert user", err)
	}
	return u, nil
}

// List returns all users ordered by name.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	find := options.Find().
		SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"password_hash": 0})
	cur, err := s.c.Find(ctx, bson.M{}, find)
	if err != nil {
		return nil, apperr.Store("list users", err)
	}
	defer cur.Close(ctx)
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Store("decode users", err)
	}
	return out, nil
}

// SetStatus enables or disables a user.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	status = normalize.Status(status)
	if status != models.StatusActive && status != models.StatusDisabled {
		return errBadStatus
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return apperr.Store("update user status", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user", id.Hex())
	}
	return nil
}

// Count returns the number of users.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// EnsureBootstrap creates an active mentor password user with loginID when
// no user with that login exists. It reports whether a user was created.
func (s *Store) EnsureBootstrap(ctx context.Context, loginID, fullName, passwordHash string) (bool, error) {
	_, err := s.GetByLogin(ctx, loginID, models.AuthPassword)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return false, apperr.Store("find bootstrap user", err)
	}
	if fullName == "" {
		fullName = loginID
	}
	_, err = s.Create(ctx, models.User{
		FullName:     fullName,
		LoginID:      loginID,
		Email:        loginID,
		Roles:        []string{roles.Mentor},
		AuthMethod:   models.AuthPassword,
		PasswordHash: passwordHash,
	})
	if errors.Is(err, ErrDuplicateLoginID) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
