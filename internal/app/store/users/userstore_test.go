package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/roles"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "  Ada Mentor ",
		LoginID:  "Ada@Example.com",
		Email:    "ADA@example.com",
		Roles:    []string{"Consultant", "mentor", "bogus"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.FullName != "Ada Mentor" {
		t.Errorf("FullName: got %q", created.FullName)
	}
	if created.LoginIDCI != "ada@example.com" {
		t.Errorf("LoginIDCI: got %q", created.LoginIDCI)
	}
	if created.Email != "ada@example.com" {
		t.Errorf("Email: got %q", created.Email)
	}
	if len(created.Roles) != 2 || created.Roles[0] != roles.Mentor || created.Roles[1] != roles.Consultant {
		t.Errorf("Roles: got %v, want [mentor consultant]", created.Roles)
	}
	if created.Status != models.StatusActive {
		t.Errorf("expected status active, got %q", created.Status)
	}
	if created.AuthMethod != models.AuthPassword {
		t.Errorf("expected default auth method password, got %q", created.AuthMethod)
	}
}

func TestStore_Create_Rejects(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		user models.User
	}{
		{"no roles", models.User{FullName: "A", LoginID: "a"}},
		{"unknown role only", models.User{FullName: "A", LoginID: "a", Roles: []string{"admin"}}},
		{"no login", models.User{FullName: "A", Roles: []string{roles.Mentor}}},
		{"bad status", models.User{FullName: "A", LoginID: "a", Roles: []string{roles.Mentor}, Status: "gone"}},
		{"bad auth method", models.User{FullName: "A", LoginID: "a", Roles: []string{roles.Mentor}, AuthMethod: "ldap"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Create(ctx, tt.user)
			if !apperr.IsValidation(err) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestStore_Create_DuplicateLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := models.User{FullName: "A", LoginID: "same@example.com", Roles: []string{roles.Mentor}}
	if _, err := store.Create(ctx, base); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	dup := base
	dup.LoginID = "SAME@example.com"
	if _, err := store.Create(ctx, dup); err != userstore.ErrDuplicateLoginID {
		t.Errorf("expected ErrDuplicateLoginID, got %v", err)
	}

	// Same login with another auth method is a separate account.
	google := base
	google.AuthMethod = models.AuthGoogle
	if _, err := store.Create(ctx, google); err != nil {
		t.Errorf("Create with google auth should succeed: %v", err)
	}
}

func TestStore_GetByLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateMentorUser(ctx, "Mentor One", "mentor1@example.com")

	found, err := store.GetByLogin(ctx, " MENTOR1@example.com", models.AuthPassword)
	if err != nil {
		t.Fatalf("GetByLogin failed: %v", err)
	}
	if found.ID != u.ID {
		t.Errorf("ID: got %v, want %v", found.ID, u.ID)
	}

	_, err = store.GetByLogin(ctx, "mentor1@example.com", models.AuthGoogle)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments for other auth method, got %v", err)
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateMentorUser(ctx, "Mentor", "m@example.com")
	if err := store.SetStatus(ctx, u.ID, "Disabled"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.StatusDisabled {
		t.Errorf("Status: got %q, want disabled", got.Status)
	}
	if err := store.SetStatus(ctx, primitive.NewObjectID(), models.StatusActive); !apperr.IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestStore_EnsureBootstrap(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.EnsureBootstrap(ctx, "admin@example.com", "", "hash")
	if err != nil {
		t.Fatalf("EnsureBootstrap failed: %v", err)
	}
	if !created {
		t.Error("expected first call to create the user")
	}

	created, err = store.EnsureBootstrap(ctx, "admin@example.com", "", "hash")
	if err != nil {
		t.Fatalf("second EnsureBootstrap failed: %v", err)
	}
	if created {
		t.Error("expected second call to be a no-op")
	}

	u, err := store.GetByLogin(ctx, "admin@example.com", models.AuthPassword)
	if err != nil {
		t.Fatalf("GetByLogin failed: %v", err)
	}
	if !roles.Allow(u.Roles, roles.Mentor) {
		t.Errorf("bootstrap user roles = %v, want mentor", u.Roles)
	}
}

func TestFetcher_FetchUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	fetcher := userstore.NewFetcher(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	both := fixtures.CreateUser(ctx, "Both Roles", "both@example.com", "", roles.Consultant, roles.Mentor)
	disabled := fixtures.CreateDisabledUser(ctx, "Gone", "gone@example.com")
	noRole := fixtures.CreateUser(ctx, "No Role", "none@example.com", "")

	su := fetcher.FetchUser(ctx, both.ID.Hex())
	if su == nil {
		t.Fatal("expected active user to be fetched")
	}
	if su.Role != roles.Mentor {
		t.Errorf("primary role: got %q, want mentor", su.Role)
	}
	if len(su.Roles) != 2 {
		t.Errorf("roles: got %v", su.Roles)
	}

	tests := []struct {
		name string
		id   string
	}{
		{"disabled", disabled.ID.Hex()},
		{"no role", noRole.ID.Hex()},
		{"missing", primitive.NewObjectID().Hex()},
		{"malformed", "xyz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fetcher.FetchUser(ctx, tt.id); got != nil {
				t.Errorf("expected nil, got %+v", got)
			}
		})
	}
}
