package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/system/validators"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	expectedCollections := []string{
		"users",
		"groups",
		"companies",
		"mentors",
		"mentorship_sessions",
		"indicators",
		"audit_events",
		"oauth_states",
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}

	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}

	for _, expected := range expectedCollections {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func TestValidators_Inserts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	now := time.Now().UTC()
	oid := primitive.NewObjectID()

	tests := []struct {
		name    string
		coll    string
		doc     bson.M
		wantErr bool
	}{
		{
			name: "valid user",
			coll: "users",
			doc: bson.M{
				"full_name": "Test User", "full_name_ci": "test user",
				"login_id": "testuser", "login_id_ci": "testuser",
				"roles": bson.A{"mentor"}, "status": "active", "auth_method": "password",
			},
		},
		{
			name:    "user missing required fields",
			coll:    "users",
			doc:     bson.M{"login_id": "test"},
			wantErr: true,
		},
		{
			name: "user with unknown role",
			coll: "users",
			doc: bson.M{
				"full_name": "Test User", "login_id": "x",
				"roles": bson.A{"superadmin"}, "status": "active", "auth_method": "password",
			},
			wantErr: true,
		},
		{
			name: "user with no roles",
			coll: "users",
			doc: bson.M{
				"full_name": "Test User", "login_id": "x",
				"roles": bson.A{}, "status": "active", "auth_method": "password",
			},
			wantErr: true,
		},
		{
			name: "user with invalid status",
			coll: "users",
			doc: bson.M{
				"full_name": "Test User", "login_id": "x",
				"roles": bson.A{"consultant"}, "status": "invalid_status", "auth_method": "password",
			},
			wantErr: true,
		},
		{
			name: "user with invalid auth method",
			coll: "users",
			doc: bson.M{
				"full_name": "Test User", "login_id": "x",
				"roles": bson.A{"consultant"}, "status": "active", "auth_method": "classlink",
			},
			wantErr: true,
		},
		{
			name: "valid group",
			coll: "groups",
			doc:  bson.M{"name": "1", "description": "First cohort"},
		},
		{
			name:    "group with name outside choices",
			coll:    "groups",
			doc:     bson.M{"name": "Group 9"},
			wantErr: true,
		},
		{
			name: "valid company",
			coll: "companies",
			doc:  bson.M{"company_id": "ACME-01", "name": "Acme", "name_ci": "acme", "is_active": true, "group_id": nil, "age": 3},
		},
		{
			name:    "company with blank name",
			coll:    "companies",
			doc:     bson.M{"company_id": "ACME-02", "name": "   ", "name_ci": "x"},
			wantErr: true,
		},
		{
			name:    "company with negative age",
			coll:    "companies",
			doc:     bson.M{"company_id": "ACME-03", "name": "Acme", "name_ci": "acme", "age": -1},
			wantErr: true,
		},
		{
			name: "valid mentor",
			coll: "mentors",
			doc:  bson.M{"name": "Ada", "name_ci": "ada", "companies_assigned": 0},
		},
		{
			name:    "mentor without companies_assigned",
			coll:    "mentors",
			doc:     bson.M{"name": "Ada", "name_ci": "ada"},
			wantErr: true,
		},
		{
			name: "valid session",
			coll: "mentorship_sessions",
			doc:  bson.M{"mentor_id": oid, "company_id": oid, "date": now, "punctuality": "High", "engagement": ""},
		},
		{
			name:    "session with unknown rating",
			coll:    "mentorship_sessions",
			doc:     bson.M{"mentor_id": oid, "company_id": oid, "date": now, "punctuality": "Excellent"},
			wantErr: true,
		},
		{
			name:    "session with string date",
			coll:    "mentorship_sessions",
			doc:     bson.M{"mentor_id": oid, "company_id": oid, "date": "2024-01-01"},
			wantErr: true,
		},
		{
			name: "valid indicator",
			coll: "indicators",
			doc:  bson.M{"company_id": oid, "category": "Revenue", "name": "Monthly revenue", "score": 72.5},
		},
		{
			name:    "indicator without score",
			coll:    "indicators",
			doc:     bson.M{"company_id": oid, "category": "Revenue", "name": "Monthly revenue"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Collection(tt.coll).InsertOne(ctx, tt.doc)
			if tt.wantErr && err == nil {
				t.Errorf("expected validation error inserting into %s", tt.coll)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("insert into %s failed: %v", tt.coll, err)
			}
		})
	}
}
