package lookup_test

import (
	"testing"

	"github.com/dalemusser/mentorhub/internal/app/system/lookup"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGroupOptions_DisplayOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateGroup(ctx, models.GroupAll)
	fixtures.CreateGroup(ctx, models.GroupThree)
	fixtures.CreateGroup(ctx, models.GroupOne)

	opts, err := lookup.GroupOptions(ctx, db)
	if err != nil {
		t.Fatalf("GroupOptions failed: %v", err)
	}
	want := []string{"Group 1", "Group 3", "All Groups"}
	if len(opts) != len(want) {
		t.Fatalf("got %d options, want %d", len(opts), len(want))
	}
	for i, o := range opts {
		if o.Label != want[i] {
			t.Errorf("opts[%d] = %q, want %q", i, o.Label, want[i])
		}
	}
}

func TestCompanyOptions_ActiveOnlyAndSorted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateCompany(ctx, "C2", "beta Works", nil)
	fixtures.CreateCompany(ctx, "C1", "Alpha Co", nil)
	fixtures.CreateCompanyWith(ctx, models.Company{CompanyID: "C3", Name: "Closed Ltd", IsActive: false})

	all, err := lookup.CompanyOptions(ctx, db, false)
	if err != nil {
		t.Fatalf("CompanyOptions failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d companies, want 3", len(all))
	}
	if all[0].Label != "Alpha Co" || all[1].Label != "beta Works" {
		t.Errorf("unexpected order: %q, %q", all[0].Label, all[1].Label)
	}

	active, err := lookup.CompanyOptions(ctx, db, true)
	if err != nil {
		t.Fatalf("CompanyOptions(active) failed: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("got %d active companies, want 2", len(active))
	}
}

func TestParseOptionalID(t *testing.T) {
	id := primitive.NewObjectID()
	tests := []struct {
		name    string
		in      string
		wantNil bool
		wantErr bool
	}{
		{"empty", "", true, false},
		{"blank", "   ", true, false},
		{"valid", id.Hex(), false, false},
		{"padded", "  " + id.Hex() + " ", false, false},
		{"bad", "not-an-id", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lookup.ParseOptionalID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if (got == nil) != tt.wantNil {
				t.Fatalf("got = %v, wantNil %v", got, tt.wantNil)
			}
			if got != nil && *got != id {
				t.Errorf("got %v, want %v", *got, id)
			}
		})
	}
}

func TestAggregateCountByField(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g1 := fixtures.CreateGroup(ctx, models.GroupOne)
	g2 := fixtures.CreateGroup(ctx, models.GroupTwo)
	fixtures.CreateCompany(ctx, "A", "A", &g1.ID)
	fixtures.CreateCompany(ctx, "B", "B", &g1.ID)
	fixtures.CreateCompany(ctx, "C", "C", &g2.ID)
	fixtures.CreateCompany(ctx, "D", "D", nil)

	counts, err := lookup.AggregateCountByField(ctx, db, "companies", bson.M{}, "group_id")
	if err != nil {
		t.Fatalf("AggregateCountByField failed: %v", err)
	}
	if counts[g1.ID] != 2 {
		t.Errorf("group 1 count: got %d, want 2", counts[g1.ID])
	}
	if counts[g2.ID] != 1 {
		t.Errorf("group 2 count: got %d, want 1", counts[g2.ID])
	}
	if len(counts) != 2 {
		t.Errorf("expected null group_id to be skipped, got %d keys", len(counts))
	}
}

func TestAggregateCountByField_NoMatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	counts, err := lookup.AggregateCountByField(ctx, db, "companies",
		bson.M{"industry": "nonexistent"}, "group_id")
	if err != nil {
		t.Fatalf("AggregateCountByField failed: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected empty map, got %d entries", len(counts))
	}
}
