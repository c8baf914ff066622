package summaryqueries_test

import (
	"testing"

	"github.com/dalemusser/mentorhub/internal/app/store/queries/summaryqueries"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestCompanySummary_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := summaryqueries.CompanySummary(ctx, db)
	if err != nil {
		t.Fatalf("CompanySummary failed: %v", err)
	}
	want := summaryqueries.CompanySummaryData{
		CompaniesByCity:   []summaryqueries.KeyCount{},
		CompaniesBySector: []summaryqueries.KeyCount{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestCompanySummary_WithData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seed := []models.Company{
		{CompanyID: "A", Name: "Alpha", City: "Springfield", Industry: "Retail", Age: intp(4)},
		{CompanyID: "B", Name: "Beta", City: "Austin", Industry: "Tech", Age: intp(10)},
		{CompanyID: "C", Name: "Gamma", City: "Springfield", Industry: "Tech", Age: intp(7)},
		{CompanyID: "D", Name: "Delta", City: "Boston", Industry: "Food"},
	}
	for _, c := range seed {
		fixtures.CreateCompanyWith(ctx, c)
	}

	got, err := summaryqueries.CompanySummary(ctx, db)
	if err != nil {
		t.Fatalf("CompanySummary failed: %v", err)
	}
	want := summaryqueries.CompanySummaryData{
		TotalCompanies: 4,
		AvgAge:         floatp(7),
		YoungestAge:    intp(4),
		OldestAge:      intp(10),
		CompaniesByCity: []summaryqueries.KeyCount{
			{Key: "Austin", Count: 1},
			{Key: "Boston", Count: 1},
			{Key: "Springfield", Count: 2},
		},
		CompaniesBySector: []summaryqueries.KeyCount{
			{Key: "Food", Count: 1},
			{Key: "Retail", Count: 1},
			{Key: "Tech", Count: 2},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestCompanySummary_AllAgesNull(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateCompany(ctx, "A", "Alpha", nil)
	fixtures.CreateCompany(ctx, "B", "Beta", nil)

	got, err := summaryqueries.CompanySummary(ctx, db)
	if err != nil {
		t.Fatalf("CompanySummary failed: %v", err)
	}
	if got.TotalCompanies != 2 {
		t.Errorf("TotalCompanies = %d, want 2", got.TotalCompanies)
	}
	if got.AvgAge != nil || got.YoungestAge != nil || got.OldestAge != nil {
		t.Errorf("age stats = %v/%v/%v, want all nil", got.AvgAge, got.YoungestAge, got.OldestAge)
	}
	if diff := cmp.Diff([]summaryqueries.KeyCount{{Key: "Springfield", Count: 2}}, got.CompaniesByCity); diff != "" {
		t.Errorf("by city mismatch (-want +got):\n%s", diff)
	}
}

func TestCompanySummary_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateCompanyWith(ctx, models.Company{CompanyID: "A", Name: "Alpha", City: "Zurich", Industry: "Banking", Age: intp(3)})
	fixtures.CreateCompanyWith(ctx, models.Company{CompanyID: "B", Name: "Beta", City: "Athens", Industry: "Shipping", Age: intp(40)})

	first, err := summaryqueries.CompanySummary(ctx, db)
	if err != nil {
		t.Fatalf("first CompanySummary failed: %v", err)
	}
	second, err := summaryqueries.CompanySummary(ctx, db)
	if err != nil {
		t.Fatalf("second CompanySummary failed: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated summary differs (-first +second):\n%s", diff)
	}
}

func TestCompanySummary_OrderedWithoutDuplicateKeys(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cities := []string{"Oslo", "Lima", "Oslo", "Cairo", "Lima", "Oslo"}
	for i, city := range cities {
		fixtures.CreateCompanyWith(ctx, models.Company{
			CompanyID: primitive.NewObjectID().Hex()[:12],
			Name:      city + string(rune('a'+i)),
			City:      city,
			Industry:  "Services",
		})
	}

	got, err := summaryqueries.CompanySummary(ctx, db)
	if err != nil {
		t.Fatalf("CompanySummary failed: %v", err)
	}
	seen := map[string]bool{}
	for i, kc := range got.CompaniesByCity {
		if seen[kc.Key] {
			t.Errorf("duplicate city key %q", kc.Key)
		}
		seen[kc.Key] = true
		if i > 0 && got.CompaniesByCity[i-1].Key >= kc.Key {
			t.Errorf("city keys out of order: %q before %q", got.CompaniesByCity[i-1].Key, kc.Key)
		}
	}
	want := []summaryqueries.KeyCount{{Key: "Cairo", Count: 1}, {Key: "Lima", Count: 2}, {Key: "Oslo", Count: 3}}
	if diff := cmp.Diff(want, got.CompaniesByCity); diff != "" {
		t.Errorf("by city mismatch (-want +got):\n%s", diff)
	}
}

func TestIndicatorSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := summaryqueries.IndicatorSummary(ctx, db)
	if err != nil {
		t.Fatalf("IndicatorSummary (empty) failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("empty collection gave %d rows, want 0", len(got))
	}

	c := fixtures.CreateCompany(ctx, "A", "Alpha", nil)
	fixtures.CreateIndicator(ctx, c.ID, "Revenue", "Q1", 40)
	fixtures.CreateIndicator(ctx, c.ID, "Revenue", "Q2", 80)
	fixtures.CreateIndicator(ctx, c.ID, "Growth", "Hires", 5)
	fixtures.CreateIndicator(ctx, c.ID, "Revenue", "Q3", 60)

	got, err = summaryqueries.IndicatorSummary(ctx, db)
	if err != nil {
		t.Fatalf("IndicatorSummary failed: %v", err)
	}
	want := []summaryqueries.CategoryStats{
		{Category: "Growth", AvgScore: 5, MinScore: 5, MaxScore: 5},
		{Category: "Revenue", AvgScore: 60, MinScore: 40, MaxScore: 80},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("indicator summary mismatch (-want +got):\n%s", diff)
	}
}
