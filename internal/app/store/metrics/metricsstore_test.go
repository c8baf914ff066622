package metricsstore_test

import (
	"testing"
	"time"

	metricsstore "github.com/dalemusser/mentorhub/internal/app/store/metrics"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestFetchDashboardCounts_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got := metricsstore.FetchDashboardCounts(ctx, db, time.Now())
	if diff := cmp.Diff(metricsstore.Counts{}, got); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchDashboardCounts_WithData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	g1 := fixtures.CreateGroup(ctx, models.GroupOne)
	fixtures.CreateGroup(ctx, models.GroupTwo)

	acme := fixtures.CreateCompany(ctx, "ACME-01", "Acme", &g1.ID)
	fixtures.CreateCompany(ctx, "BOLT-02", "Bolt", nil)
	fixtures.CreateCompanyWith(ctx, models.Company{CompanyID: "DORM-03", Name: "Dormant", IsActive: false})

	mentor := fixtures.CreateMentor(ctx, "Ada", &g1.ID)

	fixtures.CreateSession(ctx, mentor.ID, acme.ID, today.AddDate(0, 0, -3))
	fixtures.CreateSession(ctx, mentor.ID, acme.ID, today.AddDate(0, 0, -30))
	fixtures.CreateSession(ctx, mentor.ID, acme.ID, today.AddDate(0, 0, -45))

	fixtures.CreateIndicator(ctx, acme.ID, "Revenue", "Monthly revenue", 70)

	got := metricsstore.FetchDashboardCounts(ctx, db, today)
	want := metricsstore.Counts{
		Groups:          2,
		Companies:       3,
		ActiveCompanies: 2,
		Mentors:         1,
		Sessions:        3,
		SessionsLast30:  2,
		Indicators:      1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}
