package dashboard_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/features/dashboard"
	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	loginstore "github.com/dalemusser/mentorhub/internal/app/store/logins"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*dashboard.Handler, *testutil.Fixtures, *testutil.Renderer) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := dashboard.NewHandler(db, zap.NewNop())
	h.Now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	pages := testutil.NewRenderer()
	h.Render = pages.Render
	uierrors.UseRenderer(pages.Render)
	t.Cleanup(func() { uierrors.UseRenderer(nil) })
	return h, testutil.NewFixtures(t, db), pages
}

func TestServeDashboard_Unauthenticated(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, testutil.NewRequest(http.MethodGet, "/dashboard"))

	rec.AssertRedirect(t, "/")
}

func TestServeDashboard_NoRoleForbidden(t *testing.T) {
	h, _, pages := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", testutil.NoRoleUser()))

	rec.AssertStatus(t, http.StatusForbidden)
	if page, _ := pages.Last(); page.Name == "dashboard" {
		t.Error("dashboard rendered for a user without a role")
	}
}

func TestServeDashboard_CountsAndRecent(t *testing.T) {
	h, fixtures, pages := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fixtures.CreateGroup(ctx, models.GroupOne)
	c := fixtures.CreateCompany(ctx, "A-1", "Alpha", &g.ID)
	m1 := fixtures.CreateMentor(ctx, "Maria Lopez", &g.ID)
	m2 := fixtures.CreateMentor(ctx, "Sam Park", nil)
	fixtures.CreateSession(ctx, m1.ID, c.ID, testutil.Day(2024, 6, 10))
	fixtures.CreateSession(ctx, m2.ID, c.ID, testutil.Day(2024, 6, 12))
	fixtures.CreateSession(ctx, m1.ID, c.ID, testutil.Day(2024, 1, 2))

	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", testutil.ConsultantUser()))

	rec.AssertStatus(t, http.StatusOK)
	page, _ := pages.Last()
	if page.Name != "dashboard" {
		t.Fatalf("rendered %q, want dashboard", page.Name)
	}
	counts := dashboard.Counts(page.Data)
	if counts.Groups != 1 || counts.Companies != 1 || counts.Mentors != 2 || counts.Sessions != 3 {
		t.Errorf("counts = %+v", counts)
	}
	if counts.SessionsLast30 != 2 {
		t.Errorf("SessionsLast30 = %d, want 2", counts.SessionsLast30)
	}
	want := []string{"Sam Park", "Maria Lopez", "Maria Lopez"}
	if diff := cmp.Diff(want, dashboard.RecentMentorNames(page.Data)); diff != "" {
		t.Errorf("recent sessions mismatch (-want +got):\n%s", diff)
	}
}

func TestServeDashboard_PreviousLogin(t *testing.T) {
	h, fixtures, pages := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := testutil.MentorUser()
	uid, _ := primitive.ObjectIDFromHex(user.ID)
	logins := loginstore.New(fixtures.DB())
	now := time.Now().UTC()
	for i, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		if err := logins.Create(ctx, models.LoginRecord{
			UserID:    uid,
			IP:        ip,
			Provider:  models.AuthPassword,
			CreatedAt: now.Add(time.Duration(i-2) * time.Hour),
		}); err != nil {
			t.Fatalf("create login record: %v", err)
		}
	}

	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", user))

	page, _ := pages.Last()
	if got := dashboard.PreviousFromIP(page.Data); got != "10.0.0.1" {
		t.Errorf("PreviousFromIP = %q, want 10.0.0.1", got)
	}
}
