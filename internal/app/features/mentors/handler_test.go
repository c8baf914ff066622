package mentors_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/features/mentors"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type recorder struct {
	pages   *testutil.Renderer
	flashes []string
}

func newTestHandler(t *testing.T) (*mentors.Handler, *testutil.Fixtures, *recorder) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	rec := &recorder{pages: testutil.NewRenderer()}
	h := mentors.NewHandler(db, uierrors.NewErrorLogger(logger), nil, logger)
	h.Render = rec.pages.Render
	h.Flash = func(_ http.ResponseWriter, _ *http.Request, msg string) { rec.flashes = append(rec.flashes, msg) }

	uierrors.UseRenderer(rec.pages.Render)
	t.Cleanup(func() { uierrors.UseRenderer(nil) })
	return h, testutil.NewFixtures(t, db), rec
}

func mentorForm(groupID string) url.Values {
	return url.Values{
		"name":      {"Maria Lopez"},
		"expertise": {"Finance"},
		"bio":       {"<p>Former <strong>CFO</strong></p><script>alert(1)</script>"},
		"phone":     {"5550100"},
		"email":     {"maria@example.com"},
		"group_id":  {groupID},
	}
}

func loadMentor(t *testing.T, fixtures *testutil.Fixtures, filter bson.M) models.Mentor {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	var m models.Mentor
	if err := fixtures.DB().Collection("mentors").FindOne(ctx, filter).Decode(&m); err != nil {
		t.Fatalf("load mentor: %v", err)
	}
	return m
}

func TestHandleCreate_CountsGroupCompanies(t *testing.T) {
	h, fixtures, rec := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g2 := fixtures.CreateGroup(ctx, models.GroupTwo)
	g3 := fixtures.CreateGroup(ctx, models.GroupThree)
	for _, id := range []string{"A", "B", "C"} {
		fixtures.CreateCompany(ctx, id, "Company "+id, &g2.ID)
	}
	fixtures.CreateCompany(ctx, "D", "Company D", &g3.ID)
	fixtures.CreateCompany(ctx, "E", "Company E", &g3.ID)

	w := testutil.NewRecorder()
	h.HandleCreate(w, testutil.NewFormRequest("/mentors", mentorForm(g2.ID.Hex()), testutil.MentorUser()))

	w.AssertRedirect(t, "/mentors")
	if len(rec.flashes) != 1 || rec.flashes[0] != mentors.MsgCreated {
		t.Errorf("flashes = %v", rec.flashes)
	}

	m := loadMentor(t, fixtures, bson.M{"name": "Maria Lopez"})
	if m.CompaniesAssigned != 3 {
		t.Errorf("companies_assigned = %d, want 3", m.CompaniesAssigned)
	}
	if strings.Contains(m.Bio, "<script") {
		t.Errorf("bio not sanitized: %q", m.Bio)
	}
}

func TestHandleCreate_NoGroupCountsZero(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fixtures.CreateGroup(ctx, models.GroupOne)
	fixtures.CreateCompany(ctx, "A", "Company A", &g.ID)

	w := testutil.NewRecorder()
	h.HandleCreate(w, testutil.NewFormRequest("/mentors", mentorForm(""), testutil.MentorUser()))

	w.AssertRedirect(t, "/mentors")
	if m := loadMentor(t, fixtures, bson.M{"name": "Maria Lopez"}); m.CompaniesAssigned != 0 {
		t.Errorf("companies_assigned = %d, want 0", m.CompaniesAssigned)
	}
}

func TestHandleCreate_Invalid(t *testing.T) {
	h, fixtures, rec := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := mentorForm("")
	form.Set("phone", "555-0100-1234")
	form.Set("total_hours", "-3")

	w := testutil.NewRecorder()
	h.HandleCreate(w, testutil.NewFormRequest("/mentors", form, testutil.MentorUser()))

	w.AssertStatus(t, http.StatusOK)
	page, _ := rec.pages.Last()
	if page.Name != "mentors_form" {
		t.Fatalf("rendered %q, want mentors_form", page.Name)
	}
	if _, ok := mentors.FieldErrors(page.Data)["phone"]; !ok {
		t.Errorf("expected phone error, got %v", mentors.FieldErrors(page.Data))
	}
	if n, _ := fixtures.DB().Collection("mentors").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("mentors persisted = %d", n)
	}
}

func TestHandleCreate_TotalHoursOutOfRange(t *testing.T) {
	h, fixtures, rec := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := mentorForm("")
	form.Set("total_hours", "99999999999999999999")

	w := testutil.NewRecorder()
	h.HandleCreate(w, testutil.NewFormRequest("/mentors", form, testutil.MentorUser()))

	w.AssertStatus(t, http.StatusOK)
	page, _ := rec.pages.Last()
	if page.Name != "mentors_form" {
		t.Fatalf("rendered %q, want mentors_form", page.Name)
	}
	if _, ok := mentors.FieldErrors(page.Data)["total_hours"]; !ok {
		t.Errorf("expected total_hours error, got %v", mentors.FieldErrors(page.Data))
	}
	if n, _ := fixtures.DB().Collection("mentors").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("mentors persisted = %d", n)
	}
}

func TestHandleCreate_UnknownGroup(t *testing.T) {
	h, fixtures, rec := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	w := testutil.NewRecorder()
	h.HandleCreate(w, testutil.NewFormRequest("/mentors", mentorForm(primitive.NewObjectID().Hex()), testutil.MentorUser()))

	w.AssertStatus(t, http.StatusOK)
	page, _ := rec.pages.Last()
	if _, ok := mentors.FieldErrors(page.Data)["group_id"]; !ok {
		t.Errorf("expected group_id error, got %v", mentors.FieldErrors(page.Data))
	}
	if n, _ := fixtures.DB().Collection("mentors").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("mentors persisted = %d", n)
	}
}

func TestHandleCreate_ConsultantForbidden(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	w := testutil.NewRecorder()
	h.HandleCreate(w, testutil.NewFormRequest("/mentors", mentorForm(""), testutil.ConsultantUser()))

	w.AssertStatus(t, http.StatusForbidden)
	if n, _ := fixtures.DB().Collection("mentors").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("mentors persisted = %d", n)
	}
}

func TestHandleEdit_RecountsForNewGroup(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g1 := fixtures.CreateGroup(ctx, models.GroupOne)
	g2 := fixtures.CreateGroup(ctx, models.GroupTwo)
	fixtures.CreateCompany(ctx, "A", "Company A", &g2.ID)
	fixtures.CreateCompany(ctx, "B", "Company B", &g2.ID)
	m := fixtures.CreateMentor(ctx, "Maria Lopez", &g1.ID)

	req := testutil.NewFormRequest("/mentors/"+m.ID.Hex()+"/edit", mentorForm(g2.ID.Hex()), testutil.MentorUser())
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())

	w := testutil.NewRecorder()
	h.HandleEdit(w, req)

	w.AssertRedirect(t, "/mentors")
	if got := loadMentor(t, fixtures, bson.M{"_id": m.ID}); got.CompaniesAssigned != 2 {
		t.Errorf("companies_assigned = %d, want 2", got.CompaniesAssigned)
	}
}

func TestHandleEdit_NotFound(t *testing.T) {
	h, _, _ := newTestHandler(t)

	id := primitive.NewObjectID().Hex()
	req := testutil.NewFormRequest("/mentors/"+id+"/edit", mentorForm(""), testutil.MentorUser())
	req = testutil.WithChiURLParam(req, "id", id)

	w := testutil.NewRecorder()
	h.HandleEdit(w, req)

	w.AssertStatus(t, http.StatusNotFound)
}

func TestHandleDelete_CascadesSessions(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fixtures.CreateCompany(ctx, "A", "Company A", nil)
	m := fixtures.CreateMentor(ctx, "Maria Lopez", nil)
	other := fixtures.CreateMentor(ctx, "Sam Park", nil)
	fixtures.CreateSession(ctx, m.ID, c.ID, testutil.Day(2024, 3, 1))
	fixtures.CreateSession(ctx, other.ID, c.ID, testutil.Day(2024, 3, 2))

	req := testutil.NewFormRequest("/mentors/"+m.ID.Hex()+"/delete", url.Values{}, testutil.MentorUser())
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())

	w := testutil.NewRecorder()
	h.HandleDelete(w, req)

	w.AssertRedirect(t, "/mentors")
	sessions := fixtures.DB().Collection("mentorship_sessions")
	if n, _ := sessions.CountDocuments(ctx, bson.M{"mentor_id": m.ID}); n != 0 {
		t.Errorf("sessions for deleted mentor = %d", n)
	}
	if n, _ := sessions.CountDocuments(ctx, bson.M{}); n != 1 {
		t.Errorf("remaining sessions = %d, want 1", n)
	}
}

func TestHandleRecount(t *testing.T) {
	h, fixtures, rec := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fixtures.CreateGroup(ctx, models.GroupTwo)
	m := fixtures.CreateMentor(ctx, "Maria Lopez", &g.ID)
	fixtures.CreateCompany(ctx, "A", "Company A", &g.ID)
	fixtures.CreateCompany(ctx, "B", "Company B", &g.ID)

	w := testutil.NewRecorder()
	h.HandleRecount(w, testutil.NewFormRequest("/mentors/recount", url.Values{}, testutil.MentorUser()))

	w.AssertRedirect(t, "/mentors")
	if got := loadMentor(t, fixtures, bson.M{"_id": m.ID}); got.CompaniesAssigned != 2 {
		t.Errorf("companies_assigned = %d, want 2", got.CompaniesAssigned)
	}
	if len(rec.flashes) != 1 || !strings.Contains(rec.flashes[0], "1 mentor") {
		t.Errorf("flashes = %v", rec.flashes)
	}
}

func TestHandleRecount_ConsultantForbidden(t *testing.T) {
	h, _, _ := newTestHandler(t)

	w := testutil.NewRecorder()
	h.HandleRecount(w, testutil.NewFormRequest("/mentors/recount", url.Values{}, testutil.ConsultantUser()))

	w.AssertStatus(t, http.StatusForbidden)
}

func TestServeList_And_View(t *testing.T) {
	h, fixtures, rec := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := fixtures.CreateMentor(ctx, "Maria Lopez", nil)

	w := testutil.NewRecorder()
	h.ServeList(w, testutil.NewAuthenticatedRequest(http.MethodGet, "/mentors?q=mar", testutil.ConsultantUser()))
	w.AssertStatus(t, http.StatusOK)
	if page, _ := rec.pages.Last(); page.Name != "mentors_list" {
		t.Errorf("rendered %q, want mentors_list", page.Name)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/mentors/"+m.ID.Hex(), testutil.ConsultantUser())
	req = testutil.WithChiURLParam(req, "id", m.ID.Hex())
	w = testutil.NewRecorder()
	h.ServeView(w, req)
	w.AssertStatus(t, http.StatusOK)
	if page, _ := rec.pages.Last(); page.Name != "mentors_view" {
		t.Errorf("rendered %q, want mentors_view", page.Name)
	}
}
