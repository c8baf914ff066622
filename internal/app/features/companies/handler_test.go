package companies_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/features/companies"
	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/system/export"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var fixedToday = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type harness struct {
	h        *companies.Handler
	fixtures *testutil.Fixtures
	pages    *testutil.Renderer
	flashes  []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	hs := &harness{
		h:        companies.NewHandler(db, uierrors.NewErrorLogger(logger), nil, logger),
		fixtures: testutil.NewFixtures(t, db),
		pages:    testutil.NewRenderer(),
	}
	hs.h.Now = func() time.Time { return fixedToday }
	hs.h.Render = hs.pages.Render
	hs.h.Flash = func(_ http.ResponseWriter, _ *http.Request, msg string) {
		hs.flashes = append(hs.flashes, msg)
	}
	uierrors.UseRenderer(hs.pages.Render)
	t.Cleanup(func() { uierrors.UseRenderer(nil) })
	return hs
}

func validForm() url.Values {
	return url.Values{
		"company_id":    {"ACME-001"},
		"is_active":     {"1"},
		"name":          {"Acme Bakery"},
		"owner_name":    {"Ada Baker"},
		"email":         {"ada@acme.test"},
		"phone":         {"555-0100"},
		"industry":      {"Food"},
		"company_size":  {"Small"},
		"description":   {"Neighborhood bakery"},
		"founding_date": {"2014-06-16"},
		"address":       {"1 Main St"},
		"city":          {"Austin"},
		"state":         {"TX"},
	}
}

func TestHandleCreate_Success(t *testing.T) {
	hs := newHarness(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := testutil.NewRecorder()
	hs.h.HandleCreate(rec, testutil.NewFormRequest("/companies", validForm(), testutil.MentorUser()))

	rec.AssertRedirect(t, "/companies")
	if len(hs.flashes) != 1 || hs.flashes[0] != companies.MsgCreated {
		t.Errorf("flashes = %v, want [%q]", hs.flashes, companies.MsgCreated)
	}

	var doc struct {
		Name string `bson:"name"`
		Age  *int   `bson:"age"`
	}
	err := hs.fixtures.DB().Collection("companies").FindOne(ctx, bson.M{"company_id": "ACME-001"}).Decode(&doc)
	if err != nil {
		t.Fatalf("find created company: %v", err)
	}
	// Founded 2014-06-16, today 2024-06-15: the tenth anniversary is tomorrow.
	if doc.Age == nil || *doc.Age != 9 {
		t.Errorf("age = %v, want 9", doc.Age)
	}
}

func TestHandleCreate_ConsultantForbidden(t *testing.T) {
	hs := newHarness(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := testutil.NewRecorder()
	hs.h.HandleCreate(rec, testutil.NewFormRequest("/companies", validForm(), testutil.ConsultantUser()))

	rec.AssertStatus(t, http.StatusForbidden)
	n, err := hs.fixtures.DB().Collection("companies").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("companies persisted = %d, want 0", n)
	}
	if len(hs.flashes) != 0 {
		t.Errorf("unexpected flashes %v", hs.flashes)
	}
}

func TestHandleCreate_NoRoleForbidden(t *testing.T) {
	hs := newHarness(t)

	rec := testutil.NewRecorder()
	hs.h.ServeNew(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/companies/new", testutil.NoRoleUser()))

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleCreate_InvalidRerendersForm(t *testing.T) {
	hs := newHarness(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := validForm()
	form.Set("email", "not-an-email")
	form.Set("name", "")

	rec := testutil.NewRecorder()
	hs.h.HandleCreate(rec, testutil.NewFormRequest("/companies", form, testutil.MentorUser()))

	rec.AssertStatus(t, http.StatusOK)
	page, ok := hs.pages.Last()
	if !ok || page.Name != "companies_form" {
		t.Fatalf("rendered %+v, want companies_form", page)
	}
	n, _ := hs.fixtures.DB().Collection("companies").CountDocuments(ctx, bson.M{})
	if n != 0 {
		t.Errorf("companies persisted = %d, want 0", n)
	}
}

func TestHandleCreate_FutureFoundingDateSaved(t *testing.T) {
	hs := newHarness(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	form := validForm()
	form.Set("founding_date", "2025-01-01")

	rec := testutil.NewRecorder()
	hs.h.HandleCreate(rec, testutil.NewFormRequest("/companies", form, testutil.MentorUser()))

	rec.AssertRedirect(t, "/companies")
	var doc struct {
		Age *int `bson:"age"`
	}
	err := hs.fixtures.DB().Collection("companies").FindOne(ctx, bson.M{"company_id": "ACME-001"}).Decode(&doc)
	if err != nil {
		t.Fatalf("find created company: %v", err)
	}
	if doc.Age == nil || *doc.Age != -1 {
		t.Errorf("age = %v, want -1", doc.Age)
	}
}

func TestHandleCreate_DuplicateCompanyID(t *testing.T) {
	hs := newHarness(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hs.fixtures.CreateCompany(ctx, "ACME-001", "Existing", nil)

	rec := testutil.NewRecorder()
	hs.h.HandleCreate(rec, testutil.NewFormRequest("/companies", validForm(), testutil.MentorUser()))

	rec.AssertStatus(t, http.StatusOK)
	if page, _ := hs.pages.Last(); page.Name != "companies_form" {
		t.Errorf("rendered %q, want companies_form", page.Name)
	}
	n, _ := hs.fixtures.DB().Collection("companies").CountDocuments(ctx, bson.M{"company_id": "ACME-001"})
	if n != 1 {
		t.Errorf("companies with id = %d, want 1", n)
	}
}

func TestHandleEdit_RecomputesAge(t *testing.T) {
	hs := newHarness(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := hs.fixtures.CreateCompany(ctx, "ACME-001", "Acme", nil)

	form := validForm()
	form.Set("founding_date", "2020-06-15")
	req := testutil.NewFormRequest("/companies/"+c.ID.Hex()+"/edit", form, testutil.MentorUser())
	req = testutil.WithChiURLParam(req, "id", c.ID.Hex())

	rec := testutil.NewRecorder()
	hs.h.HandleEdit(rec, req)

	rec.AssertRedirect(t, "/companies")
	if len(hs.flashes) != 1 || hs.flashes[0] != companies.MsgUpdated {
		t.Errorf("flashes = %v", hs.flashes)
	}

	var doc struct {
		Name string `bson:"name"`
		Age  *int   `bson:"age"`
	}
	if err := hs.fixtures.DB().Collection("companies").FindOne(ctx, bson.M{"_id": c.ID}).Decode(&doc); err != nil {
		t.Fatalf("find: %v", err)
	}
	if doc.Name != "Acme Bakery" {
		t.Errorf("name = %q", doc.Name)
	}
	if doc.Age == nil || *doc.Age != 4 {
		t.Errorf("age = %v, want 4", doc.Age)
	}
}

func TestHandleEdit_NotFound(t *testing.T) {
	hs := newHarness(t)

	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
		req := testutil.NewFormRequest("/companies/"+id+"/edit", validForm(), testutil.MentorUser())
		req = testutil.WithChiURLParam(req, "id", id)

		rec := testutil.NewRecorder()
		hs.h.HandleEdit(rec, req)
		rec.AssertStatus(t, http.StatusNotFound)
	}
}

func TestServeDetail(t *testing.T) {
	hs := newHarness(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := hs.fixtures.CreateGroup(ctx, models.GroupOne)
	c := hs.fixtures.CreateCompany(ctx, "ACME-001", "Acme", &g.ID)
	m := hs.fixtures.CreateMentor(ctx, "Maria", &g.ID)
	hs.fixtures.CreateSession(ctx, m.ID, c.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	hs.fixtures.CreateIndicator(ctx, c.ID, "Revenue", "Monthly sales", 42)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/companies/"+c.ID.Hex(), testutil.ConsultantUser())
	req = testutil.WithChiURLParam(req, "id", c.ID.Hex())

	rec := testutil.NewRecorder()
	hs.h.ServeDetail(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	page, ok := hs.pages.Last()
	if !ok || page.Name != "companies_detail" {
		t.Fatalf("rendered %+v, want companies_detail", page)
	}
}

func TestServeDetail_NotFound(t *testing.T) {
	hs := newHarness(t)

	id := primitive.NewObjectID().Hex()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/companies/"+id, testutil.MentorUser())
	req = testutil.WithChiURLParam(req, "id", id)

	rec := testutil.NewRecorder()
	hs.h.ServeDetail(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleDelete_Cascades(t *testing.T) {
	hs := newHarness(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	db := hs.fixtures.DB()

	c := hs.fixtures.CreateCompany(ctx, "ACME-001", "Acme", nil)
	other := hs.fixtures.CreateCompany(ctx, "ACME-002", "Other", nil)
	m := hs.fixtures.CreateMentor(ctx, "Maria", nil)
	hs.fixtures.CreateSession(ctx, m.ID, c.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	hs.fixtures.CreateSession(ctx, m.ID, other.ID, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
	hs.fixtures.CreateIndicator(ctx, c.ID, "Revenue", "Monthly sales", 42)

	req := testutil.NewFormRequest("/companies/"+c.ID.Hex()+"/delete", url.Values{}, testutil.MentorUser())
	req = testutil.WithChiURLParam(req, "id", c.ID.Hex())

	rec := testutil.NewRecorder()
	hs.h.HandleDelete(rec, req)

	rec.AssertRedirect(t, "/companies")

	counts := map[string]bson.M{
		"companies":           {"_id": c.ID},
		"mentorship_sessions": {"company_id": c.ID},
		"indicators":          {"company_id": c.ID},
	}
	for coll, filter := range counts {
		n, err := db.Collection(coll).CountDocuments(ctx, filter)
		if err != nil {
			t.Fatalf("count %s: %v", coll, err)
		}
		if n != 0 {
			t.Errorf("%s remaining = %d, want 0", coll, n)
		}
	}
	if n, _ := db.Collection("mentorship_sessions").CountDocuments(ctx, bson.M{}); n != 1 {
		t.Errorf("unrelated sessions = %d, want 1", n)
	}
}

func TestServeList_Filters(t *testing.T) {
	hs := newHarness(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := hs.fixtures.CreateGroup(ctx, models.GroupOne)
	hs.fixtures.CreateCompany(ctx, "A-1", "Alpha", &g.ID)
	hs.fixtures.CreateCompany(ctx, "B-1", "Beta", nil)
	hs.fixtures.CreateCompanyWith(ctx, models.Company{CompanyID: "C-1", Name: "Gamma", City: "Springfield", Industry: "Retail"})

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all", "", 3},
		{"search", "?q=alp", 1},
		{"group", "?group=" + g.ID.Hex(), 1},
		{"inactive", "?status=inactive", 1},
		{"active", "?status=active", 2},
		{"unknown group ignored", "?group=bogus", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			hs.h.ServeList(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/companies"+tt.query, testutil.ConsultantUser()))

			rec.AssertStatus(t, http.StatusOK)
			page, ok := hs.pages.Last()
			if !ok || page.Name != "companies_list" {
				t.Fatalf("rendered %+v, want companies_list", page)
			}
			if got := companies.ListItemCount(page.Data); got != tt.want {
				t.Errorf("items = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestServeSummary(t *testing.T) {
	hs := newHarness(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hs.fixtures.CreateCompany(ctx, "A-1", "Alpha", nil)

	rec := testutil.NewRecorder()
	hs.h.ServeSummary(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/companies/summary", testutil.ConsultantUser()))

	rec.AssertStatus(t, http.StatusOK)
	if page, _ := hs.pages.Last(); page.Name != "companies_summary" {
		t.Errorf("rendered %q, want companies_summary", page.Name)
	}
}

func TestServeSummary_NoRoleForbidden(t *testing.T) {
	hs := newHarness(t)

	rec := testutil.NewRecorder()
	hs.h.ServeSummary(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/companies/summary", testutil.NoRoleUser()))

	rec.AssertStatus(t, http.StatusForbidden)
}

func TestServeExport(t *testing.T) {
	hs := newHarness(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hs.fixtures.CreateCompany(ctx, "A-1", "Alpha", nil)

	rec := testutil.NewRecorder()
	hs.h.ServeExport(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/companies/export", testutil.MentorUser()))

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != export.ContentType {
		t.Errorf("Content-Type = %q, want %q", ct, export.ContentType)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty workbook body")
	}
}
