package indicators_test

import (
	"net/http"
	"net/url"
	"testing"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/features/indicators"
	"github.com/dalemusser/mentorhub/internal/app/store/queries/summaryqueries"
	"github.com/dalemusser/mentorhub/internal/app/system/export"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*indicators.Handler, *testutil.Fixtures, *testutil.Renderer, *[]string) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	pages := testutil.NewRenderer()
	var flashes []string

	h := indicators.NewHandler(db, uierrors.NewErrorLogger(logger), nil, logger)
	h.Render = pages.Render
	h.Flash = func(_ http.ResponseWriter, _ *http.Request, msg string) { flashes = append(flashes, msg) }

	uierrors.UseRenderer(pages.Render)
	t.Cleanup(func() { uierrors.UseRenderer(nil) })

	return h, testutil.NewFixtures(t, db), pages, &flashes
}

func TestHandleCreate_Success(t *testing.T) {
	h, fixtures, _, flashes := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fixtures.CreateCompany(ctx, "ACME-001", "Acme", nil)
	form := url.Values{
		"company_id":  {c.ID.Hex()},
		"category":    {" Revenue "},
		"name":        {"Monthly sales"},
		"score":       {"1250.5"},
		"unit":        {"USD"},
		"measured_on": {"2024-05-31"},
	}

	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.NewFormRequest("/indicators", form, testutil.MentorUser()))

	rec.AssertRedirect(t, "/indicators")
	if diff := cmp.Diff([]string{indicators.MsgCreated}, *flashes); diff != "" {
		t.Errorf("flashes mismatch (-want +got):\n%s", diff)
	}

	var doc struct {
		Category string  `bson:"category"`
		Score    float64 `bson:"score"`
	}
	if err := fixtures.DB().Collection("indicators").FindOne(ctx, bson.M{"company_id": c.ID}).Decode(&doc); err != nil {
		t.Fatalf("find created indicator: %v", err)
	}
	if doc.Category != "Revenue" || doc.Score != 1250.5 {
		t.Errorf("stored %+v", doc)
	}
}

func TestHandleCreate_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		form      url.Values
		wantField string
	}{
		{"missing category", url.Values{"name": {"x"}, "score": {"1"}}, "category"},
		{"score not a number", url.Values{"category": {"Revenue"}, "name": {"x"}, "score": {"lots"}}, "score"},
		{"score missing", url.Values{"category": {"Revenue"}, "name": {"x"}}, "score"},
		{"bad date", url.Values{"category": {"Revenue"}, "name": {"x"}, "score": {"1"}, "measured_on": {"31/05/2024"}}, "measured_on"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fixtures, pages, flashes := newTestHandler(t)
			ctx, cancel := testutil.TestContext()
			defer cancel()

			c := fixtures.CreateCompany(ctx, "ACME-001", "Acme", nil)
			tt.form.Set("company_id", c.ID.Hex())

			rec := testutil.NewRecorder()
			h.HandleCreate(rec, testutil.NewFormRequest("/indicators", tt.form, testutil.MentorUser()))

			rec.AssertStatus(t, http.StatusOK)
			page, ok := pages.Last()
			if !ok || page.Name != "indicators_form" {
				t.Fatalf("rendered %+v, want indicators_form", page)
			}
			if _, ok := indicators.FieldErrors(page.Data)[tt.wantField]; !ok {
				t.Errorf("no field error for %q in %v", tt.wantField, indicators.FieldErrors(page.Data))
			}
			if len(*flashes) != 0 {
				t.Errorf("unexpected flashes %v", *flashes)
			}
			n, _ := fixtures.DB().Collection("indicators").CountDocuments(ctx, bson.M{})
			if n != 0 {
				t.Errorf("indicators persisted = %d, want 0", n)
			}
		})
	}
}

func TestHandleCreate_MissingCompany(t *testing.T) {
	h, _, pages, _ := newTestHandler(t)

	form := url.Values{
		"company_id": {primitive.NewObjectID().Hex()},
		"category":   {"Revenue"},
		"name":       {"Monthly sales"},
		"score":      {"1"},
	}

	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.NewFormRequest("/indicators", form, testutil.MentorUser()))

	rec.AssertStatus(t, http.StatusOK)
	page, _ := pages.Last()
	if _, ok := indicators.FieldErrors(page.Data)["company_id"]; !ok {
		t.Errorf("expected company_id field error, got %v", indicators.FieldErrors(page.Data))
	}
}

func TestHandleCreate_ConsultantForbidden(t *testing.T) {
	h, fixtures, _, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fixtures.CreateCompany(ctx, "ACME-001", "Acme", nil)
	form := url.Values{"company_id": {c.ID.Hex()}, "category": {"Revenue"}, "name": {"x"}, "score": {"1"}}

	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.NewFormRequest("/indicators", form, testutil.ConsultantUser()))

	rec.AssertStatus(t, http.StatusForbidden)
	if n, _ := fixtures.DB().Collection("indicators").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("indicators persisted = %d, want 0", n)
	}
}

func TestHandleEdit(t *testing.T) {
	h, fixtures, _, flashes := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fixtures.CreateCompany(ctx, "ACME-001", "Acme", nil)
	ind := fixtures.CreateIndicator(ctx, c.ID, "Revenue", "Monthly sales", 10)

	form := url.Values{"company_id": {c.ID.Hex()}, "category": {"Revenue"}, "name": {"Monthly sales"}, "score": {"12"}}
	req := testutil.NewFormRequest("/indicators/"+ind.ID.Hex()+"/edit", form, testutil.MentorUser())
	req = testutil.WithChiURLParam(req, "id", ind.ID.Hex())

	rec := testutil.NewRecorder()
	h.HandleEdit(rec, req)

	rec.AssertRedirect(t, "/indicators")
	if len(*flashes) != 1 || (*flashes)[0] != indicators.MsgUpdated {
		t.Errorf("flashes = %v", *flashes)
	}
	var doc struct {
		Score float64 `bson:"score"`
	}
	_ = fixtures.DB().Collection("indicators").FindOne(ctx, bson.M{"_id": ind.ID}).Decode(&doc)
	if doc.Score != 12 {
		t.Errorf("score = %v, want 12", doc.Score)
	}
}

func TestServeEdit_NotFound(t *testing.T) {
	h, _, _, _ := newTestHandler(t)

	id := primitive.NewObjectID().Hex()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/indicators/"+id+"/edit", testutil.MentorUser())
	req = testutil.WithChiURLParam(req, "id", id)

	rec := testutil.NewRecorder()
	h.ServeEdit(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleDelete(t *testing.T) {
	h, fixtures, _, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fixtures.CreateCompany(ctx, "ACME-001", "Acme", nil)
	ind := fixtures.CreateIndicator(ctx, c.ID, "Revenue", "Monthly sales", 10)

	target := "/indicators/" + ind.ID.Hex() + "/delete?return=" + url.QueryEscape("/indicators?company="+c.ID.Hex())
	req := testutil.NewFormRequest(target, url.Values{}, testutil.MentorUser())
	req = testutil.WithChiURLParam(req, "id", ind.ID.Hex())

	rec := testutil.NewRecorder()
	h.HandleDelete(rec, req)

	rec.AssertRedirect(t, "/indicators?company="+c.ID.Hex())
	if n, _ := fixtures.DB().Collection("indicators").CountDocuments(ctx, bson.M{}); n != 0 {
		t.Errorf("indicators remaining = %d, want 0", n)
	}

	// A second delete finds nothing.
	rec = testutil.NewRecorder()
	h.HandleDelete(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeList_Filters(t *testing.T) {
	h, fixtures, pages, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c1 := fixtures.CreateCompany(ctx, "A-1", "Alpha", nil)
	c2 := fixtures.CreateCompany(ctx, "B-1", "Beta", nil)
	fixtures.CreateIndicator(ctx, c1.ID, "Revenue", "Sales", 10)
	fixtures.CreateIndicator(ctx, c1.ID, "Growth", "Staff", 3)
	fixtures.CreateIndicator(ctx, c2.ID, "Revenue", "Sales", 20)

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"?company=" + c1.ID.Hex(), 2},
		{"?category=Revenue", 2},
		{"?company=" + c2.ID.Hex() + "&category=Growth", 0},
	}
	for _, tt := range tests {
		rec := testutil.NewRecorder()
		h.ServeList(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/indicators"+tt.query, testutil.ConsultantUser()))

		rec.AssertStatus(t, http.StatusOK)
		page, _ := pages.Last()
		if got := indicators.ListItemCount(page.Data); got != tt.want {
			t.Errorf("%q: items = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestServeList_NoRoleForbidden(t *testing.T) {
	h, _, pages, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/indicators", testutil.NoRoleUser()))

	rec.AssertStatus(t, http.StatusForbidden)
	if page, _ := pages.Last(); page.Name != "error_page" {
		t.Errorf("rendered %q, want error_page", page.Name)
	}
}

func TestServeSummary(t *testing.T) {
	h, fixtures, pages, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fixtures.CreateCompany(ctx, "A-1", "Alpha", nil)
	fixtures.CreateIndicator(ctx, c.ID, "Revenue", "Q1", 40)
	fixtures.CreateIndicator(ctx, c.ID, "Revenue", "Q2", 80)

	rec := testutil.NewRecorder()
	h.ServeSummary(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/indicators/summary", testutil.ConsultantUser()))

	rec.AssertStatus(t, http.StatusOK)
	page, ok := pages.Last()
	if !ok || page.Name != "indicators_summary" {
		t.Fatalf("rendered %+v, want indicators_summary", page)
	}
	want := []summaryqueries.CategoryStats{{Category: "Revenue", AvgScore: 60, MinScore: 40, MaxScore: 80}}
	if diff := cmp.Diff(want, indicators.SummaryCategories(page.Data)); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestServeExport(t *testing.T) {
	h, fixtures, _, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fixtures.CreateCompany(ctx, "A-1", "Alpha", nil)
	fixtures.CreateIndicator(ctx, c.ID, "Revenue", "Q1", 40)

	rec := testutil.NewRecorder()
	h.ServeExport(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/indicators/export", testutil.ConsultantUser()))

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != export.ContentType {
		t.Errorf("Content-Type = %q", ct)
	}
}
