package testutil

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/domain/roles"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID    string
	Name  string
	Email string
	Roles []string
}

// MentorUser returns a TestUser with the mentor role.
func MentorUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Mentor",
		Email: "mentor@test.com",
		Roles: []string{roles.Mentor},
	}
}

// ConsultantUser returns a TestUser with the consultant role.
func ConsultantUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Consultant",
		Email: "consultant@test.com",
		Roles: []string{roles.Consultant},
	}
}

// NoRoleUser returns a signed-in TestUser holding neither role.
func NoRoleUser() TestUser {
	return TestUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test Nobody",
		Email: "nobody@test.com",
	}
}

// WithUser adds a user to the request context for testing authenticated handlers.
// This bypasses the session middleware and injects the user directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:      user.ID,
		Name:    user.Name,
		LoginID: user.Email,
		Email:   user.Email,
		Roles:   user.Roles,
		Role:    roles.Primary(user.Roles),
	})
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}

// NewFormRequest creates a form POST with a user in context.
func NewFormRequest(target string, form url.Values, user TestUser) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return WithUser(req, user)
}

// NewAnonymousFormRequest creates a form POST with no signed-in user.
func NewAnonymousFormRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	if location := r.Header().Get("Location"); location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// Rendered is one captured template render.
type Rendered struct {
	Name string
	Data any
}

// Renderer captures renders instead of executing templates. Handlers under
// test take its Render method in place of the real template engine.
type Renderer struct {
	mu    sync.Mutex
	calls []Rendered
}

// NewRenderer returns an empty capturing renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Render records the call and writes a minimal HTML body.
func (c *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	c.mu.Lock()
	c.calls = append(c.calls, Rendered{Name: name, Data: data})
	c.mu.Unlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<!-- " + template.HTMLEscapeString(name) + " -->"))
}

// Last returns the most recent render, or false when nothing was rendered.
func (c *Renderer) Last() (Rendered, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.calls) == 0 {
		return Rendered{}, false
	}
	return c.calls[len(c.calls)-1], true
}

// Count returns how many renders were captured.
func (c *Renderer) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}
