package formutil_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/app/system/formutil"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
)

func TestSetBase(t *testing.T) {
	req := httptest.NewRequest("GET", "/companies/new", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "507f1f77bcf86cd799439011", Name: "Mia", Role: "mentor"})

	var b formutil.Base
	formutil.SetBase(&b, req, "New Company", "/companies")

	if b.Title != "New Company" || !b.IsLoggedIn || b.UserName != "Mia" || b.Role != "mentor" {
		t.Errorf("unexpected base: %+v", b)
	}
	if !b.CanWrite {
		t.Error("expected mentor to have CanWrite")
	}
	if b.BackURL != "/companies" {
		t.Errorf("BackURL = %q", b.BackURL)
	}
}

func TestSetBase_ConsultantCannotWrite(t *testing.T) {
	req := httptest.NewRequest("GET", "/companies", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "507f1f77bcf86cd799439011", Role: "consultant"})

	var b formutil.Base
	formutil.SetBase(&b, req, "Companies", "/")
	if b.CanWrite {
		t.Error("expected consultant CanWrite=false")
	}
}

func TestSetError_Escapes(t *testing.T) {
	var b formutil.Base
	b.SetError("<b>bad</b>")
	if string(b.Error) != "&lt;b&gt;bad&lt;/b&gt;" {
		t.Errorf("Error = %q", b.Error)
	}
}

func TestSetFieldError(t *testing.T) {
	var b formutil.Base
	b.SetFieldError("date", "The session date cannot be in the future.")
	b.SetFieldError("name", "Name is required.")

	if b.FieldErrors["date"] == "" || b.FieldErrors["name"] == "" {
		t.Errorf("FieldErrors = %v", b.FieldErrors)
	}
	if string(b.Error) != "The session date cannot be in the future." {
		t.Errorf("Error = %q (first field error should win)", b.Error)
	}
}

func TestSetFieldErrors_FollowsOrder(t *testing.T) {
	var b formutil.Base
	b.SetFieldErrors(map[string]string{
		"email": "A valid email address is required.",
		"name":  "Name is required.",
		"extra": "Something else.",
	}, []string{"name", "email"})

	if string(b.Error) != "Name is required." {
		t.Errorf("Error = %q, want the first field in order", b.Error)
	}
	if len(b.FieldErrors) != 3 {
		t.Errorf("FieldErrors = %v, want 3 entries", b.FieldErrors)
	}
}

func TestValidationErrors(t *testing.T) {
	got := formutil.ValidationErrors(apperr.Validation("company_id", "taken"))
	if got["company_id"] != "taken" {
		t.Errorf("ValidationErrors = %v", got)
	}
	if formutil.ValidationErrors(apperr.NotFound("company", "x")) != nil {
		t.Error("expected nil for a non-validation error")
	}
}
