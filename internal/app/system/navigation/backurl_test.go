package navigation_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/mentorhub/internal/app/system/navigation"
)

func TestSafeBackURL(t *testing.T) {
	tests := []struct {
		name   string
		target string
		form   url.Values
		opts   navigation.BackURLOptions
		want   string
	}{
		{
			name:   "no return uses fallback",
			target: "/companies",
			opts:   navigation.CompaniesBackURL,
			want:   "/companies",
		},
		{
			name:   "valid return honored",
			target: "/companies?return=" + url.QueryEscape("/companies?q=acme"),
			opts:   navigation.CompaniesBackURL,
			want:   "/companies?q=acme",
		},
		{
			name:   "external return rejected",
			target: "/companies?return=" + url.QueryEscape("https://evil.example/"),
			opts:   navigation.CompaniesBackURL,
			want:   "/companies",
		},
		{
			name:   "wrong prefix rejected",
			target: "/companies?return=" + url.QueryEscape("/mentors"),
			opts:   navigation.CompaniesBackURL,
			want:   "/companies",
		},
		{
			name:   "excluded subpath rejected",
			target: "/companies?return=" + url.QueryEscape("/companies/new"),
			opts:   navigation.CompaniesBackURL,
			want:   "/companies",
		},
		{
			name:   "company filter preserved from form reference",
			target: "/indicators",
			form:   url.Values{"company_id": {"64b7f0c2a1b2c3d4e5f60718"}},
			opts:   navigation.IndicatorsBackURL,
			want:   "/indicators?company=64b7f0c2a1b2c3d4e5f60718",
		},
		{
			name:   "mentor filter preserved from query",
			target: "/sessions?mentor=64b7f0c2a1b2c3d4e5f60718",
			opts:   navigation.SessionsBackURL,
			want:   "/sessions?mentor=64b7f0c2a1b2c3d4e5f60718",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", tc.target, strings.NewReader(tc.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if got := navigation.SafeBackURL(req, tc.opts); got != tc.want {
				t.Errorf("SafeBackURL = %q, want %q", got, tc.want)
			}
		})
	}
}
