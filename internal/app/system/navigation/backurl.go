// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/companies", "/sessions").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/edit", "/delete", "/new").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string

	// PreserveQueryParam is an optional query parameter to preserve in the fallback URL.
	// For example, "company" would check for a company parameter and append it to the fallback.
	PreserveQueryParam string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", validates
// the URL is safe (not an open redirect), optionally validates the prefix,
// and excludes specified subpaths to prevent redirect loops.
//
// Example usage:
//
//	url := navigation.SafeBackURL(r, navigation.BackURLOptions{
//	    AllowedPrefix:      "/indicators",
//	    ExcludedSubpaths:   []string{"/new"},
//	    Fallback:           "/indicators",
//	    PreserveQueryParam: "company",
//	})
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	// Try query parameter first, then form value
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}

	// Validate against allowed prefix if specified
	if ret != "" {
		valid := true

		if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
			valid = false
		}

		// Check excluded subpaths
		for _, excluded := range opts.ExcludedSubpaths {
			if strings.Contains(ret, excluded) {
				valid = false
				break
			}
		}

		if valid {
			return ret
		}
	}

	// Build fallback URL, optionally preserving a query parameter
	fallback := opts.Fallback
	if opts.PreserveQueryParam != "" {
		param := query.Get(r, opts.PreserveQueryParam)
		if param == "" {
			param = strings.TrimSpace(r.FormValue(opts.PreserveQueryParam))
		}
		if param == "" {
			// Forms post the reference as e.g. "company_id" for "company".
			param = strings.TrimSpace(r.FormValue(opts.PreserveQueryParam + "_id"))
		}
		if param != "" && param != "all" {
			if strings.Contains(fallback, "?") {
				fallback += "&" + opts.PreserveQueryParam + "=" + param
			} else {
				fallback += "?" + opts.PreserveQueryParam + "=" + param
			}
		}
	}

	return fallback
}

// Common back URL configurations for reuse across packages.
var (
	// GroupsBackURL returns options for groups pages.
	GroupsBackURL = BackURLOptions{
		AllowedPrefix:    "/groups",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new"},
		Fallback:         "/groups",
	}

	// CompaniesBackURL returns options for companies pages.
	CompaniesBackURL = BackURLOptions{
		AllowedPrefix:    "/companies",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new", "/export"},
		Fallback:         "/companies",
	}

	// MentorsBackURL returns options for mentors pages.
	MentorsBackURL = BackURLOptions{
		AllowedPrefix:    "/mentors",
		ExcludedSubpaths: []string{"/edit", "/delete", "/new", "/recount"},
		Fallback:         "/mentors",
	}

	// SessionsBackURL returns options for mentorship session pages.
	// The mentor filter survives the round trip.
	SessionsBackURL = BackURLOptions{
		AllowedPrefix:      "/sessions",
		ExcludedSubpaths:   []string{"/edit", "/delete", "/new"},
		Fallback:           "/sessions",
		PreserveQueryParam: "mentor",
	}

	// IndicatorsBackURL returns options for indicator pages.
	// The company filter survives the round trip.
	IndicatorsBackURL = BackURLOptions{
		AllowedPrefix:      "/indicators",
		ExcludedSubpaths:   []string{"/edit", "/delete", "/new", "/export"},
		Fallback:           "/indicators",
		PreserveQueryParam: "company",
	}
)
