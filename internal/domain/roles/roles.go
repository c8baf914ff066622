// Package roles defines the staff roles and the guard used to gate every
// record operation.
package roles

import "strings"

const (
	Mentor     = "mentor"
	Consultant = "consultant"
)

// All lists every known role in display order.
var All = []string{Mentor, Consultant}

// Normalize lowercases and trims a role name.
func Normalize(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// Valid reports whether role names a known role after normalization.
func Valid(role string) bool {
	n := Normalize(role)
	for _, r := range All {
		if r == n {
			return true
		}
	}
	return false
}

// Allow reports whether any role in have satisfies any role in required.
// An empty required set denies: callers must name at least one role.
func Allow(have []string, required ...string) bool {
	for _, need := range required {
		n := Normalize(need)
		if n == "" {
			continue
		}
		for _, h := range have {
			if Normalize(h) == n {
				return true
			}
		}
	}
	return false
}

// Clean normalizes, de-duplicates, and drops unknown roles, keeping the
// order of All.
func Clean(in []string) []string {
	seen := make(map[string]bool, len(in))
	for _, r := range in {
		seen[Normalize(r)] = true
	}
	out := make([]string, 0, len(All))
	for _, r := range All {
		if seen[r] {
			out = append(out, r)
		}
	}
	return out
}

// Primary returns the highest-privilege role in have, or "" when none is
// known. Mentor outranks Consultant.
func Primary(have []string) string {
	c := Clean(have)
	if len(c) == 0 {
		return ""
	}
	return c[0]
}
