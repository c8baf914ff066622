// Package normalize provides the canonical string forms stored in MongoDB.
package normalize

import "strings"

// Email trims and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// AuthMethod trims and lowercases an auth method value.
func AuthMethod(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status trims and lowercases a user status.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role trims and lowercases a role name.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a query string value and preserves case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// CompanyID trims and uppercases a business identifier ("acme-01" -> "ACME-01").
func CompanyID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Phone trims and collapses internal runs of whitespace to a single space.
func Phone(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FilterID trims an ID taken from a filter dropdown. The sentinel "all"
// (any case) means no filter and becomes "".
func FilterID(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}
