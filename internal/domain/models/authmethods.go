// internal/domain/models/authmethods.go
package models

// AuthMethod represents an authentication method option for the UI.
type AuthMethod struct {
	Value string // The value stored in the database
	Label string // The display label in the UI
}

// Supported auth method values.
const (
	AuthPassword = "password"
	AuthGoogle   = "google"
)

// AllAuthMethods contains all supported auth methods with their display labels.
var AllAuthMethods = []AuthMethod{
	{Value: AuthPassword, Label: "Password"},
	{Value: AuthGoogle, Label: "Google"},
}

// IsValidAuthMethod checks if a value is a valid auth method.
func IsValidAuthMethod(value string) bool {
	for _, m := range AllAuthMethods {
		if m.Value == value {
			return true
		}
	}
	return false
}

// User status values.
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)
