// Package inputval validates form input structs and turns failures into
// user-facing messages.
//
// Structs declare rules with `validate` tags (go-playground/validator) and
// a human label with `label` tags:
//
//	type createCompanyInput struct {
//		CompanyID string `validate:"required,max=15" label:"Company ID"`
//		Email     string `validate:"omitempty,email,max=200" label:"Email"`
//	}
//
// Beyond the validator built-ins, this package registers objectid,
// httpurl, authmethod, groupname, rating, isodate and clock.
package inputval

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string // struct field name, e.g. "CompanyID"
	Label   string // label tag, e.g. "Company ID"
	Tag     string // failed rule, e.g. "max"
	Message string // user-facing sentence
}

// Result collects every failed rule for a struct, in field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return r != nil && len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// ByField returns the first message per struct field name.
func (r *Result) ByField() map[string]string {
	out := make(map[string]string)
	if r == nil {
		return out
	}
	for _, e := range r.Errors {
		if _, seen := out[e.Field]; !seen {
			out[e.Field] = e.Message
		}
	}
	return out
}

var (
	once sync.Once
	v    *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return f.Name
		})
		must(v.RegisterValidation("email", func(fl validator.FieldLevel) bool { return IsValidEmail(fl.Field().String()) }))
		must(v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool { return IsValidObjectID(fl.Field().String()) }))
		must(v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool { return IsValidHTTPURL(fl.Field().String()) }))
		must(v.RegisterValidation("authmethod", func(fl validator.FieldLevel) bool { return models.IsValidAuthMethod(fl.Field().String()) }))
		must(v.RegisterValidation("groupname", func(fl validator.FieldLevel) bool { return models.IsValidGroupName(fl.Field().String()) }))
		must(v.RegisterValidation("rating", func(fl validator.FieldLevel) bool { return models.IsValidRating(fl.Field().String()) }))
		must(v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool { return IsValidDate(fl.Field().String()) }))
		must(v.RegisterValidation("clock", func(fl validator.FieldLevel) bool { return IsValidClock(fl.Field().String()) }))
	})
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate checks s against its tags. A non-struct argument is a
// programming error and panics.
func Validate(s any) *Result {
	res := &Result{}
	err := engine().Struct(s)
	if err == nil {
		return res
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		panic(fmt.Sprintf("inputval: %v", err))
	}
	for _, fe := range ves {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.StructField(),
			Label:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return res
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "email":
		return "A valid email address is required."
	case "objectid":
		return label + " is not a valid ID."
	case "httpurl":
		return label + " must be a valid http or https URL."
	case "authmethod", "groupname", "rating", "oneof":
		return "Please select a valid " + strings.ToLower(label) + "."
	case "isodate":
		return label + " must be a date in YYYY-MM-DD format."
	case "clock":
		return label + " must be a time in HH:MM format."
	case "numeric", "number":
		return label + " must be a number."
	}
	return label + " is invalid."
}

// IsValidEmail reports whether s is a bare address (no display name) with
// a well-formed local part and domain. Single-label domains are allowed.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t<>") {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	if !dotsOK(s[:at]) || !dotsOK(s[at+1:]) {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Name == "" && addr.Address == s
}

func dotsOK(part string) bool {
	return !strings.HasPrefix(part, ".") &&
		!strings.HasSuffix(part, ".") &&
		!strings.Contains(part, "..")
}

// IsValidObjectID reports whether s (trimmed) is a 24-char hex ObjectID.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	return err == nil
}

// IsValidHTTPURL reports whether s (trimmed) is an absolute http(s) URL with a host.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidDate reports whether s is a YYYY-MM-DD calendar date.
func IsValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsValidClock reports whether s is an HH:MM 24-hour time.
func IsValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
