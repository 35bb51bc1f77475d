package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Tags registered on the package validator.
const (
	TagEmail = "email_basic"
	TagPhone = "phone10"
)

var (
	// local@domain.tld; whitespace is rejected separately by hasSpace
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

var (
	once       sync.Once
	standalone *validator.Validate
)

// register adds the account field tags to v. A failure is a programming
// error, so it panics.
func register(v *validator.Validate) {
	must(v.RegisterValidation(TagEmail, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return !hasSpace(s) && emailPattern.MatchString(s)
	}))
	must(v.RegisterValidation(TagPhone, func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}))
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("validation: %v", err))
	}
}

// hasSpace reports any Unicode white space, the zero width no-break space included.
func hasSpace(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	}) >= 0
}

func engine() *validator.Validate {
	once.Do(func() {
		standalone = validator.New()
		register(standalone)
	})
	return standalone
}

// Var validates a single value against a tag expression.
func Var(value any, tag string) error {
	return engine().Var(value, tag)
}

// IsEmail reports whether s looks like local@domain.tld.
func IsEmail(s string) bool { return Var(s, TagEmail) == nil }

// IsPhone reports whether s is exactly ten ASCII digits.
func IsPhone(s string) bool { return Var(s, TagPhone) == nil }

// MaxLen reports whether s has at most n characters.
func MaxLen(s string, n int) bool { return Var(s, fmt.Sprintf("max=%d", n)) == nil }

// ToDetails converts a request binding error into a map suitable for the
// API error field.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	return map[string]string{"payload": "invalid payload"}
}
