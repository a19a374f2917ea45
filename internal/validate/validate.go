// Package validate implements form validation for the action layer.  Rules
// collect per-field error messages; a form that fails validation never
// reaches a repository.
package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{5,19}$`)
)

// Errors maps a form field name to the messages recorded against it.
type Errors map[string][]string

// Add appends a message for a field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Any reports whether at least one field has an error.
func (e Errors) Any() bool { return len(e) > 0 }

// Form accumulates validation results for one submission.
type Form struct{ errs Errors }

func New() *Form { return &Form{errs: Errors{}} }

// Errors returns the collected field errors.
func (f *Form) Errors() Errors { return f.errs }

// Require records an error when the value is empty after trimming.
func (f *Form) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.errs.Add(field, field+" is required")
	}
}

// Email records an error when a non-empty value is not a plausible address.
func (f *Form) Email(field, value string) {
	v := strings.TrimSpace(value)
	if v != "" && !emailRe.MatchString(v) {
		f.errs.Add(field, "invalid email address")
	}
}

// Phone records an error when a non-empty value is not a plausible phone
// number.
func (f *Form) Phone(field, value string) {
	v := strings.TrimSpace(value)
	if v != "" && !phoneRe.MatchString(v) {
		f.errs.Add(field, "invalid phone number")
	}
}

// OneOf records an error unless the value is one of the allowed choices.
func (f *Form) OneOf(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	f.errs.Add(field, "invalid choice for "+field)
}

// Password enforces the account password policy: 6-32 characters with at
// least one uppercase letter, one digit and one symbol.
func (f *Form) Password(field, value string) {
	if n := utf8.RuneCountInString(value); n < 6 || n > 32 {
		f.errs.Add(field, "password must be between 6 and 32 characters")
		return
	}
	var upper, digit, symbol bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			symbol = true
		}
	}
	if !upper || !digit || !symbol {
		f.errs.Add(field, "password must contain an uppercase letter, a digit and a symbol")
	}
}
