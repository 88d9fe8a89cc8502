// Package validation wires the record format rules into
// go-playground/validator.
//
// Two custom tags are registered on top of the built-in ones:
//
//	major — one ASCII letter followed by exactly three digits ("C101")
//	gpa   — one or more digits, optionally "." and one or two digits,
//	        and small enough to parse as a finite float64
//
// Both the HTTP handlers and the terminal forms validate through Struct so
// the rules cannot drift apart.
package validation

import (
	"math"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	majorPattern = regexp.MustCompile(`^[A-Za-z][0-9]{3}$`)
	gpaPattern   = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)
)

// validate is built once; a *validator.Validate caches struct metadata and
// is safe for concurrent use.
var validate = New()

// New returns a validator with the "major" and "gpa" tags registered.
func New() *validator.Validate {
	v := validator.New()

	// RegisterValidation only fails for an empty tag name or a nil func,
	// neither of which can happen here.
	_ = v.RegisterValidation("major", func(fl validator.FieldLevel) bool {
		return majorPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("gpa", func(fl validator.FieldLevel) bool {
		return ValidGPA(fl.Field().String())
	})

	return v
}

// Struct checks all validate:"..." tags on s.
// It returns nil or a validator.ValidationErrors.
func Struct(s any) error {
	return validate.Struct(s)
}

// ValidMajor reports whether major matches the major format.
func ValidMajor(major string) bool {
	return majorPattern.MatchString(major)
}

// ValidGPA reports whether gpa is an acceptable GPA text.
func ValidGPA(gpa string) bool {
	if !gpaPattern.MatchString(gpa) {
		return false
	}
	f, err := strconv.ParseFloat(gpa, 64)
	return err == nil && !math.IsInf(f, 0)
}
