// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles: the
// roster, storage, handlers and the terminal UI can all import types
// without depending on each other.
package types

import (
	"encoding/json"
	"fmt"
)

// Student represents one record of the roster.
//
// The json:"..." tags are the persisted format: the whole roster is stored
// as a single JSON array of these objects under one storage key, so the
// names must stay stable (camelCase, matching existing data).
type Student struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Major     string  `json:"major"`
	GPA       float64 `json:"gpa"`
}

// StudentInput is what an add or edit form submits.
//
// GPA is kept as the literal text the user typed so that the "gpa"
// validation rule can check the number of fractional digits ("3.999" must
// be rejected, which a float64 cannot tell apart from "3.999000").
// json.Number decodes a JSON number without losing its spelling.
//
// validate:"..." tags are checked by internal/validation, which registers
// the custom "major" and "gpa" rules.
type StudentInput struct {
	ID        string      `json:"id"        validate:"required"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Major     string      `json:"major"     validate:"major"`
	GPA       json.Number `json:"gpa"       validate:"gpa"`
}

// Student converts a validated input into a Student.
// Call it only after validation succeeded; the GPA text is parsed here.
func (in StudentInput) Student() (Student, error) {
	gpa, err := in.GPA.Float64()
	if err != nil {
		return Student{}, fmt.Errorf("StudentInput.Student: parse gpa %q: %w", in.GPA, err)
	}

	return Student{
		ID:        in.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Major:     in.Major,
		GPA:       gpa,
	}, nil
}

// InputFrom pre-fills a form from an existing record (used by edit).
func InputFrom(s Student) StudentInput {
	return StudentInput{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Major:     s.Major,
		GPA:       json.Number(FormatGPA(s.GPA)),
	}
}

// FormatGPA renders a GPA with two decimals, the way it is displayed.
func FormatGPA(gpa float64) string {
	return fmt.Sprintf("%.2f", gpa)
}
