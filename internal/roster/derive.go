package roster

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// SortMode is one of the mutually exclusive display orderings.
type SortMode int

const (
	SortNone SortMode = iota
	SortLastNameAsc
	SortLastNameDesc
	SortGPAAsc
	SortGPADesc
)

var sortModeNames = map[SortMode]string{
	SortNone:         "none",
	SortLastNameAsc:  "last_name_asc",
	SortLastNameDesc: "last_name_desc",
	SortGPAAsc:       "gpa_asc",
	SortGPADesc:      "gpa_desc",
}

func (m SortMode) String() string {
	if name, ok := sortModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("SortMode(%d)", int(m))
}

// ParseSortMode is the inverse of String. The empty string means SortNone.
func ParseSortMode(s string) (SortMode, error) {
	if s == "" {
		return SortNone, nil
	}
	for mode, name := range sortModeNames {
		if name == s {
			return mode, nil
		}
	}
	return SortNone, fmt.Errorf("unknown sort mode %q", s)
}

// Indicator is the arrow shown next to the sort button the mode belongs to.
func (m SortMode) Indicator() string {
	switch m {
	case SortLastNameAsc, SortGPAAsc:
		return "▲"
	case SortLastNameDesc, SortGPADesc:
		return "▼"
	default:
		return ""
	}
}

// Filter returns the records whose ID contains query (case-sensitive) or
// whose Major contains query ignoring case. A blank query keeps everything.
// The result is a new slice in input order.
func Filter(students []types.Student, query string) []types.Student {
	if strings.TrimSpace(query) == "" {
		return slices.Clone(students)
	}

	lowered := strings.ToLower(query)
	out := make([]types.Student, 0, len(students))
	for _, s := range students {
		if strings.Contains(s.ID, query) || strings.Contains(strings.ToLower(s.Major), lowered) {
			out = append(out, s)
		}
	}
	return out
}

// Sort returns a stably sorted copy of students.
// Equal keys keep their input order in both directions.
func Sort(students []types.Student, mode SortMode) []types.Student {
	out := slices.Clone(students)
	if out == nil {
		out = []types.Student{}
	}

	switch mode {
	case SortLastNameAsc, SortLastNameDesc:
		// A Collator keeps internal buffers and must not be shared between
		// goroutines, so each call gets its own.
		c := collate.New(language.English)
		if mode == SortLastNameAsc {
			slices.SortStableFunc(out, func(a, b types.Student) int {
				return c.CompareString(a.LastName, b.LastName)
			})
		} else {
			slices.SortStableFunc(out, func(a, b types.Student) int {
				return c.CompareString(b.LastName, a.LastName)
			})
		}
	case SortGPAAsc:
		slices.SortStableFunc(out, func(a, b types.Student) int {
			return cmp.Compare(a.GPA, b.GPA)
		})
	case SortGPADesc:
		slices.SortStableFunc(out, func(a, b types.Student) int {
			return cmp.Compare(b.GPA, a.GPA)
		})
	}
	return out
}

// Derive computes the display list from scratch.
func Derive(full []types.Student, query string, mode SortMode) []types.Student {
	return Sort(Filter(full, query), mode)
}
