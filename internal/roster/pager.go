package roster

import (
	"slices"

	"github.com/aanand-mishra/student-roster/internal/types"
)

// Pager steps through a roster one record at a time (the detail screen).
// Moves that would leave the roster are ignored.
type Pager struct {
	students []types.Student
	index    int
}

// NewPager positions a pager on the first record with the given id.
// If there is none the pager starts in the not-found state: Current
// reports false until First or Last is called.
func NewPager(students []types.Student, id string) *Pager {
	return &Pager{
		students: slices.Clone(students),
		index:    indexOf(students, id),
	}
}

// Current returns the record under the cursor.
func (p *Pager) Current() (types.Student, bool) {
	if p.index < 0 || p.index >= len(p.students) {
		return types.Student{}, false
	}
	return p.students[p.index], true
}

// Position is the 1-based index of the current record and the total.
// It is 0 when nothing is selected.
func (p *Pager) Position() (int, int) {
	if _, ok := p.Current(); !ok {
		return 0, len(p.students)
	}
	return p.index + 1, len(p.students)
}

func (p *Pager) First() bool { return p.moveTo(0) }

func (p *Pager) Last() bool { return p.moveTo(len(p.students) - 1) }

// Prev and Next do nothing from the not-found state.
func (p *Pager) Prev() bool {
	if p.index < 0 {
		return false
	}
	return p.moveTo(p.index - 1)
}

func (p *Pager) Next() bool {
	if p.index < 0 {
		return false
	}
	return p.moveTo(p.index + 1)
}

func (p *Pager) moveTo(i int) bool {
	if i < 0 || i >= len(p.students) {
		return false
	}
	p.index = i
	return true
}
