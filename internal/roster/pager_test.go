package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aanand-mishra/student-roster/internal/types"
)

func threeStudents() []types.Student {
	return []types.Student{{ID: "A"}, {ID: "B"}, {ID: "C"}}
}

func currentID(p *Pager) string {
	s, ok := p.Current()
	if !ok {
		return ""
	}
	return s.ID
}

func TestPager_Moves(t *testing.T) {
	p := NewPager(threeStudents(), "B")
	assert.Equal(t, "B", currentID(p))

	pos, total := p.Position()
	assert.Equal(t, 2, pos)
	assert.Equal(t, 3, total)

	assert.True(t, p.Next())
	assert.Equal(t, "C", currentID(p))
	assert.False(t, p.Next(), "next past the end is ignored")
	assert.Equal(t, "C", currentID(p))

	assert.True(t, p.First())
	assert.Equal(t, "A", currentID(p))
	assert.False(t, p.Prev(), "prev before the start is ignored")

	assert.True(t, p.Last())
	assert.Equal(t, "C", currentID(p))
	assert.True(t, p.Prev())
	assert.Equal(t, "B", currentID(p))
}

func TestPager_NotFound(t *testing.T) {
	p := NewPager(threeStudents(), "Z")

	_, ok := p.Current()
	assert.False(t, ok)
	pos, total := p.Position()
	assert.Equal(t, 0, pos)
	assert.Equal(t, 3, total)

	assert.False(t, p.Next())
	assert.False(t, p.Prev())

	assert.True(t, p.Last())
	assert.Equal(t, "C", currentID(p))
}

func TestPager_Empty(t *testing.T) {
	p := NewPager(nil, "A")
	assert.False(t, p.First())
	assert.False(t, p.Last())
	_, ok := p.Current()
	assert.False(t, ok)
}
