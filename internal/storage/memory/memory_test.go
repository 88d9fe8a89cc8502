package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, ok, err := s.Get(ctx, "students")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "students", "[]"))
	v, ok, err := s.Get(ctx, "students")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	t.Run("FailSet leaves the value alone", func(t *testing.T) {
		s.FailSet = errors.New("boom")
		assert.EqualError(t, s.Set(ctx, "students", "[1]"), "boom")
		v, _, _ := s.Get(ctx, "students")
		assert.Equal(t, "[]", v)
	})
}
