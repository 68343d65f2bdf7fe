package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPager_Defaults(t *testing.T) {
	p := New()
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, DefaultLimit, p.Limit())
	assert.False(t, p.HasPrev())
	assert.False(t, p.HasNext())
}

func TestPager_NextOnlyAfterFullPage(t *testing.T) {
	p := New()

	p.Loaded(4)
	require.True(t, p.HasNext())
	require.True(t, p.Next())
	assert.Equal(t, 2, p.Page())
	assert.True(t, p.HasPrev())

	p.Loaded(3)
	assert.False(t, p.HasNext())
	assert.False(t, p.Next())
	assert.Equal(t, 2, p.Page())

	require.True(t, p.Prev())
	assert.Equal(t, 1, p.Page())
	assert.False(t, p.Prev())
}

func TestPager_SetLimitResetsPage(t *testing.T) {
	p := New()
	p.Loaded(4)
	p.Next()
	p.Loaded(4)
	p.Next()
	require.Equal(t, 3, p.Page())

	require.NoError(t, p.SetLimit(12))
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 12, p.Limit())
	assert.False(t, p.HasNext())
}

func TestPager_RejectsUnknownLimit(t *testing.T) {
	p := New()
	assert.ErrorIs(t, p.SetLimit(5), ErrUnsupportedLimit)
	assert.Equal(t, DefaultLimit, p.Limit())
}
