package finance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCache_TTL(t *testing.T) {
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	c := NewChartCache(time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", []byte("img"))
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("img"), got)

	got[0] = 'X'
	again, _ := c.Get("k")
	assert.Equal(t, []byte("img"), again, "callers must not alias cached bytes")

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestChartCache_Disabled(t *testing.T) {
	c := NewChartCache(0)
	c.Set("k", []byte("img"))
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestChartCache_GetOrRender(t *testing.T) {
	c := NewChartCache(time.Minute)
	calls := 0
	render := func() ([]byte, error) {
		calls++
		return []byte("img"), nil
	}
	for i := 0; i < 3; i++ {
		img, err := c.GetOrRender("k", render)
		require.NoError(t, err)
		assert.Equal(t, []byte("img"), img)
	}
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err := c.GetOrRender("other", func() ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	_, ok := c.Get("other")
	assert.False(t, ok)
}
