package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGetOverwrite(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, found, err := c.Get(ctx, "CURVE")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "CURVE", "first"))
	require.NoError(t, c.Set(ctx, "CURVE", "second"))

	v, found, err := c.Get(ctx, "CURVE")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", v)

	require.NoError(t, c.Flush(ctx))
	_, found, err = c.Get(ctx, "CURVE")
	require.NoError(t, err)
	assert.False(t, found)
}
