package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserResolver_CacheLookup(t *testing.T) {
	resolver := NewUserResolver(nil)

	_, ok := resolver.lookup(1, 2)
	assert.False(t, ok)

	resolver.store(1, 2, "Alice")

	name, ok := resolver.lookup(1, 2)
	require.True(t, ok)
	assert.Equal(t, "Alice", name)

	// Expired entries miss
	resolver.cache[1][3] = cachedName{name: "Bob", expiry: time.Now().Add(-time.Second)}
	_, ok = resolver.lookup(1, 3)
	assert.False(t, ok)
}

func TestUserResolver_InvalidateGuild(t *testing.T) {
	resolver := NewUserResolver(nil)
	resolver.store(1, 2, "Alice")
	resolver.store(9, 2, "Zed")

	resolver.InvalidateGuild(1)

	_, ok := resolver.lookup(1, 2)
	assert.False(t, ok)

	name, ok := resolver.lookup(9, 2)
	require.True(t, ok)
	assert.Equal(t, "Zed", name)

	// Invalidating a guild with no cached names is a no-op
	resolver.InvalidateGuild(123)
}
