package scoreboard

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClearRegistry_NoncesAreUnique(t *testing.T) {
	registry := newClearRegistry()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		nonce := registry.nonce()
		assert.False(t, seen[nonce])
		seen[nonce] = true
	}
}

func TestClearRegistry_AddPeekPop(t *testing.T) {
	registry := newClearRegistry()
	prompt := &pendingClear{guildID: 42, group: "weekly", actorID: 7}

	nonce := registry.nonce()
	registry.add(nonce, prompt)

	peeked, ok := registry.peek(nonce)
	require.True(t, ok)
	assert.Same(t, prompt, peeked)

	// peek does not consume the prompt
	peeked, ok = registry.peek(nonce)
	require.True(t, ok)
	assert.Same(t, prompt, peeked)

	popped, ok := registry.pop(nonce)
	require.True(t, ok)
	assert.Same(t, prompt, popped)

	_, ok = registry.peek(nonce)
	assert.False(t, ok)
}

func TestClearRegistry_PopConsumesExactlyOnce(t *testing.T) {
	registry := newClearRegistry()
	nonce := registry.nonce()
	registry.add(nonce, &pendingClear{guildID: 1})

	_, ok := registry.pop(nonce)
	require.True(t, ok)

	// Only one of confirm, cancel, and timeout may win
	_, ok = registry.pop(nonce)
	assert.False(t, ok)

	_, ok = registry.pop("unknown-nonce")
	assert.False(t, ok)
}

func TestClearRegistry_PopStopsTimeout(t *testing.T) {
	registry := newClearRegistry()

	var fired atomic.Bool
	prompt := &pendingClear{
		guildID: 1,
		timer: time.AfterFunc(50*time.Millisecond, func() {
			fired.Store(true)
		}),
	}

	nonce := registry.nonce()
	registry.add(nonce, prompt)

	_, ok := registry.pop(nonce)
	require.True(t, ok)

	time.Sleep(150 * time.Millisecond)
	assert.False(t, fired.Load())
}
