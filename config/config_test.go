package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("parses super admin IDs and flags", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "test")
		t.Setenv("SUPER_ADMIN_IDS", "100, 200,300")
		t.Setenv("ALLOW_SELF_PROPAGATION", "true")
		t.Setenv("ALLOW_SELF_ELIMINATION", "0")

		cfg, err := load()
		require.NoError(t, err)

		assert.Equal(t, []int64{100, 200, 300}, cfg.SuperAdminIDs)
		assert.True(t, cfg.AllowSelfPropagation)
		assert.False(t, cfg.AllowSelfElimination)
	})

	t.Run("rejects malformed super admin IDs", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "test")
		t.Setenv("SUPER_ADMIN_IDS", "100,not-a-number")

		_, err := load()
		assert.Error(t, err)
	})

	t.Run("requires token and database outside test environment", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("DISCORD_TOKEN", "")
		t.Setenv("DATABASE_URL", "")

		_, err := load()
		assert.Error(t, err)
	})

	t.Run("defaults environment to development", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "")
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/scoreboard")
		t.Setenv("SUPER_ADMIN_IDS", "")

		cfg, err := load()
		require.NoError(t, err)
		assert.Equal(t, "development", cfg.Environment)
		assert.Empty(t, cfg.SuperAdminIDs)
	})
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool("1"))
	assert.True(t, parseBool("true"))
	assert.True(t, parseBool("YES"))
	assert.True(t, parseBool(" on "))
	assert.False(t, parseBool(""))
	assert.False(t, parseBool("false"))
	assert.False(t, parseBool("banana"))
}
