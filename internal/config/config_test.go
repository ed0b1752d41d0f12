package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "")
	t.Setenv("QUERY_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "rpg_market", cfg.Database)
	assert.Equal(t, 10*time.Second, cfg.QueryTimeout)
}

func TestLoadRequiresURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")

	_, err := Load()
	assert.ErrorContains(t, err, "MONGODB_URI")
}

func TestLoadCustomTimeout(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("QUERY_TIMEOUT", "30")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.QueryTimeout)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	for _, bad := range []string{"abc", "-5", "0"} {
		t.Run(bad, func(t *testing.T) {
			t.Setenv("QUERY_TIMEOUT", bad)
			_, err := Load()
			assert.ErrorContains(t, err, "QUERY_TIMEOUT")
		})
	}
}
