package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setAll(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MYSQL_USER", "app")
	t.Setenv("MYSQL_PASSWORD", "secret")
	t.Setenv("MYSQL_DB", "storefront")
	t.Setenv("MYSQL_HOST", "localhost")
	t.Setenv("MYSQL_PORT", "3306")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GO_ENV", "dev")
}

func TestLoad(t *testing.T) {
	setAll(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "app", cfg.MySQLUser)
	assert.Equal(t, 3306, cfg.MySQLPort)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
}

func TestLoadMissingRequired(t *testing.T) {
	keys := []string{"PORT", "MYSQL_USER", "MYSQL_PASSWORD", "MYSQL_DB", "MYSQL_HOST", "MYSQL_PORT", "JWT_SECRET", "GO_ENV"}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			setAll(t)
			t.Setenv(key, "")

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadBadPort(t *testing.T) {
	setAll(t)
	t.Setenv("MYSQL_PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
