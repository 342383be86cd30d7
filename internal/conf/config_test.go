package conf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "sqlite://catalog.db")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", settings.Port)
	assert.Equal(t, EnvDevelopment, settings.Environment)
	assert.False(t, settings.IsProduction())
	assert.Equal(t, 15*time.Minute, settings.JWT.ExpiresIn)
	assert.Equal(t, 10, settings.Database.MaxOpenConns)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, settings.CORS.AllowedOrigins)
	assert.True(t, settings.RateLimit.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("JWT_EXPIRES_IN", "60")
	t.Setenv("ALLOWED_ORIGINS", "https://catalog.example.com, https://admin.example.com")

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", settings.Port)
	assert.True(t, settings.IsProduction())
	assert.Equal(t, time.Minute, settings.JWT.ExpiresIn)
	assert.Equal(t, []string{"https://catalog.example.com", "https://admin.example.com"}, settings.CORS.AllowedOrigins)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "sqlite://catalog.db")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadRejectsUnknownEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NODE_ENV", "staging")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported environment")
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitOrigins("a, b"))
	assert.Equal(t, []string{"a"}, splitOrigins("a,,"))
	assert.Empty(t, splitOrigins(""))
}
