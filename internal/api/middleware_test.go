package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/security"
)

func TestAuthGuardMissingToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodGet, "/api/genre", nil, "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access denied. No token provided", decodeEnvelope(t, rec).Message)
}

func TestAuthGuardMalformedHeader(t *testing.T) {
	env := newTestEnv(t)

	req, rec := rawRequest(http.MethodGet, "/api/genre")
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	env.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid Authorization header format", decodeEnvelope(t, rec).Message)
}

func TestAuthGuardExpiredToken(t *testing.T) {
	env := newTestEnv(t)

	expired := security.NewTokenManager(env.settings.JWT.Secret, -time.Minute)
	token, err := expired.Generate(1, "late@example.com")
	require.NoError(t, err)

	rec := env.request(http.MethodGet, "/api/genre", nil, token)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token expired.", decodeEnvelope(t, rec).Message)
}

func TestAuthGuardForeignSecret(t *testing.T) {
	env := newTestEnv(t)

	foreign := security.NewTokenManager("some-other-secret", time.Hour)
	token, err := foreign.Generate(1, "spy@example.com")
	require.NoError(t, err)

	rec := env.request(http.MethodGet, "/api/genre", nil, token)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token.", decodeEnvelope(t, rec).Message)
}

func TestAuthGuardGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodGet, "/api/genre", nil, "garbage")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token.", decodeEnvelope(t, rec).Message)
}
