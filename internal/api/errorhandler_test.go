package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/conf"
	apperrors "github.com/christian-harsana/music-sheet-catalog-back-end/internal/errors"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/logging"
)

func handleError(t *testing.T, settings *conf.Settings, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/sheet", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(settings, logging.ForService("test"))
	handler(err, ctx)
	return rec
}

func devSettings() *conf.Settings {
	return &conf.Settings{Environment: conf.EnvDevelopment}
}

func prodSettings() *conf.Settings {
	return &conf.Settings{Environment: conf.EnvProduction}
}

func TestClassifyAppErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", apperrors.NewNotFound("Sheet not found"), http.StatusNotFound, "Sheet not found"},
		{"conflict", apperrors.NewConflict("User already exists"), http.StatusConflict, "User already exists"},
		{"unauthenticated", apperrors.NewUnauthenticated("Access denied. No token provided"), http.StatusUnauthorized, "Access denied. No token provided"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := handleError(t, devSettings(), tc.err)
			assert.Equal(t, tc.status, rec.Code)

			body := decodeEnvelope(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestClassifyValidationCarriesFields(t *testing.T) {
	err := apperrors.NewValidation("Validation Error",
		apperrors.FieldError{Field: "email", Message: "Invalid email address"})

	rec := handleError(t, devSettings(), err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Validation Error", body.Message)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "email", body.Errors[0].Field)
}

func TestClassifyJWTErrors(t *testing.T) {
	expired := handleError(t, devSettings(), jwt.ErrTokenExpired)
	assert.Equal(t, http.StatusUnauthorized, expired.Code)
	assert.Equal(t, "Token expired.", decodeEnvelope(t, expired).Message)

	malformed := handleError(t, devSettings(), jwt.ErrTokenMalformed)
	assert.Equal(t, http.StatusUnauthorized, malformed.Code)
	assert.Equal(t, "Invalid token.", decodeEnvelope(t, malformed).Message)

	badSignature := handleError(t, devSettings(), jwt.ErrTokenSignatureInvalid)
	assert.Equal(t, "Invalid token.", decodeEnvelope(t, badSignature).Message)
}

func TestClassifyEchoHTTPError(t *testing.T) {
	rec := handleError(t, devSettings(), echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method Not Allowed", decodeEnvelope(t, rec).Message)
}

func TestInternalErrorDisclosureByEnvironment(t *testing.T) {
	cause := errors.New("pq: connection refused")

	dev := handleError(t, devSettings(), apperrors.NewInternal(cause))
	assert.Equal(t, http.StatusInternalServerError, dev.Code)
	assert.Equal(t, "pq: connection refused", decodeEnvelope(t, dev).Message)

	prod := handleError(t, prodSettings(), apperrors.NewInternal(cause))
	assert.Equal(t, http.StatusInternalServerError, prod.Code)
	assert.Equal(t, "An unexpected error occurred. Please try again later.", decodeEnvelope(t, prod).Message)
	assert.NotContains(t, prod.Body.String(), "connection refused")
}

func TestUnknownErrorDisclosureByEnvironment(t *testing.T) {
	cause := errors.New("something broke")

	dev := handleError(t, devSettings(), cause)
	assert.Equal(t, "something broke", decodeEnvelope(t, dev).Message)

	prod := handleError(t, prodSettings(), cause)
	assert.Equal(t, "An unexpected error occurred. Please try again later.", decodeEnvelope(t, prod).Message)
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.Contains(t, rec.Body.String(), `"database_status":"connected"`)
	assert.Contains(t, rec.Body.String(), conf.EnvDevelopment)
}

func TestRateLimiterOnAuthRoutes(t *testing.T) {
	settings := &conf.Settings{
		Environment: conf.EnvDevelopment,
		JWT:         conf.JWTSettings{Secret: "test-secret", ExpiresIn: 15 * time.Minute},
		RateLimit:   conf.RateLimitSettings{Enabled: true, PerMin: 5},
	}
	env := newTestEnvWithSettings(t, settings)

	var lastCode int
	for i := 0; i < 10; i++ {
		rec := env.request(http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "pianist@example.com",
			"password": "wrong-password",
		}, "")
		lastCode = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
