package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/conf"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/datastore"
	apperrors "github.com/christian-harsana/music-sheet-catalog-back-end/internal/errors"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/logging"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/security"
)

// testEnv wires a controller against a fresh SQLite store with the rate
// limiter disabled so tests can hammer the auth routes.
type testEnv struct {
	t        *testing.T
	echo     *echo.Echo
	ds       datastore.Interface
	settings *conf.Settings
	tokens   *security.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithSettings(t, &conf.Settings{
		Environment: conf.EnvDevelopment,
		JWT: conf.JWTSettings{
			Secret:    "test-secret",
			ExpiresIn: 15 * time.Minute,
		},
	})
}

func newTestEnvWithSettings(t *testing.T, settings *conf.Settings) *testEnv {
	t.Helper()

	if settings.Database.URL == "" {
		settings.Database.URL = "sqlite://" + filepath.Join(t.TempDir(), "test.db")
	}

	ds := datastore.New(settings)
	require.NoError(t, ds.Open())
	t.Cleanup(func() {
		require.NoError(t, ds.Close())
	})

	tokens := security.NewTokenManager(settings.JWT.Secret, settings.JWT.ExpiresIn)

	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(settings, logging.ForService("test"))
	New(e, ds, settings, tokens)

	return &testEnv{t: t, echo: e, ds: ds, settings: settings, tokens: tokens}
}

// request performs an in-process request. A non-empty token is sent as a
// bearer credential.
func (env *testEnv) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(env.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

// rawRequest builds a bodyless request and recorder for tests that need full
// control over headers.
func rawRequest(method, path string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

// envelope mirrors the response body with the data left raw for per-test
// decoding.
type envelope struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Data       json.RawMessage        `json:"data"`
	Errors     []apperrors.FieldError `json:"errors"`
	Pagination *Pagination            `json:"pagination"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) envelope {
	t.Helper()
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, out))
	return env
}

// signup registers an account and returns a valid token for it.
func (env *testEnv) signup(email, password string) string {
	env.t.Helper()

	rec := env.request(http.MethodPost, "/api/auth/signup", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(env.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.request(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(env.t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	decodeData(env.t, rec, &data)
	require.NotEmpty(env.t, data.Token)
	return data.Token
}
