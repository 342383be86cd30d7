package datastore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/conf"
)

// newTestStore opens a fresh SQLite database in a per-test temp directory.
func newTestStore(t *testing.T) Interface {
	t.Helper()

	settings := &conf.Settings{
		Environment: conf.EnvDevelopment,
		Database: conf.DatabaseSettings{
			URL: "sqlite://" + filepath.Join(t.TempDir(), "test.db"),
		},
	}

	ds := New(settings)
	require.NoError(t, ds.Open())
	t.Cleanup(func() {
		require.NoError(t, ds.Close())
	})
	return ds
}

// newTestUser creates an account and returns its id.
func newTestUser(t *testing.T, ds Interface, email string) uint {
	t.Helper()
	user := &User{Email: email, Password: "hashed"}
	require.NoError(t, ds.CreateUser(user))
	require.NotZero(t, user.ID)
	return user.ID
}

func TestNewSelectsStoreByURL(t *testing.T) {
	postgres := New(&conf.Settings{Database: conf.DatabaseSettings{URL: "postgres://u:p@localhost/catalog"}})
	assert.IsType(t, &PostgresStore{}, postgres)

	postgresql := New(&conf.Settings{Database: conf.DatabaseSettings{URL: "postgresql://u:p@localhost/catalog"}})
	assert.IsType(t, &PostgresStore{}, postgresql)

	sqlite := New(&conf.Settings{Database: conf.DatabaseSettings{URL: "sqlite://catalog.db"}})
	assert.IsType(t, &SQLiteStore{}, sqlite)
}

func TestRedactedURL(t *testing.T) {
	assert.Equal(t, "postgres://***@db:5432/catalog", redactedURL("postgres://user:secret@db:5432/catalog"))
	assert.Equal(t, "sqlite://catalog.db", redactedURL("sqlite://catalog.db"))
}

func TestWithConnectTimeout(t *testing.T) {
	assert.Equal(t, "postgres://db/catalog?connect_timeout=5",
		withConnectTimeout("postgres://db/catalog", 5*time.Second))
	assert.Equal(t, "postgres://db/catalog?sslmode=disable&connect_timeout=5",
		withConnectTimeout("postgres://db/catalog?sslmode=disable", 5*time.Second))
	assert.Equal(t, "postgres://db/catalog?connect_timeout=1",
		withConnectTimeout("postgres://db/catalog?connect_timeout=1", 5*time.Second))
	assert.Equal(t, "postgres://db/catalog", withConnectTimeout("postgres://db/catalog", 0))
}

func TestCreateUserLowercasesEmail(t *testing.T) {
	ds := newTestStore(t)

	user := &User{Email: "Pianist@Example.COM", Password: "hashed"}
	require.NoError(t, ds.CreateUser(user))
	assert.Equal(t, "pianist@example.com", user.Email)

	found, err := ds.GetUserByEmail("PIANIST@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestGetUserByEmailNotFound(t *testing.T) {
	ds := newTestStore(t)

	_, err := ds.GetUserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserByID(t *testing.T) {
	ds := newTestStore(t)
	id := newTestUser(t, ds, "pianist@example.com")

	user, err := ds.GetUserByID(id)
	require.NoError(t, err)
	assert.Equal(t, "pianist@example.com", user.Email)

	_, err = ds.GetUserByID(id + 1000)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPing(t *testing.T) {
	ds := newTestStore(t)
	assert.NoError(t, ds.Ping())
}
