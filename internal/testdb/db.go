package testdb

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/wordflip/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// URLEnv names the variable holding the test database URL.
const URLEnv = "WORDFLIP_TEST_DATABASE_URL"

// URL returns the configured test database URL, or "".
func URL() string {
	return os.Getenv(URLEnv)
}

// ShouldSkip reports whether no test database is configured.
func ShouldSkip() bool {
	return URL() == ""
}

// Open connects to the test database and applies all migrations. The test
// is skipped when no database is configured, and the connection is closed
// on cleanup.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	if ShouldSkip() {
		t.Skipf("%s not set", URLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, URL(), 5*time.Second)
	require.NoError(t, err, "connecting to %s", MaskURL(URL()))
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, postgres.Migrate(ctx, db, postgres.MigrateUp, nil), "applying migrations")
	return db
}

// MaskURL hides the password of a database URL for logging.
func MaskURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}
	if parsed.User != nil {
		parsed.User = url.UserPassword(parsed.User.Username(), "****")
	}
	return parsed.String()
}
