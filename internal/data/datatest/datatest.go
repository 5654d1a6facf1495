// Package datatest opens a migrated SQLite data context for tests.
package datatest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"basketball-manager/internal/core/database"
	"basketball-manager/internal/data"
)

// Clock is a settable test clock.
type Clock struct{ T time.Time }

func (c *Clock) Now() time.Time { return c.T }

func (c *Clock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// Open returns a context over a fresh database file under t.TempDir with
// foreign keys enforced and every migration applied.
func Open(t *testing.T, opts ...data.Option) *data.Context {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=1"
	db, err := database.NewGorm(database.Opts{Driver: "sqlite", DSN: dsn, LogLevel: "silent"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	c, err := data.New(db, opts...)
	require.NoError(t, err)
	require.NoError(t, c.Migrate(context.Background()))
	return c
}
