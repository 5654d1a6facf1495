package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"basketball-manager/internal/core/config"
	"basketball-manager/internal/data"
	"basketball-manager/internal/service/messaging"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		App: config.App{Env: "test"},
		DB: config.DB{
			Driver:   "sqlite",
			DSN:      "file:" + filepath.Join(t.TempDir(), "app.db") + "?_foreign_keys=1",
			LogLevel: "silent",
		},
		JWT:      config.JWT{Secret: "s", Issuer: "test", AccessTokenTTLMin: 5},
		Identity: config.Identity{Password: config.Password{RequiredLength: 6}, MaxFailedAccess: 5, LockoutMinutes: 5},
	}
}

func TestNewAndPrepare(t *testing.T) {
	ctx := context.Background()
	a, err := New(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.Nil(t, a.Cache)
	assert.IsType(t, messaging.NullMessageSender{}, a.Sender)

	require.NoError(t, a.Prepare(ctx, false))
	require.NoError(t, a.Prepare(ctx, false))

	n, err := a.Settings.GetCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	exists, err := a.Roles.Exists(ctx, "Administrator")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPrepareSkipSeed(t *testing.T) {
	ctx := context.Background()
	a, err := New(testConfig(t), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NoError(t, a.Prepare(ctx, true))
	n, err := a.Settings.GetCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.Driver = "oracle"
	_, err := New(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewClosesDatabaseWhenDataContextFails(t *testing.T) {
	var opened *gorm.DB
	orig := newDataContext
	newDataContext = func(db *gorm.DB) (*data.Context, error) {
		opened = db
		return nil, errors.New("model configuration")
	}
	t.Cleanup(func() { newDataContext = orig })

	_, err := New(testConfig(t), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model configuration")

	require.NotNil(t, opened)
	sqlDB, err := opened.DB()
	require.NoError(t, err)
	assert.ErrorContains(t, sqlDB.Ping(), "database is closed")
}
