// Package app wires configuration into the data context and services shared
// by every binary.
package app

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"basketball-manager/internal/core/auth"
	"basketball-manager/internal/core/cache"
	"basketball-manager/internal/core/config"
	"basketball-manager/internal/core/database"
	"basketball-manager/internal/core/logger"
	"basketball-manager/internal/core/validate"
	"basketball-manager/internal/data"
	"basketball-manager/internal/data/seeding"
	"basketball-manager/internal/identity"
	"basketball-manager/internal/service"
	"basketball-manager/internal/service/messaging"
)

type App struct {
	Config *config.Config
	Log    *zap.Logger
	Data   *data.Context
	Cache  *cache.Cache
	JWT    *auth.JWTer
	Sender messaging.EmailSender

	Roles      *identity.RoleManager
	Users      *identity.UserManager
	Settings   *service.SettingsService
	Attributes *service.AttributesService
	Managers   *service.ManagerService
	Leagues    *service.LeagueService
	Queries    *data.QueryRunner
}

// newDataContext is swapped in tests to fail after the database is open.
var newDataContext = func(db *gorm.DB) (*data.Context, error) { return data.New(db) }

// New opens the database and builds every service. Migrations are not run.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             logger.NewGormLogger(log, 200*time.Millisecond),
	})
	if err != nil {
		return nil, err
	}
	dc, err := newDataContext(db)
	if err != nil {
		return nil, errors.CombineErrors(err, closeDB(db))
	}
	log.Info("database opened", zap.String("driver", cfg.DB.Driver), zap.String("dsn", database.MaskDSN(cfg.DB.DSN)))

	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cache.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB, Prefix: cfg.App.Name})
	}

	v := validate.New()
	roles := identity.NewRoleManager(dc.DB)
	a := &App{
		Config: cfg,
		Log:    log,
		Data:   dc,
		Cache:  c,
		JWT: &auth.JWTer{
			Secret: []byte(cfg.JWT.Secret),
			Issuer: cfg.JWT.Issuer,
			TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
		},
		Sender:     messaging.NullMessageSender{},
		Roles:      roles,
		Users:      identity.NewUserManager(dc.DB, roles, identity.OptionsFromConfig(cfg.Identity), log),
		Settings:   service.NewSettingsService(dc.DB, c, time.Duration(cfg.Redis.TTLSec)*time.Second, v, log),
		Attributes: service.NewAttributesService(dc.DB, v),
		Managers:   service.NewManagerService(dc.DB, v, log),
		Leagues:    service.NewLeagueService(dc.DB, v),
		Queries:    data.NewQueryRunner(dc.DB),
	}
	if cfg.App.Env == "local" {
		a.Sender = messaging.LogMessageSender{Log: log}
	}
	return a, nil
}

// Prepare applies pending migrations and, unless skipSeed, runs the seeders.
func (a *App) Prepare(ctx context.Context, skipSeed bool) error {
	if err := a.Data.Migrate(ctx); err != nil {
		return err
	}
	a.Log.Info("migrations applied")
	if skipSeed {
		return nil
	}
	if err := seeding.NewApplicationSeeder(a.Log).Seed(ctx, a.Data.DB); err != nil {
		return errors.Wrap(err, "seed")
	}
	a.Log.Info("seed done")
	return nil
}

func (a *App) Close() error {
	var errs error
	if a.Cache != nil {
		errs = errors.CombineErrors(errs, a.Cache.Close())
	}
	return errors.CombineErrors(errs, closeDB(a.Data.DB))
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "sql handle")
	}
	return sqlDB.Close()
}
