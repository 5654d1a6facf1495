package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"basketball-manager/internal/app"
	"basketball-manager/internal/core/config"
	"basketball-manager/internal/core/logger"
	"basketball-manager/internal/core/server"
	"basketball-manager/internal/domain"
	"basketball-manager/internal/transport/http/router"
)

func main() {
	configPath := pflag.StringP("config", "c", os.Getenv("CONFIG_PATH"), "config file")
	grant := pflag.String("grant-admin", "", "add this user name to the Administrator role before serving")
	pflag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	log, cleanup := logger.FromConfig(cfg.Log, logger.WithName(cfg.App.Name))
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log, zapcore.ErrorLevel)

	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("open app", zap.Error(err))
	}
	defer func() { _ = a.Close() }()
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := a.Prepare(ctx, false); err != nil {
			log.Fatal("prepare database", zap.Error(err))
		}
	}
	if *grant != "" {
		if err := grantAdmin(ctx, a, *grant); err != nil {
			log.Fatal("grant admin", zap.String("user", *grant), zap.Error(err))
		}
		log.Info("administrator granted", zap.String("user", *grant))
	}

	r := router.NewAdminEngine(a, router.Modules(a))

	errLog, _ := logger.ToStdLogger(log, zapcore.ErrorLevel)
	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, server.Seconds(5, 10, 60), errLog)

	baseURL := server.BaseURL(cfg.App.Admin.Host, cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	stop, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := server.Run(stop, srv, log, 10*time.Second); err != nil {
		log.Error("admin api stopped", zap.Error(err))
		return
	}
	log.Info("admin api stopped gracefully")
}

func grantAdmin(ctx context.Context, a *app.App, userName string) error {
	u, err := a.Users.FindByName(ctx, userName)
	if err != nil {
		return err
	}
	if u == nil {
		return errors.Newf("user %q not found", userName)
	}
	return a.Users.AddToRole(ctx, u, domain.AdministratorRoleName)
}
