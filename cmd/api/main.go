package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"basketball-manager/internal/app"
	"basketball-manager/internal/core/config"
	"basketball-manager/internal/core/logger"
	"basketball-manager/internal/core/server"
	"basketball-manager/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
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

	if cfg.DB.AutoMigrate {
		if err := a.Prepare(context.Background(), false); err != nil {
			log.Fatal("prepare database", zap.Error(err))
		}
	}

	r := router.NewAPIEngine(a, router.Modules(a))

	errLog, _ := logger.ToStdLogger(log, zapcore.ErrorLevel)
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(addr, r, server.Seconds(cfg.App.HTTP.ReadTimeoutSec, cfg.App.HTTP.WriteTimeoutSec, cfg.App.HTTP.IdleTimeoutSec), errLog)

	baseURL := server.BaseURL(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	log.Info("user api starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	stop, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := server.Run(stop, srv, log, 10*time.Second); err != nil {
		log.Error("user api stopped", zap.Error(err))
		return
	}
	log.Info("user api stopped gracefully")
}
