package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"basketball-manager/internal/app"
	"basketball-manager/internal/core/config"
	"basketball-manager/internal/core/logger"
	"basketball-manager/internal/sandbox"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fmt.Printf("Sandbox (%s) starts working...\n", strings.Join(args, " "))

	opts, err := sandbox.ParseArgs(args, os.Stderr)
	if err != nil {
		return 255
	}

	_ = godotenv.Load()
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log, cleanup := logger.FromConfig(cfg.Log, logger.WithStderr())
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, log)
	if err != nil {
		log.Error("open", zap.Error(err))
		return 1
	}
	defer func() { _ = a.Close() }()

	if err := a.Prepare(ctx, opts.SkipSeed); err != nil {
		log.Error("prepare database", zap.Error(err))
		return 1
	}

	err = sandbox.Run(ctx, os.Stdin, os.Stdout, sandbox.Services{
		Settings:   a.Settings,
		Attributes: a.Attributes,
	})
	if err != nil {
		log.Error("sandbox", zap.Error(err))
		return 1
	}
	return 0
}
