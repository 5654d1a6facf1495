package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter is a bare engine with panic logging and permissive CORS.
func NewRouter(l *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.RecoveryWithZap(l, true), cors.Default())
	return r
}

type Timeouts struct {
	Read, Write, Idle time.Duration
}

// Seconds converts config values; zero fields stay zero (no limit).
func Seconds(read, write, idle int) Timeouts {
	return Timeouts{
		Read:  time.Duration(read) * time.Second,
		Write: time.Duration(write) * time.Second,
		Idle:  time.Duration(idle) * time.Second,
	}
}

func BuildServer(addr string, h http.Handler, t Timeouts, errLog *log.Logger) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        h,
		ReadTimeout:    t.Read,
		WriteTimeout:   t.Write,
		IdleTimeout:    t.Idle,
		MaxHeaderBytes: 1 << 20,
		ErrorLog:       errLog,
	}
}

// StartHTTP blocks until the server stops. http.ErrServerClosed is not an error.
func StartHTTP(srv *http.Server, l *zap.Logger) error {
	l.Info("http listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "listen %s", srv.Addr)
	}
	return nil
}

// Run serves until ctx is done, then shuts down within grace.
func Run(ctx context.Context, srv *http.Server, l *zap.Logger, grace time.Duration) error {
	served := make(chan error, 1)
	go func() { served <- StartHTTP(srv, l) }()

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	l.Info("http stopped", zap.String("addr", srv.Addr))
	return <-served
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }

// BaseURL is a clickable address for the startup log.
func BaseURL(host string, port int) string {
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return "http://" + Addr(host, port)
}
