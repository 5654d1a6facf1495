package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAddr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", Addr("0.0.0.0", 8080))
	assert.Equal(t, "http://127.0.0.1:8080", BaseURL("0.0.0.0", 8080))
	assert.Equal(t, "http://api.local:80", BaseURL("api.local", 80))
}

func TestNewRouterRecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(zap.NewNop())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestBuildServer(t *testing.T) {
	srv := BuildServer(":0", http.NewServeMux(), Seconds(1, 2, 0), nil)
	assert.Equal(t, time.Second, srv.ReadTimeout)
	assert.Equal(t, 2*time.Second, srv.WriteTimeout)
	assert.Zero(t, srv.IdleTimeout)
	assert.Equal(t, 1<<20, srv.MaxHeaderBytes)
}

func TestRunStopsOnCancel(t *testing.T) {
	srv := BuildServer("127.0.0.1:0", http.NewServeMux(), Timeouts{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, srv, zap.NewNop(), time.Second) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunReportsListenError(t *testing.T) {
	srv := BuildServer("127.0.0.1:-1", http.NewServeMux(), Timeouts{}, nil)
	err := Run(context.Background(), srv, zap.NewNop(), time.Second)
	require.Error(t, err)
}
