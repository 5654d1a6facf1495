package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestGormLoggerTrace(t *testing.T) {
	l, logs := observed()
	g := NewGormLogger(l, 100*time.Millisecond).LogMode(gormlogger.Warn)
	fc := func() (string, int64) { return "SELECT 1", 1 }

	g.Trace(context.Background(), time.Now(), fc, nil)
	assert.Equal(t, 0, logs.Len(), "fast query below info level is not logged")

	g.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)
	assert.Equal(t, 1, logs.FilterMessage("slow sql").Len())

	g.Trace(context.Background(), time.Now(), fc, errors.New("boom"))
	assert.Equal(t, 1, logs.FilterMessage("sql").FilterLevelExact(zapcore.ErrorLevel).Len())

	g.Trace(context.Background(), time.Now(), fc, gorm.ErrRecordNotFound)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len(), "not found is not an error")
}

func TestGormLoggerSilent(t *testing.T) {
	l, logs := observed()
	g := NewGormLogger(l, time.Millisecond).LogMode(gormlogger.Silent)
	g.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) { return "x", 0 }, errors.New("boom"))
	g.Error(context.Background(), "boom %d", 1)
	assert.Equal(t, 0, logs.Len())
}

func TestToWriter(t *testing.T) {
	l, logs := observed()
	w := ToWriter(l, zapcore.InfoLevel)
	_, err := w.Write([]byte("hello\n"))
	assert.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("hello").Len())
}
