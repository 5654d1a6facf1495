package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"basketball-manager/internal/core/config"
)

// FileRotate mirrors config.LogFile for lumberjack.
type FileRotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Options struct {
	Level       string // debug, info, warn or error; anything else means info
	JSON        bool
	AddCaller   bool
	Development bool
	Rotate      FileRotate
	Stderr      bool
	Name        string
}

type Option func(*Options)

// WithStderr keeps stdout free for program output.
func WithStderr() Option { return func(o *Options) { o.Stderr = true } }

// WithName tags every entry with the service name.
func WithName(name string) Option { return func(o *Options) { o.Name = name } }

// FromConfig builds the process logger from the log config section.
func FromConfig(c config.Log, opts ...Option) (*zap.Logger, func()) {
	o := Options{
		Level:       c.Level,
		JSON:        c.JSON,
		AddCaller:   true,
		Development: !c.JSON,
		Rotate:      FileRotate(c.File),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return build(o)
}

func build(o Options) (*zap.Logger, func()) {
	lvl, err := zapcore.ParseLevel(o.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	enc := encoder(o.JSON)

	cores := []zapcore.Core{zapcore.NewCore(enc, consoleSink(o.Stderr), lvl)}
	if o.Rotate.Enable {
		cores = append(cores, zapcore.NewCore(enc, fileSink(o.Rotate), lvl))
	}
	// Bursts of identical messages are thinned to every 100th after the first 100 per second.
	core := zapcore.NewSamplerWithOptions(zapcore.NewTee(cores...), time.Second, 100, 100)

	var zopts []zap.Option
	if o.AddCaller {
		zopts = append(zopts, zap.AddCaller())
	}
	if o.Development {
		zopts = append(zopts, zap.Development())
	}
	if o.Name != "" {
		zopts = append(zopts, zap.Fields(zap.String("app", o.Name)))
	}
	l := zap.New(core, zopts...)
	return l, func() { _ = l.Sync() }
}

func encoder(json bool) zapcore.Encoder {
	if json {
		ec := zap.NewProductionEncoderConfig()
		ec.TimeKey = "ts"
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		ec.EncodeCaller = zapcore.ShortCallerEncoder
		return zapcore.NewJSONEncoder(ec)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(time.DateTime + ".000")
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	ec.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func consoleSink(stderr bool) zapcore.WriteSyncer {
	if stderr {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.Lock(os.Stdout)
}

// fileSink never syncs: lumberjack flushes on every write.
func fileSink(r FileRotate) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   r.Filename,
		MaxSize:    max(1, r.MaxSizeMB),
		MaxBackups: max(0, r.MaxBackups),
		MaxAge:     max(0, r.MaxAgeDays),
		Compress:   r.Compress,
	})
}

type zapIOWriter struct {
	l     *zap.Logger
	level zapcore.Level
}

func (w *zapIOWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\r\n")
	if ce := w.l.Check(w.level, msg); ce != nil {
		ce.Write()
	}
	return len(p), nil
}

func ToWriter(l *zap.Logger, level zapcore.Level) io.Writer {
	return &zapIOWriter{l: l, level: level}
}

func ToStdLogger(l *zap.Logger, level zapcore.Level) (*log.Logger, error) {
	return zap.NewStdLogAt(l, level)
}

func RedirectStdLog(l *zap.Logger, level zapcore.Level) func() {
	undo, _ := zap.RedirectStdLogAt(l, level)
	return func() { undo() }
}
