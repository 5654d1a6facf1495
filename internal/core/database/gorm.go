package database

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Opts struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
	// Logger replaces gorm's stdout logger; LogLevel still applies.
	Logger logger.Interface
}

var ErrUnsupportedDriver = errors.New("unsupported database driver")

var dialects = map[string]func(Opts) gorm.Dialector{
	"postgres": func(o Opts) gorm.Dialector { return postgres.Open(o.DSN) },
	"mysql": func(o Opts) gorm.Dialector {
		return mysql.Open(normalizeMySQLDSN(o.DSN, o.Username, o.Password))
	},
	"sqlite": func(o Opts) gorm.Dialector { return sqlite.Open(o.DSN) },
}

// ParseLogLevel maps silent/error/warn/info to gorm's levels; anything else is warn.
func ParseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}

// NewGorm opens the database. Errors are translated to gorm's
// ErrDuplicatedKey and ErrForeignKeyViolated.
func NewGorm(o Opts) (*gorm.DB, error) {
	open, ok := dialects[o.Driver]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedDriver, "driver %q", o.Driver)
	}
	gl := o.Logger
	if gl == nil {
		gl = logger.Default
	}
	db, err := gorm.Open(open(o), &gorm.Config{
		Logger:                 gl.LogMode(ParseLogLevel(o.LogLevel)),
		TranslateError:         true,
		PrepareStmt:            o.Driver != "sqlite", // sqlite statements go stale after migrations
		CreateBatchSize:        200,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", o.Driver)
	}
	if err := tunePool(db, o); err != nil {
		return nil, err
	}
	return db, nil
}

func tunePool(db *gorm.DB, o Opts) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "sql handle")
	}
	if o.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)
	return nil
}

// MaskDSN hides the password part of a user:pass@host DSN for logging.
func MaskDSN(dsn string) string {
	at := strings.Index(dsn, "@")
	if at <= 0 {
		return dsn
	}
	colon := strings.LastIndex(dsn[:at], ":")
	// "scheme://user@" has no password
	if colon <= 0 || strings.HasPrefix(dsn[colon+1:at], "//") {
		return dsn
	}
	return dsn[:colon+1] + "****" + dsn[at:]
}

// jdbcParams maps JDBC/Navicat query parameters onto go-sql-driver ones. An
// empty target drops the parameter.
var jdbcParams = map[string]string{
	"characterEncoding":    "charset",
	"serverTimezone":       "loc",
	"useUnicode":           "",
	"zeroDateTimeBehavior": "",
}

var sslModes = map[string]string{
	"true":        "true",
	"1":           "true",
	"skip-verify": "skip-verify",
	"preferred":   "preferred",
}

// normalizeMySQLDSN accepts mysql:// and jdbc:mysql:// URLs and rewrites them
// to user:pass@tcp(host)/db. Native DSNs pass through untouched.
func normalizeMySQLDSN(input, userOverride, passOverride string) string {
	in := strings.TrimPrefix(strings.TrimSpace(input), "jdbc:")
	if !strings.HasPrefix(in, "mysql://") {
		return in
	}
	u, err := url.Parse(in)
	if err != nil {
		return in
	}

	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	q := u.Query()
	for key, dst := range map[string]*string{"user": &user, "password": &pass} {
		if v := q.Get(key); v != "" {
			*dst = v
		}
		q.Del(key)
	}
	if userOverride != "" {
		user = userOverride
	}
	if passOverride != "" {
		pass = passOverride
	}

	for from, to := range jdbcParams {
		if v := q.Get(from); v != "" && to != "" && q.Get(to) == "" {
			q.Set(to, v)
		}
		q.Del(from)
	}
	if v := strings.ToLower(q.Get("useSSL")); v != "" {
		mode, ok := sslModes[v]
		if !ok {
			mode = "false"
		}
		q.Set("tls", mode)
		q.Del("useSSL")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}

	cred := user
	if pass != "" {
		cred += ":" + pass
	}
	if cred != "" {
		cred += "@"
	}
	dsn := fmt.Sprintf("%stcp(%s)/%s", cred, u.Host, strings.TrimPrefix(u.Path, "/"))
	if enc := q.Encode(); enc != "" {
		dsn += "?" + enc
	}
	return dsn
}
