package database

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	cases := map[string]struct {
		in, user, pass, want string
	}{
		"native passes through": {
			in:   "root:pw@tcp(localhost:3306)/bm?parseTime=true",
			want: "root:pw@tcp(localhost:3306)/bm?parseTime=true",
		},
		"url gets defaults": {
			in:   "mysql://root:pw@localhost:3306/bm",
			want: "root:pw@tcp(localhost:3306)/bm?charset=utf8mb4&parseTime=true",
		},
		"jdbc params are translated": {
			in:   "jdbc:mysql://localhost:3306/bm?characterEncoding=latin1&useSSL=true&useUnicode=true&zeroDateTimeBehavior=convertToNull",
			want: "tcp(localhost:3306)/bm?charset=latin1&parseTime=true&tls=true",
		},
		"overrides win": {
			in:   "mysql://a:b@db:3306/bm?user=c&password=d",
			user: "admin", pass: "secret",
			want: "admin:secret@tcp(db:3306)/bm?charset=utf8mb4&parseTime=true",
		},
		"unknown ssl mode disables tls": {
			in:   "mysql://db/bm?useSSL=nope",
			want: "tcp(db)/bm?charset=utf8mb4&parseTime=true&tls=false",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeMySQLDSN(tc.in, tc.user, tc.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "root:****@tcp(db)/bm", MaskDSN("root:pw@tcp(db)/bm"))
	assert.Equal(t, "postgres://bm:****@db:5432/bm", MaskDSN("postgres://bm:pw@db:5432/bm"))
	assert.Equal(t, "postgres://bm@db/bm", MaskDSN("postgres://bm@db/bm"))
	assert.Equal(t, "file:bm.db", MaskDSN("file:bm.db"))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseLogLevel("silent"))
	assert.Equal(t, logger.Info, ParseLogLevel("info"))
	assert.Equal(t, logger.Warn, ParseLogLevel("whatever"))
}

func TestNewGorm(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	assert.True(t, errors.Is(err, ErrUnsupportedDriver))

	db, err := NewGorm(Opts{
		Driver:   "sqlite",
		DSN:      "file:" + filepath.Join(t.TempDir(), "t.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	assert.NoError(t, sqlDB.Ping())
	assert.True(t, db.Config.TranslateError)
}
