package data

import (
	"context"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotDeletable = errors.New("table has no soft delete")

// QueryRunner executes raw statements outside the entity sets.
type QueryRunner struct{ db *gorm.DB }

func NewQueryRunner(db *gorm.DB) *QueryRunner { return &QueryRunner{db: db} }

func (r *QueryRunner) Run(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Exec(query, args...)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "run query")
	}
	return res.RowsAffected, nil
}

// PurgeDeleted physically removes rows of a deletable table that were flagged
// deleted before cutoff. Foreign keys still apply: a referenced row fails the
// statement with gorm.ErrForeignKeyViolated.
func (r *QueryRunner) PurgeDeleted(ctx context.Context, table string, cutoff time.Time) (int64, error) {
	if !slices.Contains(deletableTables(), table) {
		return 0, errors.Wrapf(ErrNotDeletable, "table %q", table)
	}
	return r.Run(ctx, "DELETE FROM ? WHERE is_deleted = ? AND deleted_on < ?",
		clause.Table{Name: table}, true, cutoff.UTC())
}
