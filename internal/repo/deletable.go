package repo

import (
	"context"

	"gorm.io/gorm"

	"basketball-manager/internal/domain"
)

// DeletableRepository adds access to soft-deleted rows.
type DeletableRepository[T any, PT interface {
	*T
	domain.Deletable
}] struct {
	*Repository[T]
}

func NewDeletableRepository[T any, PT interface {
	*T
	domain.Deletable
}](db *gorm.DB) *DeletableRepository[T, PT] {
	return &DeletableRepository[T, PT]{Repository: NewRepository[T](db)}
}

// QueryWithDeleted is Query without the soft-delete filter.
func (r *DeletableRepository[T, PT]) QueryWithDeleted(ctx context.Context) *gorm.DB {
	return r.Query(ctx).Unscoped()
}

func (r *DeletableRepository[T, PT]) AllWithDeleted(ctx context.Context) ([]T, error) {
	var out []T
	err := r.QueryWithDeleted(ctx).Find(&out).Error
	return out, err
}

func (r *DeletableRepository[T, PT]) GetByIDWithDeleted(ctx context.Context, id interface{}) (*T, error) {
	return first[T](r.QueryWithDeleted(ctx), id)
}

// HardDelete removes the row physically.
func (r *DeletableRepository[T, PT]) HardDelete(ctx context.Context, e *T) error {
	return r.db.WithContext(ctx).Unscoped().Delete(e).Error
}

// Undelete clears the flag and saves e.
func (r *DeletableRepository[T, PT]) Undelete(ctx context.Context, e *T) error {
	PT(e).Deletion().Restore()
	return r.db.WithContext(ctx).Unscoped().Save(e).Error
}
