package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the CRUD surface over one entity set.
type Repository[T any] struct{ db *gorm.DB }

func NewRepository[T any](db *gorm.DB) *Repository[T] { return &Repository[T]{db: db} }

// Query returns a fresh query root for T bound to ctx.
func (r *Repository[T]) Query(ctx context.Context) *gorm.DB {
	var zero T
	return r.db.WithContext(ctx).Model(&zero)
}

func (r *Repository[T]) All(ctx context.Context) ([]T, error) {
	var out []T
	err := r.Query(ctx).Find(&out).Error
	return out, err
}

func (r *Repository[T]) Add(ctx context.Context, e *T) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *Repository[T]) Update(ctx context.Context, e *T) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// Delete removes e. Deletable entities are only flagged.
func (r *Repository[T]) Delete(ctx context.Context, e *T) error {
	return r.db.WithContext(ctx).Delete(e).Error
}

// GetByID returns nil, nil when no visible row has that key.
func (r *Repository[T]) GetByID(ctx context.Context, id interface{}) (*T, error) {
	return first[T](r.Query(ctx), id)
}

func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.Query(ctx).Count(&n).Error
	return n, err
}

func (r *Repository[T]) List(ctx context.Context, offset, limit int) ([]T, int64, error) {
	var items []T
	var total int64
	tx := r.Query(ctx)
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.Query(ctx).Offset(offset).Limit(limit).Order("created_on desc").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func first[T any](tx *gorm.DB, id interface{}) (*T, error) {
	var e T
	err := tx.Where(clause.Eq{Column: clause.PrimaryColumn, Value: id}).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
