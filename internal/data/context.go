// Package data is the persistence context of the game: entity sets, model
// configuration and the save interception applied to every write.
package data

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"basketball-manager/internal/domain"
)

type Context struct {
	DB      *gorm.DB
	filters *FilterRegistry
	now     func() time.Time
}

type Option func(*Context)

// WithClock replaces the UTC wall clock used for audit stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Context) { c.now = now }
}

// New installs the data plugin on db and applies the model configuration.
// Call it once per *gorm.DB, before Migrate.
func New(db *gorm.DB, opts ...Option) (*Context, error) {
	c := &Context{now: func() time.Time { return time.Now().UTC() }}
	for _, o := range opts {
		o(c)
	}
	c.filters = buildFilters(deletableTables())

	if err := db.Use(&plugin{filters: c.filters, now: c.now}); err != nil {
		return nil, errors.Wrap(err, "install data plugin")
	}
	if err := restrictCascades(db, Models()); err != nil {
		return nil, errors.Wrap(err, "configure delete behavior")
	}
	c.DB = db
	return c, nil
}

// Filters exposes the soft-delete registry.
func (c *Context) Filters() *FilterRegistry { return c.filters }

// DeleteBehaviors maps "table.column" to its ON DELETE behavior.
func (c *Context) DeleteBehaviors() (map[string]string, error) {
	return deleteBehaviors(c.DB, Models())
}

func (c *Context) set(ctx context.Context, model interface{}) *gorm.DB {
	return c.DB.WithContext(ctx).Model(model)
}

func (c *Context) Users(ctx context.Context) *gorm.DB      { return c.set(ctx, &domain.User{}) }
func (c *Context) Roles(ctx context.Context) *gorm.DB      { return c.set(ctx, &domain.Role{}) }
func (c *Context) Managers(ctx context.Context) *gorm.DB   { return c.set(ctx, &domain.Manager{}) }
func (c *Context) Teams(ctx context.Context) *gorm.DB      { return c.set(ctx, &domain.Team{}) }
func (c *Context) Leagues(ctx context.Context) *gorm.DB    { return c.set(ctx, &domain.League{}) }
func (c *Context) Matches(ctx context.Context) *gorm.DB    { return c.set(ctx, &domain.Match{}) }
func (c *Context) Players(ctx context.Context) *gorm.DB    { return c.set(ctx, &domain.Player{}) }
func (c *Context) Attributes(ctx context.Context) *gorm.DB { return c.set(ctx, &domain.Attributes{}) }
func (c *Context) Settings(ctx context.Context) *gorm.DB   { return c.set(ctx, &domain.Setting{}) }
