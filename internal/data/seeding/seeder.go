// Package seeding fills a freshly migrated database with the rows the game
// expects to exist.
package seeding

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seeder inserts missing rows. Running it twice must not duplicate anything.
type Seeder interface {
	Seed(ctx context.Context, db *gorm.DB) error
}

type SeederFunc func(ctx context.Context, db *gorm.DB) error

func (f SeederFunc) Seed(ctx context.Context, db *gorm.DB) error { return f(ctx, db) }

// ApplicationSeeder runs every seeder inside one transaction.
type ApplicationSeeder struct {
	log     *zap.Logger
	seeders []Seeder
}

func NewApplicationSeeder(log *zap.Logger, seeders ...Seeder) *ApplicationSeeder {
	if log == nil {
		log = zap.NewNop()
	}
	if len(seeders) == 0 {
		seeders = []Seeder{RolesSeeder{}, SettingsSeeder{}}
	}
	return &ApplicationSeeder{log: log, seeders: seeders}
}

func (a *ApplicationSeeder) Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range a.seeders {
			if err := s.Seed(ctx, tx); err != nil {
				return errors.Wrapf(err, "seed %T", s)
			}
			a.log.Debug("seeder done", zap.String("seeder", typeName(s)))
		}
		return nil
	})
}
