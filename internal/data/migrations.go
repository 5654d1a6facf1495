package data

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"basketball-manager/internal/domain"
)

const settingsNameIndex = "idx_settings_name"

func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202405011200_initial_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(Models()...)
			},
			Rollback: func(tx *gorm.DB) error {
				m := tx.Migrator()
				tables := []interface{}{
					&domain.UserToken{}, &domain.UserLogin{}, &domain.RoleClaim{}, &domain.UserClaim{}, &domain.UserRole{},
					&domain.Player{}, &domain.Attributes{}, &domain.Match{}, "league_participants", &domain.League{},
					&domain.Team{}, &domain.Manager{}, &domain.Role{}, &domain.User{}, &domain.Setting{},
				}
				for _, t := range tables {
					if err := m.DropTable(t); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			ID: "202406151030_settings_name_index",
			Migrate: func(tx *gorm.DB) error {
				if tx.Migrator().HasIndex(&domain.Setting{}, settingsNameIndex) {
					return nil
				}
				return tx.Exec("CREATE INDEX ? ON ? (?)",
					clause.Column{Name: settingsNameIndex}, clause.Table{Name: "settings"}, clause.Column{Name: "name"}).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropIndex(&domain.Setting{}, settingsNameIndex)
			},
		},
	}
}

// MigrationIDs lists the known migrations in apply order.
func MigrationIDs() []string {
	ms := migrations()
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

// Migrate applies pending migrations. Applied IDs are kept in the "migrations" table.
func (c *Context) Migrate(ctx context.Context) error {
	m := gormigrate.New(c.DB.WithContext(ctx), gormigrate.DefaultOptions, migrations())
	if err := m.Migrate(); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return nil
}

// RollbackLast undoes the most recent migration.
func (c *Context) RollbackLast(ctx context.Context) error {
	m := gormigrate.New(c.DB.WithContext(ctx), gormigrate.DefaultOptions, migrations())
	if err := m.RollbackLast(); err != nil {
		return errors.Wrap(err, "rollback")
	}
	return nil
}
