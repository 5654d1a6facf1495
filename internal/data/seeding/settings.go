package seeding

import (
	"context"

	"gorm.io/gorm"

	"basketball-manager/internal/domain"
)

// SettingsSeeder adds the default setting when the table is empty.
type SettingsSeeder struct{}

func (SettingsSeeder) Seed(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.Setting{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&domain.Setting{Name: "Setting1", Value: "value1"}).Error
}
