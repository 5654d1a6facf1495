package seeding

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"basketball-manager/internal/domain"
	"basketball-manager/pkg/utils"
)

// RolesSeeder creates the built-in roles.
type RolesSeeder struct{}

func (RolesSeeder) Seed(ctx context.Context, db *gorm.DB) error {
	for _, name := range []string{domain.AdministratorRoleName} {
		var n int64
		// soft-deleted roles still own their name
		err := db.WithContext(ctx).Unscoped().Model(&domain.Role{}).
			Where("normalized_name = ?", strings.ToUpper(name)).Count(&n).Error
		if err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		role := &domain.Role{
			ID:               utils.NewID(),
			Name:             name,
			NormalizedName:   strings.ToUpper(name),
			ConcurrencyStamp: utils.NewID(),
		}
		if err := db.WithContext(ctx).Create(role).Error; err != nil {
			return err
		}
	}
	return nil
}

func typeName(v interface{}) string { return strings.TrimPrefix(fmt.Sprintf("%T", v), "seeding.") }
