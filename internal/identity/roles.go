package identity

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"basketball-manager/internal/domain"
	"basketball-manager/internal/repo"
	"basketball-manager/pkg/utils"
)

type RoleManager struct {
	roles *repo.DeletableRepository[domain.Role, *domain.Role]
}

func NewRoleManager(db *gorm.DB) *RoleManager {
	return &RoleManager{roles: repo.NewDeletableRepository[domain.Role, *domain.Role](db)}
}

func (m *RoleManager) Create(ctx context.Context, name string) (*domain.Role, error) {
	exists, err := m.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Wrapf(ErrDuplicateRoleName, "%q", name)
	}
	r := &domain.Role{
		ID:               utils.NewID(),
		Name:             name,
		NormalizedName:   Normalize(name),
		ConcurrencyStamp: utils.NewID(),
	}
	if err := m.roles.Add(ctx, r); err != nil {
		return nil, errors.Wrap(err, "insert role")
	}
	return r, nil
}

// Exists also sees soft-deleted roles, which still hold their name.
func (m *RoleManager) Exists(ctx context.Context, name string) (bool, error) {
	var n int64
	err := m.roles.QueryWithDeleted(ctx).Where("normalized_name = ?", Normalize(name)).Count(&n).Error
	return n > 0, err
}

func (m *RoleManager) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var r domain.Role
	err := m.roles.Query(ctx).Where("normalized_name = ?", Normalize(name)).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
