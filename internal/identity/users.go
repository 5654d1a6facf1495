package identity

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"basketball-manager/internal/domain"
	"basketball-manager/internal/repo"
	"basketball-manager/pkg/utils"
)

type UserManager struct {
	db    *gorm.DB
	users *repo.DeletableRepository[domain.User, *domain.User]
	roles *RoleManager
	opts  Options
	log   *zap.Logger
	now   func() time.Time
}

func NewUserManager(db *gorm.DB, roles *RoleManager, opts Options, log *zap.Logger) *UserManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserManager{
		db:    db,
		users: repo.NewDeletableRepository[domain.User, *domain.User](db),
		roles: roles,
		opts:  opts,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (m *UserManager) Options() Options { return m.opts }

// Create registers a user with a hashed password.
func (m *UserManager) Create(ctx context.Context, userName, email, password string) (*domain.User, error) {
	if err := m.opts.Password.Validate(password); err != nil {
		return nil, err
	}
	nu, ne := Normalize(userName), Normalize(email)

	// soft-deleted users keep their name
	var n int64
	if err := m.users.QueryWithDeleted(ctx).Where("normalized_user_name = ?", nu).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, errors.Wrapf(ErrDuplicateUserName, "%q", userName)
	}
	if m.opts.RequireUniqueEmail && ne != "" {
		if err := m.users.QueryWithDeleted(ctx).Where("normalized_email = ?", ne).Count(&n).Error; err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, errors.Wrapf(ErrDuplicateEmail, "%q", email)
		}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	u := &domain.User{
		ID:                 utils.NewID(),
		UserName:           userName,
		NormalizedUserName: nu,
		Email:              email,
		NormalizedEmail:    ne,
		PasswordHash:       hash,
		SecurityStamp:      utils.NewID(),
		ConcurrencyStamp:   utils.NewID(),
		LockoutEnabled:     true,
	}
	if err := m.users.Add(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.Wrapf(ErrDuplicateUserName, "%q", userName)
		}
		return nil, errors.Wrap(err, "insert user")
	}
	m.log.Info("user created", zap.String("user_id", u.ID), zap.String("user_name", u.UserName))
	return u, nil
}

func (m *UserManager) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return m.users.GetByID(ctx, id)
}

func (m *UserManager) FindByName(ctx context.Context, userName string) (*domain.User, error) {
	return m.findBy(ctx, "normalized_user_name = ?", Normalize(userName))
}

func (m *UserManager) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.findBy(ctx, "normalized_email = ?", Normalize(email))
}

func (m *UserManager) findBy(ctx context.Context, query string, arg string) (*domain.User, error) {
	var u domain.User
	err := m.users.Query(ctx).Where(query, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// PasswordSignIn checks the password and keeps the failed-attempt counter and
// lockout window up to date. login is a user name, or an email address when
// no user carries it as a name.
func (m *UserManager) PasswordSignIn(ctx context.Context, login, password string) (*domain.User, error) {
	u, err := m.FindByName(ctx, login)
	if err == nil && u == nil && strings.Contains(login, "@") {
		u, err = m.FindByEmail(ctx, login)
	}
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	now := m.now()
	if u.LockoutEnabled && u.LockoutEnd != nil && u.LockoutEnd.After(now) {
		return nil, ErrLockedOut
	}

	if !utils.CheckPassword(password, u.PasswordHash) {
		u.AccessFailedCount++
		if u.LockoutEnabled && m.opts.MaxFailedAccess > 0 && u.AccessFailedCount >= m.opts.MaxFailedAccess {
			end := now.Add(m.opts.LockoutDuration)
			u.LockoutEnd = &end
			u.AccessFailedCount = 0
			m.log.Warn("user locked out", zap.String("user_id", u.ID), zap.Time("until", end))
		}
		if err := m.saveSignInState(ctx, u); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	if u.AccessFailedCount != 0 || u.LockoutEnd != nil {
		u.AccessFailedCount = 0
		u.LockoutEnd = nil
		if err := m.saveSignInState(ctx, u); err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (m *UserManager) saveSignInState(ctx context.Context, u *domain.User) error {
	return m.db.WithContext(ctx).Model(u).
		Select("AccessFailedCount", "LockoutEnd").
		Updates(map[string]interface{}{
			"AccessFailedCount": u.AccessFailedCount,
			"LockoutEnd":        u.LockoutEnd,
		}).Error
}

func (m *UserManager) AddToRole(ctx context.Context, u *domain.User, roleName string) error {
	role, err := m.roles.FindByName(ctx, roleName)
	if err != nil {
		return err
	}
	if role == nil {
		return errors.Wrapf(ErrRoleNotFound, "%q", roleName)
	}
	in, err := m.IsInRole(ctx, u, roleName)
	if err != nil || in {
		return err
	}
	return m.db.WithContext(ctx).Create(&domain.UserRole{UserID: u.ID, RoleID: role.ID}).Error
}

// RolesOf lists the names of the visible roles u belongs to.
func (m *UserManager) RolesOf(ctx context.Context, u *domain.User) ([]string, error) {
	var names []string
	err := m.roles.roles.Query(ctx).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", u.ID).
		Order("roles.name").
		Pluck("roles.name", &names).Error
	return names, err
}

func (m *UserManager) IsInRole(ctx context.Context, u *domain.User, roleName string) (bool, error) {
	var n int64
	err := m.roles.roles.Query(ctx).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ? AND roles.normalized_name = ?", u.ID, Normalize(roleName)).
		Count(&n).Error
	return n > 0, err
}

// Delete flags the user deleted; the user's manager and team disappear from queries with it.
func (m *UserManager) Delete(ctx context.Context, u *domain.User) error {
	return m.users.Delete(ctx, u)
}

// Restore undoes Delete. It returns nil, nil for an unknown id.
func (m *UserManager) Restore(ctx context.Context, id string) (*domain.User, error) {
	u, err := m.users.GetByIDWithDeleted(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	if !u.IsDeleted {
		return u, nil
	}
	if err := m.users.Undelete(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (m *UserManager) List(ctx context.Context, withDeleted bool) ([]domain.User, error) {
	if withDeleted {
		return m.users.AllWithDeleted(ctx)
	}
	return m.users.All(ctx)
}
