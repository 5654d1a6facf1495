package identity

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basketball-manager/internal/data/datatest"
	"basketball-manager/internal/data/seeding"
	"basketball-manager/internal/domain"
)

func newManagers(t *testing.T, opts Options) (*UserManager, *RoleManager) {
	t.Helper()
	c := datatest.Open(t)
	require.NoError(t, seeding.NewApplicationSeeder(nil).Seed(context.Background(), c.DB))
	roles := NewRoleManager(c.DB)
	return NewUserManager(c.DB, roles, opts, nil), roles
}

func TestPasswordPolicy(t *testing.T) {
	p := DefaultOptions().Password
	assert.NoError(t, p.Validate("abcdef"))
	assert.True(t, errors.Is(p.Validate("abc"), ErrPasswordPolicy))

	strict := PasswordOptions{RequiredLength: 8, RequireDigit: true, RequireUppercase: true, RequireNonAlphanumeric: true}
	err := strict.Validate("abcdefgh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a digit")
	assert.Contains(t, err.Error(), "needs an uppercase letter")
	assert.NoError(t, strict.Validate("Abcdef1!"))
}

func TestCreateAndFind(t *testing.T) {
	ctx := context.Background()
	users, _ := newManagers(t, DefaultOptions())

	u, err := users.Create(ctx, "Magic", "magic@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "MAGIC", u.NormalizedUserName)
	assert.NotEqual(t, "secret", u.PasswordHash)
	assert.False(t, u.CreatedOn.IsZero())

	got, err := users.FindByName(ctx, "magic")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	got, err = users.FindByEmail(ctx, "MAGIC@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = users.FindByName(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateRejectsDuplicatesAndWeakPasswords(t *testing.T) {
	ctx := context.Background()
	opts := DefaultOptions()
	opts.RequireUniqueEmail = true
	users, _ := newManagers(t, opts)

	_, err := users.Create(ctx, "bird", "bird@example.com", "secret")
	require.NoError(t, err)

	_, err = users.Create(ctx, "BIRD", "other@example.com", "secret")
	assert.True(t, errors.Is(err, ErrDuplicateUserName))

	_, err = users.Create(ctx, "larry", "Bird@Example.com", "secret")
	assert.True(t, errors.Is(err, ErrDuplicateEmail))

	_, err = users.Create(ctx, "kareem", "k@example.com", "123")
	assert.True(t, errors.Is(err, ErrPasswordPolicy))
}

func TestDeletedUserKeepsName(t *testing.T) {
	ctx := context.Background()
	users, _ := newManagers(t, DefaultOptions())

	u, err := users.Create(ctx, "shaq", "", "secret")
	require.NoError(t, err)
	require.NoError(t, users.Delete(ctx, u))

	got, err := users.FindByName(ctx, "shaq")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = users.Create(ctx, "shaq", "", "secret")
	assert.True(t, errors.Is(err, ErrDuplicateUserName))

	restored, err := users.Restore(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.False(t, restored.IsDeleted)

	got, err = users.FindByName(ctx, "shaq")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestPasswordSignInLockout(t *testing.T) {
	ctx := context.Background()
	opts := DefaultOptions()
	opts.MaxFailedAccess = 2
	opts.LockoutDuration = time.Minute
	users, _ := newManagers(t, opts)
	clock := &datatest.Clock{T: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	users.now = clock.Now

	_, err := users.Create(ctx, "tim", "", "secret")
	require.NoError(t, err)

	_, err = users.PasswordSignIn(ctx, "tim", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	u, err := users.FindByName(ctx, "tim")
	require.NoError(t, err)
	assert.Equal(t, 1, u.AccessFailedCount)

	_, err = users.PasswordSignIn(ctx, "tim", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = users.PasswordSignIn(ctx, "tim", "secret")
	assert.True(t, errors.Is(err, ErrLockedOut))

	clock.Advance(2 * time.Minute)
	u, err = users.PasswordSignIn(ctx, "tim", "secret")
	require.NoError(t, err)
	assert.Equal(t, 0, u.AccessFailedCount)
	assert.Nil(t, u.LockoutEnd)

	_, err = users.PasswordSignIn(ctx, "nobody", "secret")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestPasswordSignInByEmail(t *testing.T) {
	ctx := context.Background()
	users, _ := newManagers(t, DefaultOptions())
	u, err := users.Create(ctx, "larry", "Larry@Example.com", "secret")
	require.NoError(t, err)

	got, err := users.PasswordSignIn(ctx, "larry@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.PasswordSignIn(ctx, "larry@example.com", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	_, err = users.PasswordSignIn(ctx, "ghost@example.com", "secret")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestRoles(t *testing.T) {
	ctx := context.Background()
	users, roles := newManagers(t, DefaultOptions())

	exists, err := roles.Exists(ctx, "administrator")
	require.NoError(t, err)
	assert.True(t, exists, "seeded")

	_, err = roles.Create(ctx, domain.AdministratorRoleName)
	assert.True(t, errors.Is(err, ErrDuplicateRoleName))

	_, err = roles.Create(ctx, "Scout")
	require.NoError(t, err)

	u, err := users.Create(ctx, "pat", "", "secret")
	require.NoError(t, err)
	require.NoError(t, users.AddToRole(ctx, u, "Scout"))
	require.NoError(t, users.AddToRole(ctx, u, domain.AdministratorRoleName))
	require.NoError(t, users.AddToRole(ctx, u, "Scout"), "adding twice is a no-op")

	names, err := users.RolesOf(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.AdministratorRoleName, "Scout"}, names)

	in, err := users.IsInRole(ctx, u, "scout")
	require.NoError(t, err)
	assert.True(t, in)

	err = users.AddToRole(ctx, u, "Coach")
	assert.True(t, errors.Is(err, ErrRoleNotFound))
}
