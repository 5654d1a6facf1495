// Package identity manages users, roles and password sign-in on top of the
// data context.
package identity

import (
	"strings"
	"time"
	"unicode"

	"github.com/cockroachdb/errors"

	"basketball-manager/internal/core/config"
)

var (
	ErrDuplicateUserName  = errors.New("user name is already taken")
	ErrDuplicateEmail     = errors.New("email is already taken")
	ErrDuplicateRoleName  = errors.New("role name is already taken")
	ErrPasswordPolicy     = errors.New("password does not satisfy the policy")
	ErrInvalidCredentials = errors.New("invalid user name or password")
	ErrLockedOut          = errors.New("user is locked out")
	ErrRoleNotFound       = errors.New("role not found")
)

type PasswordOptions struct {
	RequiredLength         int
	RequireDigit           bool
	RequireLowercase       bool
	RequireUppercase       bool
	RequireNonAlphanumeric bool
}

type Options struct {
	Password           PasswordOptions
	MaxFailedAccess    int
	LockoutDuration    time.Duration
	RequireUniqueEmail bool
}

// DefaultOptions is the policy used by the game: six characters, no class rules.
func DefaultOptions() Options {
	return Options{
		Password:        PasswordOptions{RequiredLength: 6},
		MaxFailedAccess: 5,
		LockoutDuration: 5 * time.Minute,
	}
}

func OptionsFromConfig(c config.Identity) Options {
	return Options{
		Password: PasswordOptions{
			RequiredLength:         c.Password.RequiredLength,
			RequireDigit:           c.Password.RequireDigit,
			RequireLowercase:       c.Password.RequireLowercase,
			RequireUppercase:       c.Password.RequireUppercase,
			RequireNonAlphanumeric: c.Password.RequireNonAlphanumeric,
		},
		MaxFailedAccess:    c.MaxFailedAccess,
		LockoutDuration:    time.Duration(c.LockoutMinutes) * time.Minute,
		RequireUniqueEmail: c.RequireUniqueMail,
	}
}

// Validate returns ErrPasswordPolicy wrapped with every failed rule.
func (p PasswordOptions) Validate(pw string) error {
	var failed []string
	if len([]rune(pw)) < p.RequiredLength {
		failed = append(failed, "too short")
	}
	var digit, lower, upper, other bool
	for _, r := range pw {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case !unicode.IsLetter(r):
			other = true
		}
	}
	if p.RequireDigit && !digit {
		failed = append(failed, "needs a digit")
	}
	if p.RequireLowercase && !lower {
		failed = append(failed, "needs a lowercase letter")
	}
	if p.RequireUppercase && !upper {
		failed = append(failed, "needs an uppercase letter")
	}
	if p.RequireNonAlphanumeric && !other {
		failed = append(failed, "needs a non-alphanumeric character")
	}
	if len(failed) > 0 {
		return errors.Wrap(ErrPasswordPolicy, strings.Join(failed, ", "))
	}
	return nil
}

// Normalize is the lookup form of user names, emails and role names.
func Normalize(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
