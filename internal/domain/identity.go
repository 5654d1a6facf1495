package domain

import "time"

type User struct {
	ID                   string     `gorm:"primaryKey;size:36" json:"id"`
	UserName             string     `gorm:"size:256" json:"userName"`
	NormalizedUserName   string     `gorm:"size:256;uniqueIndex" json:"-"`
	Email                string     `gorm:"size:256" json:"email"`
	NormalizedEmail      string     `gorm:"size:256;index" json:"-"`
	EmailConfirmed       bool       `json:"emailConfirmed"`
	PasswordHash         string     `gorm:"size:100" json:"-"`
	SecurityStamp        string     `gorm:"size:36" json:"-"`
	ConcurrencyStamp     string     `gorm:"size:36" json:"-"`
	PhoneNumber          string     `gorm:"size:32" json:"phoneNumber,omitempty"`
	PhoneNumberConfirmed bool       `json:"phoneNumberConfirmed"`
	TwoFactorEnabled     bool       `json:"twoFactorEnabled"`
	LockoutEnd           *time.Time `json:"lockoutEnd,omitempty"`
	LockoutEnabled       bool       `json:"lockoutEnabled"`
	AccessFailedCount    int        `json:"accessFailedCount"`

	Manager *Manager    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"manager,omitempty"`
	Claims  []UserClaim `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Logins  []UserLogin `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Tokens  []UserToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Roles   []UserRole  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	DeletableEntity
}

func (User) TableName() string { return "users" }

type Role struct {
	ID               string `gorm:"primaryKey;size:36" json:"id"`
	Name             string `gorm:"size:256" json:"name"`
	NormalizedName   string `gorm:"size:256;uniqueIndex" json:"-"`
	ConcurrencyStamp string `gorm:"size:36" json:"-"`

	Claims []RoleClaim `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"-"`
	Users  []UserRole  `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"-"`

	DeletableEntity
}

func (Role) TableName() string { return "roles" }

type UserRole struct {
	UserID string `gorm:"primaryKey;size:36"`
	RoleID string `gorm:"primaryKey;size:36;index"`
}

func (UserRole) TableName() string { return "user_roles" }

type UserClaim struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     string `gorm:"size:36;not null;index"`
	ClaimType  string
	ClaimValue string
}

func (UserClaim) TableName() string { return "user_claims" }

type RoleClaim struct {
	ID         uint   `gorm:"primaryKey"`
	RoleID     string `gorm:"size:36;not null;index"`
	ClaimType  string
	ClaimValue string
}

func (RoleClaim) TableName() string { return "role_claims" }

type UserLogin struct {
	LoginProvider       string `gorm:"primaryKey;size:128"`
	ProviderKey         string `gorm:"primaryKey;size:128"`
	ProviderDisplayName string
	UserID              string `gorm:"size:36;not null;index"`
}

func (UserLogin) TableName() string { return "user_logins" }

type UserToken struct {
	UserID        string `gorm:"primaryKey;size:36"`
	LoginProvider string `gorm:"primaryKey;size:128"`
	Name          string `gorm:"primaryKey;size:128"`
	Value         string
}

func (UserToken) TableName() string { return "user_tokens" }

// AdministratorRoleName is seeded on first start.
const AdministratorRoleName = "Administrator"
