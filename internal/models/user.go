package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the local role dictionary legacy role tokens are matched against.
type Role struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Code      string    `gorm:"column:code;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (Role) TableName() string { return "roles" }

// User is an application account keyed by login.
type User struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Login     string    `gorm:"column:login;uniqueIndex"`
	FullName  string    `gorm:"column:full_name"`
	Email     *string   `gorm:"column:email"`
	IsActive  bool      `gorm:"column:is_active"`
	Roles     []Role    `gorm:"many2many:user_roles"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string { return "users" }

func NewUser(login, fullName string, email *string) (*User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, ErrEmptyCode
	}
	return &User{
		ID:       uuid.New().String(),
		Login:    login,
		FullName: strings.TrimSpace(fullName),
		Email:    email,
		IsActive: true,
	}, nil
}

func (u *User) Update(fullName string, email *string) {
	u.FullName = strings.TrimSpace(fullName)
	u.Email = email
}

// AssignRoles replaces the user's role set.
func (u *User) AssignRoles(roles []Role) {
	u.Roles = roles
}
