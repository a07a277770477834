package models

import (
	"fmt"
	"time"

	"restay/constants"

	"gorm.io/datatypes"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name      string    `gorm:"default:New User" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	// Password holds a bcrypt hash. Accounts provisioned before hashing
	// keep an empty hash and fall back to the shared default credential.
	Password string `json:"-"`
	Role     string `gorm:"default:viewer" json:"role"`
	Status   string `gorm:"default:active" json:"status"`

	// Property assignments are stored by property name, not id. Renaming a
	// property orphans its assignments; admins carry an empty list and have
	// implicit access to everything.
	AssignedProperties datatypes.JSONSlice[string] `json:"assignedPGs"`

	LastLogin time.Time `json:"lastLogin"`
}

func (u *User) ValidateRole() error {
	if !constants.IsValidRole(u.Role) {
		return fmt.Errorf("invalid role: %q, must be one of admin, manager, accountant, viewer", u.Role)
	}
	return nil
}

// IsAdmin reports whether the account has implicit access to all properties.
func (u *User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}

// HasProperty reports whether the account may operate on the named property.
func (u *User) HasProperty(name string) bool {
	if u.IsAdmin() {
		return true
	}
	for _, p := range u.AssignedProperties {
		if p == name {
			return true
		}
	}
	return false
}
