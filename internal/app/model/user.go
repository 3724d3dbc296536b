package model

import (
	"time"
)

type UserRole string // account role, fixed at creation

const (
	RoleAdmin      UserRole = "admin"
	RoleUser       UserRole = "user"
	RoleStoreOwner UserRole = "store_owner"
)

// ParseUserRole maps a raw role string onto the closed set of roles
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return UserRole(s), true
	default:
		return "", false
	}
}

func (r UserRole) String() string {
	return string(r)
}

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(60);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Address      string    `gorm:"type:varchar(400);not null" json:"address"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'user';index" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Store *Store `gorm:"foreignKey:OwnerID" json:"store,omitempty"` // owned store (store_owner only)
}

func (User) TableName() string {
	return "users"
}
