package model

import (
	"time"
)

// RevokedToken is a logout ledger entry. Only the SHA-256 digest of the
// token is stored.
type RevokedToken struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	TokenHash     string    `gorm:"type:char(64);uniqueIndex;not null" json:"-"`
	ExpiresAt     time.Time `gorm:"not null;index" json:"expires_at"`
	InvalidatedAt time.Time `gorm:"not null;index" json:"invalidated_at"`
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
