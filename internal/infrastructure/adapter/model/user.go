package model

import (
	"time"
)

// User represents the database model for accounts
type User struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement"`
	Username         string    `gorm:"uniqueIndex;not null;size:100"`
	PasswordHash     string    `gorm:"size:100"` // empty for federated-only accounts
	Email            string    `gorm:"index;size:255"`
	Role             string    `gorm:"not null;size:20;default:user"`
	DepositWallet    int64     `gorm:"not null;default:0"` // whole VND
	CommissionWallet int64     `gorm:"not null;default:0"` // whole VND
	RefCode          string    `gorm:"uniqueIndex;not null;size:20"`
	ReferredBy       string    `gorm:"index;size:20"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
