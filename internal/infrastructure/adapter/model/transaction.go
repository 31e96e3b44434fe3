package model

import (
	"time"
)

// Transaction represents the database model for the wallet audit trail
type Transaction struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;index"`
	OrderID   *uint64   `gorm:"index"` // set for commission rows
	Type      string    `gorm:"not null;size:20"`
	Amount    int64     `gorm:"not null"`
	Status    string    `gorm:"not null;size:20"`
	CreatedAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
