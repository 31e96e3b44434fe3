package model

import (
	"time"
)

// Order represents the database model for completed purchases.
// The Account* columns are a snapshot of the product credentials at
// purchase time; rotation on the product never rewrites them.
type Order struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement"`
	Reference       string    `gorm:"uniqueIndex;not null;size:36"`
	UserID          uint64    `gorm:"not null;index"`
	ProductID       uint64    `gorm:"not null;index"`
	ProductName     string    `gorm:"not null;size:255"`
	Price           int64     `gorm:"not null"`
	Days            int       `gorm:"not null"`
	PurchaseDate    time.Time `gorm:"not null"`
	AccountUsername string    `gorm:"size:255"`
	AccountPassword string    `gorm:"size:255"`
	AccountCookie   string    `gorm:"type:text"`

	User    User    `gorm:"foreignKey:UserID;references:ID"`
	Product Product `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}
