package model

import (
	"time"
)

// Product represents the database model for catalog listings
type Product struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement"`
	Name            string    `gorm:"not null;size:255"`
	OriginalPrice   int64     `gorm:"not null"` // whole VND for the full window
	StartDate       time.Time `gorm:"not null"`
	EndDate         time.Time `gorm:"not null;index"`
	AccountUsername string    `gorm:"size:255"`
	AccountPassword string    `gorm:"size:255"`
	AccountCookie   string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}
