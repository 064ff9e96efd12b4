package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	SKU          string  `gorm:"uniqueIndex" json:"sku"`
	Description  string  `json:"description"`
	Price        float64 `gorm:"not null" json:"price"` // Sale price, USD
	RegularPrice float64 `json:"regular_price"`
	Condition    string  `gorm:"type:VARCHAR(10);default:'new'" json:"condition"` // "new" or "used"
	Year         int     `json:"year"`
	Engine       string  `json:"engine"` // e.g. "125cc", "electric"
	Image        string  `json:"image"`
	Featured     bool    `json:"featured"`
	Stock        int     `json:"stock"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
