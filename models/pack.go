package models

import (
	"time"

	"github.com/google/uuid"
)

// Pack bundles at least two of a salon's products, sold together at either
// the sum of the current product prices, an overridden custom price, or
// either of those less a percentage discount.
type Pack struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	CustomPrice        *int    `json:"customPrice,omitempty"` // smallest currency unit, overrides the calculated sum
	DiscountPercentage float64 `gorm:"default:0" json:"discountPercentage"`

	IsActive  bool       `gorm:"default:true" json:"isActive"`
	DeletedAt *time.Time `gorm:"index" json:"deletedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PackProducts []PackProduct `gorm:"foreignKey:PackID" json:"-"`
}

type PackProduct struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PackID    uint `gorm:"index;not null;uniqueIndex:uq_pack_product,priority:1" json:"packId"`
	ProductID uint `gorm:"not null;uniqueIndex:uq_pack_product,priority:2" json:"productId"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity"`

	CreatedAt time.Time `json:"createdAt"`
}
