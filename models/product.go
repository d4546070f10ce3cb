package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"default:'General'" json:"category"`

	Price    int `gorm:"not null" json:"price"` // smallest currency unit
	Quantity int `gorm:"default:0" json:"quantity"`

	IsActive  bool       `gorm:"default:true" json:"isActive"`
	DeletedAt *time.Time `gorm:"index" json:"deletedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
