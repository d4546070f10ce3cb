package models

import (
	"time"

	"github.com/google/uuid"
)

// SalonCustomer records one salon's relationship with a platform customer,
// including the derived counters shown on the salon's roster.
type SalonCustomer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SalonID    uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:uq_salon_customer,priority:1" json:"salonId"`
	CustomerID uint      `gorm:"index;not null;uniqueIndex:uq_salon_customer,priority:2" json:"customerId"`

	Source        string `gorm:"default:'appointment'" json:"source"` // appointment, purchase, manual
	Notes         string `gorm:"type:text" json:"notes"`
	LoyaltyPoints int    `gorm:"default:0" json:"loyaltyPoints"`

	TotalSpent        int  `gorm:"default:0" json:"totalSpent"` // cents, paid orders only
	TotalAppointments int  `gorm:"default:0" json:"totalAppointments"`
	IsFavorite        bool `gorm:"default:false" json:"isFavorite"`

	FirstInteractionAt *time.Time `json:"firstInteractionAt,omitempty"`
	LastInteractionAt  *time.Time `json:"lastInteractionAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer"`
}
