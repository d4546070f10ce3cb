package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is platform-wide: one row per person, shared across every salon
// they interact with. Salon-scoped state lives on SalonCustomer.
type Customer struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	UUID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`

	Name  string `gorm:"not null" json:"name"`
	Phone string `gorm:"uniqueIndex;not null" json:"phone"`
	Email string `json:"email"`

	IsVerified       bool       `gorm:"default:false" json:"isVerified"`
	PlatformJoinedAt *time.Time `json:"platformJoinedAt,omitempty"`

	IsActive  bool       `gorm:"default:true" json:"isActive"`
	DeletedAt *time.Time `gorm:"index" json:"deletedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Salons []SalonCustomer `gorm:"foreignKey:CustomerID" json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.UUID == "" {
		c.UUID = uuid.New().String()
	}
	if c.PlatformJoinedAt == nil {
		now := time.Now()
		c.PlatformJoinedAt = &now
	}
	return
}
