package models

import (
	"time"

	"github.com/google/uuid"
)

type Salon struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	Slug    string    `gorm:"uniqueIndex;not null" json:"slug"`
	Address string    `json:"address"`
	About   string    `gorm:"type:text" json:"about"`
	LogoURL string    `json:"logoUrl"`

	WorkingHours JSONB `gorm:"type:jsonb;default:'{}'" json:"workingHours"`

	LayoutPattern string `gorm:"default:'classic'" json:"layoutPattern"`
	ThemePalette  string `gorm:"default:'rose'" json:"themePalette"`

	AppointmentReminders bool `gorm:"default:true" json:"appointmentReminders"`
	SMSNotifications     bool `gorm:"default:false" json:"smsNotifications"`

	IsActive  bool       `gorm:"default:true" json:"isActive"`
	DeletedAt *time.Time `gorm:"index" json:"deletedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Users    []User    `gorm:"foreignKey:SalonID" json:"-"`
	Products []Product `gorm:"foreignKey:SalonID" json:"-"`
	Packs    []Pack    `gorm:"foreignKey:SalonID" json:"-"`
}
