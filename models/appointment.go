package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SalonID    uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`
	CustomerID uint      `gorm:"index;not null" json:"customerId"`

	ServiceName string    `gorm:"not null" json:"serviceName"`
	ScheduledAt time.Time `gorm:"index;not null" json:"scheduledAt"`
	Status      string    `gorm:"type:varchar(20);default:'booked'" json:"status"` // booked, completed, cancelled
	Notes       string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}
