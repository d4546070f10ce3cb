package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SalonID    uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`
	CustomerID uint      `gorm:"index;not null" json:"customerId"`

	Status      string `gorm:"type:varchar(20);default:'pending'" json:"status"` // pending, paid, cancelled
	TotalAmount int    `gorm:"not null;default:0" json:"totalAmount"`            // smallest currency unit

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"index;not null" json:"orderId"`

	// Exactly one of ProductID / PackID is set.
	ProductID *uint `gorm:"index" json:"productId,omitempty"`
	PackID    *uint `gorm:"index" json:"packId,omitempty"`

	ItemName   string `gorm:"not null" json:"itemName"`
	Quantity   int    `gorm:"not null;default:1" json:"quantity"`
	UnitPrice  int    `gorm:"not null" json:"unitPrice"`
	TotalPrice int    `gorm:"not null" json:"totalPrice"`
}
