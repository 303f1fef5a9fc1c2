package models

import (
	"time"

	"github.com/boostlab/smm-order-service/internal/domain"
)

type OrderModel struct {
	ID              string             `gorm:"primaryKey;type:uuid"`
	UserID          string             `gorm:"index"`
	PlatformID      string             `gorm:"type:uuid"`
	ServiceID       string             `gorm:"type:uuid"`
	Quantity        int                `gorm:"not null"`
	Link            string             `gorm:"not null"`
	Price           float64            `gorm:"not null"`
	Currency        string             `gorm:"not null"`
	Status          domain.OrderStatus `gorm:"index:idx_orders_status"`
	ProviderOrderID string             `gorm:"index:idx_orders_provider_order_id"`
	StartCount      int
	Remains         int
	DeclineReason   string
	DispatchedAt    *time.Time
	CreatedAt       time.Time `gorm:"index:idx_orders_created_at"`
	UpdatedAt       time.Time

	Payment  *PaymentModel `gorm:"foreignKey:OrderID;references:ID"`
	Service  *ServiceModel `gorm:"foreignKey:ServiceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Platform *PlatformModel `gorm:"foreignKey:PlatformID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

func (OrderModel) TableName() string {
	return "orders"
}
