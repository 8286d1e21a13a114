package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
)

// Order is created once per checkout. Identifying fields are immutable;
// only the lifecycle fields change afterwards.
type Order struct {
	ID                    uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber           string              `gorm:"column:order_number;not null;uniqueIndex"`
	CustomerID            uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index"`
	RestaurantID          uuid.UUID           `gorm:"column:restaurant_id;type:uuid;not null;index"`
	AddressID             uuid.UUID           `gorm:"column:address_id;type:uuid;not null"`
	Status                enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'PENDING'"`
	PaymentStatus         enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'PENDING'"`
	PaymentMethod         enums.PaymentMethod `gorm:"column:payment_method;type:text;not null;default:'CASH_ON_DELIVERY'"`
	Subtotal              decimal.Decimal     `gorm:"column:subtotal;type:numeric(10,2);not null"`
	Tax                   decimal.Decimal     `gorm:"column:tax;type:numeric(10,2);not null"`
	DeliveryFee           decimal.Decimal     `gorm:"column:delivery_fee;type:numeric(10,2);not null"`
	Discount              decimal.Decimal     `gorm:"column:discount;type:numeric(10,2);not null;default:0"`
	Total                 decimal.Decimal     `gorm:"column:total;type:numeric(10,2);not null"`
	DeliveryInstructions  *string             `gorm:"column:delivery_instructions"`
	PreparationTime       *int                `gorm:"column:preparation_time"`
	EstimatedDeliveryTime time.Time           `gorm:"column:estimated_delivery_time;not null"`
	ActualDeliveryTime    *time.Time          `gorm:"column:actual_delivery_time"`
	Customer              *User               `gorm:"foreignKey:CustomerID"`
	Restaurant            *Restaurant         `gorm:"foreignKey:RestaurantID"`
	Address               *Address            `gorm:"foreignKey:AddressID"`
	Items                 []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
