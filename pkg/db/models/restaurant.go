package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Restaurant is the catalog root entity. Aggregate counters are maintained
// by the order transaction.
type Restaurant struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID       uuid.UUID       `gorm:"column:owner_id;type:uuid;not null;index"`
	Name          string          `gorm:"column:name;not null"`
	Description   string          `gorm:"column:description;not null;default:''"`
	AddressID     *uuid.UUID      `gorm:"column:address_id;type:uuid"`
	Phone         *string         `gorm:"column:phone"`
	ImageURL      *string         `gorm:"column:image_url"`
	CuisineType   pq.StringArray  `gorm:"column:cuisine_type;type:text[];not null;default:ARRAY[]::text[]"`
	DeliveryFee   decimal.Decimal `gorm:"column:delivery_fee;type:numeric(10,2);not null;default:0"`
	MinOrder      decimal.Decimal `gorm:"column:min_order;type:numeric(10,2);not null;default:0"`
	Rating        float64         `gorm:"column:rating;not null;default:0"`
	ReviewCount   int             `gorm:"column:review_count;not null;default:0"`
	OpensAt       string          `gorm:"column:opens_at;not null;default:'09:00'"`
	ClosesAt      string          `gorm:"column:closes_at;not null;default:'22:00'"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true"`
	TotalOrders   int             `gorm:"column:total_orders;not null;default:0"`
	TotalRevenue  decimal.Decimal `gorm:"column:total_revenue;type:numeric(12,2);not null;default:0"`
	AvgOrderValue decimal.Decimal `gorm:"column:avg_order_value;type:numeric(10,2);not null;default:0"`
	Address       *Address        `gorm:"foreignKey:AddressID"`
	MenuItems     []MenuItem      `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
