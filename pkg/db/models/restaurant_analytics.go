package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RestaurantAnalytics is a per-restaurant per-day rollup upserted by the
// order transaction. (restaurant_id, date) is unique.
type RestaurantAnalytics struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID  uuid.UUID       `gorm:"column:restaurant_id;type:uuid;not null;uniqueIndex:idx_restaurant_analytics_day"`
	Date          time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:idx_restaurant_analytics_day"`
	TotalOrders   int             `gorm:"column:total_orders;not null;default:0"`
	TotalRevenue  decimal.Decimal `gorm:"column:total_revenue;type:numeric(12,2);not null;default:0"`
	AvgOrderValue decimal.Decimal `gorm:"column:avg_order_value;type:numeric(10,2);not null;default:0"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
