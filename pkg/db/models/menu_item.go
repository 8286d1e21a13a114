package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
)

// MenuItem belongs to one restaurant. TimesOrdered is the popularity
// counter incremented by the order transaction.
type MenuItem struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID uuid.UUID        `gorm:"column:restaurant_id;type:uuid;not null;index"`
	Name         string           `gorm:"column:name;not null"`
	Description  string           `gorm:"column:description;not null;default:''"`
	Price        decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	Category     string           `gorm:"column:category;not null;index"`
	IsVeg        bool             `gorm:"column:is_veg;not null;default:false"`
	SpiceLevel   enums.SpiceLevel `gorm:"column:spice_level;type:text;not null;default:'MILD'"`
	ImageURL     *string          `gorm:"column:image_url"`
	IsAvailable  bool             `gorm:"column:is_available;not null;default:true"`
	TimesOrdered int              `gorm:"column:times_ordered;not null;default:0"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
