package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
)

// Address is a saved delivery address. At most one address per user
// carries is_default=true. Restaurant locations reuse this table with a
// nil user_id.
type Address struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    *uuid.UUID        `gorm:"column:user_id;type:uuid;index"`
	Type      enums.AddressType `gorm:"column:type;type:text;not null;default:'HOME'"`
	Street    string            `gorm:"column:street;not null"`
	City      string            `gorm:"column:city;not null"`
	State     string            `gorm:"column:state;not null"`
	ZipCode   string            `gorm:"column:zip_code;not null"`
	Landmark  *string           `gorm:"column:landmark"`
	Latitude  *float64          `gorm:"column:latitude"`
	Longitude *float64          `gorm:"column:longitude"`
	IsDefault bool              `gorm:"column:is_default;not null;default:false"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
