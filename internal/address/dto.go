package address

import (
	"time"

	"github.com/google/uuid"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db/models"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
)

// AddressDTO is the transport shape for a saved delivery address.
type AddressDTO struct {
	ID        uuid.UUID         `json:"id"`
	Type      enums.AddressType `json:"addressType"`
	Street    string            `json:"street"`
	City      string            `json:"city"`
	State     string            `json:"state"`
	ZipCode   string            `json:"zipCode"`
	Landmark  *string           `json:"landmark,omitempty"`
	Latitude  *float64          `json:"latitude,omitempty"`
	Longitude *float64          `json:"longitude,omitempty"`
	IsDefault bool              `json:"isDefault"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// CreateAddressRequest carries the payload for saving a new address.
type CreateAddressRequest struct {
	Street    string             `json:"street" validate:"required"`
	City      string             `json:"city" validate:"required"`
	State     string             `json:"state" validate:"required"`
	ZipCode   string             `json:"zipCode" validate:"required,len=6,numeric"`
	Landmark  *string            `json:"landmark,omitempty"`
	Type      *enums.AddressType `json:"addressType,omitempty"`
	IsDefault bool               `json:"isDefault"`
	Latitude  *float64           `json:"latitude,omitempty"`
	Longitude *float64           `json:"longitude,omitempty"`
}

// UpdateAddressRequest carries a partial update; nil fields are untouched.
type UpdateAddressRequest struct {
	Street    *string            `json:"street,omitempty" validate:"omitempty,min=1"`
	City      *string            `json:"city,omitempty" validate:"omitempty,min=1"`
	State     *string            `json:"state,omitempty" validate:"omitempty,min=1"`
	ZipCode   *string            `json:"zipCode,omitempty" validate:"omitempty,len=6,numeric"`
	Landmark  *string            `json:"landmark,omitempty"`
	Type      *enums.AddressType `json:"addressType,omitempty"`
	IsDefault *bool              `json:"isDefault,omitempty"`
	Latitude  *float64           `json:"latitude,omitempty"`
	Longitude *float64           `json:"longitude,omitempty"`
}

func FromModel(a *models.Address) *AddressDTO {
	if a == nil {
		return nil
	}

	return &AddressDTO{
		ID:        a.ID,
		Type:      a.Type,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		ZipCode:   a.ZipCode,
		Landmark:  a.Landmark,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
		IsDefault: a.IsDefault,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func fromModels(addresses []models.Address) []AddressDTO {
	out := make([]AddressDTO, 0, len(addresses))
	for i := range addresses {
		out = append(out, *FromModel(&addresses[i]))
	}
	return out
}
