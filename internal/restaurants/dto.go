package restaurant

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Shubhangam-Singh/food-delivery-app/internal/address"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db/models"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/pagination"
)

// RestaurantDTO is the transport shape for a catalog listing.
type RestaurantDTO struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Address     *address.AddressDTO `json:"address,omitempty"`
	Phone       *string             `json:"phone,omitempty"`
	ImageURL    *string             `json:"imageUrl,omitempty"`
	CuisineType []string            `json:"cuisineType"`
	DeliveryFee decimal.Decimal     `json:"deliveryFee"`
	MinOrder    decimal.Decimal     `json:"minOrder"`
	Rating      float64             `json:"rating"`
	ReviewCount int                 `json:"reviewCount"`
	OpensAt     string              `json:"opensAt"`
	ClosesAt    string              `json:"closesAt"`
	IsActive    bool                `json:"isActive"`
	TotalOrders int                 `json:"totalOrders"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// MenuItemDTO is the transport shape for a single menu entry.
type MenuItemDTO struct {
	ID           uuid.UUID        `json:"id"`
	RestaurantID uuid.UUID        `json:"restaurantId"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"price"`
	Category     string           `json:"category"`
	IsVeg        bool             `json:"isVeg"`
	SpiceLevel   enums.SpiceLevel `json:"spiceLevel"`
	ImageURL     *string          `json:"imageUrl,omitempty"`
	IsAvailable  bool             `json:"isAvailable"`
	TimesOrdered int              `json:"timesOrdered"`
}

// RestaurantDetailDTO pairs a restaurant with its menu grouped by category.
type RestaurantDetailDTO struct {
	RestaurantDTO
	Menu map[string][]MenuItemDTO `json:"menu"`
}

// SuggestionsDTO holds typeahead matches for the catalog search box.
type SuggestionsDTO struct {
	Restaurants []string `json:"restaurants"`
	Cuisines    []string `json:"cuisines"`
}

// ListResponse is the browse payload: one page plus its metadata.
type ListResponse struct {
	Restaurants []RestaurantDTO `json:"restaurants"`
	Pagination  pagination.Page `json:"pagination"`
}

// AddressInput is the restaurant location embedded in create/update payloads.
// It becomes a row in the addresses table with no owning user.
type AddressInput struct {
	Street   string  `json:"street" validate:"required"`
	City     string  `json:"city" validate:"required"`
	State    string  `json:"state" validate:"required"`
	ZipCode  string  `json:"zipCode" validate:"required,len=6,numeric"`
	Landmark *string `json:"landmark,omitempty"`
}

// CreateRestaurantRequest carries the payload for onboarding a restaurant.
type CreateRestaurantRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Address     AddressInput     `json:"address" validate:"required"`
	Phone       *string          `json:"phone,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
	CuisineType []string         `json:"cuisineType"`
	DeliveryFee decimal.Decimal  `json:"deliveryFee"`
	MinOrder    decimal.Decimal  `json:"minOrder"`
	OpensAt     *string          `json:"opensAt,omitempty"`
	ClosesAt    *string          `json:"closesAt,omitempty"`
}

// UpdateRestaurantRequest carries a partial update; nil fields are untouched.
type UpdateRestaurantRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string          `json:"description,omitempty"`
	Address     *AddressInput    `json:"address,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
	CuisineType []string         `json:"cuisineType,omitempty"`
	DeliveryFee *decimal.Decimal `json:"deliveryFee,omitempty"`
	MinOrder    *decimal.Decimal `json:"minOrder,omitempty"`
	OpensAt     *string          `json:"opensAt,omitempty"`
	ClosesAt    *string          `json:"closesAt,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
}

// CreateMenuItemRequest carries the payload for adding a menu entry.
type CreateMenuItemRequest struct {
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price" validate:"required"`
	Category    string            `json:"category" validate:"required"`
	IsVeg       bool              `json:"isVeg"`
	SpiceLevel  *enums.SpiceLevel `json:"spiceLevel,omitempty"`
	ImageURL    *string           `json:"imageUrl,omitempty"`
	IsAvailable *bool             `json:"isAvailable,omitempty"`
}

// UpdateMenuItemRequest carries a partial menu item update.
type UpdateMenuItemRequest struct {
	Name        *string           `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string           `json:"description,omitempty"`
	Price       *decimal.Decimal  `json:"price,omitempty"`
	Category    *string           `json:"category,omitempty" validate:"omitempty,min=1"`
	IsVeg       *bool             `json:"isVeg,omitempty"`
	SpiceLevel  *enums.SpiceLevel `json:"spiceLevel,omitempty"`
	ImageURL    *string           `json:"imageUrl,omitempty"`
	IsAvailable *bool             `json:"isAvailable,omitempty"`
}

func FromModel(m *models.Restaurant) *RestaurantDTO {
	if m == nil {
		return nil
	}

	return &RestaurantDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Address:     address.FromModel(m.Address),
		Phone:       m.Phone,
		ImageURL:    m.ImageURL,
		CuisineType: append([]string(nil), m.CuisineType...),
		DeliveryFee: m.DeliveryFee,
		MinOrder:    m.MinOrder,
		Rating:      m.Rating,
		ReviewCount: m.ReviewCount,
		OpensAt:     m.OpensAt,
		ClosesAt:    m.ClosesAt,
		IsActive:    m.IsActive,
		TotalOrders: m.TotalOrders,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func MenuItemFromModel(m *models.MenuItem) *MenuItemDTO {
	if m == nil {
		return nil
	}

	return &MenuItemDTO{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		Category:     m.Category,
		IsVeg:        m.IsVeg,
		SpiceLevel:   m.SpiceLevel,
		ImageURL:     m.ImageURL,
		IsAvailable:  m.IsAvailable,
		TimesOrdered: m.TimesOrdered,
	}
}

func detailFromModel(m *models.Restaurant) *RestaurantDetailDTO {
	detail := &RestaurantDetailDTO{
		RestaurantDTO: *FromModel(m),
		Menu:          make(map[string][]MenuItemDTO),
	}
	for i := range m.MenuItems {
		item := MenuItemFromModel(&m.MenuItems[i])
		detail.Menu[item.Category] = append(detail.Menu[item.Category], *item)
	}
	return detail
}
