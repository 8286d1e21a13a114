package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Shubhangam-Singh/food-delivery-app/internal/address"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db/models"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/pagination"
)

// CartLineInput is one line of the submitted cart. The price is deliberately
// absent: it is always read fresh from the catalog inside the transaction.
type CartLineInput struct {
	MenuItemID          uuid.UUID `json:"menuItemId" validate:"required"`
	Quantity            int       `json:"quantity" validate:"required,min=1"`
	SpecialInstructions *string   `json:"specialInstructions"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	CartItems            []CartLineInput      `json:"cartItems" validate:"required,min=1,dive"`
	RestaurantID         uuid.UUID            `json:"restaurantId" validate:"required"`
	DeliveryAddressID    uuid.UUID            `json:"deliveryAddressId" validate:"required"`
	DeliveryInstructions *string              `json:"deliveryInstructions"`
	PaymentMethod        *enums.PaymentMethod `json:"paymentMethod"`
}

// UpdateStatusRequest moves an order along its lifecycle. The preparation
// time, when sent, is recorded in minutes alongside the transition.
type UpdateStatusRequest struct {
	Status          string `json:"status" validate:"required"`
	PreparationTime *int   `json:"preparationTime,omitempty" validate:"omitempty,min=1"`
}

// ListFilters describe the inputs supported by the order history list.
type ListFilters struct {
	Status *enums.OrderStatus
}

// Sort keys accepted by the order history list.
const (
	SortByCreatedAt = "createdAt"
	SortByTotal     = "total"
)

var orderSortColumns = map[string]string{
	SortByCreatedAt: "created_at",
	SortByTotal:     "total",
}

// ListInput bundles filters, sorting and pagination for the history query.
type ListInput struct {
	Filters    ListFilters
	SortBy     string
	SortOrder  string
	Pagination pagination.Params
}

func (in ListInput) orderClause() string {
	column, ok := orderSortColumns[in.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if in.SortOrder == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}

// OrderItemDTO is one snapshotted line of a placed order.
type OrderItemDTO struct {
	ID         uuid.UUID       `json:"id"`
	MenuItemID uuid.UUID       `json:"menuItemId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Notes      *string         `json:"notes,omitempty"`
}

// OrderCustomerDTO is the customer slice embedded in an order response.
type OrderCustomerDTO struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
}

// OrderRestaurantDTO is the restaurant slice embedded in an order response.
type OrderRestaurantDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Phone    *string   `json:"phone,omitempty"`
	ImageURL *string   `json:"imageUrl,omitempty"`
}

// OrderDTO is the fully hydrated order returned after checkout and from the
// detail endpoint.
type OrderDTO struct {
	ID                    uuid.UUID            `json:"id"`
	OrderNumber           string               `json:"orderNumber"`
	Status                enums.OrderStatus    `json:"status"`
	PaymentStatus         enums.PaymentStatus  `json:"paymentStatus"`
	PaymentMethod         enums.PaymentMethod  `json:"paymentMethod"`
	Subtotal              decimal.Decimal      `json:"subtotal"`
	Tax                   decimal.Decimal      `json:"tax"`
	DeliveryFee           decimal.Decimal      `json:"deliveryFee"`
	Discount              decimal.Decimal      `json:"discount"`
	Total                 decimal.Decimal      `json:"total"`
	DeliveryInstructions  *string              `json:"deliveryInstructions,omitempty"`
	PreparationTime       *int                 `json:"preparationTime,omitempty"`
	EstimatedDeliveryTime time.Time            `json:"estimatedDeliveryTime"`
	ActualDeliveryTime    *time.Time           `json:"actualDeliveryTime,omitempty"`
	Customer              *OrderCustomerDTO    `json:"customer,omitempty"`
	Restaurant            *OrderRestaurantDTO  `json:"restaurant,omitempty"`
	Address               *address.AddressDTO  `json:"deliveryAddress,omitempty"`
	Items                 []OrderItemDTO       `json:"items"`
	CreatedAt             time.Time            `json:"createdAt"`
	UpdatedAt             time.Time            `json:"updatedAt"`
}

// ListResponse wraps one page of order history.
type ListResponse struct {
	Orders     []OrderDTO      `json:"orders"`
	Pagination pagination.Page `json:"pagination"`
}

// FromModel maps a persisted order, with whatever associations were
// preloaded, into its transport shape.
func FromModel(o *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:                    o.ID,
		OrderNumber:           o.OrderNumber,
		Status:                o.Status,
		PaymentStatus:         o.PaymentStatus,
		PaymentMethod:         o.PaymentMethod,
		Subtotal:              o.Subtotal,
		Tax:                   o.Tax,
		DeliveryFee:           o.DeliveryFee,
		Discount:              o.Discount,
		Total:                 o.Total,
		DeliveryInstructions:  o.DeliveryInstructions,
		PreparationTime:       o.PreparationTime,
		EstimatedDeliveryTime: o.EstimatedDeliveryTime,
		ActualDeliveryTime:    o.ActualDeliveryTime,
		Items:                 make([]OrderItemDTO, 0, len(o.Items)),
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}

	if o.Customer != nil {
		dto.Customer = &OrderCustomerDTO{
			ID:        o.Customer.ID,
			FirstName: o.Customer.FirstName,
			LastName:  o.Customer.LastName,
			Email:     o.Customer.Email,
			Phone:     o.Customer.Phone,
		}
	}
	if o.Restaurant != nil {
		dto.Restaurant = &OrderRestaurantDTO{
			ID:       o.Restaurant.ID,
			Name:     o.Restaurant.Name,
			Phone:    o.Restaurant.Phone,
			ImageURL: o.Restaurant.ImageURL,
		}
	}
	if o.Address != nil {
		dto.Address = address.FromModel(o.Address)
	}
	for i := range o.Items {
		item := &o.Items[i]
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
			Notes:      item.Notes,
		})
	}
	return dto
}

func fromModels(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
