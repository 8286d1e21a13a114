package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db/models"
	pkgerrors "github.com/Shubhangam-Singh/food-delivery-app/pkg/errors"
)

// catalogLoader is the slice of the catalog the cart needs for item adds.
type catalogLoader interface {
	FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

// View is the cart state plus its derived totals, ready for transport.
type View struct {
	State
	ItemCount   int             `json:"itemCount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// Service exposes the cart operations backed by the per-user store.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*View, error)
	AddItem(ctx context.Context, userID, menuItemID uuid.UUID) (*View, *Notice, error)
	RemoveItem(ctx context.Context, userID, menuItemID uuid.UUID) (*View, *Notice, error)
	UpdateQuantity(ctx context.Context, userID, menuItemID uuid.UUID, quantity int) (*View, error)
	UpdateInstructions(ctx context.Context, userID, menuItemID uuid.UUID, text string) (*View, error)
	Clear(ctx context.Context, userID uuid.UUID) (*View, error)
	ReplaceCart(ctx context.Context, userID uuid.UUID) (*View, *Notice, error)
	CancelRestaurantChange(ctx context.Context, userID uuid.UUID) (*View, error)
	SetDeliveryDetails(ctx context.Context, userID uuid.UUID, addressID *uuid.UUID, instructions *string) (*View, error)
}

type service struct {
	store   *Store
	catalog catalogLoader
}

// NewService builds a cart service over the given store and catalog.
func NewService(store *Store, catalog catalogLoader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	return &service{store: store, catalog: catalog}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*View, error) {
	state := s.store.Load(ctx, userID)
	return buildView(state), nil
}

func (s *service) AddItem(ctx context.Context, userID, menuItemID uuid.UUID) (*View, *Notice, error) {
	item, err := s.catalog.FindMenuItem(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load menu item")
	}
	if !item.IsAvailable {
		return nil, nil, pkgerrors.New(pkgerrors.CodeBusinessRule,
			fmt.Sprintf("%s is currently unavailable", item.Name))
	}

	restaurant, err := s.catalog.FindByID(ctx, item.RestaurantID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
	}
	if !restaurant.IsActive {
		return nil, nil, pkgerrors.New(pkgerrors.CodeBusinessRule,
			fmt.Sprintf("%s is not accepting orders", restaurant.Name))
	}

	action := AddItem{
		Item: ItemSnapshot{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			IsVeg:      item.IsVeg,
			SpiceLevel: item.SpiceLevel,
			ImageURL:   item.ImageURL,
		},
		Restaurant: RestaurantInfo{
			ID:          restaurant.ID,
			Name:        restaurant.Name,
			DeliveryFee: restaurant.DeliveryFee,
			MinOrder:    restaurant.MinOrder,
			ImageURL:    restaurant.ImageURL,
		},
	}
	return s.apply(ctx, userID, action)
}

func (s *service) RemoveItem(ctx context.Context, userID, menuItemID uuid.UUID) (*View, *Notice, error) {
	return s.apply(ctx, userID, RemoveItem{MenuItemID: menuItemID})
}

func (s *service) UpdateQuantity(ctx context.Context, userID, menuItemID uuid.UUID, quantity int) (*View, error) {
	view, _, err := s.apply(ctx, userID, UpdateQuantity{MenuItemID: menuItemID, Quantity: quantity})
	return view, err
}

func (s *service) UpdateInstructions(ctx context.Context, userID, menuItemID uuid.UUID, text string) (*View, error) {
	view, _, err := s.apply(ctx, userID, UpdateInstructions{MenuItemID: menuItemID, Text: text})
	return view, err
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) (*View, error) {
	view, _, err := s.apply(ctx, userID, ClearCart{})
	return view, err
}

func (s *service) ReplaceCart(ctx context.Context, userID uuid.UUID) (*View, *Notice, error) {
	return s.apply(ctx, userID, ReplaceCart{})
}

func (s *service) CancelRestaurantChange(ctx context.Context, userID uuid.UUID) (*View, error) {
	view, _, err := s.apply(ctx, userID, CancelRestaurantChange{})
	return view, err
}

func (s *service) SetDeliveryDetails(ctx context.Context, userID uuid.UUID, addressID *uuid.UUID, instructions *string) (*View, error) {
	view, _, err := s.apply(ctx, userID, SetDeliveryDetails{AddressID: addressID, Instructions: instructions})
	return view, err
}

// apply runs one action through the reducer and persists the result.
func (s *service) apply(ctx context.Context, userID uuid.UUID, action Action) (*View, *Notice, error) {
	state := s.store.Load(ctx, userID)
	next, notice := Reduce(state, action)
	if err := s.store.Save(ctx, userID, next); err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return buildView(next), notice, nil
}

func buildView(state State) *View {
	return &View{
		State:       state,
		ItemCount:   state.ItemCount(),
		Subtotal:    state.Subtotal(),
		DeliveryFee: state.DeliveryFee(),
		Tax:         state.Tax(),
		Total:       state.Total(),
	}
}
