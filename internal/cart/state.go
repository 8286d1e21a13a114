package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
)

// taxRate is the flat tax applied to the cart subtotal.
var taxRate = decimal.NewFromFloat(0.05)

// RestaurantInfo is the slice of restaurant data the cart keeps for display
// and fee math while bound to that restaurant.
type RestaurantInfo struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	MinOrder    decimal.Decimal `json:"minOrder"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
}

// ItemSnapshot is the immutable menu item data captured when a line is added.
type ItemSnapshot struct {
	MenuItemID uuid.UUID        `json:"menuItemId"`
	Name       string           `json:"name"`
	Price      decimal.Decimal  `json:"price"`
	IsVeg      bool             `json:"isVeg"`
	SpiceLevel enums.SpiceLevel `json:"spiceLevel"`
	ImageURL   *string          `json:"imageUrl,omitempty"`
}

// Line is one cart entry: an item snapshot plus its mutable fields.
type Line struct {
	ItemSnapshot
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions"`
}

// PendingAdd stages a cross-restaurant add awaiting the user's decision.
type PendingAdd struct {
	Item       ItemSnapshot   `json:"item"`
	Restaurant RestaurantInfo `json:"restaurant"`
}

// State is the full cart snapshot. Lines are ordered and unique per menu
// item; every line belongs to the bound restaurant.
type State struct {
	Items                []Line          `json:"items"`
	RestaurantID         *uuid.UUID      `json:"restaurantId,omitempty"`
	RestaurantInfo       *RestaurantInfo `json:"restaurantInfo,omitempty"`
	PendingAdd           *PendingAdd     `json:"pendingAdd,omitempty"`
	ShowRestaurantChange bool            `json:"showRestaurantChangeModal"`
	DeliveryAddressID    *uuid.UUID      `json:"deliveryAddressId,omitempty"`
	DeliveryInstructions string          `json:"deliveryInstructions"`
}

// Empty returns the initial cart state.
func Empty() State {
	return State{Items: []Line{}}
}

// Action is a discrete cart mutation handled by Reduce.
type Action interface {
	isCartAction()
}

// AddItem adds one unit of a menu item, staging a pending add when the cart
// is bound to a different restaurant.
type AddItem struct {
	Item       ItemSnapshot
	Restaurant RestaurantInfo
}

// RemoveItem drops a line unconditionally.
type RemoveItem struct {
	MenuItemID uuid.UUID
}

// UpdateQuantity sets a line's quantity exactly; zero or less removes it.
type UpdateQuantity struct {
	MenuItemID uuid.UUID
	Quantity   int
}

// UpdateInstructions replaces the free-text instructions on a line.
type UpdateInstructions struct {
	MenuItemID uuid.UUID
	Text       string
}

// ClearCart resets items and the restaurant binding, leaving any pending
// add untouched.
type ClearCart struct{}

// ReplaceCart resolves a staged cross-restaurant add by discarding the
// current items and adopting the pending item as the sole line.
type ReplaceCart struct{}

// CancelRestaurantChange abandons a staged add, keeping the current items.
type CancelRestaurantChange struct{}

// SetDeliveryDetails records the checkout address and instructions.
type SetDeliveryDetails struct {
	AddressID    *uuid.UUID
	Instructions *string
}

func (AddItem) isCartAction()                {}
func (RemoveItem) isCartAction()             {}
func (UpdateQuantity) isCartAction()         {}
func (UpdateInstructions) isCartAction()     {}
func (ClearCart) isCartAction()              {}
func (ReplaceCart) isCartAction()            {}
func (CancelRestaurantChange) isCartAction() {}
func (SetDeliveryDetails) isCartAction()     {}

// Notice is the observable side effect of a mutation, surfaced to the user.
type Notice struct {
	Kind     string `json:"kind"`
	ItemName string `json:"itemName,omitempty"`
}

const (
	NoticeItemAdded   = "item_added"
	NoticeItemRemoved = "item_removed"
)

// Reduce applies one action to the state and returns the next state plus an
// optional notice. It never mutates its input.
func Reduce(state State, action Action) (State, *Notice) {
	next := clone(state)

	switch a := action.(type) {
	case AddItem:
		if next.RestaurantID != nil && *next.RestaurantID != a.Restaurant.ID && len(next.Items) > 0 {
			next.PendingAdd = &PendingAdd{Item: a.Item, Restaurant: a.Restaurant}
			next.ShowRestaurantChange = true
			return next, nil
		}

		if i := lineIndex(next.Items, a.Item.MenuItemID); i >= 0 {
			next.Items[i].Quantity++
		} else {
			next.Items = append(next.Items, Line{ItemSnapshot: a.Item, Quantity: 1})
		}
		id := a.Restaurant.ID
		info := a.Restaurant
		next.RestaurantID = &id
		next.RestaurantInfo = &info
		return next, &Notice{Kind: NoticeItemAdded, ItemName: a.Item.Name}

	case RemoveItem:
		i := lineIndex(next.Items, a.MenuItemID)
		if i < 0 {
			return next, nil
		}
		name := next.Items[i].Name
		next.Items = append(next.Items[:i], next.Items[i+1:]...)
		return next, &Notice{Kind: NoticeItemRemoved, ItemName: name}

	case UpdateQuantity:
		if a.Quantity <= 0 {
			return Reduce(state, RemoveItem{MenuItemID: a.MenuItemID})
		}
		if i := lineIndex(next.Items, a.MenuItemID); i >= 0 {
			next.Items[i].Quantity = a.Quantity
		}
		return next, nil

	case UpdateInstructions:
		if i := lineIndex(next.Items, a.MenuItemID); i >= 0 {
			next.Items[i].SpecialInstructions = a.Text
		}
		return next, nil

	case ClearCart:
		next.Items = []Line{}
		next.RestaurantID = nil
		next.RestaurantInfo = nil
		return next, nil

	case ReplaceCart:
		if next.PendingAdd == nil {
			return next, nil
		}
		pending := *next.PendingAdd
		next.Items = []Line{{ItemSnapshot: pending.Item, Quantity: 1}}
		id := pending.Restaurant.ID
		info := pending.Restaurant
		next.RestaurantID = &id
		next.RestaurantInfo = &info
		next.PendingAdd = nil
		next.ShowRestaurantChange = false
		return next, &Notice{Kind: NoticeItemAdded, ItemName: pending.Item.Name}

	case CancelRestaurantChange:
		next.PendingAdd = nil
		next.ShowRestaurantChange = false
		return next, nil

	case SetDeliveryDetails:
		if a.AddressID != nil {
			id := *a.AddressID
			next.DeliveryAddressID = &id
		}
		if a.Instructions != nil {
			next.DeliveryInstructions = *a.Instructions
		}
		return next, nil
	}

	return next, nil
}

// ItemCount is the sum of line quantities.
func (s State) ItemCount() int {
	count := 0
	for _, line := range s.Items {
		count += line.Quantity
	}
	return count
}

// Subtotal is the sum of price times quantity over all lines.
func (s State) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range s.Items {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return subtotal
}

// DeliveryFee comes from the bound restaurant, zero when unbound.
func (s State) DeliveryFee() decimal.Decimal {
	if s.RestaurantInfo == nil {
		return decimal.Zero
	}
	return s.RestaurantInfo.DeliveryFee
}

// Tax is the flat 5% of the subtotal.
func (s State) Tax() decimal.Decimal {
	return s.Subtotal().Mul(taxRate).Round(2)
}

// Total is subtotal plus delivery fee plus tax.
func (s State) Total() decimal.Decimal {
	return s.Subtotal().Add(s.DeliveryFee()).Add(s.Tax())
}

// IsEmpty reports whether the cart holds no lines.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

func lineIndex(items []Line, id uuid.UUID) int {
	for i := range items {
		if items[i].MenuItemID == id {
			return i
		}
	}
	return -1
}

func clone(s State) State {
	out := s
	out.Items = append([]Line(nil), s.Items...)
	if s.RestaurantID != nil {
		id := *s.RestaurantID
		out.RestaurantID = &id
	}
	if s.RestaurantInfo != nil {
		info := *s.RestaurantInfo
		out.RestaurantInfo = &info
	}
	if s.PendingAdd != nil {
		pending := *s.PendingAdd
		out.PendingAdd = &pending
	}
	if s.DeliveryAddressID != nil {
		id := *s.DeliveryAddressID
		out.DeliveryAddressID = &id
	}
	return out
}
