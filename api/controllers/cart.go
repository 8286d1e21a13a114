package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Shubhangam-Singh/food-delivery-app/api/responses"
	"github.com/Shubhangam-Singh/food-delivery-app/api/validators"
	"github.com/Shubhangam-Singh/food-delivery-app/internal/cart"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/logger"
)

// cartEnvelope bundles the cart view with the notification a mutation
// produced, if any.
type cartEnvelope struct {
	Cart   *cart.View   `json:"cart"`
	Notice *cart.Notice `json:"notice,omitempty"`
}

// CartGet returns the caller's current cart with derived totals.
func CartGet(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartEnvelope{Cart: view})
	}
}

type cartAddRequest struct {
	MenuItemID uuid.UUID `json:"menuItemId" validate:"required"`
}

// CartAddItem adds one unit of a menu item, staging a restaurant-change
// confirmation when the cart is bound elsewhere.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartAddRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, notice, err := svc.AddItem(r.Context(), userID, body.MenuItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartEnvelope{Cart: view, Notice: notice})
	}
}

// CartRemoveItem drops a line from the cart.
func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := pathID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, notice, err := svc.RemoveItem(r.Context(), userID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartEnvelope{Cart: view, Notice: notice})
	}
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartUpdateQuantity sets a line's quantity; zero or less removes the line.
func CartUpdateQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := pathID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpdateQuantity(r.Context(), userID, itemID, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartEnvelope{Cart: view})
	}
}

type cartInstructionsRequest struct {
	SpecialInstructions string `json:"specialInstructions"`
}

// CartUpdateInstructions replaces the free-text note on a cart line.
func CartUpdateInstructions(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := pathID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartInstructionsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpdateInstructions(r.Context(), userID, itemID, body.SpecialInstructions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartEnvelope{Cart: view})
	}
}

// CartClear empties the cart outright.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Clear(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartEnvelope{Cart: view})
	}
}

// CartReplace confirms a pending restaurant change, swapping the cart's
// contents for the staged item.
func CartReplace(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, notice, err := svc.ReplaceCart(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartEnvelope{Cart: view, Notice: notice})
	}
}

// CartCancelChange abandons a pending restaurant change, keeping the cart.
func CartCancelChange(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.CancelRestaurantChange(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartEnvelope{Cart: view})
	}
}

type cartDeliveryRequest struct {
	DeliveryAddressID    *uuid.UUID `json:"deliveryAddressId"`
	DeliveryInstructions *string    `json:"deliveryInstructions"`
}

// CartDeliveryDetails stores the delivery address and note ahead of checkout.
func CartDeliveryDetails(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartDeliveryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.SetDeliveryDetails(r.Context(), userID, body.DeliveryAddressID, body.DeliveryInstructions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartEnvelope{Cart: view})
	}
}
