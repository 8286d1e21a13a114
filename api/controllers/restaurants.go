package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Shubhangam-Singh/food-delivery-app/api/responses"
	"github.com/Shubhangam-Singh/food-delivery-app/api/validators"
	restaurant "github.com/Shubhangam-Singh/food-delivery-app/internal/restaurants"
	pkgerrors "github.com/Shubhangam-Singh/food-delivery-app/pkg/errors"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/logger"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/pagination"
)

// RestaurantList serves the public browse endpoint with its filter and sort
// query parameters.
func RestaurantList(svc restaurant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parseListQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func parseListQuery(r *http.Request) (*restaurant.ListInput, error) {
	q := r.URL.Query()

	input := restaurant.ListInput{
		Filters: restaurant.ListFilters{
			Search:  strings.TrimSpace(q.Get("search")),
			Cuisine: strings.TrimSpace(q.Get("cuisine")),
		},
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Pagination: pagination.Params{
			Page:  parseIntDefault(q.Get("page"), 1),
			Limit: parseIntDefault(q.Get("limit"), pagination.DefaultLimit),
		},
	}

	if raw := q.Get("minRating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid minRating")
		}
		input.Filters.MinRating = &rating
	}
	if raw := q.Get("maxDeliveryFee"); raw != "" {
		fee, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid maxDeliveryFee")
		}
		input.Filters.MaxDeliveryFee = &fee
	}
	return &input, nil
}

func parseIntDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// RestaurantSuggestions serves typeahead matches for the search box.
func RestaurantSuggestions(svc restaurant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Suggestions(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// RestaurantGet serves the public detail endpoint, menu grouped by category.
func RestaurantGet(svc restaurant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// RestaurantCreate registers a new restaurant owned by the caller.
func RestaurantCreate(svc restaurant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body restaurant.CreateRestaurantRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), actor, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(logg.WithRestaurantID(r.Context(), created.ID.String()), "restaurant created")
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// RestaurantUpdate applies owner/admin updates to a restaurant.
func RestaurantUpdate(svc restaurant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathID(r, "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body restaurant.UpdateRestaurantRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), actor, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// RestaurantDelete deactivates a restaurant without destroying its history.
func RestaurantDelete(svc restaurant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathID(r, "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(logg.WithRestaurantID(r.Context(), id.String()), "restaurant deactivated")
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}

// MenuItemCreate adds a dish to the caller's restaurant.
func MenuItemCreate(svc restaurant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		restaurantID, err := pathID(r, "restaurantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body restaurant.CreateMenuItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateMenuItem(r.Context(), actor, restaurantID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// MenuItemUpdate edits a dish, gated through its parent restaurant.
func MenuItemUpdate(svc restaurant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := pathID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body restaurant.UpdateMenuItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateMenuItem(r.Context(), actor, itemID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// MenuItemDelete removes a dish from the menu.
func MenuItemDelete(svc restaurant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := requireActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID, err := pathID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteMenuItem(r.Context(), actor, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func requireActor(r *http.Request) (restaurant.Actor, error) {
	userID, err := currentUserID(r)
	if err != nil {
		return restaurant.Actor{}, err
	}
	return restaurant.Actor{UserID: userID, Role: currentRole(r)}, nil
}
