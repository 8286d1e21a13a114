package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Shubhangam-Singh/food-delivery-app/api/responses"
	"github.com/Shubhangam-Singh/food-delivery-app/api/validators"
	"github.com/Shubhangam-Singh/food-delivery-app/internal/orders"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
	pkgerrors "github.com/Shubhangam-Singh/food-delivery-app/pkg/errors"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/logger"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/pagination"
)

// OrderCreate runs the checkout transaction for the caller's cart payload.
func OrderCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body orders.CreateOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		logg.Info(logg.WithOrderNumber(r.Context(), created.OrderNumber), "order placed")
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// OrderList returns the caller's order history, newest first.
func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		q := r.URL.Query()
		input := orders.ListInput{
			SortBy:    q.Get("sortBy"),
			SortOrder: q.Get("sortOrder"),
			Pagination: pagination.Params{
				Page:  parseIntDefault(q.Get("page"), 1),
				Limit: parseIntDefault(q.Get("limit"), 10),
			},
		}
		if raw := strings.TrimSpace(q.Get("status")); raw != "" {
			status, parseErr := enums.ParseOrderStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "invalid order status"))
				return
			}
			input.Filters.Status = &status
		}

		result, err := svc.List(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// OrderGet returns one of the caller's orders with full detail.
func OrderGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := pathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// OrderUpdateStatus moves an order along its lifecycle. Restricted to the
// restaurant's owner and admins.
func OrderUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := pathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body orders.UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := orders.Actor{UserID: userID, Role: currentRole(r)}
		updated, err := svc.UpdateStatus(r.Context(), actor, orderID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithOrderNumber(r.Context(), updated.OrderNumber)
		logg.Info(ctx, fmt.Sprintf("order moved to %s", updated.Status))
		responses.WriteSuccess(w, updated)
	}
}
