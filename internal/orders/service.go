package orders

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Shubhangam-Singh/food-delivery-app/internal/address"
	restaurant "github.com/Shubhangam-Singh/food-delivery-app/internal/restaurants"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/config"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db/models"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
	pkgerrors "github.com/Shubhangam-Singh/food-delivery-app/pkg/errors"
)

// Actor identifies the authenticated user driving an order operation.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// Service exposes checkout and order-history operations.
type Service interface {
	Create(ctx context.Context, customerID uuid.UUID, req CreateOrderRequest) (*OrderDTO, error)
	List(ctx context.Context, customerID uuid.UUID, input ListInput) (*ListResponse, error)
	Get(ctx context.Context, customerID, orderID uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, req UpdateStatusRequest) (*OrderDTO, error)
}

// ServiceParams carries the dependencies for NewService.
type ServiceParams struct {
	DB     *db.Client
	Config config.OrdersConfig
}

type service struct {
	client    *db.Client
	cfg       config.OrdersConfig
	orders    *Repository
	catalog   *restaurant.Repository
	addresses *address.Repository
}

// NewService builds the orders service over the shared DB client.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	conn := params.DB.DB()
	return &service{
		client:    params.DB,
		cfg:       params.Config,
		orders:    NewRepository(conn),
		catalog:   restaurant.NewRepository(conn),
		addresses: address.NewRepository(conn),
	}, nil
}

func (s *service) Create(ctx context.Context, customerID uuid.UUID, req CreateOrderRequest) (*OrderDTO, error) {
	if len(req.CartItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cartItems must not be empty")
	}
	for _, line := range req.CartItems {
		if line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
	}

	paymentMethod := enums.PaymentMethodCashOnDelivery
	if req.PaymentMethod != nil {
		if !req.PaymentMethod.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("invalid payment method %q", *req.PaymentMethod))
		}
		paymentMethod = *req.PaymentMethod
	}

	// A duplicate order number aborts the whole transaction, so retries
	// re-run it from scratch with a fresh number. Nothing is left behind
	// from a failed attempt.
	attempts := s.cfg.NumberMaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	var orderID uuid.UUID
	for attempt := 0; ; attempt++ {
		number, err := generateOrderNumber(time.Now().UTC())
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order number")
		}

		err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
			id, txErr := s.placeOrder(ctx, tx, customerID, req, paymentMethod, number)
			if txErr != nil {
				return txErr
			}
			orderID = id
			return nil
		})
		if err == nil {
			break
		}
		if isUniqueViolation(err) && attempt+1 < attempts {
			continue
		}
		return nil, err
	}

	hydrated, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load created order")
	}
	return FromModel(hydrated), nil
}

// placeOrder runs the checkout inside one transaction: validate everything,
// snapshot prices, write the order and its counters.
func (s *service) placeOrder(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, req CreateOrderRequest, paymentMethod enums.PaymentMethod, number string) (uuid.UUID, error) {
	ordersRepo := s.orders.WithTx(tx)
	catalogRepo := s.catalog.WithTx(tx)
	addressRepo := s.addresses.WithTx(tx)

	restaurant, err := catalogRepo.FindByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeBusinessRule, "restaurant not found or inactive")
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
	}
	if !restaurant.IsActive {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeBusinessRule, "restaurant not found or inactive")
	}

	if _, err := addressRepo.FindForUser(ctx, req.DeliveryAddressID, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeBusinessRule, "invalid delivery address")
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load delivery address")
	}

	itemIDs := make([]uuid.UUID, 0, len(req.CartItems))
	for _, line := range req.CartItems {
		itemIDs = append(itemIDs, line.MenuItemID)
	}
	menuItems, err := catalogRepo.FindMenuItems(ctx, itemIDs)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load menu items")
	}

	now := time.Now().UTC()
	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(req.CartItems))

	for _, line := range req.CartItems {
		item, ok := menuItems[line.MenuItemID]
		if !ok {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeBusinessRule,
				fmt.Sprintf("menu item %s is not available", line.MenuItemID))
		}
		if !item.IsAvailable || item.RestaurantID != req.RestaurantID {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeBusinessRule,
				fmt.Sprintf("menu item %s is not available", item.Name))
		}

		// The stored price is the only one that counts.
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		orderItems = append(orderItems, models.OrderItem{
			ID:         uuid.New(),
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   line.Quantity,
			Notes:      line.SpecialInstructions,
		})

		if err := catalogRepo.IncrementTimesOrdered(ctx, item.ID, line.Quantity); err != nil {
			return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bump item order count")
		}
	}

	tax := subtotal.Mul(s.taxRate()).Round(2)
	// No promotions yet; the discount column is carried at zero so totals
	// keep their shape once they exist.
	discount := decimal.Zero
	total := subtotal.Add(tax).Add(restaurant.DeliveryFee).Sub(discount)

	order := models.Order{
		ID:                    uuid.New(),
		OrderNumber:           number,
		CustomerID:            customerID,
		RestaurantID:          restaurant.ID,
		AddressID:             req.DeliveryAddressID,
		Status:                enums.OrderStatusPending,
		PaymentStatus:         enums.PaymentStatusPending,
		PaymentMethod:         paymentMethod,
		Subtotal:              subtotal,
		Tax:                   tax,
		DeliveryFee:           restaurant.DeliveryFee,
		Discount:              discount,
		Total:                 total,
		DeliveryInstructions:  req.DeliveryInstructions,
		EstimatedDeliveryTime: now.Add(time.Duration(s.cfg.ETAMinutes) * time.Minute),
	}
	if err := ordersRepo.Create(ctx, &order); err != nil {
		return uuid.Nil, err
	}

	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}
	if err := ordersRepo.CreateItems(ctx, orderItems); err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order items")
	}

	if err := ordersRepo.ApplyRestaurantStats(ctx, restaurant.ID, total); err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update restaurant stats")
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := ordersRepo.UpsertDailyAnalytics(ctx, restaurant.ID, day, total); err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update daily analytics")
	}

	return order.ID, nil
}

func (s *service) List(ctx context.Context, customerID uuid.UUID, input ListInput) (*ListResponse, error) {
	result, err := s.orders.ListByCustomer(ctx, customerID, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return &ListResponse{
		Orders:     fromModels(result.Orders),
		Pagination: result.Page,
	}, nil
}

func (s *service) Get(ctx context.Context, customerID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if order.CustomerID != customerID {
		// Customers only ever see their own orders.
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return FromModel(order), nil
}

func (s *service) UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, req UpdateStatusRequest) (*OrderDTO, error) {
	target, err := enums.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	// Load, guard and write inside one transaction; the UPDATE itself is
	// conditional on the loaded status so a concurrent transition loses
	// cleanly instead of silently overwriting.
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		ordersRepo := s.orders.WithTx(tx)

		order, txErr := ordersRepo.FindWithRestaurant(ctx, orderID)
		if txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "load order")
		}

		if actor.Role != enums.UserRoleAdmin {
			if order.Restaurant == nil || order.Restaurant.OwnerID != actor.UserID {
				return pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
			}
		}

		if !order.Status.CanTransitionTo(target) {
			return pkgerrors.New(pkgerrors.CodeBusinessRule,
				fmt.Sprintf("cannot move order from %s to %s", order.Status, target))
		}

		var deliveredAt *time.Time
		if target == enums.OrderStatusDelivered {
			now := time.Now().UTC()
			deliveredAt = &now
		}

		moved, txErr := ordersRepo.TransitionStatus(ctx, orderID, order.Status, target, req.PreparationTime, deliveredAt)
		if txErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "save order status")
		}
		if !moved {
			return pkgerrors.New(pkgerrors.CodeConflict, "order status changed concurrently")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	hydrated, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload order")
	}
	return FromModel(hydrated), nil
}

func (s *service) taxRate() decimal.Decimal {
	return decimal.NewFromInt(int64(s.cfg.TaxRatePercent)).Div(decimal.NewFromInt(100))
}

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateOrderNumber produces a human-readable order number from a
// millisecond timestamp plus a short random suffix. The unique index on
// order_number is the actual collision guard.
func generateOrderNumber(now time.Time) (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}
	for i, b := range suffix {
		suffix[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return fmt.Sprintf("ORD%d%s", now.UnixMilli(), suffix), nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) && pgxErr.Code == "23505" {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	// sqlite, used by the test suites.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
