package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db/models"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/pagination"
)

// Repository handles persistence for orders and the aggregate counters the
// order transaction maintains.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts the order row.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// CreateItems inserts the snapshotted order lines.
func (r *Repository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// FindByID loads one order with every association the detail view needs.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Restaurant").
		Preload("Address").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindWithRestaurant loads an order plus its restaurant, enough for the
// status-update ownership check.
func (r *Repository) FindWithRestaurant(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListResult is one page of a customer's order history.
type ListResult struct {
	Orders []models.Order
	Page   pagination.Page
}

// ListByCustomer returns the customer's orders, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID, input ListInput) (*ListResult, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("customer_id = ?", customerID)

	if input.Filters.Status != nil {
		query = query.Where("status = ?", *input.Filters.Status)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, err
	}

	var rows []models.Order
	err := query.
		Preload("Restaurant").
		Preload("Address").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Order(input.orderClause()).
		Order("id ASC").
		Limit(pagination.NormalizeLimit(input.Pagination.Limit)).
		Offset(input.Pagination.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Orders: rows,
		Page:   pagination.BuildPage(input.Pagination, totalCount),
	}, nil
}

// TransitionStatus moves the order from one status to another with the
// current status as a guard. Returns false when the row no longer carries
// the expected status, meaning another writer got there first.
func (r *Repository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus, preparationTime *int, deliveredAt *time.Time) (bool, error) {
	updates := map[string]any{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	if preparationTime != nil {
		updates["preparation_time"] = *preparationTime
	}
	if deliveredAt != nil {
		updates["actual_delivery_time"] = *deliveredAt
	}

	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ApplyRestaurantStats bumps the restaurant's aggregate counters and
// recomputes its average order value from the orders actually on record.
// Runs after the order insert so the new order is part of the average.
func (r *Repository) ApplyRestaurantStats(ctx context.Context, restaurantID uuid.UUID, total decimal.Decimal) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE restaurants
		SET total_orders = total_orders + 1,
		    total_revenue = total_revenue + ?,
		    avg_order_value = COALESCE((SELECT AVG(total) FROM orders WHERE restaurant_id = ?), ?)
		WHERE id = ?`,
		total, restaurantID, total, restaurantID,
	).Error
}

// UpsertDailyAnalytics folds the order into the restaurant's rollup row for
// the given day, creating it on first order of the day. The daily average is
// overwritten with the latest order total rather than recomputed.
func (r *Repository) UpsertDailyAnalytics(ctx context.Context, restaurantID uuid.UUID, day time.Time, total decimal.Decimal) error {
	row := models.RestaurantAnalytics{
		ID:            uuid.New(),
		RestaurantID:  restaurantID,
		Date:          day,
		TotalOrders:   1,
		TotalRevenue:  total,
		AvgOrderValue: total,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "restaurant_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"total_orders":    gorm.Expr("restaurant_analytics.total_orders + 1"),
				"total_revenue":   gorm.Expr("restaurant_analytics.total_revenue + ?", total),
				"avg_order_value": total,
				"updated_at":      time.Now().UTC(),
			}),
		}).
		Create(&row).Error
}
