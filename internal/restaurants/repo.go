package restaurant

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db/models"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/pagination"
)

// Repository wires together restaurant and menu persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListResult bundles one catalog page with its pagination metadata.
type ListResult struct {
	Restaurants []models.Restaurant
	Page        pagination.Page
}

// List returns active restaurants matching the filters, sorted and paginated.
func (r *Repository) List(ctx context.Context, input ListInput) (*ListResult, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Restaurant{}).
		Where("is_active = ?", true)

	filters := input.Filters
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}
	if cuisine := strings.TrimSpace(filters.Cuisine); cuisine != "" {
		qb = qb.Where("? = ANY(cuisine_type)", cuisine)
	}
	if filters.MinRating != nil {
		qb = qb.Where("rating >= ?", *filters.MinRating)
	}
	if filters.MaxDeliveryFee != nil {
		qb = qb.Where("delivery_fee <= ?", *filters.MaxDeliveryFee)
	}

	var totalCount int64
	if err := qb.Count(&totalCount).Error; err != nil {
		return nil, err
	}

	var rows []models.Restaurant
	err := qb.
		Preload("Address").
		Order(input.orderClause()).
		Order("id ASC").
		Limit(pagination.NormalizeLimit(input.Pagination.Limit)).
		Offset(input.Pagination.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Restaurants: rows,
		Page:        pagination.BuildPage(input.Pagination, totalCount),
	}, nil
}

// ListActiveNames loads just the name and cuisine columns of every active
// restaurant. Suggestion matching happens in Go so the query stays portable.
func (r *Repository) ListActiveNames(ctx context.Context) ([]models.Restaurant, error) {
	var rows []models.Restaurant
	err := r.db.WithContext(ctx).
		Model(&models.Restaurant{}).
		Select("name", "cuisine_type").
		Where("is_active = ?", true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads the restaurant with its location, menu excluded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var row models.Restaurant
	if err := r.db.WithContext(ctx).Preload("Address").First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindDetail fetches a restaurant with its menu preloaded, category-sorted.
func (r *Repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var row models.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Address").
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("category ASC").Order("name ASC")
		}).
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new restaurant row.
func (r *Repository) Create(ctx context.Context, row *models.Restaurant) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Save persists all fields of an existing restaurant.
func (r *Repository) Save(ctx context.Context, row *models.Restaurant) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// Deactivate soft-deletes a restaurant by flipping is_active off.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Restaurant{}).
		Where("id = ?", id).
		UpdateColumn("is_active", false).Error
}

// FindMenuItem loads a single menu item.
func (r *Repository) FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindMenuItems loads menu items by ID keyed for lookup.
func (r *Repository) FindMenuItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.MenuItem, error) {
	var rows []models.MenuItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.MenuItem, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	return byID, nil
}

// CreateMenuItem inserts a new menu item row.
func (r *Repository) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// SaveMenuItem persists all fields of an existing menu item.
func (r *Repository) SaveMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteMenuItem removes a menu item by ID.
func (r *Repository) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id).Error
}

// IncrementTimesOrdered bumps the popularity counter by the ordered quantity.
func (r *Repository) IncrementTimesOrdered(ctx context.Context, id uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ?", id).
		UpdateColumn("times_ordered", gorm.Expr("times_ordered + ?", qty)).Error
}
