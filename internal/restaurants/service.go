package restaurant

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db/models"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
	pkgerrors "github.com/Shubhangam-Singh/food-delivery-app/pkg/errors"
)

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// Service defines the behavior needed by the restaurants controller.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResponse, error)
	Suggestions(ctx context.Context, query string) (*SuggestionsDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*RestaurantDetailDTO, error)
	Create(ctx context.Context, actor Actor, req CreateRestaurantRequest) (*RestaurantDTO, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req UpdateRestaurantRequest) (*RestaurantDTO, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	CreateMenuItem(ctx context.Context, actor Actor, restaurantID uuid.UUID, req CreateMenuItemRequest) (*MenuItemDTO, error)
	UpdateMenuItem(ctx context.Context, actor Actor, itemID uuid.UUID, req UpdateMenuItemRequest) (*MenuItemDTO, error)
	DeleteMenuItem(ctx context.Context, actor Actor, itemID uuid.UUID) error
}

type service struct {
	db *db.Client
}

// NewService constructs a catalog service backed by the shared DB client.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResponse, error) {
	repo := NewRepository(s.db.DB())
	result, err := repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list restaurants")
	}

	dtos := make([]RestaurantDTO, 0, len(result.Restaurants))
	for i := range result.Restaurants {
		dtos = append(dtos, *FromModel(&result.Restaurants[i]))
	}
	return &ListResponse{
		Restaurants: dtos,
		Pagination:  result.Page,
	}, nil
}

const maxSuggestions = 5

func (s *service) Suggestions(ctx context.Context, query string) (*SuggestionsDTO, error) {
	out := &SuggestionsDTO{Restaurants: []string{}, Cuisines: []string{}}

	prefix := strings.ToLower(strings.TrimSpace(query))
	if prefix == "" {
		return out, nil
	}

	repo := NewRepository(s.db.DB())
	rows, err := repo.ListActiveNames(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load suggestions")
	}

	seenCuisine := map[string]bool{}
	for i := range rows {
		name := rows[i].Name
		if len(out.Restaurants) < maxSuggestions && strings.HasPrefix(strings.ToLower(name), prefix) {
			out.Restaurants = append(out.Restaurants, name)
		}
		for _, cuisine := range rows[i].CuisineType {
			if seenCuisine[cuisine] || !strings.HasPrefix(strings.ToLower(cuisine), prefix) {
				continue
			}
			seenCuisine[cuisine] = true
			if len(out.Cuisines) < maxSuggestions {
				out.Cuisines = append(out.Cuisines, cuisine)
			}
		}
	}
	sort.Strings(out.Restaurants)
	sort.Strings(out.Cuisines)
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*RestaurantDetailDTO, error) {
	repo := NewRepository(s.db.DB())
	row, err := repo.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
	}
	return detailFromModel(row), nil
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateRestaurantRequest) (*RestaurantDTO, error) {
	row := &models.Restaurant{
		ID:          uuid.New(),
		OwnerID:     actor.UserID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Phone:       req.Phone,
		ImageURL:    req.ImageURL,
		CuisineType: pq.StringArray(req.CuisineType),
		DeliveryFee: req.DeliveryFee,
		MinOrder:    req.MinOrder,
		OpensAt:     "09:00",
		ClosesAt:    "22:00",
		IsActive:    true,
	}
	if req.OpensAt != nil {
		row.OpensAt = *req.OpensAt
	}
	if req.ClosesAt != nil {
		row.ClosesAt = *req.ClosesAt
	}
	if row.CuisineType == nil {
		row.CuisineType = pq.StringArray{}
	}

	// The location row and the restaurant land together or not at all.
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		addr := newLocationRow(req.Address)
		if err := tx.WithContext(ctx).Create(addr).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create restaurant address")
		}
		row.AddressID = &addr.ID
		if err := NewRepository(tx).Create(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create restaurant")
		}
		row.Address = addr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(row), nil
}

// newLocationRow maps the embedded address payload onto a user-less
// addresses row.
func newLocationRow(in AddressInput) *models.Address {
	return &models.Address{
		ID:       uuid.New(),
		Type:     enums.AddressTypeOther,
		Street:   strings.TrimSpace(in.Street),
		City:     strings.TrimSpace(in.City),
		State:    strings.TrimSpace(in.State),
		ZipCode:  strings.TrimSpace(in.ZipCode),
		Landmark: in.Landmark,
	}
}

func (s *service) Update(ctx context.Context, actor Actor, id uuid.UUID, req UpdateRestaurantRequest) (*RestaurantDTO, error) {
	var updated *models.Restaurant
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		row, err := s.loadOwned(ctx, repo, actor, id)
		if err != nil {
			return err
		}

		applyRestaurantUpdate(row, req)

		if req.Address != nil {
			if err := upsertLocation(ctx, tx, row, *req.Address); err != nil {
				return err
			}
		}

		if err := repo.Save(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update restaurant")
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

// upsertLocation overwrites the restaurant's address row, creating it for
// rows that predate having one.
func upsertLocation(ctx context.Context, tx *gorm.DB, row *models.Restaurant, in AddressInput) error {
	if row.Address == nil {
		addr := newLocationRow(in)
		if err := tx.WithContext(ctx).Create(addr).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create restaurant address")
		}
		row.AddressID = &addr.ID
		row.Address = addr
		return nil
	}

	row.Address.Street = strings.TrimSpace(in.Street)
	row.Address.City = strings.TrimSpace(in.City)
	row.Address.State = strings.TrimSpace(in.State)
	row.Address.ZipCode = strings.TrimSpace(in.ZipCode)
	row.Address.Landmark = in.Landmark
	if err := tx.WithContext(ctx).Save(row.Address).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update restaurant address")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	repo := NewRepository(s.db.DB())
	if _, err := s.loadOwned(ctx, repo, actor, id); err != nil {
		return err
	}
	if err := repo.Deactivate(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivate restaurant")
	}
	return nil
}

func (s *service) CreateMenuItem(ctx context.Context, actor Actor, restaurantID uuid.UUID, req CreateMenuItemRequest) (*MenuItemDTO, error) {
	repo := NewRepository(s.db.DB())
	if _, err := s.loadOwned(ctx, repo, actor, restaurantID); err != nil {
		return nil, err
	}
	if req.Price.Sign() <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}

	spice := enums.SpiceLevelMild
	if req.SpiceLevel != nil {
		spice = *req.SpiceLevel
		if !spice.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid spice level")
		}
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	item := &models.MenuItem{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Price:        req.Price,
		Category:     strings.TrimSpace(req.Category),
		IsVeg:        req.IsVeg,
		SpiceLevel:   spice,
		ImageURL:     req.ImageURL,
		IsAvailable:  available,
	}
	if err := repo.CreateMenuItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create menu item")
	}
	return MenuItemFromModel(item), nil
}

func (s *service) UpdateMenuItem(ctx context.Context, actor Actor, itemID uuid.UUID, req UpdateMenuItemRequest) (*MenuItemDTO, error) {
	repo := NewRepository(s.db.DB())
	item, err := s.loadOwnedMenuItem(ctx, repo, actor, itemID)
	if err != nil {
		return nil, err
	}

	if req.Price != nil && req.Price.Sign() <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if req.SpiceLevel != nil && !req.SpiceLevel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid spice level")
	}

	applyMenuItemUpdate(item, req)

	if err := repo.SaveMenuItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update menu item")
	}
	return MenuItemFromModel(item), nil
}

func (s *service) DeleteMenuItem(ctx context.Context, actor Actor, itemID uuid.UUID) error {
	repo := NewRepository(s.db.DB())
	if _, err := s.loadOwnedMenuItem(ctx, repo, actor, itemID); err != nil {
		return err
	}
	if err := repo.DeleteMenuItem(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete menu item")
	}
	return nil
}

// loadOwned returns the restaurant when the actor may manage it: admins
// always, owners only for their own restaurant.
func (s *service) loadOwned(ctx context.Context, repo *Repository, actor Actor, id uuid.UUID) (*models.Restaurant, error) {
	row, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
	}
	if actor.Role != enums.UserRoleAdmin && row.OwnerID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the restaurant owner")
	}
	return row, nil
}

func (s *service) loadOwnedMenuItem(ctx context.Context, repo *Repository, actor Actor, itemID uuid.UUID) (*models.MenuItem, error) {
	item, err := repo.FindMenuItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load menu item")
	}
	if _, err := s.loadOwned(ctx, repo, actor, item.RestaurantID); err != nil {
		return nil, err
	}
	return item, nil
}

func applyRestaurantUpdate(row *models.Restaurant, req UpdateRestaurantRequest) {
	if req.Name != nil {
		row.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		row.Description = strings.TrimSpace(*req.Description)
	}
	if req.Phone != nil {
		row.Phone = req.Phone
	}
	if req.ImageURL != nil {
		row.ImageURL = req.ImageURL
	}
	if req.CuisineType != nil {
		row.CuisineType = pq.StringArray(req.CuisineType)
	}
	if req.DeliveryFee != nil {
		row.DeliveryFee = *req.DeliveryFee
	}
	if req.MinOrder != nil {
		row.MinOrder = *req.MinOrder
	}
	if req.OpensAt != nil {
		row.OpensAt = *req.OpensAt
	}
	if req.ClosesAt != nil {
		row.ClosesAt = *req.ClosesAt
	}
	if req.IsActive != nil {
		row.IsActive = *req.IsActive
	}
}

func applyMenuItemUpdate(item *models.MenuItem, req UpdateMenuItemRequest) {
	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.IsVeg != nil {
		item.IsVeg = *req.IsVeg
	}
	if req.SpiceLevel != nil {
		item.SpiceLevel = *req.SpiceLevel
	}
	if req.ImageURL != nil {
		item.ImageURL = req.ImageURL
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
}
