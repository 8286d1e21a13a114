package restaurant

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db/models"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
	pkgerrors "github.com/Shubhangam-Singh/food-delivery-app/pkg/errors"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/pagination"
)

func setupCatalogTestDB(t *testing.T) *db.Client {
	t.Helper()

	dsn := "file:catalog_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	restaurants := `
CREATE TABLE IF NOT EXISTS restaurants (
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  address_id TEXT,
  phone TEXT,
  image_url TEXT,
  cuisine_type TEXT NOT NULL DEFAULT '{}',
  delivery_fee NUMERIC NOT NULL DEFAULT 0,
  min_order NUMERIC NOT NULL DEFAULT 0,
  rating REAL NOT NULL DEFAULT 0,
  review_count INTEGER NOT NULL DEFAULT 0,
  opens_at TEXT NOT NULL DEFAULT '09:00',
  closes_at TEXT NOT NULL DEFAULT '22:00',
  is_active INTEGER NOT NULL DEFAULT 1,
  total_orders INTEGER NOT NULL DEFAULT 0,
  total_revenue NUMERIC NOT NULL DEFAULT 0,
  avg_order_value NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	menuItems := `
CREATE TABLE IF NOT EXISTS menu_items (
  id TEXT PRIMARY KEY,
  restaurant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  category TEXT NOT NULL,
  is_veg INTEGER NOT NULL DEFAULT 0,
  spice_level TEXT NOT NULL DEFAULT 'MILD',
  image_url TEXT,
  is_available INTEGER NOT NULL DEFAULT 1,
  times_ordered INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	addresses := `
CREATE TABLE IF NOT EXISTS addresses (
  id TEXT PRIMARY KEY,
  user_id TEXT,
  type TEXT NOT NULL DEFAULT 'HOME',
  street TEXT NOT NULL,
  city TEXT NOT NULL,
  state TEXT NOT NULL,
  zip_code TEXT NOT NULL,
  landmark TEXT,
  latitude REAL,
  longitude REAL,
  is_default INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(restaurants).Error)
	require.NoError(t, conn.Exec(menuItems).Error)
	require.NoError(t, conn.Exec(addresses).Error)
	return db.NewWithConn(conn)
}

func newCatalogTestService(t *testing.T, client *db.Client) Service {
	t.Helper()
	svc, err := NewService(client)
	require.NoError(t, err)
	return svc
}

func seedRestaurant(t *testing.T, svc Service, owner Actor, name string, fee string, mutate ...func(*CreateRestaurantRequest)) *RestaurantDTO {
	t.Helper()

	req := CreateRestaurantRequest{
		Name:        name,
		Description: "family kitchen",
		Address: AddressInput{
			Street:  "5 Food Street",
			City:    "Bengaluru",
			State:   "Karnataka",
			ZipCode: "560001",
		},
		DeliveryFee: decimal.RequireFromString(fee),
		MinOrder:    decimal.RequireFromString("100"),
	}
	for _, fn := range mutate {
		fn(&req)
	}
	dto, err := svc.Create(context.Background(), owner, req)
	require.NoError(t, err)
	return dto
}

func setRating(t *testing.T, client *db.Client, id uuid.UUID, rating float64) {
	t.Helper()
	require.NoError(t, client.DB().
		Model(&models.Restaurant{}).
		Where("id = ?", id).
		UpdateColumn("rating", rating).Error)
}

func TestListFiltersAndSorts(t *testing.T) {
	client := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, client)
	owner := Actor{UserID: uuid.New(), Role: enums.UserRoleRestaurantOwner}
	ctx := context.Background()

	spice := seedRestaurant(t, svc, owner, "Spice Villa", "30")
	setRating(t, client, spice.ID, 4.6)
	noodle := seedRestaurant(t, svc, owner, "Noodle House", "20")
	setRating(t, client, noodle.ID, 3.9)
	burger := seedRestaurant(t, svc, owner, "Burger Barn", "50")
	setRating(t, client, burger.ID, 4.2)

	// Deactivated restaurants never surface in the catalog.
	hidden := seedRestaurant(t, svc, owner, "Closed Corner", "10")
	require.NoError(t, svc.Delete(ctx, owner, hidden.ID))

	all, err := svc.List(ctx, ListInput{})
	require.NoError(t, err)
	require.Len(t, all.Restaurants, 3)
	assert.Equal(t, "Spice Villa", all.Restaurants[0].Name, "defaults to rating descending")
	assert.Equal(t, int64(3), all.Pagination.TotalCount)

	search, err := svc.List(ctx, ListInput{Filters: ListFilters{Search: "noodle"}})
	require.NoError(t, err)
	require.Len(t, search.Restaurants, 1)
	assert.Equal(t, "Noodle House", search.Restaurants[0].Name)

	minRating := 4.0
	rated, err := svc.List(ctx, ListInput{Filters: ListFilters{MinRating: &minRating}})
	require.NoError(t, err)
	assert.Len(t, rated.Restaurants, 2)

	maxFee := decimal.RequireFromString("25")
	cheap, err := svc.List(ctx, ListInput{Filters: ListFilters{MaxDeliveryFee: &maxFee}})
	require.NoError(t, err)
	require.Len(t, cheap.Restaurants, 1)
	assert.Equal(t, "Noodle House", cheap.Restaurants[0].Name)

	byName, err := svc.List(ctx, ListInput{SortBy: SortByName, SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, byName.Restaurants, 3)
	assert.Equal(t, "Burger Barn", byName.Restaurants[0].Name)
}

func TestListPagination(t *testing.T) {
	client := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, client)
	owner := Actor{UserID: uuid.New(), Role: enums.UserRoleRestaurantOwner}
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedRestaurant(t, svc, owner, "Kitchen "+string(rune('A'+i)), "20")
	}

	first, err := svc.List(ctx, ListInput{
		SortBy:     SortByName,
		SortOrder:  "asc",
		Pagination: pagination.Params{Page: 1, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, first.Restaurants, 2)
	assert.Equal(t, 1, first.Pagination.CurrentPage)
	assert.Equal(t, 3, first.Pagination.TotalPages)
	assert.Equal(t, int64(5), first.Pagination.TotalCount)
	assert.True(t, first.Pagination.HasNext)
	assert.False(t, first.Pagination.HasPrev)

	last, err := svc.List(ctx, ListInput{
		SortBy:     SortByName,
		SortOrder:  "asc",
		Pagination: pagination.Params{Page: 3, Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, last.Restaurants, 1)
	assert.False(t, last.Pagination.HasNext)
	assert.True(t, last.Pagination.HasPrev)
}

func TestGetGroupsMenuByCategory(t *testing.T) {
	client := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, client)
	owner := Actor{UserID: uuid.New(), Role: enums.UserRoleRestaurantOwner}
	ctx := context.Background()

	dto := seedRestaurant(t, svc, owner, "Spice Villa", "30")

	mustCreateItem := func(name, category, price string) *MenuItemDTO {
		item, err := svc.CreateMenuItem(ctx, owner, dto.ID, CreateMenuItemRequest{
			Name:     name,
			Price:    decimal.RequireFromString(price),
			Category: category,
		})
		require.NoError(t, err)
		return item
	}
	mustCreateItem("Paneer Tikka", "Starters", "180")
	mustCreateItem("Samosa", "Starters", "40")
	mustCreateItem("Butter Chicken", "Mains", "320")

	detail, err := svc.Get(ctx, dto.ID)
	require.NoError(t, err)
	require.Len(t, detail.Menu, 2)
	require.Len(t, detail.Menu["Starters"], 2)
	require.Len(t, detail.Menu["Mains"], 1)
	assert.Equal(t, "Paneer Tikka", detail.Menu["Starters"][0].Name)
	assert.Equal(t, "Samosa", detail.Menu["Starters"][1].Name)
}

func TestSuggestionsPrefixMatch(t *testing.T) {
	client := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, client)
	owner := Actor{UserID: uuid.New(), Role: enums.UserRoleRestaurantOwner}
	ctx := context.Background()

	seedRestaurant(t, svc, owner, "Spice Villa", "30", func(req *CreateRestaurantRequest) {
		req.CuisineType = []string{"North Indian", "Chinese"}
	})
	seedRestaurant(t, svc, owner, "Spice Route", "20", func(req *CreateRestaurantRequest) {
		req.CuisineType = []string{"South Indian"}
	})
	seedRestaurant(t, svc, owner, "Noodle House", "20", func(req *CreateRestaurantRequest) {
		req.CuisineType = []string{"Chinese"}
	})
	hidden := seedRestaurant(t, svc, owner, "Spice Closed", "10")
	require.NoError(t, svc.Delete(ctx, owner, hidden.ID))

	got, err := svc.Suggestions(ctx, "spi")
	require.NoError(t, err)
	assert.Equal(t, []string{"Spice Route", "Spice Villa"}, got.Restaurants)
	assert.Empty(t, got.Cuisines)

	got, err = svc.Suggestions(ctx, "chi")
	require.NoError(t, err)
	assert.Empty(t, got.Restaurants)
	assert.Equal(t, []string{"Chinese"}, got.Cuisines)

	got, err = svc.Suggestions(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, got.Restaurants)
	assert.Empty(t, got.Cuisines)
}

func TestGetUnknownRestaurant(t *testing.T) {
	client := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, client)

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateRequiresOwnership(t *testing.T) {
	client := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, client)
	owner := Actor{UserID: uuid.New(), Role: enums.UserRoleRestaurantOwner}
	stranger := Actor{UserID: uuid.New(), Role: enums.UserRoleRestaurantOwner}
	admin := Actor{UserID: uuid.New(), Role: enums.UserRoleAdmin}
	ctx := context.Background()

	dto := seedRestaurant(t, svc, owner, "Spice Villa", "30")

	name := "Hijacked"
	_, err := svc.Update(ctx, stranger, dto.ID, UpdateRestaurantRequest{Name: &name})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	name = "Spice Villa Deluxe"
	updated, err := svc.Update(ctx, admin, dto.ID, UpdateRestaurantRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Spice Villa Deluxe", updated.Name)
}

func TestRestaurantLocationLifecycle(t *testing.T) {
	client := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, client)
	owner := Actor{UserID: uuid.New(), Role: enums.UserRoleRestaurantOwner}
	ctx := context.Background()

	dto := seedRestaurant(t, svc, owner, "Spice Villa", "30")
	require.NotNil(t, dto.Address)
	assert.Equal(t, "5 Food Street", dto.Address.Street)
	assert.Equal(t, "Bengaluru", dto.Address.City)

	// The location row exists on its own, not owned by any user.
	var loc models.Address
	require.NoError(t, client.DB().First(&loc, "id = ?", dto.Address.ID).Error)
	assert.Nil(t, loc.UserID)

	detail, err := svc.Get(ctx, dto.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Address)
	assert.Equal(t, "5 Food Street", detail.Address.Street)

	updated, err := svc.Update(ctx, owner, dto.ID, UpdateRestaurantRequest{
		Address: &AddressInput{
			Street:  "9 Lavelle Road",
			City:    "Bengaluru",
			State:   "Karnataka",
			ZipCode: "560025",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Address)
	assert.Equal(t, "9 Lavelle Road", updated.Address.Street)
	// Same row updated in place, not a fresh one per edit.
	assert.Equal(t, dto.Address.ID, updated.Address.ID)

	var count int64
	require.NoError(t, client.DB().Model(&models.Address{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMenuItemLifecycle(t *testing.T) {
	client := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, client)
	owner := Actor{UserID: uuid.New(), Role: enums.UserRoleRestaurantOwner}
	stranger := Actor{UserID: uuid.New(), Role: enums.UserRoleRestaurantOwner}
	ctx := context.Background()

	dto := seedRestaurant(t, svc, owner, "Spice Villa", "30")

	item, err := svc.CreateMenuItem(ctx, owner, dto.ID, CreateMenuItemRequest{
		Name:     "Dal Makhani",
		Price:    decimal.RequireFromString("220"),
		Category: "Mains",
		IsVeg:    true,
	})
	require.NoError(t, err)
	assert.True(t, item.IsAvailable)
	assert.Equal(t, enums.SpiceLevelMild, item.SpiceLevel)

	unavailable := false
	updated, err := svc.UpdateMenuItem(ctx, owner, item.ID, UpdateMenuItemRequest{
		IsAvailable: &unavailable,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	_, err = svc.UpdateMenuItem(ctx, stranger, item.ID, UpdateMenuItemRequest{IsAvailable: &unavailable})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	require.NoError(t, svc.DeleteMenuItem(ctx, owner, item.ID))

	detail, err := svc.Get(ctx, dto.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Menu)
}

func TestCreateMenuItemRejectsNonPositivePrice(t *testing.T) {
	client := setupCatalogTestDB(t)
	svc := newCatalogTestService(t, client)
	owner := Actor{UserID: uuid.New(), Role: enums.UserRoleRestaurantOwner}

	dto := seedRestaurant(t, svc, owner, "Spice Villa", "30")

	_, err := svc.CreateMenuItem(context.Background(), owner, dto.ID, CreateMenuItemRequest{
		Name:     "Free Lunch",
		Price:    decimal.Zero,
		Category: "Mains",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
