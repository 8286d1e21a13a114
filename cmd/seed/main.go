package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/config"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db/models"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/logger"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/security"
)

const seedPassword = "password123"

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.App.IsProd() {
		logg.Warn(ctx, "refusing to seed a production database")
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	hash, err := security.HashPassword(seedPassword, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash seed password", err)
		os.Exit(1)
	}

	err = dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := clearTables(tx); err != nil {
			return err
		}
		return insertFixtures(tx, hash)
	})
	if err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "database seeded")
	logg.Info(ctx, "test accounts: admin@fooddelivery.com, owner@tastybites.com, john.doe@email.com, jane.smith@email.com (password123)")
}

func clearTables(tx *gorm.DB) error {
	// Children first so foreign keys never block the wipe.
	tables := []string{
		"restaurant_analytics",
		"order_items",
		"orders",
		"menu_items",
		"restaurants",
		"addresses",
		"users",
	}
	for _, table := range tables {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertFixtures(tx *gorm.DB, passwordHash string) error {
	admin := models.User{
		Email:        "admin@fooddelivery.com",
		PasswordHash: passwordHash,
		FirstName:    "Admin",
		LastName:     "User",
		Phone:        strPtr("+91-9999999999"),
		Role:         enums.UserRoleAdmin,
	}
	owner := models.User{
		Email:        "owner@tastybites.com",
		PasswordHash: passwordHash,
		FirstName:    "Restaurant",
		LastName:     "Owner",
		Phone:        strPtr("+91-9876543210"),
		Role:         enums.UserRoleRestaurantOwner,
	}
	customer1 := models.User{
		Email:        "john.doe@email.com",
		PasswordHash: passwordHash,
		FirstName:    "John",
		LastName:     "Doe",
		Phone:        strPtr("+91-9123456789"),
		Role:         enums.UserRoleCustomer,
	}
	customer2 := models.User{
		Email:        "jane.smith@email.com",
		PasswordHash: passwordHash,
		FirstName:    "Jane",
		LastName:     "Smith",
		Phone:        strPtr("+91-9123456788"),
		Role:         enums.UserRoleCustomer,
	}
	for _, u := range []*models.User{&admin, &owner, &customer1, &customer2} {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
	}

	addresses := []models.Address{
		{
			UserID:    &customer1.ID,
			Type:      enums.AddressTypeHome,
			Street:    "456 Customer Lane, Apartment 2B",
			City:      "Vellore",
			State:     "Tamil Nadu",
			ZipCode:   "632014",
			Landmark:  strPtr("Near VIT University"),
			IsDefault: true,
		},
		{
			UserID:    &customer2.ID,
			Type:      enums.AddressTypeHome,
			Street:    "789 Residential Complex, Block C",
			City:      "Vellore",
			State:     "Tamil Nadu",
			ZipCode:   "632014",
			Landmark:  strPtr("Behind Hospital"),
			IsDefault: true,
		},
	}
	for i := range addresses {
		if err := tx.Create(&addresses[i]).Error; err != nil {
			return err
		}
	}

	location := models.Address{
		Type:     enums.AddressTypeOther,
		Street:   "123 Food Street, Near City Mall",
		City:     "Vellore",
		State:    "Tamil Nadu",
		ZipCode:  "632014",
		Landmark: strPtr("Near City Mall"),
	}
	if err := tx.Create(&location).Error; err != nil {
		return err
	}

	restaurant := models.Restaurant{
		OwnerID:     owner.ID,
		Name:        "Tasty Bites",
		Description: "Delicious North Indian cuisine delivered fresh and hot",
		AddressID:   &location.ID,
		Phone:       strPtr("+91-9876543210"),
		CuisineType: pq.StringArray{"North Indian", "Chinese", "Continental"},
		DeliveryFee: decimal.NewFromInt(30),
		MinOrder:    decimal.NewFromInt(150),
		Rating:      4.5,
		OpensAt:     "10:00",
		ClosesAt:    "23:00",
		IsActive:    true,
	}
	if err := tx.Create(&restaurant).Error; err != nil {
		return err
	}

	menu := []models.MenuItem{
		{
			RestaurantID: restaurant.ID,
			Name:         "Chicken Biryani",
			Description:  "Aromatic basmati rice with spiced chicken pieces, served with raita and pickle",
			Price:        decimal.NewFromInt(280),
			Category:     "Main Course",
			SpiceLevel:   enums.SpiceLevelMedium,
			IsAvailable:  true,
		},
		{
			RestaurantID: restaurant.ID,
			Name:         "Paneer Butter Masala",
			Description:  "Creamy paneer curry with rich tomato and butter gravy",
			Price:        decimal.NewFromInt(240),
			Category:     "Main Course",
			IsVeg:        true,
			SpiceLevel:   enums.SpiceLevelMild,
			IsAvailable:  true,
		},
		{
			RestaurantID: restaurant.ID,
			Name:         "Garlic Naan",
			Description:  "Fresh baked naan bread with garlic and herbs",
			Price:        decimal.NewFromInt(60),
			Category:     "Bread",
			IsVeg:        true,
			SpiceLevel:   enums.SpiceLevelMild,
			IsAvailable:  true,
		},
		{
			RestaurantID: restaurant.ID,
			Name:         "Chicken Tikka",
			Description:  "Grilled chicken pieces marinated in yogurt and spices",
			Price:        decimal.NewFromInt(320),
			Category:     "Starter",
			SpiceLevel:   enums.SpiceLevelSpicy,
			IsAvailable:  true,
		},
		{
			RestaurantID: restaurant.ID,
			Name:         "Veg Hakka Noodles",
			Description:  "Stir-fried noodles with fresh vegetables and sauces",
			Price:        decimal.NewFromInt(180),
			Category:     "Chinese",
			IsVeg:        true,
			SpiceLevel:   enums.SpiceLevelMedium,
			IsAvailable:  true,
		},
		{
			RestaurantID: restaurant.ID,
			Name:         "Gulab Jamun (2 pcs)",
			Description:  "Sweet milk dumplings in sugar syrup",
			Price:        decimal.NewFromInt(80),
			Category:     "Dessert",
			IsVeg:        true,
			SpiceLevel:   enums.SpiceLevelMild,
			IsAvailable:  true,
		},
	}
	for i := range menu {
		if err := tx.Create(&menu[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

func strPtr(s string) *string {
	return &s
}
