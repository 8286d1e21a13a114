package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgAuth "github.com/Shubhangam-Singh/food-delivery-app/pkg/auth"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/config"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db/models"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
	pkgerrors "github.com/Shubhangam-Singh/food-delivery-app/pkg/errors"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/security"
)

func setupRegisterTestDB(t *testing.T) *db.Client {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  phone TEXT,
  role TEXT NOT NULL DEFAULT 'CUSTOMER',
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(users).Error)
	return db.NewWithConn(conn)
}

func newRegisterTestService(t *testing.T, client *db.Client) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             client,
		PasswordConfig: config.PasswordConfig{},
		JWTConfig:      testJWTConfig(),
	})
	require.NoError(t, err)
	return svc
}

func TestRegisterCreatesCustomer(t *testing.T) {
	client := setupRegisterTestDB(t)
	svc := newRegisterTestService(t, client)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Jamie",
		LastName:  "Rivera",
		Email:     "Jamie@Example.com",
		Password:  "Secret123!",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "jamie@example.com", resp.User.Email)
	assert.Equal(t, "Jamie", resp.User.FirstName)
	assert.Equal(t, "Rivera", resp.User.LastName)
	assert.Equal(t, enums.UserRoleCustomer, resp.User.Role)
	assert.NotEmpty(t, resp.Token)

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	var stored models.User
	require.NoError(t, client.DB().First(&stored, "email = ?", "jamie@example.com").Error)
	assert.NotEqual(t, "Secret123!", stored.PasswordHash)

	ok, err := security.VerifyPassword("Secret123!", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterRestaurantOwnerRole(t *testing.T) {
	client := setupRegisterTestDB(t)
	svc := newRegisterTestService(t, client)

	role := enums.UserRoleRestaurantOwner
	resp, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Pat",
		LastName:  "Owner",
		Email:     "owner@example.com",
		Password:  "Secret123!",
		Role:      &role,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleRestaurantOwner, resp.User.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	client := setupRegisterTestDB(t)
	svc := newRegisterTestService(t, client)

	req := RegisterRequest{
		FirstName: "Jamie",
		LastName:  "Rivera",
		Email:     "jamie@example.com",
		Password:  "Secret123!",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	var count int64
	require.NoError(t, client.DB().Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	client := setupRegisterTestDB(t)
	svc := newRegisterTestService(t, client)

	role := enums.UserRoleAdmin
	_, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Sneaky",
		LastName:  "Admin",
		Email:     "admin@example.com",
		Password:  "Secret123!",
		Role:      &role,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}
