package address

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db/models"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
	pkgerrors "github.com/Shubhangam-Singh/food-delivery-app/pkg/errors"
)

func setupAddressTestDB(t *testing.T) *db.Client {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

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
	require.NoError(t, conn.Exec(addresses).Error)
	return db.NewWithConn(conn)
}

func newAddressTestService(t *testing.T, client *db.Client) Service {
	t.Helper()
	svc, err := NewService(client)
	require.NoError(t, err)
	return svc
}

func sampleCreateRequest() CreateAddressRequest {
	return CreateAddressRequest{
		Street:  "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		ZipCode: "560001",
	}
}

func TestCreateFirstAddress(t *testing.T) {
	client := setupAddressTestDB(t)
	svc := newAddressTestService(t, client)
	userID := uuid.New()

	dto, err := svc.Create(context.Background(), userID, sampleCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "12 MG Road", dto.Street)
	assert.Equal(t, enums.AddressTypeHome, dto.Type)
	assert.False(t, dto.IsDefault)
}

func TestCreateDefaultClearsPriorDefault(t *testing.T) {
	client := setupAddressTestDB(t)
	svc := newAddressTestService(t, client)
	userID := uuid.New()
	ctx := context.Background()

	first := sampleCreateRequest()
	first.IsDefault = true
	firstDTO, err := svc.Create(ctx, userID, first)
	require.NoError(t, err)
	require.True(t, firstDTO.IsDefault)

	second := sampleCreateRequest()
	second.Street = "44 Brigade Road"
	second.IsDefault = true
	secondDTO, err := svc.Create(ctx, userID, second)
	require.NoError(t, err)
	require.True(t, secondDTO.IsDefault)

	var defaults int64
	require.NoError(t, client.DB().
		Model(&models.Address{}).
		Where("user_id = ? AND is_default", userID).
		Count(&defaults).Error)
	assert.Equal(t, int64(1), defaults)

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, secondDTO.ID, list[0].ID, "default address sorts first")
}

func TestUpdateSetDefaultKeepsSingleDefault(t *testing.T) {
	client := setupAddressTestDB(t)
	svc := newAddressTestService(t, client)
	userID := uuid.New()
	ctx := context.Background()

	first := sampleCreateRequest()
	first.IsDefault = true
	firstDTO, err := svc.Create(ctx, userID, first)
	require.NoError(t, err)

	second := sampleCreateRequest()
	second.Street = "44 Brigade Road"
	secondDTO, err := svc.Create(ctx, userID, second)
	require.NoError(t, err)

	isDefault := true
	updated, err := svc.Update(ctx, userID, secondDTO.ID, UpdateAddressRequest{IsDefault: &isDefault})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	var reloaded models.Address
	require.NoError(t, client.DB().First(&reloaded, "id = ?", firstDTO.ID).Error)
	assert.False(t, reloaded.IsDefault)
}

func TestUpdateRejectsForeignAddress(t *testing.T) {
	client := setupAddressTestDB(t)
	svc := newAddressTestService(t, client)
	ctx := context.Background()

	owner := uuid.New()
	dto, err := svc.Create(ctx, owner, sampleCreateRequest())
	require.NoError(t, err)

	street := "1 Hacker Way"
	_, err = svc.Update(ctx, uuid.New(), dto.ID, UpdateAddressRequest{Street: &street})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteSoleDefaultSucceeds(t *testing.T) {
	client := setupAddressTestDB(t)
	svc := newAddressTestService(t, client)
	userID := uuid.New()
	ctx := context.Background()

	req := sampleCreateRequest()
	req.IsDefault = true
	dto, err := svc.Create(ctx, userID, req)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, dto.ID))

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteDefaultBlockedWhileOthersExist(t *testing.T) {
	client := setupAddressTestDB(t)
	svc := newAddressTestService(t, client)
	userID := uuid.New()
	ctx := context.Background()

	first := sampleCreateRequest()
	first.IsDefault = true
	firstDTO, err := svc.Create(ctx, userID, first)
	require.NoError(t, err)

	second := sampleCreateRequest()
	second.Street = "44 Brigade Road"
	_, err = svc.Create(ctx, userID, second)
	require.NoError(t, err)

	err = svc.Delete(ctx, userID, firstDTO.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeBusinessRule, typed.Code())

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDeleteNonDefaultAlwaysAllowed(t *testing.T) {
	client := setupAddressTestDB(t)
	svc := newAddressTestService(t, client)
	userID := uuid.New()
	ctx := context.Background()

	first := sampleCreateRequest()
	first.IsDefault = true
	_, err := svc.Create(ctx, userID, first)
	require.NoError(t, err)

	second := sampleCreateRequest()
	second.Street = "44 Brigade Road"
	secondDTO, err := svc.Create(ctx, userID, second)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, secondDTO.ID))
}
