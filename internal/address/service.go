package address

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db/models"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
	pkgerrors "github.com/Shubhangam-Singh/food-delivery-app/pkg/errors"
)

// Service defines the behavior needed by the addresses controller.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateAddressRequest) (*AddressDTO, error)
	Update(ctx context.Context, userID, addressID uuid.UUID, req UpdateAddressRequest) (*AddressDTO, error)
	Delete(ctx context.Context, userID, addressID uuid.UUID) error
}

type service struct {
	db *db.Client
}

// NewService constructs an address service backed by the shared DB client.
func NewService(client *db.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &service{db: client}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error) {
	repo := NewRepository(s.db.DB())
	addresses, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list addresses")
	}
	return fromModels(addresses), nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateAddressRequest) (*AddressDTO, error) {
	addrType := enums.AddressTypeHome
	if req.Type != nil {
		addrType = *req.Type
		if !addrType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid address type")
		}
	}

	addr := &models.Address{
		ID:        uuid.New(),
		UserID:    &userID,
		Type:      addrType,
		Street:    strings.TrimSpace(req.Street),
		City:      strings.TrimSpace(req.City),
		State:     strings.TrimSpace(req.State),
		ZipCode:   strings.TrimSpace(req.ZipCode),
		Landmark:  req.Landmark,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsDefault: req.IsDefault,
	}

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		if req.IsDefault {
			if err := repo.ClearDefault(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear default address")
			}
		}
		if err := repo.Create(ctx, addr); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create address")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(addr), nil
}

func (s *service) Update(ctx context.Context, userID, addressID uuid.UUID, req UpdateAddressRequest) (*AddressDTO, error) {
	var updated *models.Address
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		addr, err := repo.FindForUser(ctx, addressID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup address")
		}

		if req.Type != nil && !req.Type.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid address type")
		}

		if req.IsDefault != nil && *req.IsDefault && !addr.IsDefault {
			if err := repo.ClearDefault(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear default address")
			}
		}

		applyUpdate(addr, req)

		if err := repo.Save(ctx, addr); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update address")
		}
		updated = addr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		addr, err := repo.FindForUser(ctx, addressID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup address")
		}

		if addr.IsDefault {
			others, err := repo.CountOthers(ctx, userID, addressID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count addresses")
			}
			if others > 0 {
				return pkgerrors.New(pkgerrors.CodeBusinessRule,
					"cannot delete default address, set another address as default first")
			}
		}

		if err := repo.Delete(ctx, addressID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete address")
		}
		return nil
	})
}

func applyUpdate(addr *models.Address, req UpdateAddressRequest) {
	if req.Street != nil {
		addr.Street = strings.TrimSpace(*req.Street)
	}
	if req.City != nil {
		addr.City = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		addr.State = strings.TrimSpace(*req.State)
	}
	if req.ZipCode != nil {
		addr.ZipCode = strings.TrimSpace(*req.ZipCode)
	}
	if req.Landmark != nil {
		addr.Landmark = req.Landmark
	}
	if req.Type != nil {
		addr.Type = *req.Type
	}
	if req.IsDefault != nil {
		addr.IsDefault = *req.IsDefault
	}
	if req.Latitude != nil {
		addr.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		addr.Longitude = req.Longitude
	}
}
