package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Shubhangam-Singh/food-delivery-app/pkg/logger"
)

// Backend is the subset of the redis client the cart store relies on.
type Backend interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(userID string) string
}

// Store persists one cart state blob per user.
type Store struct {
	backend Backend
	ttl     time.Duration
	logg    *logger.Logger
}

// NewStore builds a cart store with the given TTL per saved cart.
func NewStore(backend Backend, ttl time.Duration, logg *logger.Logger) *Store {
	return &Store{backend: backend, ttl: ttl, logg: logg}
}

// Load reads the user's cart. A missing or malformed blob yields the empty
// state, never an error: a broken cart must not break the session.
func (s *Store) Load(ctx context.Context, userID uuid.UUID) State {
	raw, err := s.backend.Get(ctx, s.backend.CartKey(userID.String()))
	if err != nil {
		if !errors.Is(err, goredis.Nil) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart load failed, starting empty")
		}
		return Empty()
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart blob malformed, starting empty")
		}
		return Empty()
	}
	if state.Items == nil {
		state.Items = []Line{}
	}
	return state
}

// Save writes the full cart state, refreshing the TTL.
func (s *Store) Save(ctx context.Context, userID uuid.UUID, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, s.backend.CartKey(userID.String()), payload, s.ttl)
}

// Clear removes the stored cart entirely.
func (s *Store) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.backend.Del(ctx, s.backend.CartKey(userID.String()))
}
