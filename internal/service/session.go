package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shelfwise/library-server-go/internal/config"
	"github.com/shelfwise/library-server-go/internal/model"
	"github.com/shelfwise/library-server-go/internal/repository"
	"github.com/shelfwise/library-server-go/internal/util"
)

// SessionStore is the keyed TTL store backing cookie sessions. The Redis
// client implements it; tests substitute an in-memory map.
type SessionStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

// SessionService binds browser cookies to admin identities. Only the
// HMAC of the session token ever reaches the store.
type SessionService struct {
	store     SessionStore
	adminRepo repository.AdminUserRepository
	secret    string
}

func NewSessionService(
	store SessionStore,
	adminRepo repository.AdminUserRepository,
	secret string,
) *SessionService {
	return &SessionService{
		store:     store,
		adminRepo: adminRepo,
		secret:    secret,
	}
}

func (s *SessionService) key(token string) string {
	return "session:" + util.HmacSHA256(s.secret, token)
}

// Create opens a session for an already-verified admin and returns the
// cookie token.
func (s *SessionService) Create(ctx context.Context, userID string) (string, error) {
	token, err := util.GenerateToken()
	if err != nil {
		return "", err
	}

	if err := s.store.Set(ctx, s.key(token), userID, config.SessionTTL); err != nil {
		return "", err
	}

	log.Info().Str("userId", userID).Msg("session created")

	return token, nil
}

// Resolve returns the admin bound to a session token, or nil when the
// session is unknown or expired.
func (s *SessionService) Resolve(ctx context.Context, token string) (*model.AdminUser, error) {
	if token == "" {
		return nil, nil
	}

	userID, err := s.store.Get(ctx, s.key(token))
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, nil
	}

	return s.adminRepo.FindByID(ctx, userID)
}

// Destroy invalidates a session. Destroying an unknown session is a no-op.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Del(ctx, s.key(token))
}
