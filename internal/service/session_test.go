package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/library-server-go/internal/model"
)

// memoryStore is an in-memory SessionStore for tests.
type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]string)}
}

func (s *memoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memoryStore) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func TestSessionService(t *testing.T) {
	ctx := context.Background()
	admin := &model.AdminUser{ID: "user-1", Email: "admin@example.com"}

	t.Run("create then resolve returns the admin", func(t *testing.T) {
		adminRepo := new(mockAdminRepo)
		svc := NewSessionService(newMemoryStore(), adminRepo, "test-secret")

		adminRepo.On("FindByID", ctx, "user-1").Return(admin, nil)

		token, err := svc.Create(ctx, "user-1")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		resolved, err := svc.Resolve(ctx, token)
		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Equal(t, "user-1", resolved.ID)
	})

	t.Run("resolve unknown token returns nil", func(t *testing.T) {
		svc := NewSessionService(newMemoryStore(), new(mockAdminRepo), "test-secret")

		resolved, err := svc.Resolve(ctx, "never-issued")
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("resolve empty token returns nil", func(t *testing.T) {
		svc := NewSessionService(newMemoryStore(), new(mockAdminRepo), "test-secret")

		resolved, err := svc.Resolve(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("destroy invalidates the session", func(t *testing.T) {
		adminRepo := new(mockAdminRepo)
		svc := NewSessionService(newMemoryStore(), adminRepo, "test-secret")

		token, err := svc.Create(ctx, "user-1")
		require.NoError(t, err)

		require.NoError(t, svc.Destroy(ctx, token))

		resolved, err := svc.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Nil(t, resolved)
	})

	t.Run("destroy is idempotent", func(t *testing.T) {
		svc := NewSessionService(newMemoryStore(), new(mockAdminRepo), "test-secret")

		token, err := svc.Create(ctx, "user-1")
		require.NoError(t, err)

		require.NoError(t, svc.Destroy(ctx, token))
		require.NoError(t, svc.Destroy(ctx, token))
		require.NoError(t, svc.Destroy(ctx, "never-issued"))
	})

	t.Run("raw token never reaches the store", func(t *testing.T) {
		store := newMemoryStore()
		svc := NewSessionService(store, new(mockAdminRepo), "test-secret")

		token, err := svc.Create(ctx, "user-1")
		require.NoError(t, err)

		for key := range store.data {
			assert.NotContains(t, key, token)
		}
	})
}
