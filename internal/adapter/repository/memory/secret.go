package memory

import (
	"context"
	"sync"

	"loan-calculator/internal/domain/pin"
)

var _ pin.SecretStore = (*SecretStore)(nil)

// SecretStore keeps secrets for the lifetime of the process.
type SecretStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewSecretStore() *SecretStore { return &SecretStore{data: map[string]string{}} }

func (s *SecretStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", pin.ErrNotFound
	}
	return v, nil
}

func (s *SecretStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}
