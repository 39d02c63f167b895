package secretmock

import (
	"context"

	"loan-calculator/internal/domain/pin"
)

var _ pin.SecretStore = (*Store)(nil)

// Store is a function-backed mock that satisfies pin.SecretStore.
// Unset functions behave like an empty store.
type Store struct {
	GetFn func(ctx context.Context, key string) (string, error)
	SetFn func(ctx context.Context, key, value string) error
}

func (m *Store) Get(ctx context.Context, key string) (string, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	return "", pin.ErrNotFound
}

func (m *Store) Set(ctx context.Context, key, value string) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, key, value)
	}
	return nil
}
