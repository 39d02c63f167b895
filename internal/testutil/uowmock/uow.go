package uowmock

import (
	"context"
	"errors"

	"loan-calculator/internal/domain/pin"
	"loan-calculator/internal/testutil/secretmock"
)

// Ensure compile-time compliance
var (
	_ pin.SecretStore = (*Store)(nil)
	_ pin.UnitOfWork  = (*Store)(nil)
)

var errUnimplemented = errors.New("uowmock: method not implemented")

// Store is a function-backed secret store that also satisfies
// pin.UnitOfWork. An unset WithinTxFn returns errUnimplemented.
type Store struct {
	secretmock.Store
	WithinTxFn func(ctx context.Context, fn func(s pin.SecretStore) error) error
}

func New() *Store { return &Store{} }

// WithPassthroughTx runs the transaction body against the embedded store and
// counts the calls in *calls.
func (m *Store) WithPassthroughTx(calls *int) *Store {
	m.WithinTxFn = func(ctx context.Context, fn func(pin.SecretStore) error) error {
		*calls++
		return fn(&m.Store)
	}
	return m
}

func (m *Store) WithinTx(ctx context.Context, fn func(s pin.SecretStore) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
