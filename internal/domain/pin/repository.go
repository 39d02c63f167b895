package pin

import "context"

// SecretStore is the installation-scoped key/value store holding the PIN hash.
type SecretStore interface {
	// Get returns ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites any previous value.
	Set(ctx context.Context, key, value string) error
}

// Hasher turns a PIN into the stored string and checks a PIN against it.
type Hasher interface {
	Hash(pin string) (string, error)
	Compare(stored, pin string) bool
}

// UnitOfWork is implemented by stores that can run several operations in one
// transaction. fn receives a store bound to the transaction.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(s SecretStore) error) error
}
