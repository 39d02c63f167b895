package secretmock

import (
	"context"
	"errors"
	"testing"

	"loan-calculator/internal/domain/pin"
)

func TestStore_Get(t *testing.T) {
	ctx := context.Background()

	called := false
	m := &Store{
		GetFn: func(gotCtx context.Context, key string) (string, error) {
			called = true
			if gotCtx != ctx {
				t.Fatalf("Get ctx mismatch")
			}
			if key != pin.AccountKey {
				t.Fatalf("Get key mismatch: got %s", key)
			}
			return "hash", nil
		},
	}
	got, err := m.Get(ctx, pin.AccountKey)
	if err != nil || got != "hash" {
		t.Fatalf("Get: got (%q, %v)", got, err)
	}
	if !called {
		t.Fatalf("GetFn not called")
	}

	// Default (nil func) → not found
	m = &Store{}
	if _, err := m.Get(ctx, pin.AccountKey); !errors.Is(err, pin.ErrNotFound) {
		t.Fatalf("Get default: want ErrNotFound, got %v", err)
	}
}

func TestStore_Set(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("boom")

	m := &Store{
		SetFn: func(gotCtx context.Context, key, value string) error {
			if key != pin.AccountKey || value != "hash" {
				t.Fatalf("Set args mismatch: %s=%s", key, value)
			}
			return wantErr
		},
	}
	if err := m.Set(ctx, pin.AccountKey, "hash"); !errors.Is(err, wantErr) {
		t.Fatalf("Set: want %v, got %v", wantErr, err)
	}

	// Default (nil func) → no-op, nil error
	m = &Store{}
	if err := m.Set(ctx, pin.AccountKey, "hash"); err != nil {
		t.Fatalf("Set default: want nil, got %v", err)
	}
}
