package pin

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	domain "loan-calculator/internal/domain/pin"
)

// Gate guards the app behind a single stored PIN hash.
type Gate struct {
	store  domain.SecretStore
	hasher domain.Hasher
	key    string
	log    logrus.FieldLogger

	authenticated atomic.Bool
	epoch         atomic.Uint64
}

func NewGate(store domain.SecretStore, hasher domain.Hasher, log logrus.FieldLogger) *Gate {
	g := &Gate{store: store, hasher: hasher, key: domain.AccountKey, log: log}
	// seeded from the clock so tokens from an earlier process never match
	g.epoch.Store(uint64(time.Now().UnixNano()))
	return g
}

// ValidatePIN accepts exactly four ASCII digits.
func ValidatePIN(pin string) error {
	if len(pin) != 4 {
		return domain.ErrInvalidPIN
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return domain.ErrInvalidPIN
		}
	}
	return nil
}

// Confirm checks the second entry of a newly chosen PIN.
func Confirm(pin, confirm string) error {
	if err := ValidatePIN(pin); err != nil {
		return err
	}
	if pin != confirm {
		return domain.ErrPINMismatch
	}
	return nil
}

func (g *Gate) IsConfigured(ctx context.Context) (bool, error) {
	return g.isConfigured(ctx, g.store)
}

// Setup stores the hash of pin, replacing any previous one, and
// authenticates the session on success.
func (g *Gate) Setup(ctx context.Context, pin string) error {
	if err := g.save(ctx, g.store, pin); err != nil {
		return err
	}
	g.authenticated.Store(true)
	return nil
}

// Enroll is the first-run flow: the PIN is entered twice and no secret may
// exist yet.
func (g *Gate) Enroll(ctx context.Context, pin, confirm string) error {
	if err := Confirm(pin, confirm); err != nil {
		return err
	}
	configured, err := g.IsConfigured(ctx)
	if err != nil {
		return err
	}
	if configured {
		return domain.ErrAlreadyConfigured
	}
	return g.Setup(ctx, pin)
}

// Verify reports whether pin matches the stored hash. A missing secret is a
// mismatch, not an error.
func (g *Gate) Verify(ctx context.Context, pin string) (bool, error) {
	ok, err := g.matches(ctx, g.store, pin)
	if err != nil || !ok {
		return false, err
	}
	g.authenticated.Store(true)
	g.log.Info("pin: verified")
	return true, nil
}

// Reset replaces the stored PIN after checking the current one. Stores that
// implement UnitOfWork run the check and the write in one transaction.
func (g *Gate) Reset(ctx context.Context, current, next string) error {
	if err := ValidatePIN(next); err != nil {
		return err
	}
	var err error
	if uow, ok := g.store.(domain.UnitOfWork); ok {
		err = uow.WithinTx(ctx, func(s domain.SecretStore) error {
			return g.reset(ctx, s, current, next)
		})
	} else {
		err = g.reset(ctx, g.store, current, next)
	}
	if err != nil {
		return err
	}
	g.authenticated.Store(true)
	g.log.Info("pin: reset")
	return nil
}

// Logout clears the session flag and starts a new epoch; the stored secret
// stays.
func (g *Gate) Logout() {
	g.authenticated.Store(false)
	g.epoch.Add(1)
	g.log.Info("pin: logged out")
}

func (g *Gate) IsAuthenticated() bool { return g.authenticated.Load() }

// Epoch identifies the current session; it changes on every logout.
func (g *Gate) Epoch() uint64 { return g.epoch.Load() }

func (g *Gate) reset(ctx context.Context, s domain.SecretStore, current, next string) error {
	configured, err := g.isConfigured(ctx, s)
	if err != nil {
		return err
	}
	if !configured {
		return domain.ErrNotConfigured
	}
	ok, err := g.matches(ctx, s, current)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrIncorrectPIN
	}
	return g.save(ctx, s, next)
}

func (g *Gate) isConfigured(ctx context.Context, s domain.SecretStore) (bool, error) {
	_, err := s.Get(ctx, g.key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
}

func (g *Gate) save(ctx context.Context, s domain.SecretStore, pin string) error {
	if err := ValidatePIN(pin); err != nil {
		return err
	}
	hash, err := g.hasher.Hash(pin)
	if err != nil {
		return err
	}
	if err := s.Set(ctx, g.key, hash); err != nil {
		g.log.WithError(err).Error("pin: failed to save secret")
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	g.log.Info("pin: secret saved")
	return nil
}

func (g *Gate) matches(ctx context.Context, s domain.SecretStore, pin string) (bool, error) {
	stored, err := s.Get(ctx, g.key)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		g.log.WithError(err).Error("pin: failed to load secret")
		return false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !g.hasher.Compare(stored, pin) {
		g.log.Warn("pin: verification failed")
		return false, nil
	}
	return true, nil
}
