package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	pinDomain "loan-calculator/internal/domain/pin"
)

const keyPrefix = "loancalc:pin:"

var _ pinDomain.SecretStore = (*SecretRepository)(nil)

// SecretRepository keeps PIN hashes as plain redis strings with no expiry.
type SecretRepository struct{ rdb *goredis.Client }

func NewSecretRepository(rdb *goredis.Client) *SecretRepository {
	return &SecretRepository{rdb: rdb}
}

func (r *SecretRepository) Get(ctx context.Context, account string) (string, error) {
	v, err := r.rdb.Get(ctx, keyPrefix+account).Result()
	if errors.Is(err, goredis.Nil) {
		return "", pinDomain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *SecretRepository) Set(ctx context.Context, account, hash string) error {
	return r.rdb.Set(ctx, keyPrefix+account, hash, 0).Err()
}
