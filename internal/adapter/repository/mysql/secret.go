package mysql

import (
	"context"
	"errors"

	pinDomain "loan-calculator/internal/domain/pin"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	_ pinDomain.SecretStore = (*SecretRepository)(nil)
	_ pinDomain.UnitOfWork  = (*SecretRepository)(nil)
)

// SecretRepository stores PIN hashes in the pin_secrets table. It works on
// any gorm dialect with upsert support (mysql, sqlite).
type SecretRepository struct{ db *gorm.DB }

func NewSecretRepository(db *gorm.DB) *SecretRepository { return &SecretRepository{db: db} }

// WithinTx runs fn in a db transaction, passing a repo bound to the tx.
func (r *SecretRepository) WithinTx(ctx context.Context, fn func(repo pinDomain.SecretStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SecretRepository{db: tx})
	})
}

func (r *SecretRepository) Get(ctx context.Context, account string) (string, error) {
	var out pinDomain.Secret
	res := r.db.WithContext(ctx).Where("account = ?", account).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return "", pinDomain.ErrNotFound
	}
	if res.Error != nil {
		return "", res.Error
	}
	return out.Hash, nil
}

// Set inserts the secret or overwrites the hash of an existing account row.
func (r *SecretRepository) Set(ctx context.Context, account, hash string) error {
	s := &pinDomain.Secret{Account: account, Hash: hash}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account"}},
			DoUpdates: clause.AssignmentColumns([]string{"hash", "updated_at"}),
		}).
		Create(s).Error
}
