package pin

import (
	"errors"
	"time"
)

// AccountKey identifies the single stored secret of an installation.
const AccountKey = "com.loancalcsimplified.pin"

var (
	ErrNotFound          = errors.New("pin secret not found")
	ErrInvalidPIN        = errors.New("pin must be exactly 4 digits")
	ErrIncorrectPIN      = errors.New("incorrect pin")
	ErrPINMismatch       = errors.New("pins do not match")
	ErrNotConfigured     = errors.New("pin is not configured")
	ErrAlreadyConfigured = errors.New("pin is already configured")
	ErrStoreUnavailable  = errors.New("pin store unavailable")
)

// Table: pin_secrets
type Secret struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Account   string    `gorm:"column:account;size:128;not null;uniqueIndex:ux_pin_secrets_account"`
	Hash      string    `gorm:"column:hash;size:255;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Secret) TableName() string { return "pin_secrets" }
