package pin

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	domain "loan-calculator/internal/domain/pin"
)

const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"

	EncodingHex    = "hex"
	EncodingBase64 = "base64"

	// DefaultSalt matches hashes written by existing installs.
	DefaultSalt = "LoanCalcSalt"
)

var (
	_ domain.Hasher = SaltedSHA256{}
	_ domain.Hasher = Bcrypt{}
)

// SaltedSHA256 stores SHA-256(pin + salt). Compare accepts either encoding so
// hex and base64 stores can be read interchangeably.
type SaltedSHA256 struct {
	Salt     string
	Encoding string
}

func (h SaltedSHA256) digest(pin string) [sha256.Size]byte {
	return sha256.Sum256([]byte(pin + h.Salt))
}

func (h SaltedSHA256) Hash(pin string) (string, error) {
	sum := h.digest(pin)
	switch h.Encoding {
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(sum[:]), nil
	case EncodingHex, "":
		return hex.EncodeToString(sum[:]), nil
	default:
		return "", fmt.Errorf("unknown hash encoding %q", h.Encoding)
	}
}

func (h SaltedSHA256) Compare(stored, pin string) bool {
	want, ok := decodeDigest(stored)
	if !ok {
		return false
	}
	sum := h.digest(pin)
	return subtle.ConstantTimeCompare(want, sum[:]) == 1
}

func decodeDigest(s string) ([]byte, bool) {
	if len(s) == hex.EncodedLen(sha256.Size) {
		if b, err := hex.DecodeString(s); err == nil {
			return b, true
		}
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil && len(b) == sha256.Size {
		return b, true
	}
	return nil, false
}

// Bcrypt salts every hash individually. Stores written with it cannot be
// read back by SaltedSHA256.
type Bcrypt struct{ Cost int }

func (h Bcrypt) Hash(pin string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}
	return string(b), nil
}

func (h Bcrypt) Compare(stored, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pin)) == nil
}

// NewHasher builds the hasher selected by configuration.
func NewHasher(scheme, salt, encoding string, cost int) (domain.Hasher, error) {
	switch scheme {
	case SchemeSHA256, "":
		if encoding != EncodingHex && encoding != EncodingBase64 && encoding != "" {
			return nil, fmt.Errorf("unknown hash encoding %q", encoding)
		}
		return SaltedSHA256{Salt: salt, Encoding: encoding}, nil
	case SchemeBcrypt:
		if cost != 0 && (cost < bcrypt.MinCost || cost > bcrypt.MaxCost) {
			return nil, fmt.Errorf("bcrypt cost %d out of range", cost)
		}
		return Bcrypt{Cost: cost}, nil
	default:
		return nil, fmt.Errorf("unknown pin hash scheme %q", scheme)
	}
}
