package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used for password hashes.
const BcryptCost = 12

var ErrEmptyPassword = errors.New("password must not be empty")

// Hasher derives and verifies one-way password hashes.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt-backed Hasher. A cost below
// bcrypt.MinCost falls back to BcryptCost.
func NewBcryptHasher(cost int) Hasher {
	if cost < bcrypt.MinCost {
		cost = BcryptCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

func (h *bcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
