package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	errs "github.com/shoppro/storefront/internal/domain/error"
)

// BcryptHasher hashes passwords with bcrypt at the standard cost
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		// A malformed stored hash reads the same as a mismatch
		return errs.ErrInvalidCredentials
	}
	return nil
}
