package auth

import (
	"fmt"

	"github.com/dmitrijs2005/memoria/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher produces and checks bcrypt digests.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using cost, clamped to bcrypt's valid
// range. Zero selects bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns a salted digest of plaintext. The empty password is rejected.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", common.ErrEmptyPassword
	}

	b := []byte(plaintext)
	defer common.WipeByteArray(b)

	digest, err := bcrypt.GenerateFromPassword(b, h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed digest is a
// mismatch.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	b := []byte(plaintext)
	defer common.WipeByteArray(b)

	return bcrypt.CompareHashAndPassword([]byte(digest), b) == nil
}
