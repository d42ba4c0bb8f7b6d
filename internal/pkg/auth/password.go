package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used outside test mode
const DefaultBcryptCost = 12

// PasswordHasher hashes and checks passwords with bcrypt at a fixed cost
type PasswordHasher struct {
	cost int
	// dummy is compared against when no user exists so both login failures cost the same
	dummy []byte
}

// NewPasswordHasher clamps cost into bcrypt's accepted range
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("jobly-placeholder"), cost)
	return &PasswordHasher{cost: cost, dummy: dummy}
}

// Cost returns the bcrypt work factor in use
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// HashPassword hashes a plaintext password
func (h *PasswordHasher) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches the stored hash
func (h *PasswordHasher) CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// SimulateCheck burns the same work as CheckPassword for a missing account
func (h *PasswordHasher) SimulateCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
