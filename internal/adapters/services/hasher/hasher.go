package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCostFactor is the bcrypt cost used for stored password hashes.
const PasswordCostFactor = 12

// Bcrypt hashes passwords with bcrypt at PasswordCostFactor.
type Bcrypt struct{}

func NewBcrypt() Bcrypt {
	return Bcrypt{}
}

func (Bcrypt) Hash(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCostFactor)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}
