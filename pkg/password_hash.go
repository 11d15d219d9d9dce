package pkg

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const PasswordHashCost = 12

// HashPassword fails with bcrypt.ErrPasswordTooLong for passwords over 72 bytes.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return BytesToString(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
