package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidPassword = errors.New("invalid password")

// bcrypt trunca a partir de 72 bytes; rechazamos antes de hashear.
const maxPasswordBytes = 72

// HashPassword genera un hash bcrypt del password en claro.
func HashPassword(plain string) (string, error) {
	if plain == "" || len(plain) > maxPasswordBytes {
		return "", ErrInvalidPassword
	}
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// CheckPassword compara password y hash; nunca devuelve error.
func CheckPassword(plain, digest string) bool {
	if plain == "" || digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
