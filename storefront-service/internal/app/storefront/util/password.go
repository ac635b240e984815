package util

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost зафиксирован явно: хэши в users не должны зависеть от
// DefaultCost библиотеки
const passwordCost = 10

// HashPassword возвращает bcrypt хэш для колонки users.password_hash.
// Пароли длиннее 72 байт bcrypt отвергает.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword - false и для неверного пароля, и для битого хэша
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
