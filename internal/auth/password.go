package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt work factor. Deliberately slower than the library default.
const bcryptCost = 12

// HashPassword produces a salted bcrypt hash of the plaintext password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash. It returns
// false for any malformed or empty input instead of an error; bcrypt's
// comparison is constant-time on the hash contents.
func CheckPassword(plain, hash string) bool {
	if plain == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
