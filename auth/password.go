package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const PasswordCost = 12

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("placeholder-password"), PasswordCost)
	return hash
})

// BurnPasswordCheck spends the same work as VerifyPassword so that lookups of
// unknown accounts take as long as wrong-password attempts.
func BurnPasswordCheck(password string) {
	bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
}
