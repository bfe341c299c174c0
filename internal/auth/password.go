// Package auth provides credential validation, password hashing and
// bearer-token handling.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for password hashing. The default cost
// keeps login latency in the tens of milliseconds on current hardware.
const bcryptCost = bcrypt.DefaultCost

// HashPassword creates a salted bcrypt hash of the given password.
// The plaintext is never stored.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// dummyHash is a valid bcrypt hash of a throwaway value. Login compares
// against it when the username does not exist so that missing users and
// wrong passwords take comparable time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// BurnPasswordCheck performs a bcrypt comparison that always fails.
// Used to equalize timing on unknown-user login attempts.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
