// Package password checks and creates bcrypt hashes of account passwords.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the cost used when the configured cost is out of range.
const DefaultCost = 10

// Compare reports whether plain is the password hashed into hash.
//
// Malformed hashes never match.
func Compare(plain string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Hash returns the bcrypt hash of plain.
func Hash(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || bcrypt.MaxCost < cost {
		cost = DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrTooLong
	}
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// ErrTooLong is returned by Hash for passwords bcrypt cannot hash (longer than 72 bytes).
var ErrTooLong = errors.New("password is too long")
