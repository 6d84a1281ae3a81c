// Package password hashes and checks principal passwords with bcrypt.
package password

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinLength = 8
	// MaxLength is bcrypt's input limit in bytes.
	MaxLength = 72
)

var ErrInvalidPassword = errors.New("password must be between 8 and 72 bytes")

// dummyHash is compared against when the account does not exist so a failed
// login costs the same whether or not the email is registered.
var dummyHash = sync.OnceValue(func() []byte {
	b, _ := bcrypt.GenerateFromPassword([]byte("job-portal-unknown-account"), bcrypt.DefaultCost)
	return b
})

func Validate(raw string) error {
	if len(strings.TrimSpace(raw)) < MinLength || len(raw) > MaxLength {
		return ErrInvalidPassword
	}
	return nil
}

func Hash(raw string) (string, error) {
	if err := Validate(raw); err != nil {
		return "", err
	}
	b, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Check never errors: any mismatch, malformed hash or empty input is false.
func Check(hash, raw string) bool {
	if hash == "" || raw == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// Burn performs a throwaway comparison for the unknown-account path.
func Burn(raw string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(raw))
}
