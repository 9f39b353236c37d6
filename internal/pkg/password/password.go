package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrMismatch = errors.New("password does not match")

// Verify checks a plaintext password against its stored bcrypt hash.
// User rows are provisioned outside this service, so only the verify
// side of bcrypt is needed here.
func Verify(hashed, plain string) error {
	if hashed == "" || plain == "" {
		return ErrMismatch
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}
