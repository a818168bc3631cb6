// ABOUTME: Shared write-password verification against a bcrypt hash kept on disk
// ABOUTME: The hash file is read once on first use and cached for the process lifetime

package auth

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks the shared write password against a bcrypt hash stored in a
// file. The file is read lazily on first verification and cached; rotating
// the password requires a restart.
type Verifier struct {
	hashFile string

	once    sync.Once
	hash    []byte
	loadErr error
}

// NewVerifier creates a Verifier reading its hash from the given file.
func NewVerifier(hashFile string) *Verifier {
	return &Verifier{hashFile: hashFile}
}

// Verify reports whether the password matches the stored hash. A mismatch is
// not an error; errors mean the hash could not be loaded or is malformed.
func (v *Verifier) Verify(password string) (bool, error) {
	v.once.Do(func() {
		data, err := os.ReadFile(v.hashFile)
		if err != nil {
			v.loadErr = fmt.Errorf("reading password hash file: %w", err)
			return
		}
		v.hash = []byte(strings.TrimSpace(string(data)))
	})
	if v.loadErr != nil {
		return false, v.loadErr
	}

	err := bcrypt.CompareHashAndPassword(v.hash, []byte(password))
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("comparing password hash: %w", err)
	}

	return true, nil
}

// HashPassword generates a bcrypt hash suitable for the hash file.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
