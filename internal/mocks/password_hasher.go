package mocks

import (
	"errors"
	"strings"
	"sync"
)

// hashPrefix marks values produced by MockPasswordHasher.
const hashPrefix = "mockhash$"

// MockPasswordHasher implements auth.PasswordHasher without bcrypt's cost.
// Hashes are hashPrefix + reversed plaintext, so the plaintext never appears verbatim.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	mu           sync.Mutex
	HashCalls    int
	CompareCalls int
}

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.mu.Lock()
	m.HashCalls++
	m.mu.Unlock()

	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return hashPrefix + reverse(password), nil
}

// Compare implements auth.PasswordHasher.
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.mu.Lock()
	m.CompareCalls++
	m.mu.Unlock()

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if !strings.HasPrefix(hashedPassword, hashPrefix) || hashedPassword != hashPrefix+reverse(password) {
		return errors.New("password mismatch")
	}
	return nil
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
