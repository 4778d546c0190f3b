package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// HashServiceKey returns the bcrypt hash stored in auth.serviceKeyHash.
func HashServiceKey(key string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ServiceKeyVerifier checks service keys against the configured bcrypt hash
// and remembers the digest of the key that matched, so later requests with
// the same key skip bcrypt.
type ServiceKeyVerifier struct {
	hash    string
	compare func(hash, key []byte) error

	mu       sync.RWMutex
	verified []byte
}

func NewServiceKeyVerifier(hash string) *ServiceKeyVerifier {
	return &ServiceKeyVerifier{hash: hash, compare: bcrypt.CompareHashAndPassword}
}

func (v *ServiceKeyVerifier) Check(key string) bool {
	if v == nil || v.hash == "" || key == "" {
		return false
	}
	digest := sha256.Sum256([]byte(key))

	v.mu.RLock()
	known := v.verified
	v.mu.RUnlock()
	if known != nil {
		return subtle.ConstantTimeCompare(known, digest[:]) == 1
	}

	if v.compare([]byte(v.hash), []byte(key)) != nil {
		return false
	}
	v.mu.Lock()
	v.verified = digest[:]
	v.mu.Unlock()
	return true
}
