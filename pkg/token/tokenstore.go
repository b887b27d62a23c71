package token

import (
	"sync"
	"time"
)

// In-memory revocation store for logged-out JWT ids. Entries are dropped
// once the token itself has expired. For multi-instance deployments use
// Redis or the database instead.
var (
	mu      sync.RWMutex
	revoked = map[string]time.Time{} // jti -> token expiry
)

// Revoke marks a token id as logged out until exp passes.
func Revoke(jti string, exp time.Time) {
	if jti == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	revoked[jti] = exp
	for id, e := range revoked {
		if !e.IsZero() && time.Now().After(e) {
			delete(revoked, id)
		}
	}
}

// IsRevoked reports whether a token id has been revoked and the token is
// still within its lifetime.
func IsRevoked(jti string) bool {
	if jti == "" {
		return false
	}
	mu.RLock()
	exp, ok := revoked[jti]
	mu.RUnlock()
	if !ok {
		return false
	}
	if !exp.IsZero() && time.Now().After(exp) {
		mu.Lock()
		delete(revoked, jti)
		mu.Unlock()
		return false
	}
	return true
}
