package utils

import (
	"sync"
	"time"
)

// RevocationList remembers logged-out token IDs until the tokens would have
// expired anyway.
type RevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewRevocationList() *RevocationList {
	return &RevocationList{revoked: make(map[string]time.Time), now: time.Now}
}

func (r *RevocationList) Revoke(tokenID string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	r.revoked[tokenID] = expiresAt
}

func (r *RevocationList) IsRevoked(tokenID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.revoked[tokenID]
	if !ok {
		return false
	}
	if !r.now().Before(exp) {
		delete(r.revoked, tokenID)
		return false
	}
	return true
}

func (r *RevocationList) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.revoked)
}

func (r *RevocationList) pruneLocked() {
	now := r.now()
	for id, exp := range r.revoked {
		if !now.Before(exp) {
			delete(r.revoked, id)
		}
	}
}
