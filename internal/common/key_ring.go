package common

import "sync"

// KeyRing hands out upstream API credentials in round-robin order. It does
// no quota accounting: rotating simply spreads load across configured keys,
// and quota exhaustion surfaces as an upstream error at fetch time.
//
// The ring is constructor-injected into the fetch orchestrator so the
// rotation index is owned state, not package-level state.
type KeyRing struct {
	mu   sync.Mutex
	keys []string
	idx  int
}

// NewKeyRing creates a ring over the configured credentials. An empty or
// nil list is valid; Next then always reports no key available.
func NewKeyRing(keys []string) *KeyRing {
	ring := &KeyRing{keys: make([]string, 0, len(keys))}
	for _, k := range keys {
		if k != "" {
			ring.keys = append(ring.keys, k)
		}
	}
	return ring
}

// Next returns the next credential and true, or ("", false) when the ring
// is empty. Successive calls wrap modulo the ring size.
func (r *KeyRing) Next() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.keys) == 0 {
		return "", false
	}

	key := r.keys[r.idx%len(r.keys)]
	r.idx++
	return key, true
}

// Size returns the number of configured credentials.
func (r *KeyRing) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}

// Reset rewinds the rotation index to the start of the ring.
func (r *KeyRing) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idx = 0
}
