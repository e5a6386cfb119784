package cache

import (
	"sync"
	"time"

	"lms-portal/internal/auth"
)

// entry stores a cached identity and its absolute expiration timestamp.
type entry struct {
	identity  auth.Identity
	expiresAt time.Time
}

// IdentityCache keeps recently resolved session identities so every request
// does not hit the users table. Entries expire after a fixed TTL; there is no
// background janitor, expired entries are dropped lazily or via Purge.
type IdentityCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[uint]entry
}

// NewIdentityCache returns a cache holding entries for ttl. A ttl <= 0
// disables caching: Put is a no-op and Get always misses.
func NewIdentityCache(ttl time.Duration) *IdentityCache {
	return &IdentityCache{
		ttl:   ttl,
		items: make(map[uint]entry),
	}
}

// now is a small indirection to allow test stubbing.
var now = time.Now

func (c *IdentityCache) Get(userID uint) (auth.Identity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[userID]
	if !ok || now().After(e.expiresAt) {
		return auth.Identity{}, false
	}
	return e.identity, true
}

func (c *IdentityCache) Put(id auth.Identity) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[id.UserID] = entry{identity: id, expiresAt: now().Add(c.ttl)}
}

// Evict drops a user's entry, e.g. on logout.
func (c *IdentityCache) Evict(userID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, userID)
}

// Len counts only non-expired entries.
func (c *IdentityCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ts := now()
	count := 0
	for _, e := range c.items {
		if !ts.After(e.expiresAt) {
			count++
		}
	}
	return count
}

// Purge removes expired entries.
func (c *IdentityCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	ts := now()
	for k, e := range c.items {
		if ts.After(e.expiresAt) {
			delete(c.items, k)
		}
	}
}
