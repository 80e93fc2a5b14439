package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"fernwear/internal/model"
)

// Header is the request header carrying a client-chosen deduplication key.
const Header = "Idempotency-Key"

// Key returns the client-supplied idempotency key, or "" when absent.
func Key(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(Header))
}

// Fingerprint derives a deduplication key from the user and cart contents.
// Used when the client does not send an Idempotency-Key: a double-submitted
// identical cart hashes to the same key.
func Fingerprint(userID string, req *model.CheckoutRequest) string {
	lines := make([]string, 0, len(req.Items)+2)
	lines = append(lines, userID, req.CustomerEmail)
	for _, item := range req.Items {
		lines = append(lines, fmt.Sprintf("%s|%s|%d|%d", item.ProductID, item.Size, item.Price, item.Quantity))
	}
	sort.Strings(lines[2:])

	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

// Cache is an in-memory TTL map of idempotency key to checkout session id.
// State is per-process: it suppresses double-clicks and retries against a
// single API instance, not cross-instance replays.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	sessionID string
	expiresAt time.Time
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the session id recorded for key, if present and unexpired.
func (c *Cache) Get(key string) (string, bool) {
	if key == "" {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return e.sessionID, true
}

// Put records the session id for key and sweeps expired entries.
func (c *Cache) Put(key, sessionID string) {
	if key == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}

	c.entries[key] = entry{
		sessionID: sessionID,
		expiresAt: now.Add(c.ttl),
	}
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
