package cart

import (
	"context"
	"sync"
	"time"

	"github.com/pradeepit93/srienippagam-menu/pkg/models"
)

// Store keeps session carts between requests. Carts expire after a period
// of inactivity and never outlive the session.
type Store interface {
	// Load returns the session cart, or an empty cart if there is none.
	Load(ctx context.Context, sessionID string) (*models.Cart, error)
	// Update loads the cart, applies fn and saves the result atomically
	// with respect to other updates of the same session. Nothing is saved
	// when fn returns an error.
	Update(ctx context.Context, sessionID string, fn func(*models.Cart) error) error
	// Delete drops the session cart.
	Delete(ctx context.Context, sessionID string) error
}

type memoryEntry struct {
	cart      *models.Cart
	expiresAt time.Time
}

// MemoryStore is an in-process Store used when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(sessionID), nil
}

func (s *MemoryStore) Update(ctx context.Context, sessionID string, fn func(*models.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	c := s.get(sessionID)
	if err := fn(c); err != nil {
		return err
	}
	s.entries[sessionID] = memoryEntry{cart: cloneCart(c), expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

// Sweep drops expired carts and reports how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// get must be called with s.mu held.
func (s *MemoryStore) get(sessionID string) *models.Cart {
	e, ok := s.entries[sessionID]
	if !ok || s.now().After(e.expiresAt) {
		delete(s.entries, sessionID)
		return &models.Cart{SessionID: sessionID}
	}
	return cloneCart(e.cart)
}

func cloneCart(c *models.Cart) *models.Cart {
	out := *c
	out.Lines = append([]models.CartLine(nil), c.Lines...)
	return &out
}
