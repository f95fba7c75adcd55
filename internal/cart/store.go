package cart

import (
	"sync"

	"github.com/cwmarketing/loyalty-go/pkg/logger"
	"github.com/cwmarketing/loyalty-go/pkg/models"
)

// Store keeps one in-memory cart per concept. Mutations are serialized
// by a write lock; reads take a shared lock and always observe a fully
// applied state. The line sequence is re-resolved inside the critical
// section on every mutation, never captured beforehand.
//
// A concept only becomes valid through InitConcepts; operations against
// an unknown concept read as empty and mutate as no-ops without
// notification.
type Store struct {
	mu    sync.RWMutex
	lines map[string][]models.Product

	observers registry
}

// NewStore builds an empty cart store. The logger is used only to
// report recovered observer panics and may be nil.
func NewStore(logg *logger.Logger) *Store {
	return &Store{
		lines:     make(map[string][]models.Product),
		observers: registry{logg: logg},
	}
}

// SetPrimaryObserver installs the observer notified ahead of all
// subscribers. Pass nil to clear it.
func (s *Store) SetPrimaryObserver(o Observer) {
	s.observers.setPrimary(o)
}

// Subscribe registers a secondary observer and returns its handle.
func (s *Store) Subscribe(o Observer) *Subscription {
	return s.observers.subscribe(o)
}

// InitConcepts resets the store so exactly the given concepts exist,
// each with an empty cart. Called on every catalog refresh; carts of
// concepts that disappeared are dropped, carts of surviving concepts
// are reset. Fires no events.
func (s *Store) InitConcepts(conceptIDs []string) {
	fresh := make(map[string][]models.Product, len(conceptIDs))
	for _, id := range conceptIDs {
		fresh[id] = []models.Product{}
	}

	s.mu.Lock()
	s.lines = fresh
	s.mu.Unlock()
}

// Lines returns a copy of the concept's cart in insertion order.
// Unknown concepts yield an empty slice.
func (s *Store) Lines(conceptID string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := s.lines[conceptID]
	out := make([]models.Product, len(lines))
	copy(out, lines)
	return out
}

// Total returns the concept's cart total; 0 for unknown or empty carts.
func (s *Store) Total(conceptID string) float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalLocked(conceptID)
}

func (s *Store) totalLocked(conceptID string) float32 {
	var total float32
	for _, line := range s.lines[conceptID] {
		total += LineTotal(line)
	}
	return total
}

// Add merges amount units of the product (with the given modifier
// selection) into the concept's cart: an existing line with the same
// fingerprint grows by amount, otherwise a new line is appended.
// The emitted event carries the product exactly as the caller passed
// it, stamped with this call's amount and fingerprint.
func (s *Store) Add(product models.Product, modifiers []models.Modifier, amount float32) {
	conceptID := product.ConceptID
	fp := Fingerprint(product.ID, modifiers)

	s.mu.Lock()
	lines, ok := s.lines[conceptID]
	if !ok {
		s.mu.Unlock()
		return
	}
	if idx := indexOf(lines, fp); idx >= 0 {
		lines[idx].Quantity += amount
	} else {
		line := product
		line.Quantity = amount
		line.OrderModifiers = modifiers
		line.Fingerprint = fp
		lines = append(lines, line)
	}
	s.lines[conceptID] = lines
	total := s.totalLocked(conceptID)
	s.mu.Unlock()

	event := product
	event.Quantity = amount
	event.OrderModifiers = modifiers
	event.Fingerprint = fp
	s.observers.notify(conceptID, total, func(o Observer) { o.ProductAdded(event) })
}

// Remove decrements the matching line by amount, deleting it outright
// when the remaining quantity would drop to zero or below. The
// fingerprint stamped by Add is preferred; it is recomputed from the
// given modifiers when absent.
func (s *Store) Remove(product models.Product, modifiers []models.Modifier, amount float32) {
	conceptID := product.ConceptID
	fp := product.Fingerprint
	if fp == "" {
		fp = Fingerprint(product.ID, modifiers)
	}

	s.mu.Lock()
	lines, ok := s.lines[conceptID]
	if !ok {
		s.mu.Unlock()
		return
	}
	if idx := indexOf(lines, fp); idx >= 0 {
		if lines[idx].Quantity > amount {
			lines[idx].Quantity -= amount
		} else {
			lines = append(lines[:idx], lines[idx+1:]...)
		}
	}
	s.lines[conceptID] = lines
	total := s.totalLocked(conceptID)
	s.mu.Unlock()

	event := product
	event.Fingerprint = fp
	s.observers.notify(conceptID, total, func(o Observer) { o.ProductRemoved(event) })
}

// RemoveEntire deletes the matching line regardless of quantity.
func (s *Store) RemoveEntire(product models.Product) {
	conceptID := product.ConceptID
	fp := product.Fingerprint
	if fp == "" {
		fp = Fingerprint(product.ID, product.OrderModifiers)
	}

	s.mu.Lock()
	lines, ok := s.lines[conceptID]
	if !ok {
		s.mu.Unlock()
		return
	}
	if idx := indexOf(lines, fp); idx >= 0 {
		lines = append(lines[:idx], lines[idx+1:]...)
	}
	s.lines[conceptID] = lines
	total := s.totalLocked(conceptID)
	s.mu.Unlock()

	event := product
	event.Fingerprint = fp
	s.observers.notify(conceptID, total, func(o Observer) { o.ProductRemovedEntirely(event) })
}

// Wipe empties a single concept's cart, leaving every other concept
// untouched.
func (s *Store) Wipe(conceptID string) {
	s.mu.Lock()
	_, ok := s.lines[conceptID]
	if !ok {
		s.mu.Unlock()
		return
	}
	s.lines[conceptID] = []models.Product{}
	s.mu.Unlock()

	s.observers.notify(conceptID, 0, func(o Observer) { o.CartWiped(conceptID) })
}

func indexOf(lines []models.Product, fingerprint string) int {
	for i, line := range lines {
		if line.Fingerprint == fingerprint {
			return i
		}
	}
	return -1
}
