package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/cwmarketing/loyalty-go/pkg/logger"
	"github.com/cwmarketing/loyalty-go/pkg/models"
)

// Observer receives cart mutation events. Every mutation invokes the
// matching event callback followed by TotalUpdated with the recomputed
// total for the affected concept. Embed NopObserver to implement only
// the callbacks you care about.
type Observer interface {
	ProductAdded(product models.Product)
	ProductRemoved(product models.Product)
	ProductRemovedEntirely(product models.Product)
	CartWiped(conceptID string)
	TotalUpdated(conceptID string, total float32)
}

// NopObserver implements Observer with no-ops.
type NopObserver struct{}

func (NopObserver) ProductAdded(models.Product)           {}
func (NopObserver) ProductRemoved(models.Product)         {}
func (NopObserver) ProductRemovedEntirely(models.Product) {}
func (NopObserver) CartWiped(string)                      {}
func (NopObserver) TotalUpdated(string, float32)          {}

// Subscription is the handle returned by Subscribe; Cancel removes the
// observer from the registry. Ownership of the observer stays with the
// subscriber.
type Subscription struct {
	id       uint64
	registry *registry
}

// Cancel removes the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	if s == nil || s.registry == nil {
		return
	}
	s.registry.remove(s.id)
}

type subscriber struct {
	id       uint64
	observer Observer
}

// registry holds the primary observer plus secondary subscribers in
// registration order. All methods are safe for concurrent use.
type registry struct {
	mu      sync.RWMutex
	primary Observer
	subs    []subscriber
	nextID  uint64
	logg    *logger.Logger
}

func (r *registry) setPrimary(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.primary = o
}

func (r *registry) subscribe(o Observer) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.subs = append(r.subs, subscriber{id: r.nextID, observer: o})
	return &Subscription{id: r.nextID, registry: r}
}

func (r *registry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, sub := range r.subs {
		if sub.id == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return
		}
	}
}

// snapshot returns the notification order: primary first (if set),
// then subscribers in registration order.
func (r *registry) snapshot() []Observer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	observers := make([]Observer, 0, len(r.subs)+1)
	if r.primary != nil {
		observers = append(observers, r.primary)
	}
	for _, sub := range r.subs {
		observers = append(observers, sub.observer)
	}
	return observers
}

// notify fans the event out to every observer. A panicking observer is
// isolated so the remaining observers still get notified.
func (r *registry) notify(conceptID string, total float32, event func(Observer)) {
	for _, observer := range r.snapshot() {
		r.safeCall(func() { event(observer) })
		obs := observer
		r.safeCall(func() { obs.TotalUpdated(conceptID, total) })
	}
}

func (r *registry) safeCall(fn func()) {
	defer func() {
		if rec := recover(); rec != nil && r.logg != nil {
			r.logg.Error(context.Background(), "cart observer panicked", fmt.Errorf("%v", rec))
		}
	}()
	fn()
}
