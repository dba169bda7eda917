package stream

import (
	"sync"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/model"
	"go.uber.org/zap"
)

// subscriberBuffer bounds how many undelivered frames a connection may
// accumulate before it is considered dead. A healthy SSE handler drains
// its channel immediately.
const subscriberBuffer = 8

type EmitResult struct {
	Delivered int
	Total     int
}

// Registry maps a normalized order code to the set of live subscriber
// channels for that order. It is process-wide state, constructed once at
// startup and injected into the HTTP layer.
type Registry struct {
	mu     sync.Mutex
	orders map[string]map[chan []byte]struct{}
	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		orders: make(map[string]map[chan []byte]struct{}),
		logger: logger,
	}
}

// Register adds a new subscriber channel for an order and returns it.
// The caller owns draining the channel until Unregister.
func (r *Registry) Register(orderCode string) chan []byte {
	code := model.NormalizeOrderCode(orderCode)
	ch := make(chan []byte, subscriberBuffer)

	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.orders[code]
	if !ok {
		set = make(map[chan []byte]struct{})
		r.orders[code] = set
	}
	set[ch] = struct{}{}

	return ch
}

// Unregister removes a subscriber channel. The entry for the order is
// dropped entirely when its last channel goes away.
func (r *Registry) Unregister(orderCode string, ch chan []byte) {
	code := model.NormalizeOrderCode(orderCode)

	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.orders[code]
	if !ok {
		return
	}

	if _, ok := set[ch]; !ok {
		return
	}

	delete(set, ch)
	close(ch)

	if len(set) == 0 {
		delete(r.orders, code)
	}
}

// Emit broadcasts an event to every subscriber of an order. An absent or
// empty order is not an error: the client may not have connected yet, or
// already navigated away. A subscriber whose buffer is full is evicted so
// that one stuck connection never blocks delivery to its siblings.
func (r *Registry) Emit(orderCode string, event Event) EmitResult {
	code := model.NormalizeOrderCode(orderCode)
	payload := event.Marshal()

	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.orders[code]
	if !ok {
		return EmitResult{}
	}

	result := EmitResult{Total: len(set)}
	for ch := range set {
		select {
		case ch <- payload:
			result.Delivered++
		default:
			delete(set, ch)
			close(ch)
			r.logger.Warn("Dropped stalled stream subscriber",
				zap.String("orderCode", code))
		}
	}

	if len(set) == 0 {
		delete(r.orders, code)
	}

	return result
}

// Snapshot reports per-order connection counts for the debug endpoint.
func (r *Registry) Snapshot() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[string]int, len(r.orders))
	for code, set := range r.orders {
		snapshot[code] = len(set)
	}

	return snapshot
}
