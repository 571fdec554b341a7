package manager

import (
	"sync"

	"github.com/shardkeep/dshard/gateway"
)

// DispatchHandler receives one fanned-out dispatch, tagged with the shard
// that produced it.
type DispatchHandler func(shardID int, d gateway.Dispatch)

// subscriberRegistry is the RWMutex-protected event-name subscription
// registry spec.md §4.3/§5 requires, grounded on discordgo.Session's
// handlers/handlersMu: a short critical section snapshots the relevant
// handler slice, then the fan-out itself runs outside the lock.
type subscriberRegistry struct {
	mu       sync.RWMutex
	handlers map[string][]DispatchHandler
	all      []DispatchHandler
}

func newSubscriberRegistry() *subscriberRegistry {
	return &subscriberRegistry{handlers: make(map[string][]DispatchHandler)}
}

// Subscribe registers h for eventName, or for every dispatch if eventName
// is empty.
func (r *subscriberRegistry) Subscribe(eventName string, h DispatchHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if eventName == "" {
		r.all = append(r.all, h)
		return
	}
	r.handlers[eventName] = append(r.handlers[eventName], h)
}

// Dispatch fans d out synchronously to every matching subscriber, per
// spec.md §4.3's "fanned out synchronously per subscription".
func (r *subscriberRegistry) Dispatch(shardID int, d gateway.Dispatch) {
	r.mu.RLock()
	named := append([]DispatchHandler(nil), r.handlers[d.Type]...)
	all := append([]DispatchHandler(nil), r.all...)
	r.mu.RUnlock()

	for _, h := range all {
		h(shardID, d)
	}
	for _, h := range named {
		h(shardID, d)
	}
}
