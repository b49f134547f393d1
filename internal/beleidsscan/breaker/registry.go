// Package breaker keeps the named circuit breakers guarding outbound HTTP
// integrations and exposes their state for the admin endpoints.
package breaker

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

var ErrUnknownBreaker = errors.New("unknown circuit breaker")

// HTTPBreaker guards one upstream; the generic parameter pins responses.
type HTTPBreaker = gobreaker.CircuitBreaker[*http.Response]

type Registry struct {
	mu       sync.RWMutex
	breakers map[string]*HTTPBreaker
}

func NewRegistry() *Registry {
	return &Registry{breakers: map[string]*HTTPBreaker{}}
}

func settings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
}

// Get returns the breaker for an upstream, creating it on first use.
func (r *Registry) Get(name string) *HTTPBreaker {
	r.mu.RLock()
	cb, ok := r.breakers[name]
	r.mu.RUnlock()
	if ok {
		return cb
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cb, ok := r.breakers[name]; ok {
		return cb
	}
	cb = gobreaker.NewCircuitBreaker[*http.Response](settings(name))
	r.breakers[name] = cb
	return cb
}

// Reset replaces a tripped breaker with a fresh closed one. Clients resolve
// their breaker through the registry on every call, so the swap takes effect
// immediately.
func (r *Registry) Reset(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.breakers[name]; !ok {
		return ErrUnknownBreaker
	}
	r.breakers[name] = gobreaker.NewCircuitBreaker[*http.Response](settings(name))
	return nil
}

// Status is one row of the admin breaker listing.
type Status struct {
	Name                 string `json:"name"`
	State                string `json:"state"`
	Requests             uint32 `json:"requests"`
	TotalSuccesses       uint32 `json:"total_successes"`
	TotalFailures        uint32 `json:"total_failures"`
	ConsecutiveFailures  uint32 `json:"consecutive_failures"`
	ConsecutiveSuccesses uint32 `json:"consecutive_successes"`
}

func (r *Registry) Snapshot() []Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Status, 0, len(r.breakers))
	for name, cb := range r.breakers {
		counts := cb.Counts()
		out = append(out, Status{
			Name:                 name,
			State:                cb.State().String(),
			Requests:             counts.Requests,
			TotalSuccesses:       counts.TotalSuccesses,
			TotalFailures:        counts.TotalFailures,
			ConsecutiveFailures:  counts.ConsecutiveFailures,
			ConsecutiveSuccesses: counts.ConsecutiveSuccesses,
		})
	}
	return out
}
