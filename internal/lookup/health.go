package lookup

import (
	"sync"
	"time"

	"github.com/LavishGent/wordbook/internal/types"
)

// ServiceDescriptor tracks one registered provider's identity, routing
// priority and health. Descriptors are created at registration and live
// for the life of the manager; disabling a provider keeps its slot and
// statistics.
//
// Each descriptor carries its own lock, independent of the cache locks.
type ServiceDescriptor struct {
	name     string
	provider types.Provider
	priority types.ServicePriority
	order    int

	mu              sync.Mutex
	status          types.ServiceStatus
	failureCount    int
	authLocked      bool
	lastFailureAt   time.Time
	lastSuccessAt   time.Time
	totalCalls      int64
	successfulCalls int64
}

func newServiceDescriptor(name string, provider types.Provider, priority types.ServicePriority, order int, enabled bool) *ServiceDescriptor {
	status := types.StatusActive
	if !enabled {
		status = types.StatusDisabled
	}

	return &ServiceDescriptor{
		name:     name,
		provider: provider,
		priority: priority,
		order:    order,
		status:   status,
	}
}

// Name returns the provider's registered name.
func (d *ServiceDescriptor) Name() string { return d.name }

// Status returns the provider's current health status.
func (d *ServiceDescriptor) Status() types.ServiceStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// routable reports whether the provider should be consulted now. A
// failed provider whose recovery window has elapsed is optimistically
// reset to active so the next call probes it. An auth-locked provider
// never recovers lazily; only enable reopens it.
func (d *ServiceDescriptor) routable(recoveryWindow time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.status {
	case types.StatusActive, types.StatusDegraded:
		return true
	case types.StatusFailed:
		if d.authLocked {
			return false
		}
		if time.Since(d.lastFailureAt) > recoveryWindow {
			d.status = types.StatusActive
			d.failureCount = 0
			return true
		}
		return false
	default:
		return false
	}
}

// recordSuccess marks a successful call. Any success returns the
// provider to active and clears its consecutive failure count.
func (d *ServiceDescriptor) recordSuccess() (from, to types.ServiceStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.totalCalls++
	d.successfulCalls++
	d.lastSuccessAt = time.Now()

	from = d.status
	if d.status == types.StatusDisabled {
		return from, from
	}

	d.failureCount = 0
	d.authLocked = false
	d.status = types.StatusActive
	return from, d.status
}

// recordFailure marks a failed call. Consecutive failures degrade the
// provider at half the threshold and fail it at the full threshold.
// An authentication failure fails it immediately and locks it out of
// the lazy recovery path.
func (d *ServiceDescriptor) recordFailure(threshold int, auth bool) (from, to types.ServiceStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.totalCalls++
	d.failureCount++
	d.lastFailureAt = time.Now()

	from = d.status
	if d.status == types.StatusDisabled {
		return from, from
	}

	switch {
	case auth:
		d.authLocked = true
		d.status = types.StatusFailed
	case d.failureCount >= threshold:
		d.status = types.StatusFailed
	case d.failureCount >= threshold/2:
		d.status = types.StatusDegraded
	}

	return from, d.status
}

// disable removes the provider from routing until enable is called.
func (d *ServiceDescriptor) disable() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = types.StatusDisabled
}

// enable returns the provider to routing with a clean slate: active
// status, zero consecutive failures, auth lock cleared.
func (d *ServiceDescriptor) enable() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = types.StatusActive
	d.failureCount = 0
	d.authLocked = false
}

// snapshot captures the descriptor's state under its lock.
func (d *ServiceDescriptor) snapshot() types.ServiceSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := types.ServiceSnapshot{
		Name:            d.name,
		Priority:        d.priority,
		Status:          d.status,
		FailureCount:    d.failureCount,
		TotalCalls:      d.totalCalls,
		SuccessfulCalls: d.successfulCalls,
		LastFailureAt:   d.lastFailureAt,
		LastSuccessAt:   d.lastSuccessAt,
	}
	if d.totalCalls > 0 {
		snap.SuccessRate = float64(d.successfulCalls) / float64(d.totalCalls)
	}
	return snap
}
