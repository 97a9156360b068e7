// Package data provides the immutable entity indexes and the atomic snapshot
// container behind every query operation. Readers never take a lock: the
// container holds a single atomic reference to the current snapshot, and a
// reload replaces that reference wholesale for zero-downtime updates.
package data

import (
	"sync/atomic"
	"time"

	"github.com/darwin-mfc/clinical-api/logging"
)

// Container holds the current snapshot with an atomic pointer.
type Container struct {
	current         atomic.Value // *Snapshot
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewContainer creates a container backed by an empty snapshot, so queries
// served before the first load complete see empty collections instead of nil.
func NewContainer() *Container {
	c := &Container{}
	c.current.Store(emptySnapshot())
	c.serverStartTime.Store(time.Time{})
	return c
}

// Snapshot returns the current snapshot. The returned value is immutable and
// remains valid even while a reload swaps in a newer generation.
func (c *Container) Snapshot() *Snapshot {
	if v := c.current.Load(); v != nil {
		if snap, ok := v.(*Snapshot); ok {
			return snap
		}
	}

	logging.Warn("Snapshot is missing or invalid, serving empty data")
	return emptySnapshot()
}

// Swap atomically replaces the current snapshot.
func (c *Container) Swap(snap *Snapshot) {
	c.current.Store(snap)
}

// LastUpdated returns the build time of the current snapshot. The zero time
// means no load has completed yet.
func (c *Container) LastUpdated() time.Time {
	return c.Snapshot().BuiltAt
}

// IsUpdating reports whether a reload is currently in progress.
func (c *Container) IsUpdating() bool {
	return c.updating.Load()
}

// BeginUpdate marks the start of a reload. It returns false when another
// reload already holds the guard.
func (c *Container) BeginUpdate() bool {
	return c.updating.CompareAndSwap(false, true)
}

// EndUpdate releases the reload guard.
func (c *Container) EndUpdate() {
	c.updating.Store(false)
}

// SetServerStartTime records the process start time for uptime reporting.
func (c *Container) SetServerStartTime(t time.Time) {
	c.serverStartTime.Store(t)
}

// ServerStartTime returns the recorded process start time.
func (c *Container) ServerStartTime() time.Time {
	if v := c.serverStartTime.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}
