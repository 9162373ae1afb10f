package system

// DeferredAction is a countdown that can be cancelled by generation.
//
// Every Schedule and Cancel bumps the live generation. A pending timer only
// fires if the generation it captured is still the live one, so a cancelled
// or superseded timer expires silently.
type DeferredAction struct {
	live    uint64
	pending []deferredTimer
}

type deferredTimer struct {
	generation uint64
	remaining  float64
}

// Schedule arms a new timer that fires after delay seconds of Advance calls.
// Any earlier timer is superseded. Returns the new generation.
func (d *DeferredAction) Schedule(delay float64) uint64 {
	d.live++
	d.pending = append(d.pending, deferredTimer{generation: d.live, remaining: delay})
	return d.live
}

// Cancel invalidates every pending timer
func (d *DeferredAction) Cancel() {
	d.live++
}

// Advance moves pending timers forward by dt and reports whether the live
// timer expired during this call. Stale timers are dropped.
func (d *DeferredAction) Advance(dt float64) bool {
	fired := false
	kept := d.pending[:0]
	for _, t := range d.pending {
		if t.generation != d.live {
			continue
		}
		t.remaining -= dt
		if t.remaining <= 0 {
			fired = true
			continue
		}
		kept = append(kept, t)
	}
	d.pending = kept
	return fired
}

// Pending reports whether a live timer is armed
func (d *DeferredAction) Pending() bool {
	for _, t := range d.pending {
		if t.generation == d.live {
			return true
		}
	}
	return false
}

// Generation returns the live generation
func (d *DeferredAction) Generation() uint64 {
	return d.live
}
