package engine

import "sync/atomic"

// Impulses is the lock-free hand-off between the input source and the player
// controller. Each slot holds a single value: writers overwrite it and the
// consumer takes and clears it, so bursts between ticks coalesce instead of queueing.
type Impulses struct {
	direction atomic.Int32
	fire      atomic.Bool
}

// SetDirection stores a horizontal impulse. Last writer wins.
// Any positive value is stored as +1 and any negative value as -1.
func (in *Impulses) SetDirection(dir int) {
	switch {
	case dir < 0:
		in.direction.Store(-1)
	case dir > 0:
		in.direction.Store(1)
	default:
		in.direction.Store(0)
	}
}

// Fire marks a shot as pending. Repeated calls before a consumer tick yield one shot.
func (in *Impulses) Fire() {
	in.fire.Store(true)
}

// TakeDirection returns the pending direction and clears the slot.
func (in *Impulses) TakeDirection() int {
	return int(in.direction.Swap(0))
}

// TakeFire returns whether a shot was pending and clears the slot.
func (in *Impulses) TakeFire() bool {
	return in.fire.Swap(false)
}

// Drain discards anything pending.
func (in *Impulses) Drain() {
	in.direction.Store(0)
	in.fire.Store(false)
}
