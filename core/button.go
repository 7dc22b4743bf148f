package core

// debounceSettleTicks is the switch settle window counted in control
// ticks: 50 ms at the 2 ms tick.
const debounceSettleTicks = 25

// Debouncer converts a raw switch level into a single edge event per
// physical press. Instead of a blocking settle delay it counts down a
// settle window across ticks, so the control loop keeps running while
// a press is being qualified. Exactly one event fires per
// press-and-release cycle.
type Debouncer struct {
	latched bool
	settle  uint8
}

// Update feeds one sampled line level and reports whether a press
// event fires on this tick. Call once per control tick.
func (d *Debouncer) Update(raw bool) bool {
	if d.latched {
		if d.settle > 0 {
			// The countdown runs to completion even if the line drops
			// early; a short press still yields exactly one event.
			d.settle--
			return d.settle == 0
		}
		if !raw {
			d.latched = false
		}
		return false
	}

	if raw {
		d.latched = true
		d.settle = debounceSettleTicks
	}
	return false
}
