//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts around the 16-bit servo target
// accesses shared with the link handler.
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts reinstates the mask saved by disableInterrupts.
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
