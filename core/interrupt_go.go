//go:build !tinygo

package core

// State stands in for the saved interrupt mask when building for a
// regular Go host, where the tests run single threaded.
type State uintptr

// disableInterrupts is a no-op off-target.
func disableInterrupts() State {
	return 0
}

// restoreInterrupts is a no-op off-target.
func restoreInterrupts(state State) {
}
