// Incremental servo positioning. The servo is open loop: position is
// commanded as a pulse width and the positioner walks the output one
// timer count per control tick toward the target, which gives constant
// angular velocity regardless of distance and survives rapid repeated
// angle commands without jumps.

package core

import "smartfan/protocol"

// Servo pulse-width limits in 50 Hz frame timer counts.
const (
	ServoCCWLimit = 140 // 10 degrees
	ServoCWLimit  = 610 // 170 degrees
	ServoCenter   = 375 // 90 degrees
)

// ServoPosition tracks the commanded and actual servo pulse width.
// current is written only by the main loop; target may be written from
// the interrupt handler and is 16 bits wide, so access to it is wrapped
// in a brief interrupt mask.
type ServoPosition struct {
	current uint16
	target  uint16
}

// Current returns the pulse width last driven onto the servo output.
func (p *ServoPosition) Current() uint16 {
	return p.current
}

// Target returns the commanded pulse width.
func (p *ServoPosition) Target() uint16 {
	mask := disableInterrupts()
	t := p.target
	restoreInterrupts(mask)
	return t
}

// SetTarget sets the commanded pulse width. Safe to call from both the
// interrupt handler and the main loop.
func (p *ServoPosition) SetTarget(value uint16) {
	mask := disableInterrupts()
	p.target = value
	restoreInterrupts(mask)
}

// step advances current one unit toward target and drives the servo
// PWM output. It reports whether current has reached target. Main loop
// context only.
func (p *ServoPosition) step() bool {
	target := p.Target()
	switch {
	case p.current < target:
		p.current++
	case p.current > target:
		p.current--
	default:
		return true
	}
	_ = MustServoPWM().SetPulse(p.current)
	return p.current == target
}

// pulseFromAngle maps an ANGLE command byte onto the servo pulse range
// with integer linear interpolation. Division truncates; hosts rely on
// the exact mapping.
func pulseFromAngle(b uint8) uint16 {
	span := uint32(ServoCWLimit - ServoCCWLimit)
	degrees := uint32(protocol.AngleMax - protocol.AngleMin)
	return uint16(uint32(b-protocol.AngleMin)*span/degrees + ServoCCWLimit)
}
