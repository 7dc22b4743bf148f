//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/servo"
)

// servoPulseUnitMicros converts the core's pulse-width unit to
// microseconds: the 50 Hz frame is 5000 timer counts of 20 ms, so one
// count is 4 us. Center (375) lands on the canonical 1500 us.
const servoPulseUnitMicros = 4

// ServoPWM implements the core ServoPWMDriver through the
// tinygo.org/x/drivers servo wrapper, which owns the 50 Hz period
// setup on the slice.
type ServoPWM struct {
	s servo.Servo
}

// NewServoPWM binds a PWM slice and pin to the servo output.
func NewServoPWM(pwm servo.PWM, pin machine.Pin) (*ServoPWM, error) {
	s, err := servo.New(pwm, pin)
	if err != nil {
		return nil, err
	}
	return &ServoPWM{s: s}, nil
}

// SetPulse drives the servo to the given pulse width in timer counts.
func (d *ServoPWM) SetPulse(value uint16) error {
	return d.s.SetMicroseconds(int16(value) * servoPulseUnitMicros)
}
