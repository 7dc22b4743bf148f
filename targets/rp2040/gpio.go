//go:build rp2040

package main

import (
	"machine"

	"smartfan/core"
)

// RP2040GPIODriver implements the core GPIODriver interface on top of
// the machine package.
type RP2040GPIODriver struct{}

// NewRP2040GPIODriver creates a new RP2040 GPIO driver
func NewRP2040GPIODriver() *RP2040GPIODriver {
	return &RP2040GPIODriver{}
}

// ConfigureOutput configures a pin as a digital output
func (d *RP2040GPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	return nil
}

// ConfigureInputPullDown configures a pin as an input with pull-down
func (d *RP2040GPIODriver) ConfigureInputPullDown(pin core.GPIOPin) error {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	return nil
}

// SetPin sets the pin level
func (d *RP2040GPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	machine.Pin(pin).Set(value)
	return nil
}

// ReadPin reads the current pin level
func (d *RP2040GPIODriver) ReadPin(pin core.GPIOPin) bool {
	return machine.Pin(pin).Get()
}
