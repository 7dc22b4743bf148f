//go:build rp2040

package main

import (
	"machine"

	"smartfan/core"
)

// fanPWMPeriodNs is the fan PWM period: 8 kHz.
const fanPWMPeriodNs = 125000

// pwmPeripheral is an interface for PWM hardware peripherals
// This abstracts over TinyGo's unexported *pwmGroup type
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
	Enable(enabled bool)
}

// FanPWM implements the core FanPWMDriver on an RP2040 PWM slice. The
// inverted duty sense lives in the compare values the core writes, not
// here; this driver only scales them onto the slice's counter range.
type FanPWM struct {
	pwm pwmPeripheral
	pin machine.Pin
	ch  uint8
}

// NewFanPWM configures one PWM slice for the fan output. The channel
// starts disabled with the line held low.
func NewFanPWM(pwm pwmPeripheral, pin machine.Pin) (*FanPWM, error) {
	if err := pwm.Configure(machine.PWMConfig{Period: fanPWMPeriodNs}); err != nil {
		return nil, err
	}
	ch, err := pwm.Channel(pin)
	if err != nil {
		return nil, err
	}

	f := &FanPWM{pwm: pwm, pin: pin, ch: ch}
	if err := f.Disable(); err != nil {
		return nil, err
	}
	return f, nil
}

// SetDuty scales a 0..FanPWMTop compare value onto the slice counter.
func (f *FanPWM) SetDuty(value uint16) error {
	scaled := uint32(value) * f.pwm.Top() / core.FanPWMTop
	f.pwm.Set(f.ch, scaled)
	return nil
}

// Enable reconnects the pin to the waveform generator and starts the
// slice counter.
func (f *FanPWM) Enable() error {
	f.pin.Configure(machine.PinConfig{Mode: machine.PinPWM})
	f.pwm.Enable(true)
	return nil
}

// Disable stops the slice counter and forces the line low by
// reclaiming the pin as a plain GPIO output.
func (f *FanPWM) Disable() error {
	f.pwm.Enable(false)
	f.pwm.Set(f.ch, 0)
	f.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	f.pin.Low()
	return nil
}
