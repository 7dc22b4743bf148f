//go:build rp2040

package main

import (
	"machine"
	"time"

	"smartfan/core"
)

// Pin assignment for the Pico build.
const (
	pinFanPWM   = machine.GP15 // PWM7 channel B
	pinServoPWM = machine.GP22 // PWM3 channel A

	pinToggleButton = machine.GP2
	pinSpeedButton  = machine.GP3

	pinIndicatorLow    = machine.GP10
	pinIndicatorMedium = machine.GP11
	pinIndicatorHigh   = machine.GP12

	// Peripheral link pins (PIO SPI slave, mode 0).
	pinLinkSCK  = machine.GP18
	pinLinkMOSI = machine.GP19
	pinLinkMISO = machine.GP16
)

func main() {
	core.SetDebugWriter(func(s string) { println(s) })

	core.SetGPIODriver(NewRP2040GPIODriver())

	fan, err := NewFanPWM(machine.PWM7, pinFanPWM)
	if err != nil {
		panic(err)
	}
	core.SetFanPWMDriver(fan)

	srv, err := NewServoPWM(machine.PWM3, pinServoPWM)
	if err != nil {
		panic(err)
	}
	core.SetServoPWMDriver(srv)

	ctrl, err := core.NewController(core.Pins{
		ToggleButton:    core.GPIOPin(pinToggleButton),
		SpeedButton:     core.GPIOPin(pinSpeedButton),
		IndicatorLow:    core.GPIOPin(pinIndicatorLow),
		IndicatorMedium: core.GPIOPin(pinIndicatorMedium),
		IndicatorHigh:   core.GPIOPin(pinIndicatorHigh),
	})
	if err != nil {
		panic(err)
	}

	link, err := NewSPISlave(pinLinkSCK, pinLinkMOSI, pinLinkMISO)
	if err != nil {
		panic(err)
	}

	// Preload the answer for the very first transfer; every later
	// response is queued by the link handler itself.
	link.QueueResponse(uint8(ctrl.Status()))
	go link.Serve(ctrl.HandleCommand)

	// Control loop. TickPeriod paces the servo (one pulse-width unit
	// per tick) and the button debounce counting.
	for {
		ctrl.Tick()
		time.Sleep(core.TickPeriod)
	}
}
