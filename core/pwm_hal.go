package core

// FanPWMDriver is the abstract interface for the fan's variable-speed
// PWM channel. The duty control on this hardware is inverted: a larger
// compare value means a smaller active fraction and less fan power.
type FanPWMDriver interface {
	// SetDuty sets the compare value, 0..FanPWMTop.
	SetDuty(value uint16) error

	// Enable connects the waveform generator to the output pin and
	// starts the PWM clock.
	Enable() error

	// Disable stops the PWM clock, disconnects the waveform generator
	// and forces the output line inactive.
	Disable() error
}

// ServoPWMDriver is the abstract interface for the servo's 50 Hz PWM
// channel. Pulse values are in the unit system of the servo limits
// (see servo.go), one unit per timer count.
type ServoPWMDriver interface {
	// SetPulse sets the servo pulse width.
	SetPulse(value uint16) error
}

// Global singletons used by core code.
var (
	fanPWMDriver   FanPWMDriver
	servoPWMDriver ServoPWMDriver
)

// SetFanPWMDriver is called by target-specific code to register its driver.
func SetFanPWMDriver(d FanPWMDriver) {
	fanPWMDriver = d
}

// SetServoPWMDriver is called by target-specific code to register its driver.
func SetServoPWMDriver(d ServoPWMDriver) {
	servoPWMDriver = d
}

// MustFanPWM returns the configured driver or panics if missing.
func MustFanPWM() FanPWMDriver {
	if fanPWMDriver == nil {
		panic("fan PWM driver not configured")
	}
	return fanPWMDriver
}

// MustServoPWM returns the configured driver or panics if missing.
func MustServoPWM() ServoPWMDriver {
	if servoPWMDriver == nil {
		panic("servo PWM driver not configured")
	}
	return servoPWMDriver
}
