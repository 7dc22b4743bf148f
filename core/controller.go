package core

import (
	"time"

	"smartfan/protocol"
)

// TickPeriod is the main-loop pace. It is also the servo step period,
// so one pulse-width unit of travel takes one TickPeriod.
const TickPeriod = 2 * time.Millisecond

// Pins assigns GPIO pins to the controller's buttons and indicators.
type Pins struct {
	ToggleButton GPIOPin // arms/disarms the system
	SpeedButton  GPIOPin // cycles fan speed while running

	IndicatorLow    GPIOPin
	IndicatorMedium GPIOPin
	IndicatorHigh   GPIOPin
}

// Controller owns the full control state. HandleCommand is its
// interrupt-context entry point; Tick is the main-loop body, run once
// per TickPeriod by platform code.
type Controller struct {
	pins  Pins
	state ControllerState
	servo ServoPosition

	toggleButton Debouncer
	speedButton  Debouncer
}

// NewController configures the button and indicator pins through the
// registered GPIO driver and centers the servo output. The fan starts
// disabled and the system disarmed, reporting HOMING_OFF.
func NewController(pins Pins) (*Controller, error) {
	gpio := MustGPIO()

	for _, pin := range []GPIOPin{pins.IndicatorLow, pins.IndicatorMedium, pins.IndicatorHigh} {
		if err := gpio.ConfigureOutput(pin); err != nil {
			return nil, err
		}
	}
	for _, pin := range []GPIOPin{pins.ToggleButton, pins.SpeedButton} {
		if err := gpio.ConfigureInputPullDown(pin); err != nil {
			return nil, err
		}
	}

	c := &Controller{pins: pins}
	c.servo.current = ServoCenter
	c.servo.target = ServoCenter
	if err := MustServoPWM().SetPulse(ServoCenter); err != nil {
		return nil, err
	}

	c.stopFan()
	c.state.userReady = false
	c.state.homingRequired = false
	c.state.status = protocol.StatusHomingOff

	return c, nil
}

// State exposes the shared state block, read-only in spirit; it is
// used by tests and target-side debug output.
func (c *Controller) State() *ControllerState {
	return &ControllerState{
		motorRunning:   c.state.motorRunning,
		speedLevel:     c.state.speedLevel,
		userReady:      c.state.userReady,
		homingRequired: c.state.homingRequired,
		status:         c.state.status,
	}
}

// Status returns the status byte committed by the last tick.
func (c *Controller) Status() protocol.Status {
	return c.state.status
}

// ServoCurrent returns the pulse width currently on the servo output.
func (c *Controller) ServoCurrent() uint16 {
	return c.servo.Current()
}

// ServoTarget returns the commanded servo pulse width.
func (c *Controller) ServoTarget() uint16 {
	return c.servo.Target()
}

// Tick runs one main-loop iteration: button polling, one servo step
// and the status recomputation consumed by the next link transfer.
// The interrupt handler may preempt anywhere in here; see state.go for
// the atomicity contract.
func (c *Controller) Tick() {
	gpio := MustGPIO()

	if c.toggleButton.Update(gpio.ReadPin(c.pins.ToggleButton)) {
		c.handleTogglePress()
	}

	if c.state.motorRunning {
		// The speed button is only evaluated while running.
		if c.speedButton.Update(gpio.ReadPin(c.pins.SpeedButton)) {
			c.cycleSpeed()
		}
		c.servo.step()
	} else if c.state.homingRequired || c.state.userReady {
		// While stopped the target is forced to center; arrival clears
		// the homing flag (one shot).
		c.servo.SetTarget(ServoCenter)
		if c.servo.step() {
			c.state.homingRequired = false
		}
	}

	// Single-byte store; the interrupt handler picks this up on the
	// next transfer.
	c.state.status = c.computeStatus()
}
