// Power lifecycle: HOMING_OFF -> READY -> RUNNING. Status is derived
// from the other flags once per main-loop tick, never stored
// independently.

package core

import "smartfan/protocol"

// startFan transitions to RUNNING. Triggered only by the START command
// while the committed status is READY, so it may run in interrupt
// context; every store here is a single byte or delegated to the HAL.
func (c *Controller) startFan() {
	c.state.motorRunning = true
	c.state.speedLevel = 0
	_ = MustFanPWM().SetDuty(fanDutyTable[0])
	_ = MustFanPWM().Enable()
	c.updateIndicators()
	DebugPrintln("fan start")
}

// stopFan disables the fan PWM, forces the line inactive and resets
// the speed level. Runs from both contexts (RESET command, toggle
// button).
func (c *Controller) stopFan() {
	c.state.motorRunning = false
	_ = MustFanPWM().Disable()
	c.state.speedLevel = 0
	c.updateIndicators()
	DebugPrintln("fan stop")
}

// handleTogglePress processes a debounced press of the toggle button.
// Arming starts a homing move to center; disarming stops the fan if it
// was running and also rehomes.
func (c *Controller) handleTogglePress() {
	if c.state.userReady {
		c.state.userReady = false
		if c.state.motorRunning {
			c.stopFan()
		}
		c.state.homingRequired = true
		DebugPrintln("toggle off")
		return
	}

	c.state.userReady = true
	c.servo.SetTarget(ServoCenter)
	c.state.homingRequired = true
	DebugPrintln("toggle on")
}

// computeStatus derives the status byte with the precedence
// RUNNING > READY > HOMING_OFF. READY additionally requires the servo
// to actually sit at center.
func (c *Controller) computeStatus() protocol.Status {
	if c.state.motorRunning {
		return protocol.StatusRunning
	}
	if c.state.userReady && c.servo.current == ServoCenter {
		return protocol.StatusReady
	}
	return protocol.StatusHomingOff
}
