// Package core implements the control logic of the smart fan: the
// command protocol, the power/ready/running lifecycle, the incremental
// servo positioner and the fan speed cycling. It is hardware agnostic;
// platform code registers drivers through the *_hal.go interfaces.
package core

import (
	"smartfan/protocol"
)

// ControllerState is the state block shared between the peripheral-link
// interrupt context and the polled main loop. Every field written from
// the interrupt handler is a single-byte store, so no locking is needed
// beyond the masked 16-bit servo target write (see servo.go).
type ControllerState struct {
	motorRunning   bool
	speedLevel     uint8
	userReady      bool
	homingRequired bool

	// status is recomputed once per main-loop tick and is the byte
	// queued for the next link transfer. The interrupt handler only
	// ever reads it.
	status protocol.Status
}

// MotorRunning reports whether the fan is active.
func (s *ControllerState) MotorRunning() bool { return s.motorRunning }

// SpeedLevel returns the current speed level (0, 1 or 2).
func (s *ControllerState) SpeedLevel() uint8 { return s.speedLevel }

// UserReady reports whether the system is armed.
func (s *ControllerState) UserReady() bool { return s.userReady }

// HomingRequired reports whether the servo still has to return to
// center before the system can report READY.
func (s *ControllerState) HomingRequired() bool { return s.homingRequired }

// Status returns the status byte committed by the last main-loop tick.
func (s *ControllerState) Status() protocol.Status { return s.status }
