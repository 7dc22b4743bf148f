// Package protocol defines the one-byte command/status protocol spoken
// over the synchronous peripheral link between the host and the fan
// controller. Each transfer exchanges exactly one command byte for one
// previously queued status byte, so a response always reflects the
// state resulting from the transfer before it.
package protocol

import "strconv"

// Command bytes (host -> device).
const (
	CmdPoll  = 0   // no-op, only elicits the queued status byte
	CmdReset = 200 // stop the fan, disarm, start homing the servo
	CmdStart = 255 // start the fan, only honored while READY
)

// ANGLE command range, in degrees. Bytes inside this range steer the
// servo; everything outside the recognized values is ignored by the
// device.
const (
	AngleMin = 10
	AngleMax = 170
)

// Status is the device status byte returned on the transfer following
// the command it reflects.
type Status uint8

// Status values.
const (
	StatusHomingOff Status = 0   // stopped or homing, not ready
	StatusReady     Status = 111 // fan off, servo centered, armed
	StatusRunning   Status = 222 // fan active
)

func (s Status) String() string {
	switch s {
	case StatusHomingOff:
		return "HOMING_OFF"
	case StatusReady:
		return "READY"
	case StatusRunning:
		return "RUNNING"
	}
	return "UNKNOWN(" + strconv.Itoa(int(s)) + ")"
}

// Valid reports whether s is one of the three defined status values.
func (s Status) Valid() bool {
	return s == StatusHomingOff || s == StatusReady || s == StatusRunning
}

// IsAngle reports whether b is an ANGLE command byte.
func IsAngle(b uint8) bool {
	return b >= AngleMin && b <= AngleMax
}

// ClampAngle clamps a desired angle in degrees onto the ANGLE command
// range and returns it as a command byte.
func ClampAngle(deg int) uint8 {
	if deg < AngleMin {
		return AngleMin
	}
	if deg > AngleMax {
		return AngleMax
	}
	return uint8(deg)
}
