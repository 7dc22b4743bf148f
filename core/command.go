package core

import "smartfan/protocol"

// HandleCommand processes one inbound command byte and returns the
// status byte to queue for the next transfer. The protocol is
// half-duplex pipelined: the returned byte is the status most recently
// committed by the main loop, so the host sees the effect of command n
// no earlier than in the response to transfer n+1.
//
// HandleCommand may preempt the main loop at any point, so shared
// state it touches is either a single byte or written under the
// interrupt mask (the servo target). Malformed or out-of-context
// bytes are no-ops; there is no error channel back to the host.
func (c *Controller) HandleCommand(b uint8) uint8 {
	switch {
	case b == protocol.CmdReset:
		if c.state.motorRunning {
			c.stopFan()
		}
		c.state.userReady = false
		c.state.homingRequired = true

	case protocol.IsAngle(b):
		// Angle commands are honored only while armed and running.
		if c.state.userReady && c.state.motorRunning {
			c.servo.SetTarget(pulseFromAngle(b))
		}

	case b == protocol.CmdStart:
		if c.state.status == protocol.StatusReady {
			c.startFan()
		}
	}
	// Everything else, including the CmdPoll byte, only elicits the
	// queued status.

	return uint8(c.state.status)
}
