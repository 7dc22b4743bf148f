// Package host implements the controller side of the peripheral link:
// a thin command client and the tracking supervisor that steers the
// fan from detection input.
package host

import (
	"fmt"

	"smartfan/protocol"
)

// Exchanger performs one full-duplex link transfer: one command byte
// out, one previously queued status byte back.
type Exchanger interface {
	Exchange(cmd byte) (byte, error)
}

// Client issues protocol commands to the device. The link is
// pipelined, so every reply carries the status from before the command
// it answers; callers that need the post-command status poll again.
type Client struct {
	x Exchanger
}

// NewClient creates a client on top of a link transport.
func NewClient(x Exchanger) *Client {
	return &Client{x: x}
}

func (c *Client) exchange(cmd byte) (protocol.Status, error) {
	resp, err := c.x.Exchange(cmd)
	if err != nil {
		return 0, fmt.Errorf("link transfer failed: %w", err)
	}
	return protocol.Status(resp), nil
}

// Poll fetches the device status without side effects.
func (c *Client) Poll() (protocol.Status, error) {
	return c.exchange(protocol.CmdPoll)
}

// Start starts the fan. The device honors it only while READY.
func (c *Client) Start() (protocol.Status, error) {
	return c.exchange(protocol.CmdStart)
}

// Reset stops the fan, disarms the device and rehomes the servo.
func (c *Client) Reset() (protocol.Status, error) {
	return c.exchange(protocol.CmdReset)
}

// SetAngle steers the servo to deg, clamped onto the ANGLE command
// range. The device ignores it unless armed and running.
func (c *Client) SetAngle(deg int) (protocol.Status, error) {
	return c.exchange(protocol.ClampAngle(deg))
}
