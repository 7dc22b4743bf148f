package host

import (
	"errors"
	"fmt"
	"sync"

	"smartfan/host/serial"
)

// maxReadRetries bounds how many timed-out reads Exchange tolerates
// before giving up on a response byte.
const maxReadRetries = 50

// SerialBridge adapts a byte bridge attached over a serial port to the
// Exchanger interface. The bridge performs one SPI transfer per byte
// it receives and echoes back the byte the device returned, so each
// write is answered by exactly one response byte.
type SerialBridge struct {
	mu   sync.Mutex
	port serial.Port
}

// NewSerialBridge wraps an open serial port.
func NewSerialBridge(port serial.Port) *SerialBridge {
	return &SerialBridge{port: port}
}

// Exchange writes one command byte and reads the one response byte.
// Safe for concurrent use; transfers are serialized.
func (b *SerialBridge) Exchange(cmd byte) (byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.port.Write([]byte{cmd}); err != nil {
		return 0, fmt.Errorf("bridge write: %w", err)
	}

	buf := make([]byte, 1)
	for i := 0; i < maxReadRetries; i++ {
		n, err := b.port.Read(buf)
		if err != nil {
			return 0, fmt.Errorf("bridge read: %w", err)
		}
		if n > 0 {
			return buf[0], nil
		}
		// n == 0 is a read timeout on ports opened with one; retry.
	}
	return 0, errors.New("bridge read timed out")
}
