//go:build rp2040

package main

// PIO SPI slave for the peripheral link. The RP2040 SPI blocks only do
// master mode under TinyGo, so the slave side is a small PIO program:
// one byte in, one byte out per eight clocks, mode 0, MSB first.

import (
	"machine"
	"time"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// buildSPISlaveProgram builds the mode-0 slave loop:
//
//	.wrap_target
//	    out pins, 1       ; present next MISO bit from the OSR
//	    wait 1 gpio SCK   ; rising edge
//	    in pins, 1        ; sample MOSI
//	    wait 0 gpio SCK   ; falling edge
//	.wrap
//
// With autopush/autopull at 8 bits the FIFOs carry one byte per word.
func buildSPISlaveProgram(sck machine.Pin) []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		asm.Out(rp2pio.OutDestPins, 1).Encode(),
		asm.Wait(1, rp2pio.WaitSrcGPIO, uint8(sck)).Encode(),
		asm.In(rp2pio.InSrcPins, 1).Encode(),
		asm.Wait(0, rp2pio.WaitSrcGPIO, uint8(sck)).Encode(),
	}
}

const spiSlavePIOOrigin = 0 // load at offset 0 for stable wrap addresses

// SPISlave exchanges one byte per externally clocked transfer.
type SPISlave struct {
	pio *rp2pio.PIO
	sm  rp2pio.StateMachine

	sck  machine.Pin
	mosi machine.Pin
	miso machine.Pin
}

// NewSPISlave claims a PIO state machine and wires the link pins.
func NewSPISlave(sck, mosi, miso machine.Pin) (*SPISlave, error) {
	s := &SPISlave{
		pio:  rp2pio.PIO0,
		sck:  sck,
		mosi: mosi,
		miso: miso,
	}
	s.sm = s.pio.StateMachine(0)
	s.sm.TryClaim()

	program := buildSPISlaveProgram(sck)
	offset, err := s.pio.AddProgram(program, spiSlavePIOOrigin)
	if err != nil {
		return nil, err
	}

	s.sck.Configure(machine.PinConfig{Mode: s.pio.PinMode()})
	s.mosi.Configure(machine.PinConfig{Mode: s.pio.PinMode()})
	s.miso.Configure(machine.PinConfig{Mode: s.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetInPins(s.mosi)
	cfg.SetOutPins(s.miso, 1)
	// MSB first both directions: shift left, autopush/autopull at 8.
	cfg.SetInShift(false, true, 8)
	cfg.SetOutShift(false, true, 8)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	// The program is clock-driven by SCK; run the state machine at
	// full system speed so edge sampling dominates.
	cfg.SetClkDivIntFrac(1, 0)

	s.sm.Init(offset, cfg)

	s.sm.SetPindirsConsecutive(s.miso, 1, true)
	s.sm.SetPindirsConsecutive(s.sck, 1, false)
	s.sm.SetPindirsConsecutive(s.mosi, 1, false)

	s.sm.SetEnabled(true)

	return s, nil
}

// QueueResponse queues the byte returned on the next transfer. The
// first transfer after boot needs one preloaded byte; afterwards Serve
// keeps the TX FIFO primed.
func (s *SPISlave) QueueResponse(b uint8) {
	for s.sm.IsTxFIFOFull() {
		// Busy wait - the FIFO drains one byte per transfer
	}
	// Left-shifting OSR with an 8-bit threshold consumes the top byte.
	s.sm.TxPut(uint32(b) << 24)
}

// Serve drains inbound command bytes and queues each handler response
// for the transfer that follows, preserving the one-transfer-delayed
// status contract. Run it on its own goroutine; the handler restricts
// itself to interrupt-safe stores.
func (s *SPISlave) Serve(handle func(uint8) uint8) {
	for {
		if s.sm.IsRxFIFOEmpty() {
			time.Sleep(20 * time.Microsecond)
			continue
		}
		b := uint8(s.sm.RxGet())
		s.QueueResponse(handle(b))
	}
}
