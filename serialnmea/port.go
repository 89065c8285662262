// Package serialnmea reads NMEA-0183 sentences off a live UART (spec §4.3,
// §6.6, C7): it opens a serial port via github.com/tarm/serial and feeds
// every byte read into one assembler.Assembler, satisfying the "one
// assembler per hardware UART" requirement.
package serialnmea

import (
	"io"
	"time"

	"github.com/tarm/serial"
	"github.com/wibl-org/wibl-go"
	"github.com/wibl-org/wibl-go/assembler"
)

// readTimeout bounds each individual port read (tarm/serial requires at
// least 100ms; mirrors the teacher's actisense CLI wiring).
const readTimeout = 100 * time.Millisecond

// Port is a PacketSource over one live serial NMEA-0183 channel.
type Port struct {
	conn      io.ReadCloser
	assembler *assembler.Assembler
	start     time.Time
	buf       [256]byte
	pending   []assembler.Sentence
}

// Open opens the named serial device at baud and returns a Port ready for
// Next(). name identifies the channel in the assembler's log output.
func Open(name, device string, baud int) (*Port, error) {
	conn, err := serial.OpenPort(&serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: readTimeout,
	})
	if err != nil {
		return nil, err
	}
	return &Port{conn: conn, assembler: assembler.New(name)}, nil
}

// NewFromReader builds a Port over an already-open connection; used by
// tests to avoid touching a real serial device.
func NewFromReader(name string, conn io.ReadCloser) *Port {
	return &Port{conn: conn, assembler: assembler.New(name)}
}

// Close closes the underlying serial connection.
func (p *Port) Close() error { return p.conn.Close() }

// IsN2K always reports false: a serial NMEA-0183 channel never produces
// N2kMessage batches.
func (p *Port) IsN2K() bool { return false }

// Next returns the next complete, ring-buffered sentence, reading and
// feeding fresh bytes from the port as needed.
func (p *Port) Next() (wibl.PacketBatch, error) {
	if p.start.IsZero() {
		p.start = time.Now()
	}
	for len(p.pending) == 0 {
		n, err := p.conn.Read(p.buf[:])
		if n == 0 && err != nil {
			return wibl.PacketBatch{}, err
		}
		tick := uint64(time.Since(p.start).Milliseconds())
		for i := 0; i < n; i++ {
			p.assembler.Feed(p.buf[i], tick)
		}
		p.pending = p.assembler.Drain()
	}
	s := p.pending[0]
	p.pending = p.pending[1:]
	return wibl.PacketBatch{Nmea0183: &wibl.Nmea0183Sentence{
		ElapsedMs: uint32(s.Tick),
		Sentence:  s.Data,
	}}, nil
}
