package can

import (
	"context"
	"errors"
	"time"

	"github.com/wibl-org/wibl-go"
)

// Device is a live wibl.PacketSource reading NMEA-2000 messages off a
// SocketCAN interface, reassembling fast-packet PGNs before yielding a
// complete wibl.N2kMessage. It satisfies the same interface the file-based
// ydvr reader does; the pipeline does not distinguish live from recorded
// sources.
type Device struct {
	conn *Connection

	// ifName is the SocketCAN interface name, e.g. "can0".
	ifName string

	assembler *FastPacketAssembler

	// receiveDataTimeout limits how long consecutive timed-out reads may
	// continue before Next gives up; it is distinct from the small
	// per-syscall read timeout set on every read below.
	receiveDataTimeout time.Duration

	start   time.Time
	timeNow func() time.Time
}

// NewDevice returns a Device bound to SocketCAN interface ifName,
// reassembling the given set of fast-packet PGNs.
func NewDevice(ifName string, fastPacketPGNs []uint32) *Device {
	return &Device{
		ifName:             ifName,
		assembler:          NewFastPacketAssembler(fastPacketPGNs),
		timeNow:            time.Now,
		receiveDataTimeout: 5 * time.Second,
	}
}

// Initialize opens the underlying CAN socket. Must be called before Next.
func (d *Device) Initialize() error {
	conn, err := NewConnection(d.ifName)
	if err != nil {
		return err
	}
	d.conn = conn
	d.start = d.timeNow()
	return nil
}

// Close releases the underlying socket.
func (d *Device) Close() error {
	if d.conn == nil {
		return nil
	}
	return d.conn.Close()
}

// IsN2K always reports true: a can.Device only ever produces N2kMessage batches.
func (d *Device) IsN2K() bool { return true }

// Next blocks until a complete N2kMessage has been reassembled, the
// default background context is cancelled (it never will be), or the bus
// has been silent for longer than receiveDataTimeout.
func (d *Device) Next() (wibl.PacketBatch, error) {
	return d.NextWithContext(context.Background())
}

// NextWithContext is Next with explicit cancellation, mirroring the
// teacher's context-aware ReadRawMessage read loop.
func (d *Device) NextWithContext(ctx context.Context) (wibl.PacketBatch, error) {
	lastActivity := d.timeNow()
	for {
		select {
		case <-ctx.Done():
			return wibl.PacketBatch{}, ctx.Err()
		default:
		}

		if err := d.conn.SetReadTimeout(50 * time.Millisecond); err != nil {
			return wibl.PacketBatch{}, err
		}
		frame, err := d.conn.ReadRawFrame()
		now := d.timeNow()
		if err != nil {
			if errors.Is(err, errReadTimeout) {
				if now.Sub(lastActivity) > d.receiveDataTimeout {
					return wibl.PacketBatch{}, err
				}
				continue
			}
			return wibl.PacketBatch{}, err
		}
		lastActivity = now

		msg, complete := d.assembler.Assemble(frame)
		if !complete {
			continue
		}
		msg.ElapsedMs = uint32(now.Sub(d.start).Milliseconds())
		return wibl.PacketBatch{N2k: &msg}, nil
	}
}
