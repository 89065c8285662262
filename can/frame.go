// Package can implements a live SocketCAN PacketSource: a raw-frame reader
// over a Linux CAN interface plus the fast-packet reassembler needed to
// turn multi-frame NMEA-2000 PGNs into a single wibl.N2kMessage. File-based
// ingestion (the ydvr package) never needs this reassembly because YDVR
// logs already carry an explicit payload length; this package is where the
// fast-packet logic actually gets exercised.
package can

import (
	"time"

	"github.com/wibl-org/wibl-go"
)

// RawFrame is one 0-8 byte CAN data frame as read off the wire, before any
// fast-packet reassembly.
type RawFrame struct {
	Time   time.Time
	Header wibl.CanBusHeader
	Length uint8
	Data   [8]byte
}
