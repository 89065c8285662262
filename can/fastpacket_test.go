package can

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wibl-org/wibl-go"
)

// Example fast-packet PGN 130323 (Meteorological Station Data), 30 bytes
// spread over 5 frames:
//
//	00:05:10.032 R 19FD1323 60 1E F0 30 4B 08 AC 02
//	00:05:10.038 R 19FD1323 61 12 8B 01 B3 22 34 38
//	00:05:10.041 R 19FD1323 62 59 0D A4 00 F5 C7 FA
//	00:05:10.041 R 19FD1323 63 FF FF F0 03 95 6F 02
//	00:05:10.046 R 19FD1323 64 01 02 01 FF FF FF FF
func meteoFrames(base time.Time) []RawFrame {
	header := wibl.CanBusHeader{PGN: 130323, Priority: 6, Source: 35, Destination: 255}
	raw := [][8]byte{
		{0x60, 0x1E, 0xF0, 0x30, 0x4B, 0x08, 0xAC, 0x02},
		{0x61, 0x12, 0x8B, 0x01, 0xB3, 0x22, 0x34, 0x38},
		{0x62, 0x59, 0x0D, 0xA4, 0x00, 0xF5, 0xC7, 0xFA},
		{0x63, 0xFF, 0xFF, 0xF0, 0x03, 0x95, 0x6F, 0x02},
		{0x64, 0x01, 0x02, 0x01, 0xFF, 0xFF, 0xFF, 0xFF},
	}
	frames := make([]RawFrame, len(raw))
	for i, d := range raw {
		frames[i] = RawFrame{
			Time:   base.Add(time.Duration(i) * time.Millisecond),
			Header: header,
			Length: 8,
			Data:   d,
		}
	}
	return frames
}

func TestFastPacketAssembler_Assemble_multiFrame(t *testing.T) {
	a := NewFastPacketAssembler([]uint32{130323})
	frames := meteoFrames(time.Unix(1665488842, 0).UTC())

	for i, f := range frames[:len(frames)-1] {
		msg, done := a.Assemble(f)
		assert.False(t, done, "frame %d should not complete the sequence", i)
		assert.Equal(t, wibl.N2kMessage{}, msg)
	}

	msg, done := a.Assemble(frames[len(frames)-1])
	assert.True(t, done)
	assert.Equal(t, uint32(130323), msg.PGN)
	assert.Equal(t, uint8(35), msg.Source)
	assert.Equal(t, uint8(255), msg.Destination)
	assert.Len(t, msg.Data, 30)
	assert.Equal(t, byte(0xF0), msg.Data[0])
	assert.Equal(t, byte(0x30), msg.Data[1])
}

func TestFastPacketAssembler_Assemble_singleFrame(t *testing.T) {
	a := NewFastPacketAssembler([]uint32{130323}) // 126992 is not in the fast-packet set
	frame := RawFrame{
		Header: wibl.CanBusHeader{PGN: 126992, Priority: 3, Source: 1, Destination: 255},
		Length: 8,
		Data:   [8]byte{1, 2, 3, 4, 5, 6, 7, 8},
	}

	msg, done := a.Assemble(frame)
	assert.True(t, done)
	assert.Equal(t, uint32(126992), msg.PGN)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, msg.Data)
}
