// Package ydvr reads the YDVR DAT binary log format (spec §4.2, §6.2) and
// exposes it as a wibl.PacketSource of N2kMessage batches. Unlike the live
// `can` package, each YDVR record already carries its own payload length (or
// a length implied by its PGN), so there is no fast-packet reassembly here.
package ydvr

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/wibl-org/wibl-go"
)

// isoRequestPGN is PGN 59904 (ISO Request), always 3 bytes of payload.
const isoRequestPGN = 59904

// controlSentinel marks a YDVR control record: an 8-byte payload with no
// CAN id of its own.
const controlSentinel = 0xFFFFFFFF

// Reader pulls N2kMessage batches from a YDVR DAT file (spec §6.2). The
// per-record 16-bit timestamp only covers a 65.536s span before wrapping;
// Reader tracks the wraps itself so ElapsedMs is monotonic for the whole
// file.
type Reader struct {
	src     *bufio.Reader
	lastRaw uint16
	epoch   uint32
	started bool
}

// NewReader wraps r as a YDVR DAT file source.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: bufio.NewReader(r)}
}

// IsN2K always reports true: every record a YDVR file produces is an
// N2kMessage batch.
func (rd *Reader) IsN2K() bool { return true }

// Next decodes and returns the next record. A short read at a record
// boundary is reported as io.EOF; a short read in the middle of a record
// (a truncated file) is also folded into io.EOF, since there is nothing
// useful left to recover. An oversized declared payload length yields
// wibl.ErrDataTooLarge.
func (rd *Reader) Next() (wibl.PacketBatch, error) {
	var tsBuf [2]byte
	if _, err := io.ReadFull(rd.src, tsBuf[:]); err != nil {
		return wibl.PacketBatch{}, io.EOF
	}
	raw := binary.LittleEndian.Uint16(tsBuf[:])
	elapsed := rd.unwrap(raw)

	var idBuf [4]byte
	if _, err := io.ReadFull(rd.src, idBuf[:]); err != nil {
		return wibl.PacketBatch{}, io.EOF
	}
	rawID := binary.LittleEndian.Uint32(idBuf[:])

	var msg wibl.N2kMessage
	msg.ElapsedMs = elapsed

	if rawID == controlSentinel {
		payload, err := rd.readPayload(8)
		if err != nil {
			return wibl.PacketBatch{}, err
		}
		msg.PGN = controlSentinel
		msg.Data = payload
		return wibl.PacketBatch{N2k: &msg}, nil
	}

	header := wibl.ParseCANID(rawID)
	msg.PGN = header.PGN
	msg.Priority = header.Priority
	msg.Source = header.Source
	msg.Destination = header.Destination

	var payloadLen int
	switch {
	case header.PGN == isoRequestPGN:
		payloadLen = 3
	case IsMultiPacket(header.PGN):
		var lenBuf [2]byte
		if _, err := io.ReadFull(rd.src, lenBuf[:]); err != nil {
			return wibl.PacketBatch{}, io.EOF
		}
		payloadLen = int(lenBuf[1])
	default:
		payloadLen = 8
	}

	payload, err := rd.readPayload(payloadLen)
	if err != nil {
		return wibl.PacketBatch{}, err
	}
	msg.Data = payload
	return wibl.PacketBatch{N2k: &msg}, nil
}

func (rd *Reader) readPayload(n int) ([]byte, error) {
	if n > wibl.MaxN2kDataLen {
		return nil, wibl.ErrDataTooLarge
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(rd.src, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	return buf, nil
}

// unwrap extends the file's 16-bit wrapping millisecond timestamp into a
// monotonically increasing elapsed-time counter.
func (rd *Reader) unwrap(raw uint16) uint32 {
	if !rd.started {
		rd.started = true
		rd.lastRaw = raw
		return uint32(raw)
	}
	if raw < rd.lastRaw {
		rd.epoch++
	}
	rd.lastRaw = raw
	return rd.epoch*65536 + uint32(raw)
}
