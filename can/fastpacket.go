package can

import (
	"sync"
	"time"

	"github.com/wibl-org/wibl-go"
)

// fastPacketMaxFrames is the maximum number of CAN frames a single
// fast-packet message can span (5-bit frame counter, 0-31).
const fastPacketMaxFrames = 32

type fastPacketSequence struct {
	header wibl.CanBusHeader

	lastReceivedFrameTime time.Time
	// sequence distinguishes which logical message a frame belongs to;
	// frames from the same source may arrive out of order, and without the
	// sequence counter it would be impossible to tell which message a given
	// frame continues.
	sequence uint8
	// length is the total assembled data length, carried in byte 1 of the
	// first frame.
	length             uint8
	completeFramesMask uint32
	receivedFramesMask uint32

	data [wibl.MaxN2kDataLen]byte
}

func (m *fastPacketSequence) append(frame RawFrame) bool {
	if frame.Length < 2 {
		return false
	}
	sequence := frame.Data[0] >> 5   // top 3 bits: sequence counter (0-7)
	frameNr := frame.Data[0] & 0b0001_1111 // bottom 5 bits: frame index
	frameMask := uint32(1) << frameNr

	if m.receivedFramesMask&frameMask != 0 {
		return m.completeFramesMask == m.receivedFramesMask
	}
	if m.receivedFramesMask == 0 {
		m.header = frame.Header
		m.sequence = sequence
	}
	m.receivedFramesMask |= frameMask
	m.lastReceivedFrameTime = frame.Time

	if frameNr == 0 {
		// first frame: byte 0 is sequence+index, byte 1 is total length,
		// bytes 2-7 are the first 6 payload bytes.
		m.length = frame.Data[1]

		frameCount := uint8(1)
		if m.length > 6 {
			frameCount += (m.length - 6 + 7) / 7
		}
		m.completeFramesMask = ^(0xFFFFFFFF << frameCount)
		copy(m.data[:6], frame.Data[2:])
	} else {
		// subsequent frames: byte 0 is sequence+index, bytes 1-7 are 7 more
		// payload bytes.
		start := 6 + int(frameNr-1)*7
		end := start + int(frame.Length) - 1
		copy(m.data[start:end], frame.Data[1:frame.Length])
	}

	return m.completeFramesMask == m.receivedFramesMask
}

func (m *fastPacketSequence) reset() {
	*m = fastPacketSequence{data: m.data} // keep the backing array allocation
}

func (m *fastPacketSequence) toMessage() wibl.N2kMessage {
	data := make([]byte, m.length)
	copy(data, m.data[:m.length])
	return wibl.N2kMessage{
		PGN:         m.header.PGN,
		Priority:    m.header.Priority,
		Source:      m.header.Source,
		Destination: m.header.Destination,
		Data:        data,
	}
}

// FastPacketAssembler reassembles multi-frame NMEA-2000 fast-packet PGNs
// into complete N2kMessages, tracking one sequence per (source, PGN,
// sequence-counter) tuple in flight at a time.
type FastPacketAssembler struct {
	pgns       map[uint32]struct{}
	inTransfer []*fastPacketSequence

	now  func() time.Time
	pool *sync.Pool
	lock sync.Mutex
}

// NewFastPacketAssembler returns an assembler that treats any PGN in pgns as
// fast-packet framed; all other PGNs pass through as single-frame messages.
func NewFastPacketAssembler(pgns []uint32) *FastPacketAssembler {
	set := make(map[uint32]struct{}, len(pgns))
	for _, p := range pgns {
		set[p] = struct{}{}
	}
	pool := &sync.Pool{New: func() any { return &fastPacketSequence{} }}
	return &FastPacketAssembler{
		pgns:       set,
		inTransfer: make([]*fastPacketSequence, 0, 10),
		now:        time.Now,
		pool:       pool,
	}
}

// Assemble feeds one raw CAN frame into the reassembler. It returns a
// complete N2kMessage and true once frame completes a sequence (or
// immediately for single-frame PGNs); otherwise it returns (zero, false)
// having buffered the frame internally.
func (a *FastPacketAssembler) Assemble(frame RawFrame) (wibl.N2kMessage, bool) {
	a.lock.Lock()
	defer a.lock.Unlock()

	if _, ok := a.pgns[frame.Header.PGN]; !ok {
		data := make([]byte, frame.Length)
		copy(data, frame.Data[:frame.Length])
		return wibl.N2kMessage{
			PGN:         frame.Header.PGN,
			Priority:    frame.Header.Priority,
			Source:      frame.Header.Source,
			Destination: frame.Header.Destination,
			Data:        data,
		}, true
	}

	threshold := a.now().Add(-750 * time.Millisecond)
	sequence := frame.Data[0] >> 5

	var fp *fastPacketSequence
	idx := -1
	for i, tmp := range a.inTransfer {
		if tmp.header.Source != frame.Header.Source ||
			tmp.header.PGN != frame.Header.PGN ||
			tmp.sequence != sequence {
			continue
		}
		fp, idx = tmp, i
		if fp.lastReceivedFrameTime.Before(threshold) {
			fp.reset()
		}
		break
	}
	if fp == nil {
		fp = a.pool.Get().(*fastPacketSequence)
		fp.reset()
		a.inTransfer = append(a.inTransfer, fp)
		idx = len(a.inTransfer) - 1
	}

	if !fp.append(frame) {
		return wibl.N2kMessage{}, false
	}

	msg := fp.toMessage()
	a.inTransfer[idx] = a.inTransfer[len(a.inTransfer)-1]
	a.inTransfer = a.inTransfer[:len(a.inTransfer)-1]
	a.pool.Put(fp)
	return msg, true
}
