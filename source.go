package wibl

// N2kMessage is a single NMEA-2000 message pulled from a PacketSource
// (spec §4.2), already reassembled from any CAN fast-packet framing.
type N2kMessage struct {
	PGN         uint32
	Priority    uint8
	Source      uint8
	Destination uint8
	ElapsedMs   uint32
	Data        []byte
}

// MaxN2kDataLen is the largest payload an N2kMessage can carry (spec §4.2:
// the Fast-Packet maximum of 223 bytes).
const MaxN2kDataLen = 223

// Nmea0183Sentence is a single timestamped NMEA-0183 sentence pulled from a
// PacketSource: the bytes from '$' through the checksum, with any trailing
// CR/LF removed.
type Nmea0183Sentence struct {
	ElapsedMs uint32
	Sentence  []byte
}

// PacketBatch is the tagged union spec §9's Design Notes recommend in place
// of the source's two-overload next_n2k/next_nmea0183 contract: a single
// pull operation returning whichever kind this concrete source produces.
// IsN2K remains as the exhaustive discriminator other code branches on.
type PacketBatch struct {
	N2k       *N2kMessage
	Nmea0183  *Nmea0183Sentence
}

// IsN2K reports whether the batch carries an N2kMessage (true) or an
// Nmea0183Sentence (false). Exactly one of the two fields is non-nil.
func (b PacketBatch) IsN2K() bool {
	return b.N2k != nil
}

// PacketSource is the pull interface over a foreign log format or live bus
// (spec §4.2). A concrete source produces exactly one kind of PacketBatch
// for its entire lifetime; Next returns io.EOF once the
// underlying stream is exhausted.
type PacketSource interface {
	// Next pulls the next message. Returns (batch, nil) on success,
	// (zero, io.EOF) on clean end-of-stream, or (zero, err) on a read
	// failure — which is fatal to the current conversion (spec §7).
	Next() (PacketBatch, error)

	// IsN2K reports, independent of any particular Next() result, whether
	// this source produces N2kMessage batches (true) or Nmea0183Sentence
	// batches (false). Callers use this to pick the matching branch of
	// their own processing loop without inspecting a live batch first.
	IsN2K() bool
}
