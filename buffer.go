package wibl

import "encoding/binary"

// Buffer is the Serialiser of spec §3.1: a growable, append-only byte
// buffer with little-endian primitive encoding. A Buffer is built up by one
// producer, handed to a Writer exactly once, and never shared concurrently.
type Buffer struct {
	data []byte
}

// NewBuffer returns an empty Buffer ready for appends.
func NewBuffer() *Buffer {
	return &Buffer{data: make([]byte, 0, 64)}
}

// Len returns the current byte length of the buffer.
func (b *Buffer) Len() uint32 {
	return uint32(len(b.data))
}

// Bytes returns an immutable view of the buffer's contents. Callers must not
// mutate the returned slice.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// AppendU8 appends a single byte.
func (b *Buffer) AppendU8(v uint8) {
	b.data = append(b.data, v)
}

// AppendU16 appends v in little-endian machine order.
func (b *Buffer) AppendU16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// AppendU32 appends v in little-endian machine order.
func (b *Buffer) AppendU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// AppendU64 appends v in little-endian machine order.
func (b *Buffer) AppendU64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// AppendF32 appends v as its IEEE-754 bit pattern, little-endian.
func (b *Buffer) AppendF32(v float32) {
	b.AppendU32(f32bits(v))
}

// AppendF64 appends v as its IEEE-754 bit pattern, little-endian.
func (b *Buffer) AppendF64(v float64) {
	b.AppendU64(f64bits(v))
}

// AppendRaw appends raw bytes (C-strings, pre-encoded sub-buffers, already
// CR/LF-terminated NMEA-0183 sentences) with no terminator and no length
// prefix of its own; any length is the responsibility of the caller, per
// spec §3.1(d).
func (b *Buffer) AppendRaw(p []byte) {
	b.data = append(b.data, p...)
}
