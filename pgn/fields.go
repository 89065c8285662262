// Package pgn implements the SerialisableFactory of spec §4.2: it decodes
// the closed subset of NMEA-2000 PGNs the pipeline understands and
// produces the matching WIBL payload Buffer, applying the §3.3 filter
// rules along the way.
//
// Field extraction here is grounded on the teacher's fieldvalue.go offset
// arithmetic, simplified: every field this package reads is byte-aligned,
// so there is no need for the teacher's generic bit-packed field reader.
package pgn

import "math"

func u8(data []byte, offset int) (uint8, bool) {
	if offset < 0 || offset >= len(data) {
		return 0, false
	}
	return data[offset], true
}

func u16le(data []byte, offset int) (uint16, bool) {
	if offset < 0 || offset+2 > len(data) {
		return 0, false
	}
	return uint16(data[offset]) | uint16(data[offset+1])<<8, true
}

func u32le(data []byte, offset int) (uint32, bool) {
	if offset < 0 || offset+4 > len(data) {
		return 0, false
	}
	return uint32(data[offset]) | uint32(data[offset+1])<<8 |
		uint32(data[offset+2])<<16 | uint32(data[offset+3])<<24, true
}

func i16le(data []byte, offset int) (int16, bool) {
	v, ok := u16le(data, offset)
	return int16(v), ok
}

func i32le(data []byte, offset int) (int32, bool) {
	v, ok := u32le(data, offset)
	return int32(v), ok
}

func i64le(data []byte, offset int) (int64, bool) {
	if offset < 0 || offset+8 > len(data) {
		return 0, false
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(data[offset+i]) << (8 * i)
	}
	return int64(v), true
}

// scaledU16 reads an unsigned 16-bit field and scales it by resolution,
// reporting math.NaN for the "no data" sentinel 0xFFFF.
func scaledU16(data []byte, offset int, resolution float64) float64 {
	v, ok := u16le(data, offset)
	if !ok || v == 0xFFFF {
		return math.NaN()
	}
	return float64(v) * resolution
}

// scaledI16 is scaledU16's signed counterpart; sentinel is 0x7FFF.
func scaledI16(data []byte, offset int, resolution float64) float64 {
	v, ok := i16le(data, offset)
	if !ok || uint16(v) == 0x7FFF {
		return math.NaN()
	}
	return float64(v) * resolution
}

// scaledU32 is scaledU16 for 32-bit fields; sentinel is 0xFFFFFFFF.
func scaledU32(data []byte, offset int, resolution float64) float64 {
	v, ok := u32le(data, offset)
	if !ok || v == 0xFFFFFFFF {
		return math.NaN()
	}
	return float64(v) * resolution
}

// scaledI32 is scaledU32's signed counterpart; sentinel is 0x7FFFFFFF.
func scaledI32(data []byte, offset int, resolution float64) float64 {
	v, ok := i32le(data, offset)
	if !ok || uint32(v) == 0x7FFFFFFF {
		return math.NaN()
	}
	return float64(v) * resolution
}

// scaledI64 scales a signed 64-bit field (used by GNSS lat/lon/altitude).
func scaledI64(data []byte, offset int, resolution float64) float64 {
	v, ok := i64le(data, offset)
	if !ok {
		return math.NaN()
	}
	return float64(v) * resolution
}
