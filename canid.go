package wibl

// CanBusHeader is the decoded addressing portion of a 29-bit extended CAN
// identifier carrying an NMEA-2000 message (spec §4.2 CAN-ID decoding).
type CanBusHeader struct {
	PGN         uint32
	Priority    uint8
	Source      uint8
	Destination uint8
}

// Uint32 re-encodes h as a 29-bit CAN identifier. Used by live CAN
// transmission paths (the `can` package); the WIBL pipeline itself only
// ever decodes, never re-encodes, CAN ids.
func (h CanBusHeader) Uint32() uint32 {
	canID := uint32(h.Source) // bits 0-7

	pf := uint8(h.PGN >> 8)
	if pf < 240 {
		canID |= uint32(h.Destination) << 8 // bits 8-15
	}
	canID |= h.PGN << 8
	canID |= uint32(h.Priority&0x7) << 26
	return canID
}

// ParseCANID decodes the PGN/source/destination/priority fields out of a
// 29-bit extended CAN identifier, per spec §4.2:
//
//	PF = (id >> 16) & 0xFF
//	PS = (id >>  8) & 0xFF
//	DP = (id >> 24) & 0x01
//	src = id & 0xFF
//	prio = (id >> 26) & 0x07
//	if PF < 240:  dst = PS;     pgn = (DP<<16) | (PF<<8)
//	else:          dst = 0xFF;   pgn = (DP<<16) | (PF<<8) | PS
func ParseCANID(canID uint32) CanBusHeader {
	result := CanBusHeader{
		Priority: uint8((canID >> 26) & 0x7),
		Source:   uint8(canID),
	}
	ps := uint8(canID >> 8)
	pduFormat := uint8(canID >> 16)
	dataPage := uint8(canID>>24) & 1

	pgn := uint32(dataPage)<<16 | uint32(pduFormat)<<8
	if pduFormat < 240 {
		result.Destination = ps
		result.PGN = pgn
	} else {
		result.Destination = AddressGlobal
		result.PGN = pgn + uint32(ps)
	}
	return result
}

// AddressGlobal is the broadcast/global CAN bus address (0xFF).
const AddressGlobal uint8 = 0xFF
