package ydvr

// multiPacketPGNs is the closed list of PGNs the YDVR logger transmits as
// fast-packet (multi-frame, length-prefixed) messages rather than plain
// 8-byte single-frame messages (spec §4.2, §6.2). Any PGN not in this set
// (other than the ISO request 59904 and the 0xFFFFFFFF control sentinel,
// both handled separately) is assumed to carry exactly 8 bytes of payload.
var multiPacketPGNs = map[uint32]struct{}{
	126208: {}, 126464: {}, 126996: {}, 126998: {},
	127233: {}, 127237: {}, 127489: {}, 127496: {}, 127497: {}, 127498: {},
	127503: {}, 127504: {},
	128275: {}, 128520: {},
	129029: {},
	129038: {}, 129039: {}, 129040: {}, 129041: {}, 129044: {}, 129045: {},
	129284: {}, 129285: {},
	129540: {}, 129541: {}, 129542: {}, 129549: {}, 129551: {}, 129556: {},
	129792: {}, 129793: {}, 129794: {}, 129795: {}, 129796: {}, 129797: {},
	129798: {}, 129799: {}, 129800: {}, 129801: {}, 129802: {}, 129803: {},
	129804: {}, 129805: {}, 129806: {}, 129807: {}, 129808: {}, 129809: {},
	129810: {},
	130060: {}, 130061: {}, 130064: {}, 130065: {}, 130066: {}, 130067: {},
	130068: {}, 130069: {}, 130070: {}, 130071: {}, 130072: {}, 130073: {},
	130074: {},
	130320: {}, 130323: {}, 130324: {}, 130330: {},
	130560: {}, 130561: {}, 130562: {}, 130563: {}, 130564: {}, 130565: {},
	130566: {}, 130567: {}, 130569: {}, 130570: {}, 130571: {}, 130572: {},
	130573: {}, 130574: {}, 130577: {}, 130578: {}, 130580: {}, 130581: {},
	130582: {}, 130583: {}, 130584: {}, 130586: {}, 130590: {},
	130820: {}, 130821: {}, 130822: {}, 130824: {}, 130826: {},
}

// IsMultiPacket reports whether pgn is in the multi-packet set.
func IsMultiPacket(pgn uint32) bool {
	_, ok := multiPacketPGNs[pgn]
	return ok
}
