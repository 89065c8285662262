// Package teamsurv reads the TeamSurv NMEA-0183 log format (spec §4.2,
// §6.3): plain CRLF-terminated sentences with no embedded timestamps, so
// every sentence this package produces reports ElapsedMs zero.
package teamsurv

import (
	"bufio"
	"io"

	"github.com/wibl-org/wibl-go"
)

// minSentenceLen is the length a line (after CR/LF is trimmed) must exceed
// to be accepted: lines of 11 bytes or fewer are rejected, per spec
// §4.2/§6.3 ("length>11").
const minSentenceLen = 11

// Reader pulls Nmea0183Sentence batches from a TeamSurv-format file.
type Reader struct {
	src *bufio.Reader
}

// NewReader wraps r as a TeamSurv file source.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: bufio.NewReader(r)}
}

// IsN2K always reports false: every record a TeamSurv file produces is an
// Nmea0183Sentence batch.
func (rd *Reader) IsN2K() bool { return false }

// Next scans forward until it finds a line that passes the checksum gate of
// spec §6.3, skipping anything that fails it, and returns it. Returns
// io.EOF once the underlying stream is exhausted.
func (rd *Reader) Next() (wibl.PacketBatch, error) {
	for {
		line, err := rd.src.ReadBytes('\n')
		if len(line) == 0 && err != nil {
			return wibl.PacketBatch{}, io.EOF
		}
		line = trimCRLF(line)
		if accept(line) {
			sentence := make([]byte, len(line))
			copy(sentence, line)
			return wibl.PacketBatch{Nmea0183: &wibl.Nmea0183Sentence{
				ElapsedMs: 0,
				Sentence:  sentence,
			}}, nil
		}
		if err != nil {
			return wibl.PacketBatch{}, io.EOF
		}
	}
}

func trimCRLF(line []byte) []byte {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

// accept implements spec §6.3's acceptance test: length>11, starts with
// '$', the third-from-last byte is '*', and the last two bytes are the
// uppercase hex XOR checksum of everything between '$' and '*'.
func accept(line []byte) bool {
	if len(line) <= minSentenceLen {
		return false
	}
	if line[0] != '$' {
		return false
	}
	if line[len(line)-3] != '*' {
		return false
	}
	want := line[len(line)-2:]
	got := checksumHex(line[1 : len(line)-3])
	return want[0] == got[0] && want[1] == got[1]
}

var hexDigits = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'A', 'B', 'C', 'D', 'E', 'F'}

// checksumHex returns the two-byte uppercase-hex XOR checksum of body.
func checksumHex(body []byte) [2]byte {
	var sum byte
	for _, b := range body {
		sum ^= b
	}
	return [2]byte{hexDigits[sum>>4], hexDigits[sum&0x0F]}
}
