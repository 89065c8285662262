package teamsurv_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wibl-org/wibl-go"
	"github.com/wibl-org/wibl-go/teamsurv"
)

func TestReader_acceptsValidChecksum(t *testing.T) {
	// "GPGGA,...." checksum computed over the body between $ and *.
	body := "GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"
	var sum byte
	for _, b := range []byte(body) {
		sum ^= b
	}
	sentence := "$" + body + "*" + hex(sum) + "\r\n"

	rd := teamsurv.NewReader(strings.NewReader(sentence))
	batch, err := rd.Next()
	assert.NoError(t, err)
	assert.False(t, batch.IsN2K())
	assert.Equal(t, uint32(0), batch.Nmea0183.ElapsedMs)
	assert.Equal(t, "$"+body+"*"+hex(sum), string(batch.Nmea0183.Sentence))
}

func TestReader_skipsBadChecksum(t *testing.T) {
	bad := "$GPGGA,bogus*00\r\n"
	body := "GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"
	var sum byte
	for _, b := range []byte(body) {
		sum ^= b
	}
	good := "$" + body + "*" + hex(sum) + "\r\n"

	rd := teamsurv.NewReader(strings.NewReader(bad + good))
	batch, err := rd.Next()
	assert.NoError(t, err)
	assert.Equal(t, "$"+body+"*"+hex(sum), string(batch.Nmea0183.Sentence))
}

func TestReader_validSentenceConvertsToWellFormedNMEAStringFrame(t *testing.T) {
	// S2: a valid sentence and a bad-checksum sentence ⇒ exactly one id-10
	// frame, whose payload is u32 elapsed (0, TeamSurv carries no embedded
	// timestamp) followed by the raw sentence bytes (spec §3.5, §4.2).
	bad := "$GPGGA,bogus*00\r\n"
	body := "GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"
	var sum byte
	for _, b := range []byte(body) {
		sum ^= b
	}
	sentence := "$" + body + "*" + hex(sum)
	good := sentence + "\r\n"

	rd := teamsurv.NewReader(strings.NewReader(bad + good))
	batch, err := rd.Next()
	assert.NoError(t, err)

	var out bytes.Buffer
	w := wibl.NewWriter(&out, wibl.DefaultVersionInfo, wibl.Metadata{Name: "ts", ID: "ts-1"})
	buf := wibl.NewBuffer()
	buf.AppendU32(batch.Nmea0183.ElapsedMs)
	buf.AppendRaw(batch.Nmea0183.Sentence)
	assert.NoError(t, w.Record(wibl.PacketNMEAString, buf))

	frames := parseFrames(t, out.Bytes())
	nmea := frames[wibl.PacketNMEAString]
	assert.Len(t, nmea, 1)
	want := append([]byte{0, 0, 0, 0}, []byte(sentence)...)
	assert.Equal(t, want, nmea[0])

	_, err = rd.Next()
	assert.Error(t, err)
}

// parseFrames walks a Writer's raw output, grouping each frame's payload
// bytes by packet id.
func parseFrames(t *testing.T, data []byte) map[wibl.PacketID][][]byte {
	t.Helper()
	frames := make(map[wibl.PacketID][][]byte)
	for len(data) > 0 {
		if len(data) < 8 {
			t.Fatalf("truncated frame header: %d bytes left", len(data))
		}
		id := wibl.PacketID(uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24)
		length := uint32(data[4]) | uint32(data[5])<<8 | uint32(data[6])<<16 | uint32(data[7])<<24
		data = data[8:]
		if uint32(len(data)) < length {
			t.Fatalf("truncated frame payload for packet %s", id)
		}
		frames[id] = append(frames[id], data[:length])
		data = data[length:]
	}
	return frames
}

func TestReader_rejectsTooShort(t *testing.T) {
	rd := teamsurv.NewReader(strings.NewReader("$A*00\r\n"))
	_, err := rd.Next()
	assert.Error(t, err)
}

func hex(b byte) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[b>>4], digits[b&0x0F]})
}
