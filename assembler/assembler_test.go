package assembler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wibl-org/wibl-go/assembler"
)

func feedString(a *assembler.Assembler, s string, startTick uint64) {
	for i, c := range []byte(s) {
		a.Feed(c, startTick+uint64(i))
	}
}

func TestAssembler_capturesOneSentence(t *testing.T) {
	a := assembler.New("ch0")
	feedString(a, "$GPGGA,1,2,3*7A\r\n", 100)

	out := a.Drain()
	if assert.Len(t, out, 1) {
		assert.Equal(t, "$GPGGA,1,2,3*7A", string(out[0].Data))
		assert.Equal(t, uint64(100), out[0].Tick)
	}
}

func TestAssembler_ringBufferDropsOldest(t *testing.T) {
	a := assembler.New("ch0")
	for i := 0; i < 12; i++ {
		feedString(a, "$X*00\r\n", uint64(i*10))
	}
	out := a.Drain()
	assert.Len(t, out, 10)
	// the two oldest captures (ticks 0 and 10) were dropped.
	assert.Equal(t, uint64(20), out[0].Tick)
	assert.Equal(t, uint64(110), out[len(out)-1].Tick)
}

func TestAssembler_restartMidCapture(t *testing.T) {
	a := assembler.New("ch0")
	feedString(a, "$GPGGA,broken", 0)
	feedString(a, "$GPZDA,ok*00\r\n", 50)

	out := a.Drain()
	if assert.Len(t, out, 1) {
		assert.Equal(t, "$GPZDA,ok*00", string(out[0].Data))
		assert.Equal(t, uint64(50), out[0].Tick)
	}
}

func TestAssembler_twoChannelsInterleaved(t *testing.T) {
	a := assembler.New("ch0")
	b := assembler.New("ch1")

	streamA := "$AAAAA*00\r\n"
	streamB := "$BBBBB*00\r\n"
	for i := 0; i < len(streamA) && i < len(streamB); i++ {
		a.Feed(streamA[i], uint64(i))
		b.Feed(streamB[i], uint64(1000+i))
	}

	outA := a.Drain()
	outB := b.Drain()
	if assert.Len(t, outA, 1) {
		assert.Equal(t, "$AAAAA*00", string(outA[0].Data))
	}
	if assert.Len(t, outB, 1) {
		assert.Equal(t, "$BBBBB*00", string(outB[0].Data))
	}
}

func TestSentence_ValidChecksum(t *testing.T) {
	s := assembler.Sentence{Data: []byte("$GPGGA,A*" + checksumHex([]byte("GPGGA,A")))}
	assert.True(t, s.Valid())
}

func TestSentence_InvalidChecksum(t *testing.T) {
	s := assembler.Sentence{Data: []byte("$GPGGA,A*00")}
	assert.False(t, s.Valid())
}

func TestSentence_Token(t *testing.T) {
	s := assembler.Sentence{Data: []byte("$GPGGA,1,2,3*7A")}
	assert.Equal(t, "GPGGA", s.Token())
}

func checksumHex(body []byte) string {
	var sum byte
	for _, b := range body {
		sum ^= b
	}
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[sum>>4], digits[sum&0x0F]})
}
