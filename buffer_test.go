package wibl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wibl-org/wibl-go"
)

func TestBuffer_appendMixedPrimitives(t *testing.T) {
	buf := wibl.NewBuffer()
	buf.AppendU16(0x1234)
	buf.AppendF64(1.5)
	buf.AppendRaw([]byte("ABC"))

	want := []byte{0x34, 0x12, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF8, 0x3F, 0x41, 0x42, 0x43}
	assert.Equal(t, want, buf.Bytes())
	assert.Equal(t, uint32(13), buf.Len())
}

func TestBuffer_u8U32U64RoundTrip(t *testing.T) {
	buf := wibl.NewBuffer()
	buf.AppendU8(0xAB)
	buf.AppendU32(0xDEADBEEF)
	buf.AppendU64(0x0123456789ABCDEF)

	b := buf.Bytes()
	assert.Equal(t, byte(0xAB), b[0])
	assert.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE}, b[1:5])
	assert.Equal(t, []byte{0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01}, b[5:13])
}

func TestBuffer_f32LittleEndian(t *testing.T) {
	buf := wibl.NewBuffer()
	buf.AppendF32(1.0)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, buf.Bytes())
}
