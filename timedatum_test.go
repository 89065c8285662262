package wibl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wibl-org/wibl-go"
)

func TestTimestamp_Valid(t *testing.T) {
	assert.True(t, wibl.Timestamp{DatumSeconds: 0}.Valid())
	assert.False(t, wibl.Timestamp{DatumSeconds: -1}.Valid())
}

func TestTimestamp_At_basicElapsed(t *testing.T) {
	ts := wibl.Timestamp{DatumDate: 100, DatumSeconds: 10, ElapsedAtDatum: 1000}
	got := ts.At(2000) // 1000 ticks later = 1 second later at 1000 ticks/sec
	assert.Equal(t, uint16(100), got.DateStamp)
	assert.InDelta(t, 11.0, got.TimeStamp, 1e-9)
	assert.Equal(t, uint32(2000), got.RawElapsed)
}

func TestTimestamp_At_wrapsAroundUint32(t *testing.T) {
	ts := wibl.Timestamp{DatumDate: 5, DatumSeconds: 10, ElapsedAtDatum: 0xFFFFFFFE}
	got := ts.At(1) // wraps: (1 - 0xFFFFFFFE) mod 2^32 = 3
	assert.InDelta(t, 10.0+3.0/1000, got.TimeStamp, 1e-9)
}

func TestTimestamp_At_midnightRollover(t *testing.T) {
	ts := wibl.Timestamp{DatumDate: 7, DatumSeconds: 86399.5, ElapsedAtDatum: 0}
	got := ts.At(1000) // +1 second crosses midnight
	assert.Equal(t, uint16(8), got.DateStamp)
	assert.InDelta(t, 0.5, got.TimeStamp, 1e-9)
}

func TestTimeDatum_Append(t *testing.T) {
	d := wibl.TimeDatum{DateStamp: 0x1234, TimeStamp: 1.5, RawElapsed: 42}
	buf := wibl.NewBuffer()
	d.Append(buf)
	assert.Equal(t, uint32(14), buf.Len())
}
