package pgn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wibl-org/wibl-go"
	"github.com/wibl-org/wibl-go/pgn"
)

func TestBuild_unsupportedPGN(t *testing.T) {
	_, ok := pgn.Build(wibl.N2kMessage{PGN: 0x1F801, Data: make([]byte, 8)})
	assert.False(t, ok)
}

func TestBuild_systemTime_droppedForLocalCrystalClock(t *testing.T) {
	data := make([]byte, 8)
	data[1] = uint8(wibl.LocalCrystalClock)
	_, ok := pgn.Build(wibl.N2kMessage{PGN: 126992, Data: data})
	assert.False(t, ok)
}

func TestBuild_systemTime_forwardsGPSSource(t *testing.T) {
	data := make([]byte, 8)
	data[1] = uint8(wibl.GPS)
	data[2] = 0x10 // date = 0x0010
	data[3] = 0x00
	// time: 36000000 * 0.0001s = 3600s
	data[4], data[5], data[6], data[7] = 0x00, 0x51, 0x25, 0x02

	res, ok := pgn.Build(wibl.N2kMessage{PGN: 126992, Data: data, ElapsedMs: 42})
	assert.True(t, ok)
	assert.Equal(t, wibl.PacketSystemTime, res.ID)

	b := res.Buffer.Bytes()
	assert.Equal(t, uint16(0x0010), uint16(b[0])|uint16(b[1])<<8)
	assert.Equal(t, uint8(wibl.GPS), b[len(b)-1])
}

func TestBuild_cog_droppedWhenNotTrueReference(t *testing.T) {
	data := make([]byte, 8)
	data[1] = uint8(wibl.HeadingMagnetic)
	_, ok := pgn.Build(wibl.N2kMessage{PGN: 129026, Data: data})
	assert.False(t, ok)
}

func TestBuild_cog_forwardedForTrueReference(t *testing.T) {
	data := make([]byte, 8)
	data[1] = uint8(wibl.HeadingTrue)
	res, ok := pgn.Build(wibl.N2kMessage{PGN: 129026, Data: data, ElapsedMs: 7})
	assert.True(t, ok)
	assert.Equal(t, wibl.PacketCOG, res.ID)
}

func TestBuild_temperature_onlySeaOrOutside(t *testing.T) {
	rejected := make([]byte, 8)
	rejected[2] = uint8(wibl.InsideTemperature) // arbitrary non sea/outside value
	_, ok := pgn.Build(wibl.N2kMessage{PGN: 130312, Data: rejected})
	assert.False(t, ok)

	accepted := make([]byte, 8)
	accepted[2] = uint8(wibl.SeaTemperature)
	res, ok := pgn.Build(wibl.N2kMessage{PGN: 130312, Data: accepted})
	assert.True(t, ok)
	assert.Equal(t, wibl.PacketTemperature, res.ID)
}

func TestBuild_extTemperature_mapsToSamePacketIDAsTemperature(t *testing.T) {
	data := make([]byte, 8)
	data[1] = uint8(wibl.OutsideTemperature)
	res, ok := pgn.Build(wibl.N2kMessage{PGN: 130316, Data: data})
	assert.True(t, ok)
	assert.Equal(t, wibl.PacketTemperature, res.ID)
}

func TestBuild_humidity_onlyOutside(t *testing.T) {
	data := make([]byte, 8)
	data[2] = uint8(wibl.InsideHumidity)
	_, ok := pgn.Build(wibl.N2kMessage{PGN: 130313, Data: data})
	assert.False(t, ok)
}

func TestBuild_pressure_onlyAtmospheric(t *testing.T) {
	data := make([]byte, 8)
	data[2] = uint8(wibl.WaterPressure)
	_, ok := pgn.Build(wibl.N2kMessage{PGN: 130314, Data: data})
	assert.False(t, ok)
}
