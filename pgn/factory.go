package pgn

import (
	"math"

	"github.com/wibl-org/wibl-go"
)

// Result is what the factory hands back for one N2kMessage: the packet id
// the payload should be framed under and the encoded Buffer.
type Result struct {
	ID     wibl.PacketID
	Buffer *wibl.Buffer
}

// Build implements the SerialisableFactory of spec §4.2. It returns
// (Result, true) when msg.PGN is one of the ten supported PGNs and the
// §3.3 filter rules accept it; otherwise (Result{}, false) — a filtered or
// unrecognised PGN is never surfaced as an error (spec §7: Parse and
// FormatFilter outcomes are always silent).
func Build(msg wibl.N2kMessage) (Result, bool) {
	switch msg.PGN {
	case 126992:
		return buildSystemTime(msg)
	case 127257:
		return buildAttitude(msg)
	case 128267:
		return buildDepth(msg)
	case 129026:
		return buildCOG(msg)
	case 129029:
		return buildGNSS(msg)
	case 130311:
		return buildEnvironment(msg)
	case 130312:
		return buildTemperature(msg)
	case 130313:
		return buildHumidity(msg)
	case 130314:
		return buildPressure(msg)
	case 130316:
		return buildExtTemperature(msg)
	default:
		return Result{}, false
	}
}

// rawTimeDatum builds the leading TimeDatum every payload but ids 0/1/10/12
// carries: the producer has no absolute date/time, only elapsed ticks, so
// the date/seconds fields are left invalid (spec §4.2).
func rawTimeDatum(elapsedMs uint32) wibl.TimeDatum {
	return wibl.TimeDatum{DateStamp: 0, TimeStamp: -1, RawElapsed: elapsedMs}
}

func buildSystemTime(msg wibl.N2kMessage) (Result, bool) {
	data := msg.Data
	sourceByte, ok := u8(data, 1)
	if !ok {
		return Result{}, false
	}
	source := wibl.SystemTimeSource(sourceByte & 0x0F)
	if source == wibl.LocalCrystalClock {
		return Result{}, false // spec §3.3 filter rule
	}

	date, ok1 := u16le(data, 2)
	timeRaw, ok2 := u32le(data, 4)
	if !ok1 || !ok2 {
		return Result{}, false
	}

	buf := wibl.NewBuffer()
	buf.AppendU16(date)
	buf.AppendF64(float64(timeRaw) * 0.0001)
	buf.AppendU32(msg.ElapsedMs)
	buf.AppendU8(uint8(source))
	return Result{ID: wibl.PacketSystemTime, Buffer: buf}, true
}

func buildAttitude(msg wibl.N2kMessage) (Result, bool) {
	data := msg.Data
	yaw := scaledI16(data, 1, 0.0001)
	pitch := scaledI16(data, 3, 0.0001)
	roll := scaledI16(data, 5, 0.0001)

	buf := wibl.NewBuffer()
	rawTimeDatum(msg.ElapsedMs).Append(buf)
	buf.AppendF64(yaw)
	buf.AppendF64(pitch)
	buf.AppendF64(roll)
	return Result{ID: wibl.PacketAttitude, Buffer: buf}, true
}

func buildDepth(msg wibl.N2kMessage) (Result, bool) {
	data := msg.Data
	depth := scaledU32(data, 1, 0.01)
	offset := scaledI16(data, 5, 0.001)
	rangeVal := scaledU16RangeByte(data, 7)

	buf := wibl.NewBuffer()
	rawTimeDatum(msg.ElapsedMs).Append(buf)
	buf.AppendF64(depth)
	buf.AppendF64(offset)
	buf.AppendF64(rangeVal)
	return Result{ID: wibl.PacketDepth, Buffer: buf}, true
}

// scaledU16RangeByte decodes the 1-byte "Range" field of PGN 128267
// (resolution 10, sentinel 0xFF).
func scaledU16RangeByte(data []byte, offset int) float64 {
	v, ok := u8(data, offset)
	if !ok || v == 0xFF {
		return math.NaN()
	}
	return float64(v) * 10
}

func buildCOG(msg wibl.N2kMessage) (Result, bool) {
	data := msg.Data
	refByte, ok := u8(data, 1)
	if !ok {
		return Result{}, false
	}
	reference := wibl.HeadingReference(refByte & 0x03)
	if reference != wibl.HeadingTrue {
		return Result{}, false // spec §3.3 filter rule
	}

	cog := scaledU16(data, 2, 0.0001)
	sog := scaledU16(data, 4, 0.01)

	buf := wibl.NewBuffer()
	rawTimeDatum(msg.ElapsedMs).Append(buf)
	buf.AppendF64(cog)
	buf.AppendF64(sog)
	return Result{ID: wibl.PacketCOG, Buffer: buf}, true
}

func buildGNSS(msg wibl.N2kMessage) (Result, bool) {
	data := msg.Data
	date, _ := u16le(data, 1)
	seconds := scaledU32(data, 3, 0.0001)
	lat := scaledI64(data, 7, 1e-16)
	lon := scaledI64(data, 15, 1e-16)
	alt := scaledI64(data, 23, 1e-6)

	typeAndMethod, _ := u8(data, 31)
	rxType := typeAndMethod & 0x0F
	rxMethod := (typeAndMethod >> 4) & 0x0F

	nSVs, _ := u8(data, 33)
	hdop := scaledI16(data, 34, 0.01)
	pdop := scaledI16(data, 36, 0.01)
	geoidSep := scaledI32(data, 38, 0.01)
	nRefStations, _ := u8(data, 42)

	var refType uint8
	var refID uint16
	var corrAge float64 = math.NaN()
	if typeAndID, ok := u16le(data, 43); ok {
		refType = uint8(typeAndID & 0x0F)
		refID = typeAndID >> 4
		corrAge = scaledU16(data, 45, 0.01)
	}

	buf := wibl.NewBuffer()
	rawTimeDatum(msg.ElapsedMs).Append(buf)
	buf.AppendU16(date)
	buf.AppendF64(seconds)
	buf.AppendF64(lat)
	buf.AppendF64(lon)
	buf.AppendF64(alt)
	buf.AppendU8(rxType)
	buf.AppendU8(rxMethod)
	buf.AppendU8(nSVs)
	buf.AppendF64(hdop)
	buf.AppendF64(pdop)
	buf.AppendF64(geoidSep)
	buf.AppendU8(nRefStations)
	buf.AppendU8(refType)
	buf.AppendU16(refID)
	buf.AppendF64(corrAge)
	return Result{ID: wibl.PacketGNSS, Buffer: buf}, true
}

func buildEnvironment(msg wibl.N2kMessage) (Result, bool) {
	data := msg.Data
	sourceByte, ok := u8(data, 1)
	if !ok {
		return Result{}, false
	}
	tSource := sourceByte & 0x3F
	hSource := (sourceByte >> 6) & 0x03

	temp := scaledU16(data, 2, 0.01)
	humidity := scaledI16(data, 4, 0.004)
	pressure := scaledU16(data, 6, 100)

	buf := wibl.NewBuffer()
	rawTimeDatum(msg.ElapsedMs).Append(buf)
	buf.AppendU8(tSource)
	buf.AppendF64(temp)
	buf.AppendU8(hSource)
	buf.AppendF64(humidity)
	buf.AppendF64(pressure)
	return Result{ID: wibl.PacketEnvironment, Buffer: buf}, true
}

func buildTemperature(msg wibl.N2kMessage) (Result, bool) {
	data := msg.Data
	sourceByte, ok := u8(data, 2)
	if !ok {
		return Result{}, false
	}
	source := wibl.TemperatureSource(sourceByte)
	if source != wibl.SeaTemperature && source != wibl.OutsideTemperature {
		return Result{}, false // spec §3.3 filter rule
	}
	value := scaledU16(data, 3, 0.01)
	return buildTemperatureResult(msg, source, value)
}

func buildExtTemperature(msg wibl.N2kMessage) (Result, bool) {
	data := msg.Data
	sourceByte, ok := u8(data, 1)
	if !ok {
		return Result{}, false
	}
	source := wibl.TemperatureSource(sourceByte)
	if source != wibl.SeaTemperature && source != wibl.OutsideTemperature {
		return Result{}, false // spec §3.3 filter rule
	}
	value := scaledU32(data, 2, 0.001)
	return buildTemperatureResult(msg, source, value)
}

func buildTemperatureResult(msg wibl.N2kMessage, source wibl.TemperatureSource, value float64) (Result, bool) {
	buf := wibl.NewBuffer()
	rawTimeDatum(msg.ElapsedMs).Append(buf)
	buf.AppendU8(uint8(source))
	buf.AppendF64(value)
	return Result{ID: wibl.PacketTemperature, Buffer: buf}, true
}

func buildHumidity(msg wibl.N2kMessage) (Result, bool) {
	data := msg.Data
	sourceByte, ok := u8(data, 2)
	if !ok {
		return Result{}, false
	}
	source := wibl.HumiditySource(sourceByte)
	if source != wibl.OutsideHumidity {
		return Result{}, false // spec §3.3 filter rule
	}
	value := scaledI16(data, 3, 0.004)

	buf := wibl.NewBuffer()
	rawTimeDatum(msg.ElapsedMs).Append(buf)
	buf.AppendU8(uint8(source))
	buf.AppendF64(value)
	return Result{ID: wibl.PacketHumidity, Buffer: buf}, true
}

func buildPressure(msg wibl.N2kMessage) (Result, bool) {
	data := msg.Data
	sourceByte, ok := u8(data, 2)
	if !ok {
		return Result{}, false
	}
	source := wibl.PressureSource(sourceByte)
	if source != wibl.AtmosphericPressure {
		return Result{}, false // spec §3.3 filter rule
	}
	value := scaledU32(data, 3, 1)

	buf := wibl.NewBuffer()
	rawTimeDatum(msg.ElapsedMs).Append(buf)
	buf.AppendU8(uint8(source))
	buf.AppendF64(value)
	return Result{ID: wibl.PacketPressure, Buffer: buf}, true
}
