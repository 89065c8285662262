package wibl

// PacketID identifies the kind of a WIBL frame's payload (spec §3.3). The id
// space is closed: these are the only values a Writer or reader should ever
// see on the wire.
type PacketID uint32

const (
	// PacketVersion is the mandatory first frame of every file. Only the
	// Writer itself may produce it; a caller requesting id 0 is rejected.
	PacketVersion     PacketID = 0
	PacketSystemTime  PacketID = 1
	PacketAttitude    PacketID = 2
	PacketDepth       PacketID = 3
	PacketCOG         PacketID = 4
	PacketGNSS        PacketID = 5
	PacketEnvironment PacketID = 6
	PacketTemperature PacketID = 7
	PacketHumidity    PacketID = 8
	PacketPressure    PacketID = 9
	PacketNMEAString  PacketID = 10
	PacketLocalIMU    PacketID = 11
	// PacketMetadata is the mandatory second frame of every file.
	PacketMetadata    PacketID = 12
	PacketAlgorithms  PacketID = 13
	PacketJSON        PacketID = 14
	PacketNMEA0183ID  PacketID = 15
)

// String gives the §3.3 name for a packet id, for debug logging.
func (id PacketID) String() string {
	switch id {
	case PacketVersion:
		return "Version"
	case PacketSystemTime:
		return "SystemTime"
	case PacketAttitude:
		return "Attitude"
	case PacketDepth:
		return "Depth"
	case PacketCOG:
		return "COG"
	case PacketGNSS:
		return "GNSS"
	case PacketEnvironment:
		return "Environment"
	case PacketTemperature:
		return "Temperature"
	case PacketHumidity:
		return "Humidity"
	case PacketPressure:
		return "Pressure"
	case PacketNMEAString:
		return "NMEAString"
	case PacketLocalIMU:
		return "LocalIMU"
	case PacketMetadata:
		return "Metadata"
	case PacketAlgorithms:
		return "Algorithms"
	case PacketJSON:
		return "JSON"
	case PacketNMEA0183ID:
		return "NMEA0183ID"
	default:
		return "Unknown"
	}
}

// TemperatureSource/HumiditySource/PressureSource tag the origin talker of a
// single-value environmental record (packet ids 7/8/9) and the composite
// Environment record (packet id 6). For ids 7/8/9 the factory accepts only
// the tags named in spec §3.3's filter rules; the Environment record is
// forwarded whatever its tags. The others exist because the
// wire format (and a real NMEA-2000 bus) carries more talkers than the
// pipeline forwards.
type TemperatureSource uint8

const (
	SeaTemperature TemperatureSource = iota
	OutsideTemperature
	InsideTemperature
	EngineRoomTemperature
	MainCabinTemperature
	LiveWellTemperature
	BaitWellTemperature
	RefrigerationTemperature
	HeatingSystemTemperature
	FreezerTemperature
	ExhaustGasTemperature
	RawWaterTemperature
)

type HumiditySource uint8

const (
	InsideHumidity HumiditySource = iota
	OutsideHumidity
)

type PressureSource uint8

const (
	AtmosphericPressure PressureSource = iota
	WaterPressure
	SteamPressure
	CompressedAirPressure
	HydraulicPressure
)

// SystemTimeSource tags the origin of a SystemTime record (packet id 1).
// spec §3.3: a record whose source is LocalCrystalClock is dropped by the
// factory rather than forwarded, since it carries no externally-traceable
// datum.
type SystemTimeSource uint8

const (
	GPS SystemTimeSource = iota
	GLONASS
	RadioStation
	LocalCesiumClock
	LocalRubidiumClock
	LocalCrystalClock
)

// HeadingReference distinguishes true- from magnetic-referenced course data.
// spec §3.3: COG records are only forwarded when the reference is True.
type HeadingReference uint8

const (
	HeadingTrue HeadingReference = iota
	HeadingMagnetic
	HeadingError
)
