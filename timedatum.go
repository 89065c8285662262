package wibl

// TicksPerSecond is the rate of the monotonic elapsed-tick counter used by
// Timestamp arithmetic. On the embedded logger build this is the
// millisecond counter (1000); the simulator build uses the same constant so
// that simulated and on-vessel output are numerically comparable (spec §9
// Open Question: the source conflated CLOCKS_PER_SEC with milliseconds in
// places, this implementation keeps one explicit constant everywhere).
const TicksPerSecond = 1000

// Timestamp is the logger's running time datum (spec §3.4): a wall-clock
// anchor (date + seconds-of-day) paired with the monotonic tick count it was
// valid at. DatumSeconds < 0 marks the Timestamp as not yet initialised.
type Timestamp struct {
	DatumDate      uint16  // days since 1970-01-01
	DatumSeconds   float64 // seconds since midnight of DatumDate
	ElapsedAtDatum uint32  // monotonic ticks when the datum was taken
}

// Valid reports whether the Timestamp has been set from a real time source.
func (t Timestamp) Valid() bool {
	return t.DatumSeconds >= 0
}

// TimeDatum is a point-in-time query result (spec §3.4), serialised as
// {u16 date, f64 seconds, u32 elapsed_ms}.
type TimeDatum struct {
	DateStamp  uint16
	TimeStamp  float64
	RawElapsed uint32
}

// At computes the TimeDatum for rawElapsedNow ticks against t, handling one
// midnight rollover (spec §3.4; multi-day gaps are explicitly out of scope).
func (t Timestamp) At(rawElapsedNow uint32) TimeDatum {
	diff := uint32(rawElapsedNow - t.ElapsedAtDatum) // modular subtraction, wraps at 2^32
	seconds := t.DatumSeconds + float64(diff)/TicksPerSecond
	date := t.DatumDate
	if seconds > 86400 {
		date++
		seconds -= 86400
	}
	return TimeDatum{
		DateStamp:  date,
		TimeStamp:  seconds,
		RawElapsed: rawElapsedNow,
	}
}

// Append serialises the TimeDatum to buf as {u16 date, f64 seconds, u32 elapsed_ms}.
func (d TimeDatum) Append(buf *Buffer) {
	buf.AppendU16(d.DateStamp)
	buf.AppendF64(d.TimeStamp)
	buf.AppendU32(d.RawElapsed)
}
