// Package sim implements the deterministic logger simulator of spec §4.4:
// a stepped engine that walks a simulated vessel's time, position and
// depth and emits WIBL binary frames or NMEA-0183 sentences for them.
package sim

import (
	"time"

	"github.com/wibl-org/wibl-go"
)

// Mode selects the simulator's output: at least one of Binary/Serial must
// be set (spec §4.4; defaults to Binary if neither is requested).
type Mode struct {
	Binary bool
	Serial bool
}

// Engine owns one State and one Rng exclusively (spec §9 Design Note: no
// shared pointers, no process-global RNG) and drives it forward one tick
// interval at a time, writing frames to a wibl.Writer as it goes.
type Engine struct {
	state State
	rng   *Rng
	mode  Mode
	now   uint64
}

// NewEngine returns an Engine seeded with seed, starting at wall-clock
// start, at the given initial position and depth.
func NewEngine(seed int64, start time.Time, lat, lon, depth float64, mode Mode) *Engine {
	if !mode.Binary && !mode.Serial {
		mode.Binary = true
	}
	return &Engine{
		state: NewState(start, lat, lon, depth),
		rng:   NewRng(seed),
		mode:  mode,
	}
}

// Run advances the engine for durationSeconds simulated seconds, writing
// one frame (or sentence frame) per subsystem update to w.
func (e *Engine) Run(w *wibl.Writer, durationSeconds int) error {
	endTick := uint64(durationSeconds) * wibl.TicksPerSecond
	for e.now < endTick {
		if err := e.step(w); err != nil {
			return err
		}
	}
	return nil
}

// step advances sim_time to the earliest of the three target ticks, then
// updates whichever subsystem(s) reached it, in time/position/depth order
// (spec §4.4).
func (e *Engine) step(w *wibl.Writer) error {
	next := e.state.TargetReferenceTime
	if e.state.TargetPositionTime < next {
		next = e.state.TargetPositionTime
	}
	if e.state.TargetDepthTime < next {
		next = e.state.TargetDepthTime
	}
	e.now = next
	e.state.SimTime = componentAt(e.state.base, e.now)

	if e.state.TargetReferenceTime == next {
		e.state.RefTime = componentAt(e.state.base, e.now)
		e.state.TargetReferenceTime = e.now + wibl.TicksPerSecond
		if err := e.emitTime(w); err != nil {
			return err
		}
	}
	if e.state.TargetPositionTime == next {
		e.walkPosition()
		e.state.TargetPositionTime = e.now + wibl.TicksPerSecond
		if err := e.emitPosition(w); err != nil {
			return err
		}
	}
	if e.state.TargetDepthTime == next {
		e.walkDepth()
		// Depth steps at a flat 1 Hz, same as time and position (spec
		// scenario S3: exactly one depth frame per simulated second).
		e.state.TargetDepthTime = e.now + wibl.TicksPerSecond
		if err := e.emitDepth(w); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) walkPosition() {
	hourTicks := uint64(3600 * wibl.TicksPerSecond)
	if e.now-e.state.LastLatitudeReversal >= hourTicks {
		e.state.LatitudeScale = -e.state.LatitudeScale
		e.state.LastLatitudeReversal = e.now
	}
	e.state.Latitude += e.state.LatitudeScale * e.state.PositionStep
	e.state.Longitude += e.state.PositionStep
}

func (e *Engine) walkDepth() {
	e.state.Depth += e.state.DepthRandomWalk * e.rng.Normal()
	if e.state.Depth < 0 {
		e.state.Depth = 0
	}
}

func timeDatumFor(elapsedMs uint32) wibl.TimeDatum {
	return wibl.TimeDatum{DateStamp: 0, TimeStamp: -1, RawElapsed: elapsedMs}
}

func (e *Engine) elapsedMs() uint32 {
	return uint32(e.now * 1000 / wibl.TicksPerSecond)
}

func (e *Engine) emitTime(w *wibl.Writer) error {
	if e.mode.Binary {
		buf := wibl.NewBuffer()
		buf.AppendU16(uint16(e.state.RefTime.DayOfYear))
		buf.AppendF64(float64(e.state.RefTime.Hour)*3600 + float64(e.state.RefTime.Minute)*60 + e.state.RefTime.Second)
		buf.AppendU32(e.elapsedMs())
		buf.AppendU8(uint8(wibl.GPS))
		if err := w.Record(wibl.PacketSystemTime, buf); err != nil {
			return err
		}
	}
	if e.mode.Serial {
		if err := e.emitSentence(w, formatZDA(e.state.RefTime)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) emitPosition(w *wibl.Writer) error {
	if e.mode.Binary {
		buf := wibl.NewBuffer()
		timeDatumFor(e.elapsedMs()).Append(buf)
		buf.AppendU16(uint16(e.state.SimTime.DayOfYear))
		buf.AppendF64(float64(e.state.SimTime.Hour)*3600 + float64(e.state.SimTime.Minute)*60 + e.state.SimTime.Second)
		buf.AppendF64(e.state.Latitude)
		buf.AppendF64(e.state.Longitude)
		buf.AppendF64(0) // altitude: not walked by the simulator
		buf.AppendU8(0)  // rxType: GNSS fix
		buf.AppendU8(1)  // rxMethod: autonomous
		buf.AppendU8(8)  // nSVs
		buf.AppendF64(0.9)
		buf.AppendF64(1.2)
		buf.AppendF64(0)
		buf.AppendU8(0)
		buf.AppendU8(0)
		buf.AppendU16(0)
		buf.AppendF64(0)
		if err := w.Record(wibl.PacketGNSS, buf); err != nil {
			return err
		}
	}
	if e.mode.Serial {
		if err := e.emitSentence(w, formatGGA(e.state.SimTime, e.state.Latitude, e.state.Longitude)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) emitDepth(w *wibl.Writer) error {
	if e.mode.Binary {
		buf := wibl.NewBuffer()
		timeDatumFor(e.elapsedMs()).Append(buf)
		buf.AppendF64(e.state.Depth)
		buf.AppendF64(0) // offset
		buf.AppendF64(e.state.MeasurementUncertainty)
		if err := w.Record(wibl.PacketDepth, buf); err != nil {
			return err
		}
	}
	if e.mode.Serial {
		if err := e.emitSentence(w, formatDBT(e.state.Depth)); err != nil {
			return err
		}
	}
	return nil
}

// emitSentence wraps a formatted NMEA-0183 sentence as an id-10 frame
// (spec §3.5, §4.4).
func (e *Engine) emitSentence(w *wibl.Writer, sentence string) error {
	buf := wibl.NewBuffer()
	buf.AppendU32(e.elapsedMs())
	buf.AppendRaw([]byte(sentence))
	return w.Record(wibl.PacketNMEAString, buf)
}
