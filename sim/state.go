package sim

import (
	"time"

	"github.com/wibl-org/wibl-go"
)

// ComponentDateTime is a decomposed simulated clock reading (spec §4.4):
// a calendar breakdown plus the tick count it was read at.
type ComponentDateTime struct {
	Year      int
	DayOfYear int
	Hour      int
	Minute    int
	Second    float64
	TickCount uint64
}

func componentAt(base time.Time, tick uint64) ComponentDateTime {
	t := base.Add(time.Duration(tick) * time.Second / wibl.TicksPerSecond)
	return ComponentDateTime{
		Year:      t.Year(),
		DayOfYear: t.YearDay(),
		Hour:      t.Hour(),
		Minute:    t.Minute(),
		Second:    float64(t.Second()) + float64(t.Nanosecond())/1e9,
		TickCount: tick,
	}
}

// State holds the mutable simulated vessel state (spec §4.4). An Engine
// has exclusive ownership of its State (spec §9 Design Note: no shared
// pointers).
type State struct {
	base time.Time

	SimTime ComponentDateTime
	RefTime ComponentDateTime

	Depth                  float64
	DepthRandomWalk        float64
	MeasurementUncertainty float64

	Longitude, Latitude float64
	PositionStep        float64
	LatitudeScale       float64 // +1 or -1

	LastLatitudeReversal uint64
	TargetReferenceTime  uint64
	TargetDepthTime      uint64
	TargetPositionTime   uint64
}

// NewState returns the initial simulated state, anchored at base wall-clock
// time tick 0, with the given starting position and depth.
func NewState(base time.Time, lat, lon, depth float64) State {
	return State{
		base:                   base,
		SimTime:                componentAt(base, 0),
		RefTime:                componentAt(base, 0),
		Depth:                  depth,
		DepthRandomWalk:        0.1,
		MeasurementUncertainty: 0.05,
		Latitude:               lat,
		Longitude:              lon,
		PositionStep:           0.0001,
		LatitudeScale:          1,
		TargetReferenceTime:    wibl.TicksPerSecond,
		TargetDepthTime:        wibl.TicksPerSecond,
		TargetPositionTime:     wibl.TicksPerSecond,
	}
}
