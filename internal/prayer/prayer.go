// Package prayer computes the daily prayer times for one observer and one
// day from the solar angle solvers.
package prayer

import (
	"github.com/thurmanmarka/praytime/internal/solver"
	"github.com/thurmanmarka/praytime/internal/timeutil"
)

// Kind selects how a Maghrib or Isha setting is interpreted.
type Kind int

const (
	// Angle is a solar depression angle in degrees.
	Angle Kind = iota
	// Minutes is an offset in minutes (Maghrib after Sunset, Isha after Maghrib).
	Minutes
)

// Setting is a Maghrib or Isha parameter.
type Setting struct {
	Kind  Kind
	Value float64
}

// Convention holds the angles and offsets of a calculation method.
type Convention struct {
	Fajr    float64 // depression angle, degrees
	Maghrib Setting
	Isha    Setting
}

// HighLat selects the adjustment applied where the night is too short for
// the twilight angles to be reached.
type HighLat int

const (
	HighLatNone HighLat = iota
	HighLatAngleBased
	HighLatMidNight
	HighLatOneSeventh
)

// Midnight selects the night used to place midnight.
type Midnight int

const (
	// MidnightStandard is the midpoint from Sunset to Sunrise.
	MidnightStandard Midnight = iota
	// MidnightJafari is the midpoint from Sunset to Fajr.
	MidnightJafari
)

// Offsets are manual corrections, in minutes. Sunrise and Sunset are never
// tuned.
type Offsets struct {
	Fajr    float64
	Dhuhr   float64
	Asr     float64
	Maghrib float64
	Isha    float64
}

// Input is everything Compute needs for one day.
type Input struct {
	Lat       float64 // degrees
	Lon       float64 // degrees, east positive
	Elevation float64 // meters

	// JD is the Julian day at 0h UT of the local date, already corrected
	// for longitude (jd - lon/360).
	JD float64
	// TimeZone is the UTC offset, in hours, in effect that day.
	TimeZone float64

	Convention Convention
	AsrFactor  int // 1 standard, 2 Hanafi
	HighLat    HighLat
	Midnight   Midnight
	Offsets    Offsets
}

// Times are hours of the day in the requested time zone. A time that could
// not be solved has OK == false.
type Times struct {
	Fajr     solver.Result
	Sunrise  solver.Result
	Dhuhr    solver.Result
	Asr      solver.Result
	Sunset   solver.Result
	Maghrib  solver.Result
	Isha     solver.Result
	Midnight solver.Result
}

const (
	// iterations of the seed-and-solve loop. Each pass uses the previous
	// pass's times to evaluate the solar position; one pass is already
	// within the rounding of the final minute.
	iterations = 1

	// dhuhrMinutes is added to solar transit to obtain Dhuhr.
	dhuhrMinutes = 0.0
)

// seed holds approximate times as fractions of a day.
type seed struct {
	fajr, sunrise, dhuhr, asr, sunset, maghrib, isha float64
}

// defaultSeed is in hours.
var defaultSeed = seed{
	fajr:    5,
	sunrise: 6,
	dhuhr:   12,
	asr:     13,
	sunset:  18,
	maghrib: 18,
	isha:    18,
}

func (s seed) dayPortion() seed {
	return seed{
		fajr:    timeutil.DayPortion(s.fajr),
		sunrise: timeutil.DayPortion(s.sunrise),
		dhuhr:   timeutil.DayPortion(s.dhuhr),
		asr:     timeutil.DayPortion(s.asr),
		sunset:  timeutil.DayPortion(s.sunset),
		maghrib: timeutil.DayPortion(s.maghrib),
		isha:    timeutil.DayPortion(s.isha),
	}
}

// reseed builds the next pass's seed from solved times, keeping the
// default for anything unsolved.
func reseed(t Times) seed {
	pick := func(r solver.Result, def float64) float64 {
		if r.OK {
			return r.Hours
		}
		return def
	}
	return seed{
		fajr:    pick(t.Fajr, defaultSeed.fajr),
		sunrise: pick(t.Sunrise, defaultSeed.sunrise),
		dhuhr:   pick(t.Dhuhr, defaultSeed.dhuhr),
		asr:     pick(t.Asr, defaultSeed.asr),
		sunset:  pick(t.Sunset, defaultSeed.sunset),
		maghrib: pick(t.Maghrib, defaultSeed.maghrib),
		isha:    pick(t.Isha, defaultSeed.isha),
	}
}

// Compute returns the prayer times for in. It is a pure function of in.
func Compute(in Input) Times {
	s := defaultSeed
	var times Times
	for i := 0; i < iterations; i++ {
		times = computeOnce(in, s.dayPortion())
		s = reseed(times)
	}

	times = adjust(in, times)
	times.Midnight = midnight(in.Midnight, times)
	return tune(times, in.Offsets)
}

// computeOnce solves every time on the observer's meridian.
func computeOnce(in Input, s seed) Times {
	sv := solver.New(in.Lat, in.JD)
	c := in.Convention
	riseSet := solver.RiseSetAngle(in.Elevation)

	t := Times{
		Fajr:    sv.AngleTime(180-c.Fajr, s.fajr),
		Sunrise: sv.AngleTime(180-riseSet, s.sunrise),
		Dhuhr:   solver.Solved(sv.MidDay(s.dhuhr)),
		Asr:     sv.AsrTime(in.AsrFactor, s.asr),
		Sunset:  sv.AngleTime(riseSet, s.sunset),
	}

	// Minute-mode settings are placeholders until adjust applies the offset.
	if c.Maghrib.Kind == Angle {
		t.Maghrib = sv.AngleTime(c.Maghrib.Value, s.maghrib)
	} else {
		t.Maghrib = t.Sunset
	}
	if c.Isha.Kind == Angle {
		t.Isha = sv.AngleTime(c.Isha.Value, s.isha)
	} else {
		t.Isha = t.Maghrib
	}

	return t
}

// adjust moves the times to the requested zone, corrects high latitudes and
// applies the minute-mode settings.
func adjust(in Input, t Times) Times {
	shift := in.TimeZone - in.Lon/15
	t.Fajr = t.Fajr.Add(shift)
	t.Sunrise = t.Sunrise.Add(shift)
	t.Dhuhr = t.Dhuhr.Add(shift)
	t.Asr = t.Asr.Add(shift)
	t.Sunset = t.Sunset.Add(shift)
	t.Maghrib = t.Maghrib.Add(shift)
	t.Isha = t.Isha.Add(shift)

	if in.HighLat != HighLatNone {
		t = adjustHighLats(in.HighLat, in.Convention, t)
	}

	c := in.Convention
	if c.Maghrib.Kind == Minutes {
		t.Maghrib = t.Sunset.Add(c.Maghrib.Value / 60)
	}
	if c.Isha.Kind == Minutes {
		t.Isha = t.Maghrib.Add(c.Isha.Value / 60)
	}
	t.Dhuhr = t.Dhuhr.Add(dhuhrMinutes / 60)

	return t
}

// tune applies the manual offsets.
func tune(t Times, o Offsets) Times {
	t.Fajr = t.Fajr.Add(o.Fajr / 60)
	t.Dhuhr = t.Dhuhr.Add(o.Dhuhr / 60)
	t.Asr = t.Asr.Add(o.Asr / 60)
	t.Maghrib = t.Maghrib.Add(o.Maghrib / 60)
	t.Isha = t.Isha.Add(o.Isha / 60)
	return t
}
