// Package solver finds the clock times at which the Sun reaches a given
// depression angle, or casts a given shadow, on a given day.
//
// Times passed in are fractions of a day: the approximate time of the event,
// used to evaluate the solar position. Times returned are hours of the day
// on the observer's meridian, with apparent noon near 12; callers add
// timezone - longitude/15 to get zone time.
package solver

import (
	"math"

	"github.com/thurmanmarka/praytime/internal/sun"
	"github.com/thurmanmarka/praytime/internal/timeutil"
)

// Result holds the output of an angle solve.
type Result struct {
	Hours float64 // hours of day; meaningful only if OK
	OK    bool    // false if the Sun never reaches the angle that day
}

// Solved returns a successful Result.
func Solved(hours float64) Result {
	return Result{Hours: hours, OK: true}
}

// Unsolved is the Result for an angle the Sun never reaches.
var Unsolved = Result{}

// Add shifts a solved result by dh hours. Unsolved results stay unsolved.
func (r Result) Add(dh float64) Result {
	if !r.OK {
		return r
	}
	return Solved(r.Hours + dh)
}

// Solver evaluates events for one observer latitude and one Julian day.
// JD should already be corrected for longitude (jd - lon/360) so that
// jd + time lands near the local event.
type Solver struct {
	Lat float64 // degrees, north positive
	JD  float64
}

// New returns a Solver for latitude lat at Julian day jd.
func New(lat, jd float64) Solver {
	return Solver{Lat: lat, JD: jd}
}

// MidDay returns the time of solar transit, in hours, near day fraction t.
func (s Solver) MidDay(t float64) float64 {
	eqt := sun.PositionAt(s.JD + t).Equation
	return timeutil.FixHour(12 - eqt)
}

// AngleTime returns the time at which the Sun's center is angle degrees
// below the horizon, near day fraction t.
//
// Angles above 90 select the event before transit (the Sun rising through
// 180-angle degrees of depression); angles up to 90 select the event after
// transit. Callers pass morning events as 180 - depression.
//
// If the Sun never reaches the angle on that day the result is not OK.
func (s Solver) AngleTime(angle, t float64) Result {
	decl := sun.PositionAt(s.JD + t).Declination
	noon := s.MidDay(t)

	x := (-timeutil.SinD(angle) - timeutil.SinD(decl)*timeutil.SinD(s.Lat)) /
		(timeutil.CosD(decl) * timeutil.CosD(s.Lat))
	if math.IsNaN(x) || x < -1 || x > 1 {
		return Unsolved
	}

	h := timeutil.ArcCosD(x) / 15
	if angle > 90 {
		return Solved(noon - h)
	}
	return Solved(noon + h)
}

// AsrTime returns the time, near day fraction t, at which an object's shadow
// equals factor times its length plus its length at transit. factor is 1 for
// the standard school and 2 for the Hanafi school.
func (s Solver) AsrTime(factor int, t float64) Result {
	decl := sun.PositionAt(s.JD + t).Declination
	angle := -timeutil.ArcCotD(float64(factor) + timeutil.TanD(math.Abs(s.Lat-decl)))
	return s.AngleTime(angle, t)
}

// RiseSetAngle returns the depression of the Sun's center at apparent
// sunrise and sunset for an observer elevation meters above the surrounding
// terrain. 0.0347·√h approximates the dip of the horizon.
func RiseSetAngle(elevation float64) float64 {
	if elevation <= 0 {
		return sun.RiseSetAngle
	}
	return sun.RiseSetAngle + 0.0347*math.Sqrt(elevation)
}
