package timeutil

import (
	"math"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
)

// -----------------------------
// Julian day
// -----------------------------

// J2000 is the Julian day of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// JulianDay returns the Julian day at 0h UT of the calendar day of t, as seen
// in t's own location. Only the calendar date is used; the clock time and
// offset are ignored so that a local date maps to a single Julian day.
func JulianDay(t time.Time) float64 {
	year, month, day := t.Date()
	return julian.CalendarGregorianToJD(year, int(month), float64(day))
}

// DaysSinceJ2000 returns the number of days between jd and J2000.0.
func DaysSinceJ2000(jd float64) float64 {
	return jd - J2000
}

// -----------------------------
// Basic degree/radian helpers and trig with degree inputs.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func SinD(deg float64) float64 {
	return math.Sin(Deg2Rad(deg))
}

func CosD(deg float64) float64 {
	return math.Cos(Deg2Rad(deg))
}

func TanD(deg float64) float64 {
	return math.Tan(Deg2Rad(deg))
}

func ArcSinD(x float64) float64 {
	return Rad2Deg(math.Asin(x))
}

// ArcCosD returns NaN when x is outside [-1, 1]; callers that care check
// the argument first.
func ArcCosD(x float64) float64 {
	return Rad2Deg(math.Acos(x))
}

func ArcTanD(x float64) float64 {
	return Rad2Deg(math.Atan(x))
}

func ArcTan2D(y, x float64) float64 {
	return Rad2Deg(math.Atan2(y, x))
}

func ArcCotD(x float64) float64 {
	return Rad2Deg(math.Atan(1 / x))
}

// FixAngle reduces a into [0, 360).
func FixAngle(a float64) float64 {
	return fix(a, 360.0)
}

// FixHour reduces h into [0, 24).
func FixHour(h float64) float64 {
	return fix(h, 24.0)
}

func fix(a, period float64) float64 {
	a -= period * math.Floor(a/period)
	for a < 0 {
		a += period
	}
	// Floor can leave a == period for tiny negative inputs.
	if a >= period {
		a -= period
	}
	return a
}

// HourDiff returns the forward distance in hours from h1 to h2 on a 24 hour
// clock, always in [0, 24).
func HourDiff(h1, h2 float64) float64 {
	return FixHour(h2 - h1)
}

// -----------------------------
// Day fractions and clock values
// -----------------------------

// DayPortion converts hours to a fraction of a day.
func DayPortion(hours float64) float64 {
	return hours / 24.0
}

// ClockHM rounds fractional hours to the nearest minute and splits the result
// into hour [0,24) and minute [0,60).
func ClockHM(hours float64) (hour, minute int) {
	h := FixHour(hours + 0.5/60.0)
	whole := math.Floor(h)
	minutes := math.Floor((h - whole) * 60.0)
	return int(whole), int(minutes)
}

// OffsetHours returns the UTC offset, in hours, in effect in loc at local
// noon on the calendar day of date. Noon avoids the ambiguous hours around
// DST transitions, which happen at night.
func OffsetHours(date time.Time, loc *time.Location) float64 {
	year, month, day := date.Date()
	noon := time.Date(year, month, day, 12, 0, 0, 0, loc)
	_, offset := noon.Zone()
	return float64(offset) / 3600.0
}
