package sun

import (
	"github.com/thurmanmarka/praytime/internal/timeutil"
)

// RiseSetAngle is the depression (in degrees) of the Sun's center when the
// apparent upper limb touches a sea-level horizon: refraction plus the solar
// semi-diameter, 90°50' ≈ 90.833° from the zenith.
const RiseSetAngle = 0.833

// equatorialCoords are right ascension and declination, in degrees.
type equatorialCoords struct {
	RA  float64 // [0, 360)
	Dec float64
}

// Position is the part of the solar ephemeris the angle solvers need.
type Position struct {
	Declination float64 // degrees
	Equation    float64 // equation of time, hours (apparent minus mean solar time)
}

// elements holds the mean orbital elements for a given instant, all in degrees.
type elements struct {
	g   float64 // mean anomaly
	q   float64 // mean longitude
	L   float64 // ecliptic longitude
	eps float64 // obliquity of the ecliptic
}

// meanElements evaluates the low-precision USNO / Meeus-style series:
//
//	g   = mean anomaly of the Sun
//	q   = mean longitude of the Sun
//	L   = ecliptic longitude of the Sun
//	eps = obliquity of the ecliptic
func meanElements(jd float64) elements {
	d := timeutil.DaysSinceJ2000(jd)

	g := timeutil.FixAngle(357.529 + 0.98560028*d)
	q := timeutil.FixAngle(280.459 + 0.98564736*d)

	// Ecliptic longitude with equation of center
	L := timeutil.FixAngle(q + 1.915*timeutil.SinD(g) + 0.020*timeutil.SinD(2*g))

	eps := 23.439 - 0.00000036*d

	return elements{g: g, q: q, L: L, eps: eps}
}

// equatorial converts the ecliptic longitude to geocentric RA/Dec, good to
// arcminute level for dates in practical use.
func equatorial(el elements) equatorialCoords {
	ra := timeutil.ArcTan2D(timeutil.CosD(el.eps)*timeutil.SinD(el.L), timeutil.CosD(el.L))
	dec := timeutil.ArcSinD(timeutil.SinD(el.eps) * timeutil.SinD(el.L))

	return equatorialCoords{
		RA:  timeutil.FixAngle(ra),
		Dec: dec,
	}
}

// PositionAt returns the Sun's declination and the equation of time at
// Julian day jd. Closed form, no iteration.
func PositionAt(jd float64) Position {
	el := meanElements(jd)
	eq := equatorial(el)

	// Both terms are in [0,24), so near the vernal equinox, where q and RA
	// straddle 0h, eqt can be off by a whole day. Consumers reduce it with
	// FixHour.
	eqt := el.q/15 - timeutil.FixHour(eq.RA/15)

	return Position{
		Declination: eq.Dec,
		Equation:    eqt,
	}
}
