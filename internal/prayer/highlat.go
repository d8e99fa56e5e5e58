package prayer

import (
	"github.com/thurmanmarka/praytime/internal/solver"
	"github.com/thurmanmarka/praytime/internal/timeutil"
)

// Angles assumed for minute-mode Isha and Maghrib when sizing the night
// portion. Minute-mode times are overwritten after the adjustment, so these
// only matter for the placeholder values.
const (
	fallbackIshaAngle    = 18.0
	fallbackMaghribAngle = 4.0
)

// nightPortion returns the fraction of the night allowed between a twilight
// time and its base (Sunrise for Fajr, Sunset for Maghrib and Isha).
func nightPortion(method HighLat, angle float64) float64 {
	switch method {
	case HighLatAngleBased:
		return angle / 60
	case HighLatMidNight:
		return 1.0 / 2
	case HighLatOneSeventh:
		return 1.0 / 7
	default:
		return 0
	}
}

// adjustHighLats bounds Fajr, Isha and Maghrib to a portion of the night.
// Times that were not solved are replaced outright. Without a solved Sunrise
// and Sunset there is no night to divide and the times are left alone.
func adjustHighLats(method HighLat, c Convention, t Times) Times {
	if !t.Sunrise.OK || !t.Sunset.OK {
		return t
	}
	night := timeutil.HourDiff(t.Sunset.Hours, t.Sunrise.Hours)

	t.Fajr = clampBefore(t.Fajr, t.Sunrise.Hours, nightPortion(method, c.Fajr)*night)

	ishaAngle := fallbackIshaAngle
	if c.Isha.Kind == Angle {
		ishaAngle = c.Isha.Value
	}
	t.Isha = clampAfter(t.Isha, t.Sunset.Hours, nightPortion(method, ishaAngle)*night)

	maghribAngle := fallbackMaghribAngle
	if c.Maghrib.Kind == Angle {
		maghribAngle = c.Maghrib.Value
	}
	t.Maghrib = clampAfter(t.Maghrib, t.Sunset.Hours, nightPortion(method, maghribAngle)*night)

	return t
}

// clampBefore keeps r no more than limit hours before base.
func clampBefore(r solver.Result, base, limit float64) solver.Result {
	if !r.OK || timeutil.HourDiff(r.Hours, base) > limit {
		return solver.Solved(base - limit)
	}
	return r
}

// clampAfter keeps r no more than limit hours after base.
func clampAfter(r solver.Result, base, limit float64) solver.Result {
	if !r.OK || timeutil.HourDiff(base, r.Hours) > limit {
		return solver.Solved(base + limit)
	}
	return r
}
