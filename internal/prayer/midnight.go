package prayer

import (
	"github.com/thurmanmarka/praytime/internal/solver"
	"github.com/thurmanmarka/praytime/internal/timeutil"
)

// midnight returns the midpoint of the night that starts at Sunset.
func midnight(m Midnight, t Times) solver.Result {
	end := t.Sunrise
	if m == MidnightJafari {
		end = t.Fajr
	}
	if !t.Sunset.OK || !end.OK {
		return solver.Unsolved
	}
	return solver.Solved(t.Sunset.Hours + timeutil.HourDiff(t.Sunset.Hours, end.Hours)/2)
}
