package sun

import (
	"math"
	"testing"

	"github.com/mooncaker816/learnmeeus/v3/solstice"

	"github.com/thurmanmarka/praytime/internal/timeutil"
)

// eqtMinutes reduces the equation of time to (-12h, 12h] and converts to minutes.
func eqtMinutes(p Position) float64 {
	return (timeutil.FixHour(p.Equation+12) - 12) * 60
}

func TestDeclinationAtSolsticesAndEquinoxes(t *testing.T) {
	const tol = 0.05 // degrees

	for _, year := range []int{2000, 2015, 2024, 2030} {
		cases := []struct {
			name string
			jde  float64
			want float64
		}{
			{"March", solstice.March(year), 0},
			{"June", solstice.June(year), 23.44},
			{"September", solstice.September(year), 0},
			{"December", solstice.December(year), -23.44},
		}

		for _, c := range cases {
			p := PositionAt(c.jde)
			if math.Abs(p.Declination-c.want) > tol {
				t.Errorf("%d %s: declination = %.4f, want %.2f ± %.2f",
					year, c.name, p.Declination, c.want, tol)
			}
		}
	}
}

func TestEquationOfTime(t *testing.T) {
	tests := []struct {
		name    string
		jd      float64
		wantMin float64
	}{
		// Extremes of the equation of time (apparent minus mean).
		{"2015-11-03", 2457329.5, 16.4},
		{"2015-02-11", 2457064.5, -14.2},
		{"2015-07-26", 2457229.5, -6.5},
		{"2015-05-14", 2457156.5, 3.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eqtMinutes(PositionAt(tt.jd))
			if math.Abs(got-tt.wantMin) > 0.5 {
				t.Errorf("equation of time = %.2f min, want %.1f ± 0.5", got, tt.wantMin)
			}
		})
	}
}

func TestEquationOfTimeBounded(t *testing.T) {
	start := 2457023.5 // 2015-01-01
	for i := 0; i < 366; i++ {
		m := eqtMinutes(PositionAt(start + float64(i)))
		if m < -15 || m > 17 {
			t.Fatalf("day %d: equation of time %.2f min outside [-15,17]", i, m)
		}
	}
}

func TestEquatorialAtJuneSolstice(t *testing.T) {
	eq := equatorial(meanElements(solstice.June(2024)))
	if math.Abs(eq.RA-90) > 0.1 {
		t.Errorf("RA at June solstice = %.4f, want ~90", eq.RA)
	}

	if eq.RA < 0 || eq.RA >= 360 {
		t.Errorf("RA %.4f outside [0,360)", eq.RA)
	}

	p := PositionAt(solstice.June(2024))
	if eq.Dec != p.Declination {
		t.Errorf("RA/Dec and PositionAt disagree on declination: %v vs %v", eq.Dec, p.Declination)
	}
}
