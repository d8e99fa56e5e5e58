package praytime

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloudeng.io/datetime"
)

func TestParsePolicies(t *testing.T) {
	asr := map[string]AsrJuristic{"": AsrShafii, "Shafii": AsrShafii, "standard": AsrShafii, "HANAFI": AsrHanafi}
	for in, want := range asr {
		if got, err := ParseAsr(in); err != nil || got != want {
			t.Errorf("ParseAsr(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseAsr("maliki"); !errors.Is(err, ErrInvalidAsr) {
		t.Errorf("ParseAsr(maliki) error = %v", err)
	}

	for _, h := range []HighLatMethod{HighLatNone, HighLatAngleBased, HighLatMidNight, HighLatOneSeventh} {
		if got, err := ParseHighLat(h.String()); err != nil || got != h {
			t.Errorf("ParseHighLat(%q) = %v, %v", h.String(), got, err)
		}
	}
	if _, err := ParseHighLat("nearest"); !errors.Is(err, ErrInvalidHighLat) {
		t.Errorf("ParseHighLat(nearest) error = %v", err)
	}

	if got, _ := ParseMidnight("Jafari"); got != MidnightJafari {
		t.Errorf("ParseMidnight(Jafari) = %v", got)
	}
	if _, err := ParseMidnight("noon"); !errors.Is(err, ErrInvalidMidnight) {
		t.Errorf("ParseMidnight(noon) error = %v", err)
	}
}

func TestParseOffsets(t *testing.T) {
	tests := []struct {
		in   string
		want Offsets
		err  error
	}{
		{"", Offsets{}, nil},
		{"5", Offsets{Fajr: 5}, nil},
		{"5, 0 ,-2", Offsets{Fajr: 5, Asr: -2}, nil},
		{"1,2,3,4,5", Offsets{1, 2, 3, 4, 5}, nil},
		{",,,,2.5", Offsets{Isha: 2.5}, nil},
		{"1,2,3,4,5,6", Offsets{}, ErrTooManyOffsets},
	}
	for _, tt := range tests {
		got, err := ParseOffsets(tt.in)
		if tt.err != nil {
			if !errors.Is(err, tt.err) {
				t.Errorf("ParseOffsets(%q) error = %v, want %v", tt.in, err, tt.err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseOffsets(%q) = %+v, %v; want %+v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseOffsets("a,b"); err == nil {
		t.Errorf("ParseOffsets(a,b) succeeded")
	}
}

func TestClockTime(t *testing.T) {
	tests := []struct {
		c      ClockTime
		str    string
		hhmm   string
		period string
		json   string
	}{
		{ClockTime{datetime.NewTimeOfDay(4, 1, 0), true}, "04:01", "04:01", "AM", `"04:01"`},
		{ClockTime{datetime.NewTimeOfDay(0, 5, 0), true}, "00:05", "12:05", "AM", `"00:05"`},
		{ClockTime{datetime.NewTimeOfDay(12, 0, 0), true}, "12:00", "12:00", "PM", `"12:00"`},
		{ClockTime{datetime.NewTimeOfDay(22, 28, 0), true}, "22:28", "10:28", "PM", `"22:28"`},
		{ClockTime{}, "-----", "-----", "", "null"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		hhmm, period := tt.c.Clock12()
		if hhmm != tt.hhmm || period != tt.period {
			t.Errorf("%s Clock12() = %q %q, want %q %q", tt.str, hhmm, period, tt.hhmm, tt.period)
		}
		b, err := json.Marshal(tt.c)
		if err != nil || string(b) != tt.json {
			t.Errorf("%s json = %s, %v; want %s", tt.str, b, err, tt.json)
		}
		var back ClockTime
		if err := json.Unmarshal(b, &back); err != nil || back != tt.c {
			t.Errorf("%s unmarshal = %+v, %v", tt.str, back, err)
		}
	}

	loc := time.FixedZone("X", 3*3600)
	c := ClockTime{datetime.NewTimeOfDay(17, 18, 0), true}
	got := c.On(time.Date(2015, time.August, 3, 9, 30, 0, 0, loc))
	want := time.Date(2015, time.August, 3, 17, 18, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("On() = %v, want %v", got, want)
	}
	if c.Duration() != 17*time.Hour+18*time.Minute {
		t.Errorf("Duration() = %v", c.Duration())
	}
}
