package praytime

import (
	"encoding/json"
	"fmt"
	"time"

	"cloudeng.io/datetime"

	"github.com/thurmanmarka/praytime/internal/prayer"
	"github.com/thurmanmarka/praytime/internal/solver"
	"github.com/thurmanmarka/praytime/internal/timeutil"
)

// Prayer names one of the daily times.
type Prayer int

const (
	Fajr Prayer = iota
	Sunrise
	Dhuhr
	Asr
	Sunset
	Maghrib
	Isha
	Midnight
)

var prayerNames = [...]string{"Fajr", "Sunrise", "Dhuhr", "Asr", "Sunset", "Maghrib", "Isha", "Midnight"}

func (p Prayer) String() string {
	if p < 0 || int(p) >= len(prayerNames) {
		return fmt.Sprintf("Prayer(%d)", int(p))
	}
	return prayerNames[p]
}

// Prayers lists every Prayer in chronological order for a normal day.
func Prayers() []Prayer {
	return []Prayer{Fajr, Sunrise, Dhuhr, Asr, Sunset, Maghrib, Isha, Midnight}
}

// ClockTime is a time of day rounded to the minute. OK is false when the
// time does not occur on the date.
type ClockTime struct {
	Clock datetime.TimeOfDay
	OK    bool
}

// clockTime rounds fractional hours to the nearest minute in [00:00, 24:00).
func clockTime(r solver.Result) ClockTime {
	if !r.OK {
		return ClockTime{}
	}
	h, m := timeutil.ClockHM(r.Hours)
	return ClockTime{Clock: datetime.NewTimeOfDay(h, m, 0), OK: true}
}

func (c ClockTime) Hour() int   { return c.Clock.Hour() }
func (c ClockTime) Minute() int { return c.Clock.Minute() }

// String returns "HH:MM", or "-----" when the time does not occur.
func (c ClockTime) String() string {
	if !c.OK {
		return "-----"
	}
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Clock12 splits c into a zero-padded 12-hour "hh:mm" and "AM" or "PM".
// Both are "-----" and "" when the time does not occur.
func (c ClockTime) Clock12() (hhmm, period string) {
	if !c.OK {
		return "-----", ""
	}
	h := c.Hour()
	period = "AM"
	if h >= 12 {
		period = "PM"
	}
	if h = h % 12; h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d", h, c.Minute()), period
}

// Duration returns the time since midnight.
func (c ClockTime) Duration() time.Duration {
	return c.Clock.Duration()
}

// On returns c on the calendar day of date, in date's location.
func (c ClockTime) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, date.Location())
}

// MarshalJSON encodes c as "HH:MM", or null when it does not occur.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	if !c.OK {
		return []byte("null"), nil
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts the output of MarshalJSON.
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ClockTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	var tod datetime.TimeOfDay
	if err := tod.Parse(s); err != nil {
		return err
	}
	*c = ClockTime{Clock: tod, OK: true}
	return nil
}

// Times are the prayer times for one calendar day.
type Times struct {
	Date     time.Time `json:"date"` // local midnight of the day
	Fajr     ClockTime `json:"fajr"`
	Sunrise  ClockTime `json:"sunrise"`
	Dhuhr    ClockTime `json:"dhuhr"`
	Asr      ClockTime `json:"asr"`
	Sunset   ClockTime `json:"sunset"`
	Maghrib  ClockTime `json:"maghrib"`
	Isha     ClockTime `json:"isha"`
	Midnight ClockTime `json:"midnight"`
}

func newTimes(date time.Time, t prayer.Times) Times {
	return Times{
		Date:     date,
		Fajr:     clockTime(t.Fajr),
		Sunrise:  clockTime(t.Sunrise),
		Dhuhr:    clockTime(t.Dhuhr),
		Asr:      clockTime(t.Asr),
		Sunset:   clockTime(t.Sunset),
		Maghrib:  clockTime(t.Maghrib),
		Isha:     clockTime(t.Isha),
		Midnight: clockTime(t.Midnight),
	}
}

// Get returns the time of p.
func (t Times) Get(p Prayer) ClockTime {
	switch p {
	case Fajr:
		return t.Fajr
	case Sunrise:
		return t.Sunrise
	case Dhuhr:
		return t.Dhuhr
	case Asr:
		return t.Asr
	case Sunset:
		return t.Sunset
	case Maghrib:
		return t.Maghrib
	case Isha:
		return t.Isha
	case Midnight:
		return t.Midnight
	default:
		return ClockTime{}
	}
}

// Each calls fn for every time in Prayers order.
func (t Times) Each(fn func(Prayer, ClockTime)) {
	for _, p := range Prayers() {
		fn(p, t.Get(p))
	}
}
