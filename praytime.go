// Package praytime computes the daily Islamic prayer times for a location
// and date from a low-precision solar model.
//
// Times are computed for Fajr, Sunrise, Dhuhr, Asr, Sunset, Maghrib, Isha
// and the midpoint of the night. Each named convention (see Method) fixes
// the twilight angles used for Fajr and Isha; Asr follows the selected
// juristic shadow factor; high-latitude policies bound the twilight times
// where the Sun never gets deep enough below the horizon.
//
// A time that cannot occur on a date (the Sun never reaches the angle) is
// reported with ClockTime.OK == false rather than as an error.
package praytime

import (
	"fmt"
	"math"
	"time"

	"cloudeng.io/errors"

	"github.com/thurmanmarka/praytime/internal/prayer"
	"github.com/thurmanmarka/praytime/internal/timeutil"
)

var (
	// ErrUnknownMethod is returned for a Method outside the catalog.
	ErrUnknownMethod = errors.New("unknown calculation method")

	// ErrInvalidCoordinates is returned for a latitude or longitude out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrInvalidAsr is returned for an unknown Asr juristic method.
	ErrInvalidAsr = errors.New("invalid asr juristic method")

	// ErrInvalidHighLat is returned for an unknown high-latitude policy.
	ErrInvalidHighLat = errors.New("invalid high latitude method")

	// ErrInvalidMidnight is returned for an unknown midnight method.
	ErrInvalidMidnight = errors.New("invalid midnight method")

	// ErrInvalidParams is returned for convention parameters out of range.
	ErrInvalidParams = errors.New("invalid method parameters")

	// ErrTooManyOffsets is returned by ParseOffsets for more than five values.
	ErrTooManyOffsets = errors.New("too many offsets")
)

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat       float64 // degrees, north positive
	Lon       float64 // degrees, east positive (west negative, e.g. -122 for 122°W)
	Elevation float64 // meters above sea level, >= 0; lowers the apparent horizon
}

// Validate reports whether c is a position on Earth.
func (c Coordinates) Validate() error {
	errs := &errors.M{}
	if !(c.Lat >= -90 && c.Lat <= 90) {
		errs.Append(fmt.Errorf("%w: latitude %v not in [-90, 90]", ErrInvalidCoordinates, c.Lat))
	}
	if !(c.Lon >= -180 && c.Lon <= 180) {
		errs.Append(fmt.Errorf("%w: longitude %v not in [-180, 180]", ErrInvalidCoordinates, c.Lon))
	}
	if !(c.Elevation >= 0) || math.IsInf(c.Elevation, 0) {
		errs.Append(fmt.Errorf("%w: elevation %v not a finite value >= 0", ErrInvalidCoordinates, c.Elevation))
	}
	return errs.Err()
}

// AsrJuristic selects the shadow factor used for Asr.
type AsrJuristic int

const (
	// AsrShafii is the standard method (Shafi'i, Maliki, Ja'fari, Hanbali):
	// shadow length equals object length plus the noon shadow.
	AsrShafii AsrJuristic = iota
	// AsrHanafi uses twice the object length.
	AsrHanafi
)

func (a AsrJuristic) factor() int {
	if a == AsrHanafi {
		return 2
	}
	return 1
}

func (a AsrJuristic) String() string {
	switch a {
	case AsrShafii:
		return "shafii"
	case AsrHanafi:
		return "hanafi"
	default:
		return fmt.Sprintf("AsrJuristic(%d)", int(a))
	}
}

// HighLatMethod selects how Fajr, Maghrib and Isha are bounded at high
// latitudes.
type HighLatMethod int

const (
	// HighLatNone leaves the times as solved.
	HighLatNone HighLatMethod = iota
	// HighLatAngleBased allows angle/60 of the night.
	HighLatAngleBased
	// HighLatMidNight allows half of the night.
	HighLatMidNight
	// HighLatOneSeventh allows one seventh of the night.
	HighLatOneSeventh
)

var highLatNames = map[HighLatMethod]string{
	HighLatNone:       "none",
	HighLatAngleBased: "anglebased",
	HighLatMidNight:   "midnight",
	HighLatOneSeventh: "oneseventh",
}

func (h HighLatMethod) String() string {
	if n, ok := highLatNames[h]; ok {
		return n
	}
	return fmt.Sprintf("HighLatMethod(%d)", int(h))
}

// MidnightMethod selects the night whose midpoint is reported as Midnight.
type MidnightMethod int

const (
	// MidnightStandard is the midpoint of Sunset and Sunrise.
	MidnightStandard MidnightMethod = iota
	// MidnightJafari is the midpoint of Sunset and Fajr.
	MidnightJafari
)

func (m MidnightMethod) String() string {
	switch m {
	case MidnightStandard:
		return "standard"
	case MidnightJafari:
		return "jafari"
	default:
		return fmt.Sprintf("MidnightMethod(%d)", int(m))
	}
}

// Offsets are manual adjustments, in minutes, added to the computed times.
// Sunrise, Sunset and Midnight are never adjusted.
type Offsets struct {
	Fajr    float64 `json:"fajr"`
	Dhuhr   float64 `json:"dhuhr"`
	Asr     float64 `json:"asr"`
	Maghrib float64 `json:"maghrib"`
	Isha    float64 `json:"isha"`
}

// Config selects the calculation convention and policies.
type Config struct {
	Method Method
	// Params, when non-nil, replaces the preset parameters of Method.
	Params   *Params
	Asr      AsrJuristic
	HighLat  HighLatMethod
	Midnight MidnightMethod
	Offsets  Offsets
}

// Calculator computes prayer times for a fixed location and Config. It is
// immutable and safe for concurrent use.
type Calculator struct {
	coords Coordinates
	method Method
	params Params
	in     prayer.Input
}

// New validates coords and cfg and returns a Calculator. Every invalid field
// is reported; errors.Is matches any of the sentinel errors involved.
func New(coords Coordinates, cfg Config) (*Calculator, error) {
	errs := &errors.M{}
	errs.Append(coords.Validate())

	params, err := ParamsFor(cfg.Method, cfg.Params)
	errs.Append(err)
	if err == nil {
		errs.Append(params.Validate())
	}
	if cfg.Asr != AsrShafii && cfg.Asr != AsrHanafi {
		errs.Append(fmt.Errorf("%w: %v", ErrInvalidAsr, cfg.Asr))
	}
	if _, ok := highLatNames[cfg.HighLat]; !ok {
		errs.Append(fmt.Errorf("%w: %v", ErrInvalidHighLat, cfg.HighLat))
	}
	if cfg.Midnight != MidnightStandard && cfg.Midnight != MidnightJafari {
		errs.Append(fmt.Errorf("%w: %v", ErrInvalidMidnight, cfg.Midnight))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	return &Calculator{
		coords: coords,
		method: cfg.Method,
		params: params,
		in: prayer.Input{
			Lat:        coords.Lat,
			Lon:        coords.Lon,
			Elevation:  coords.Elevation,
			Convention: convention(params),
			AsrFactor:  cfg.Asr.factor(),
			HighLat:    prayer.HighLat(cfg.HighLat),
			Midnight:   prayer.Midnight(cfg.Midnight),
			Offsets:    prayer.Offsets(cfg.Offsets),
		},
	}, nil
}

func convention(p Params) prayer.Convention {
	setting := func(s Setting) prayer.Setting {
		k := prayer.Angle
		if s.Kind == Minutes {
			k = prayer.Minutes
		}
		return prayer.Setting{Kind: k, Value: s.Value}
	}
	return prayer.Convention{
		Fajr:    p.Fajr,
		Maghrib: setting(p.Maghrib),
		Isha:    setting(p.Isha),
	}
}

// Coordinates returns the observer location.
func (c *Calculator) Coordinates() Coordinates { return c.coords }

// Method returns the configured calculation method.
func (c *Calculator) Method() Method { return c.method }

// Params returns the effective convention parameters.
func (c *Calculator) Params() Params { return c.params }

// TimesFor returns the prayer times for the calendar day of date, in
// date.Location(). The UTC offset in effect at local noon is used, so
// daylight saving time is honored.
func (c *Calculator) TimesFor(date time.Time) Times {
	return c.TimesWithOffset(date, timeutil.OffsetHours(date, date.Location()))
}

// TimesWithOffset returns the prayer times for the calendar day of date with
// clock times expressed at tz hours from UTC.
func (c *Calculator) TimesWithOffset(date time.Time, tz float64) Times {
	year, month, day := date.Date()
	day0 := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	in := c.in
	in.JD = timeutil.JulianDay(day0) - c.coords.Lon/(15*24)
	in.TimeZone = tz

	return newTimes(time.Date(year, month, day, 0, 0, 0, 0, date.Location()), prayer.Compute(in))
}

// Month returns one Times per day of month in loc.
func (c *Calculator) Month(year int, month time.Month, loc *time.Location) []Times {
	first := time.Date(year, month, 1, 12, 0, 0, 0, loc)
	days := first.AddDate(0, 1, -1).Day()
	out := make([]Times, 0, days)
	for d := 0; d < days; d++ {
		out = append(out, c.TimesFor(first.AddDate(0, 0, d)))
	}
	return out
}

// PrayerTimes is a convenience wrapper for a single day.
func PrayerTimes(coords Coordinates, date time.Time, cfg Config) (Times, error) {
	c, err := New(coords, cfg)
	if err != nil {
		return Times{}, err
	}
	return c.TimesFor(date), nil
}
