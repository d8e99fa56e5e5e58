package praytime

import (
	"fmt"
	"math"
	"strings"

	"cloudeng.io/errors"
)

// Method identifies a named calculation convention.
type Method int

const (
	// MWL is the Muslim World League.
	MWL Method = iota
	// ISNA is the Islamic Society of North America.
	ISNA
	// Egypt is the Egyptian General Authority of Survey.
	Egypt
	// Makkah is Umm al-Qura University, Makkah.
	Makkah
	// Karachi is the University of Islamic Sciences, Karachi.
	Karachi
	// Jafari is the Shia Ithna Ashari, Leva Research Institute, Qum.
	Jafari
	// Kemenag is the Ministry of Religious Affairs, Indonesia.
	Kemenag
	// Custom uses caller supplied Params.
	Custom
)

var methodNames = map[Method]string{
	MWL:     "MWL",
	ISNA:    "ISNA",
	Egypt:   "Egypt",
	Makkah:  "Makkah",
	Karachi: "Karachi",
	Jafari:  "Jafari",
	Kemenag: "Kemenag",
	Custom:  "Custom",
}

func (m Method) String() string {
	if n, ok := methodNames[m]; ok {
		return n
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Kind says whether a Setting is an angle or a number of minutes.
type Kind int

const (
	// Angle is a depression angle below the horizon, in degrees.
	Angle Kind = iota
	// Minutes is a delay: Maghrib after Sunset, Isha after Maghrib.
	Minutes
)

func (k Kind) String() string {
	switch k {
	case Angle:
		return "angle"
	case Minutes:
		return "minutes"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText encodes k by name.
func (k Kind) MarshalText() ([]byte, error) {
	if k != Angle && k != Minutes {
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidParams, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText accepts "angle" and "minutes".
func (k *Kind) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "angle":
		*k = Angle
	case "minutes":
		*k = Minutes
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidParams, b)
	}
	return nil
}

// Setting is the Maghrib or Isha parameter of a convention.
type Setting struct {
	Kind  Kind    `json:"kind"`
	Value float64 `json:"value"`
}

// Degrees returns an angle Setting.
func Degrees(v float64) Setting { return Setting{Kind: Angle, Value: v} }

// After returns a minutes Setting.
func After(minutes float64) Setting { return Setting{Kind: Minutes, Value: minutes} }

// Params are the numeric parameters of a calculation convention.
type Params struct {
	// Imsak is minutes before Fajr. Carried as data; not computed.
	Imsak   float64 `json:"imsak"`
	Fajr    float64 `json:"fajr"` // degrees below the horizon
	Maghrib Setting `json:"maghrib"`
	Isha    Setting `json:"isha"`
}

// Validate reports every parameter outside its domain.
func (p Params) Validate() error {
	errs := &errors.M{}
	if !(p.Fajr > 0 && p.Fajr < 90) {
		errs.Append(fmt.Errorf("%w: fajr angle %v not in (0, 90)", ErrInvalidParams, p.Fajr))
	}
	if p.Imsak < 0 || math.IsNaN(p.Imsak) {
		errs.Append(fmt.Errorf("%w: imsak minutes %v negative", ErrInvalidParams, p.Imsak))
	}
	errs.Append(p.Maghrib.validate("maghrib"))
	errs.Append(p.Isha.validate("isha"))
	return errs.Err()
}

func (s Setting) validate(name string) error {
	switch s.Kind {
	case Angle:
		if !(s.Value >= 0 && s.Value < 90) {
			return fmt.Errorf("%w: %s angle %v not in [0, 90)", ErrInvalidParams, name, s.Value)
		}
	case Minutes:
		if !(s.Value >= 0) {
			return fmt.Errorf("%w: %s minutes %v negative", ErrInvalidParams, name, s.Value)
		}
	default:
		return fmt.Errorf("%w: %s kind %v", ErrInvalidParams, name, s.Kind)
	}
	return nil
}

var presets = map[Method]Params{
	MWL:     {Imsak: 10, Fajr: 18, Maghrib: After(0), Isha: Degrees(17)},
	ISNA:    {Imsak: 10, Fajr: 15, Maghrib: After(0), Isha: Degrees(15)},
	Egypt:   {Imsak: 10, Fajr: 19.5, Maghrib: After(0), Isha: Degrees(17.5)},
	Makkah:  {Imsak: 10, Fajr: 19, Maghrib: After(0), Isha: After(90)},
	Karachi: {Imsak: 10, Fajr: 18, Maghrib: After(0), Isha: Degrees(18)},
	Jafari:  {Imsak: 10, Fajr: 16, Maghrib: Degrees(4), Isha: Degrees(14)},
	Kemenag: {Imsak: 10, Fajr: 20, Maghrib: Degrees(0), Isha: Degrees(18)},
	// Used when Custom is selected without Params.
	Custom: {Imsak: 10, Fajr: 18, Maghrib: After(0), Isha: Degrees(17)},
}

// ParamsFor returns the parameters for m. Non-nil custom params take
// precedence over any preset.
func ParamsFor(m Method, custom *Params) (Params, error) {
	if custom != nil {
		return *custom, nil
	}
	p, ok := presets[m]
	if !ok {
		return Params{}, fmt.Errorf("%w: %v", ErrUnknownMethod, m)
	}
	return p, nil
}

// Methods returns the built-in conventions in a stable order.
func Methods() []Method {
	return []Method{MWL, ISNA, Egypt, Makkah, Karachi, Jafari, Kemenag}
}

// ParseMethod returns the Method named s, ignoring case.
func ParseMethod(s string) (Method, error) {
	name := strings.TrimSpace(s)
	for m, n := range methodNames {
		if strings.EqualFold(n, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}
