package praytime

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAsr accepts "shafii" (or "standard") and "hanafi".
func ParseAsr(s string) (AsrJuristic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shafii", "standard", "":
		return AsrShafii, nil
	case "hanafi":
		return AsrHanafi, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAsr, s)
}

// ParseHighLat accepts the names printed by HighLatMethod.String.
func ParseHighLat(s string) (HighLatMethod, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return HighLatNone, nil
	}
	for h, n := range highLatNames {
		if n == name {
			return h, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidHighLat, s)
}

// ParseMidnight accepts "standard" and "jafari".
func ParseMidnight(s string) (MidnightMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "":
		return MidnightStandard, nil
	case "jafari":
		return MidnightJafari, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMidnight, s)
}

// ParseOffsets parses up to five comma separated minute values in the order
// fajr, dhuhr, asr, maghrib, isha. Missing trailing values are zero.
func ParseOffsets(s string) (Offsets, error) {
	var o Offsets
	s = strings.TrimSpace(s)
	if s == "" {
		return o, nil
	}
	fields := []*float64{&o.Fajr, &o.Dhuhr, &o.Asr, &o.Maghrib, &o.Isha}
	parts := strings.Split(s, ",")
	if len(parts) > len(fields) {
		return Offsets{}, fmt.Errorf("%w: got %d, want at most %d", ErrTooManyOffsets, len(parts), len(fields))
	}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return Offsets{}, fmt.Errorf("offset %d: %w", i+1, err)
		}
		*fields[i] = v
	}
	return o, nil
}
