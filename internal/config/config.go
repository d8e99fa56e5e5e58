// Package config loads the settings shared by the praytime binaries from
// the environment, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/errors"
	"github.com/joho/godotenv"

	"github.com/thurmanmarka/praytime"
)

// Config holds environment-based settings.
type Config struct {
	ServerAddress string
	LogLevel      string
	LogFormat     string
	CORSOrigins   []string

	// Defaults for requests that do not name their own.
	Coordinates praytime.Coordinates
	HasLocation bool
	Location    *time.Location
	Calc        praytime.Config
}

// Load reads the PRAYTIME_* variables. Files named in envFiles are loaded
// first without overriding variables already set; a missing file is not an
// error. Every invalid variable is reported.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{
		ServerAddress: getenv("PRAYTIME_ADDR", ":8080"),
		LogLevel:      getenv("PRAYTIME_LOG_LEVEL", "info"),
		LogFormat:     getenv("PRAYTIME_LOG_FORMAT", "console"),
		CORSOrigins:   splitList(getenv("PRAYTIME_CORS_ORIGINS", "*")),
	}

	errs := &errors.M{}
	var err error

	if cfg.Calc.Method, err = praytime.ParseMethod(getenv("PRAYTIME_METHOD", "MWL")); err != nil {
		errs.Append(fmt.Errorf("PRAYTIME_METHOD: %w", err))
	}
	if cfg.Calc.Asr, err = praytime.ParseAsr(getenv("PRAYTIME_ASR", "shafii")); err != nil {
		errs.Append(fmt.Errorf("PRAYTIME_ASR: %w", err))
	}
	if cfg.Calc.HighLat, err = praytime.ParseHighLat(getenv("PRAYTIME_HIGHLAT", "none")); err != nil {
		errs.Append(fmt.Errorf("PRAYTIME_HIGHLAT: %w", err))
	}
	if cfg.Calc.Midnight, err = praytime.ParseMidnight(getenv("PRAYTIME_MIDNIGHT", "standard")); err != nil {
		errs.Append(fmt.Errorf("PRAYTIME_MIDNIGHT: %w", err))
	}
	if cfg.Calc.Offsets, err = praytime.ParseOffsets(os.Getenv("PRAYTIME_OFFSETS")); err != nil {
		errs.Append(fmt.Errorf("PRAYTIME_OFFSETS: %w", err))
	}
	if cfg.Location, err = time.LoadLocation(getenv("PRAYTIME_TZ", "Local")); err != nil {
		errs.Append(fmt.Errorf("PRAYTIME_TZ: %w", err))
	}

	lat, latSet := os.LookupEnv("PRAYTIME_LAT")
	lon, lonSet := os.LookupEnv("PRAYTIME_LON")
	switch {
	case latSet && lonSet:
		cfg.HasLocation = true
		cfg.Coordinates.Lat = parseFloat(errs, "PRAYTIME_LAT", lat)
		cfg.Coordinates.Lon = parseFloat(errs, "PRAYTIME_LON", lon)
	case latSet || lonSet:
		errs.Append(fmt.Errorf("PRAYTIME_LAT and PRAYTIME_LON must be set together"))
	}
	if elev, ok := os.LookupEnv("PRAYTIME_ELEV"); ok {
		cfg.Coordinates.Elevation = parseFloat(errs, "PRAYTIME_ELEV", elev)
	}
	if cfg.HasLocation {
		errs.Append(cfg.Coordinates.Validate())
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseFloat(errs *errors.M, key, val string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		errs.Append(fmt.Errorf("%s: %w", key, err))
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
