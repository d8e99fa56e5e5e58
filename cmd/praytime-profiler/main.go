package main

import (
	"encoding/csv"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thurmanmarka/praytime"
	"github.com/thurmanmarka/praytime/internal/logging"
)

// CSV format:
//
//	date,fajr,sunrise,dhuhr,asr,maghrib,isha
//	2015-08-03,04:01,05:48,13:15,17:18,20:40,22:28
//
// - date is YYYY-MM-DD
// - times are local HH:MM (24-hour clock, am/pm suffix accepted) in -tz
// - an empty or "-----" cell means the reference has no time that day
func main() {
	var (
		lat      = flag.Float64("lat", 0, "latitude in degrees (north positive)")
		lon      = flag.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
		elev     = flag.Float64("elev", 0, "elevation in meters")
		tzName   = flag.String("tz", "UTC", "IANA time zone name of the reference times")
		method   = flag.String("method", "MWL", "calculation method")
		asr      = flag.String("asr", "shafii", "asr juristic method: shafii or hanafi")
		highlat  = flag.String("highlat", "none", "high latitude method")
		midnight = flag.String("midnight", "standard", "midnight method: standard or jafari")
		offsets  = flag.String("offsets", "", "manual minutes for fajr,dhuhr,asr,maghrib,isha, as published with the reference")
		refCSV   = flag.String("refcsv", "", "path to reference timetable CSV")
		outCSV   = flag.String("outcsv", "", "optional path to write per-row signed errors")
		logLevel = flag.String("log-level", "info", "debug, info, warn or error")
	)
	flag.Parse()
	logging.Setup(*logLevel, "console", os.Stderr)

	if *refCSV == "" {
		log.Fatal().Msg("missing -refcsv (path to reference CSV)")
	}
	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		log.Fatal().Err(err).Str("tz", *tzName).Msg("failed to load timezone")
	}

	cfg, err := settings{
		method:   *method,
		asr:      *asr,
		highlat:  *highlat,
		midnight: *midnight,
		offsets:  *offsets,
	}.config()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}
	if *lat == 0 && *lon == 0 {
		log.Warn().Msg("lat=0 lon=0 (Gulf of Guinea). Did you mean to set -lat/-lon?")
	}
	calc, err := praytime.New(praytime.Coordinates{Lat: *lat, Lon: *lon, Elevation: *elev}, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}

	f, err := os.Open(*refCSV)
	if err != nil {
		log.Fatal().Err(err).Str("path", *refCSV).Msg("failed to open refcsv")
	}
	defer f.Close()

	rep, err := profile(calc, loc, f)
	if err != nil {
		log.Fatal().Err(err).Msg("profile")
	}

	if *outCSV != "" {
		out, err := os.Create(*outCSV)
		if err != nil {
			log.Fatal().Err(err).Str("path", *outCSV).Msg("failed to create outcsv")
		}
		if err := writeRows(csv.NewWriter(out), rep); err != nil {
			log.Fatal().Err(err).Msg("failed to write outcsv")
		}
		if err := out.Close(); err != nil {
			log.Fatal().Err(err).Msg("failed to close outcsv")
		}
	}

	printSummary(os.Stdout, calc, loc, rep)
}
