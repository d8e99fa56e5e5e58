package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thurmanmarka/praytime"
	"github.com/thurmanmarka/praytime/internal/config"
	"github.com/thurmanmarka/praytime/internal/logging"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logging.Setup("info", "console", os.Stderr)
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	// No args or a leading flag runs the single day mode; otherwise the
	// first arg is a subcommand.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		runDay(cfg, os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "month":
		runMonth(cfg, os.Args[2:])
	case "methods":
		runMethods(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `praytime – daily prayer times

Usage:
  praytime [flags]             # times for one day (default mode)
  praytime month [flags]       # timetable for a month
  praytime methods [-json]     # list calculation methods

Common flags:
  -lat, -lon, -elev   observer location (defaults from PRAYTIME_LAT/LON/ELEV)
  -tz                 IANA time zone (default PRAYTIME_TZ or Local)
  -method             MWL, ISNA, Egypt, Makkah, Karachi, Jafari, Kemenag
  -asr                shafii or hanafi
  -highlat            none, anglebased, midnight or oneseventh
  -midnight           standard or jafari
  -offsets            minutes for fajr,dhuhr,asr,maghrib,isha (e.g. "2,0,0,1")
  -json               output JSON

Run "praytime -h" or "praytime month -h" for the full flag list.
`)
}

// calcFlags holds the flags shared by the day and month modes.
type calcFlags struct {
	lat, lon, elev                         *float64
	tz, method, asr, highlat, midnight, off *string
	jsonOut                                *bool
}

func addCalcFlags(fs *flag.FlagSet, cfg *config.Config) *calcFlags {
	c := cfg.Calc
	return &calcFlags{
		lat:      fs.Float64("lat", cfg.Coordinates.Lat, "latitude in degrees (north positive)"),
		lon:      fs.Float64("lon", cfg.Coordinates.Lon, "longitude in degrees (east positive, west negative)"),
		elev:     fs.Float64("elev", cfg.Coordinates.Elevation, "elevation in meters above sea level"),
		tz:       fs.String("tz", cfg.Location.String(), "IANA time zone name (e.g. America/Los_Angeles)"),
		method:   fs.String("method", c.Method.String(), "calculation method"),
		asr:      fs.String("asr", c.Asr.String(), "asr juristic method: shafii or hanafi"),
		highlat:  fs.String("highlat", c.HighLat.String(), "high latitude method: none, anglebased, midnight, oneseventh"),
		midnight: fs.String("midnight", c.Midnight.String(), "midnight method: standard or jafari"),
		off:      fs.String("offsets", formatOffsets(c.Offsets), "manual minutes for fajr,dhuhr,asr,maghrib,isha"),
		jsonOut:  fs.Bool("json", false, "output result as JSON"),
	}
}

func formatOffsets(o praytime.Offsets) string {
	if o == (praytime.Offsets{}) {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g,%g,%g", o.Fajr, o.Dhuhr, o.Asr, o.Maghrib, o.Isha)
}

// calculator validates the flags and builds a Calculator.
func (f *calcFlags) calculator() (*praytime.Calculator, *time.Location) {
	loc, err := time.LoadLocation(*f.tz)
	if err != nil {
		log.Fatal().Err(err).Str("tz", *f.tz).Msg("invalid -tz")
	}

	var cfg praytime.Config
	if cfg.Method, err = praytime.ParseMethod(*f.method); err != nil {
		log.Fatal().Err(err).Msg("invalid -method")
	}
	if cfg.Asr, err = praytime.ParseAsr(*f.asr); err != nil {
		log.Fatal().Err(err).Msg("invalid -asr")
	}
	if cfg.HighLat, err = praytime.ParseHighLat(*f.highlat); err != nil {
		log.Fatal().Err(err).Msg("invalid -highlat")
	}
	if cfg.Midnight, err = praytime.ParseMidnight(*f.midnight); err != nil {
		log.Fatal().Err(err).Msg("invalid -midnight")
	}
	if cfg.Offsets, err = praytime.ParseOffsets(*f.off); err != nil {
		log.Fatal().Err(err).Msg("invalid -offsets")
	}

	if *f.lat == 0 && *f.lon == 0 {
		log.Warn().Msg("lat=0 lon=0 (Gulf of Guinea). Use -lat and -lon or PRAYTIME_LAT/PRAYTIME_LON to set a real location.")
	}
	coords := praytime.Coordinates{Lat: *f.lat, Lon: *f.lon, Elevation: *f.elev}

	calc, err := praytime.New(coords, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}
	log.Debug().
		Str("method", cfg.Method.String()).
		Str("asr", cfg.Asr.String()).
		Str("highlat", cfg.HighLat.String()).
		Str("tz", loc.String()).
		Msg("calculator ready")
	return calc, loc
}

// ---------------------
// Day (default) mode
// ---------------------

func runDay(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("praytime", flag.ExitOnError)
	cf := addCalcFlags(fs, cfg)
	dateS := fs.String("date", "", "date in YYYY-MM-DD (optional, defaults to today in -tz)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: praytime [flags]

Flags:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		log.Fatal().Err(err).Msg("failed to parse flags")
	}

	calc, loc := cf.calculator()

	var date time.Time
	if *dateS == "" {
		now := time.Now().In(loc)
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	} else {
		var err error
		date, err = time.ParseInLocation("2006-01-02", *dateS, loc)
		if err != nil {
			log.Fatal().Err(err).Str("date", *dateS).Msg("invalid -date")
		}
	}

	times := calc.TimesFor(date)
	times.Each(func(p praytime.Prayer, c praytime.ClockTime) {
		if !c.OK {
			log.Warn().Str("prayer", p.String()).Msg("time does not occur on this date; try -highlat")
		}
	})

	if *cf.jsonOut {
		printJSON(calc, loc, times)
	} else {
		printHuman(calc, loc, times)
	}
}

// ---------------------
// Month subcommand
// ---------------------

func runMonth(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("month", flag.ExitOnError)
	cf := addCalcFlags(fs, cfg)
	monthS := fs.String("month", "", "month in YYYY-MM (optional, defaults to the current month in -tz)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: praytime month [flags]

Flags:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		log.Fatal().Err(err).Msg("failed to parse flags")
	}

	calc, loc := cf.calculator()

	var first time.Time
	if *monthS == "" {
		now := time.Now().In(loc)
		first = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	} else {
		var err error
		first, err = time.ParseInLocation("2006-01", *monthS, loc)
		if err != nil {
			log.Fatal().Err(err).Str("month", *monthS).Msg("invalid -month")
		}
	}

	days := calc.Month(first.Year(), first.Month(), loc)
	if *cf.jsonOut {
		out := make([]jsonOutput, len(days))
		for i, t := range days {
			out[i] = newJSONOutput(calc, loc, t)
		}
		encode(out)
		return
	}

	c := calc.Coordinates()
	fmt.Printf("%s prayer times for lat=%.6f lon=%.6f (%s, %s)\n\n",
		first.Format("January 2006"), c.Lat, c.Lon, calc.Method(), loc)
	fmt.Printf("%-10s", "Date")
	for _, p := range praytime.Prayers() {
		fmt.Printf(" %-8s", p)
	}
	fmt.Println()
	for _, t := range days {
		fmt.Printf("%-10s", t.Date.Format("Mon 02"))
		t.Each(func(_ praytime.Prayer, c praytime.ClockTime) {
			fmt.Printf(" %-8s", c)
		})
		fmt.Println()
	}
}

// ---------------------
// Methods subcommand
// ---------------------

func runMethods(args []string) {
	fs := flag.NewFlagSet("methods", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "output result as JSON")
	if err := fs.Parse(args); err != nil {
		log.Fatal().Err(err).Msg("failed to parse flags")
	}

	type method struct {
		Name string `json:"name"`
		praytime.Params
	}
	var out []method
	for _, m := range praytime.Methods() {
		p, err := praytime.ParamsFor(m, nil)
		if err != nil {
			log.Fatal().Err(err).Msg("method catalog")
		}
		out = append(out, method{Name: m.String(), Params: p})
	}
	if *jsonOut {
		encode(out)
		return
	}
	fmt.Printf("%-8s %6s %-12s %-12s\n", "Method", "Fajr", "Maghrib", "Isha")
	for _, m := range out {
		fmt.Printf("%-8s %6g %-12s %-12s\n", m.Name, m.Fajr, setting(m.Maghrib), setting(m.Isha))
	}
}

func setting(s praytime.Setting) string {
	if s.Kind == praytime.Minutes {
		return fmt.Sprintf("+%g min", s.Value)
	}
	return fmt.Sprintf("%g°", s.Value)
}

// ---------------------
// Shared helpers
// ---------------------

func printHuman(calc *praytime.Calculator, loc *time.Location, t praytime.Times) {
	c := calc.Coordinates()
	fmt.Printf("Prayer times for lat=%.6f lon=%.6f\n", c.Lat, c.Lon)
	fmt.Printf("Date: %s (%s), method %s\n\n", t.Date.Format("2006-01-02"), loc, calc.Method())
	t.Each(func(p praytime.Prayer, ct praytime.ClockTime) {
		fmt.Printf("%-9s %s\n", p.String()+":", ct)
	})
}

type jsonOutput struct {
	Latitude  float64                       `json:"latitude"`
	Longitude float64                       `json:"longitude"`
	Date      string                        `json:"date"` // YYYY-MM-DD
	Timezone  string                        `json:"timezone"`
	Method    string                        `json:"method"`
	Timings   map[string]praytime.ClockTime `json:"timings"`
}

func newJSONOutput(calc *praytime.Calculator, loc *time.Location, t praytime.Times) jsonOutput {
	c := calc.Coordinates()
	out := jsonOutput{
		Latitude:  c.Lat,
		Longitude: c.Lon,
		Date:      t.Date.Format("2006-01-02"),
		Timezone:  loc.String(),
		Method:    calc.Method().String(),
		Timings:   map[string]praytime.ClockTime{},
	}
	t.Each(func(p praytime.Prayer, ct praytime.ClockTime) {
		out.Timings[strings.ToLower(p.String())] = ct
	})
	return out
}

func printJSON(calc *praytime.Calculator, loc *time.Location, t praytime.Times) {
	encode(newJSONOutput(calc, loc, t))
}

func encode(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatal().Err(err).Msg("failed to encode JSON")
	}
}
