package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"cloudeng.io/datetime"
	"cloudeng.io/errors"
	"github.com/rs/zerolog/log"

	"github.com/thurmanmarka/praytime"
)

// settings are the calculation flags, as given on the command line.
type settings struct {
	method, asr, highlat, midnight, offsets string
}

// config parses s, reporting every invalid flag.
func (s settings) config() (praytime.Config, error) {
	var cfg praytime.Config
	var err error
	errs := &errors.M{}
	if cfg.Method, err = praytime.ParseMethod(s.method); err != nil {
		errs.Append(fmt.Errorf("-method: %w", err))
	}
	if cfg.Asr, err = praytime.ParseAsr(s.asr); err != nil {
		errs.Append(fmt.Errorf("-asr: %w", err))
	}
	if cfg.HighLat, err = praytime.ParseHighLat(s.highlat); err != nil {
		errs.Append(fmt.Errorf("-highlat: %w", err))
	}
	if cfg.Midnight, err = praytime.ParseMidnight(s.midnight); err != nil {
		errs.Append(fmt.Errorf("-midnight: %w", err))
	}
	if cfg.Offsets, err = praytime.ParseOffsets(s.offsets); err != nil {
		errs.Append(fmt.Errorf("-offsets: %w", err))
	}
	return cfg, errs.Err()
}

// columns of the reference CSV after the date.
var columns = []praytime.Prayer{
	praytime.Fajr, praytime.Sunrise, praytime.Dhuhr, praytime.Asr, praytime.Maghrib, praytime.Isha,
}

type stats struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.sum += v
	s.count++
}

func (s *stats) avg() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// prayerStats accumulates absolute and signed (ours - reference) errors.
type prayerStats struct {
	abs    stats
	signed stats
}

// rowResult is the comparison for one reference day.
type rowResult struct {
	date   string
	signed map[praytime.Prayer]float64 // NaN when either side is missing
}

type report struct {
	rows    int
	skipped int
	stats   map[praytime.Prayer]*prayerStats
	results []rowResult
}

// diffMinutesSigned returns got - ref in minutes, wrapped into [-720, 720)
// so a reference just after midnight compares with a time just before it.
func diffMinutesSigned(got praytime.ClockTime, ref datetime.TimeOfDay) float64 {
	if !got.OK {
		return math.NaN()
	}
	d := (got.Duration() - ref.Duration()).Minutes()
	return math.Mod(d+720+1440, 1440) - 720
}

// profile compares calc against every row of a reference CSV in loc.
func profile(calc *praytime.Calculator, loc *time.Location, in io.Reader) (*report, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1 // allow variable, we validate
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file")
	}

	// If first row looks like a header, skip it.
	start := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		start = 1
	}

	rep := &report{stats: map[praytime.Prayer]*prayerStats{}}
	for _, p := range columns {
		rep.stats[p] = &prayerStats{}
	}

	for i := start; i < len(records); i++ {
		row := records[i]
		rep.rows++

		if len(row) < 1+len(columns) {
			log.Warn().Int("row", i+1).Int("columns", len(row)).Msg("expected date,fajr,sunrise,dhuhr,asr,maghrib,isha; skipping")
			rep.skipped++
			continue
		}
		dateStr := strings.TrimSpace(row[0])
		date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
		if err != nil {
			log.Warn().Int("row", i+1).Err(err).Str("date", dateStr).Msg("invalid date; skipping")
			rep.skipped++
			continue
		}

		got := calc.TimesFor(date)
		res := rowResult{date: dateStr, signed: map[praytime.Prayer]float64{}}
		for j, p := range columns {
			field := strings.TrimSpace(row[j+1])
			if field == "" || field == "-----" {
				res.signed[p] = math.NaN()
				continue
			}
			var ref datetime.TimeOfDay
			if err := ref.Parse(field); err != nil {
				log.Warn().Int("row", i+1).Str("prayer", p.String()).Str("value", field).Err(err).Msg("invalid time")
				res.signed[p] = math.NaN()
				continue
			}
			d := diffMinutesSigned(got.Get(p), ref)
			res.signed[p] = d
			rep.stats[p].signed.add(d)
			rep.stats[p].abs.add(math.Abs(d))
		}
		rep.results = append(rep.results, res)
	}
	return rep, nil
}

func writeRows(w *csv.Writer, rep *report) error {
	header := []string{"date"}
	for _, p := range columns {
		header = append(header, strings.ToLower(p.String())+"_signed")
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, res := range rep.results {
		rec := []string{res.date}
		for _, p := range columns {
			if v := res.signed[p]; math.IsNaN(v) {
				rec = append(rec, "")
			} else {
				rec = append(rec, fmt.Sprintf("%.2f", v))
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func printSummary(w io.Writer, calc *praytime.Calculator, loc *time.Location, rep *report) {
	c := calc.Coordinates()
	fmt.Fprintln(w, "=== praytime profiler summary ===")
	fmt.Fprintf(w, "Method:  %s\n", calc.Method())
	fmt.Fprintf(w, "Lat/Lon: %.4f / %.4f\n", c.Lat, c.Lon)
	fmt.Fprintf(w, "TZ:      %s\n", loc.String())
	fmt.Fprintf(w, "Rows:    %d (processed), %d skipped\n", rep.rows-rep.skipped, rep.skipped)

	for _, p := range columns {
		s := rep.stats[p]
		if s.abs.count == 0 {
			fmt.Fprintf(w, "\n%s: no data\n", p)
			continue
		}
		fmt.Fprintf(w, "\n%s error (minutes):\n", p)
		fmt.Fprintf(w, "  count: %d\n", s.abs.count)
		fmt.Fprintf(w, "  abs   min %.2f  max %.2f  avg %.2f\n", s.abs.min, s.abs.max, s.abs.avg())
		fmt.Fprintf(w, "  ours-ref  min %.2f  max %.2f  mean %.2f\n", s.signed.min, s.signed.max, s.signed.avg())
	}
}
