package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/thurmanmarka/praytime"
	"github.com/thurmanmarka/praytime/internal/config"
)

type methodInfo struct {
	Name string `json:"name"`
	praytime.Params
}

// MethodsModule serves GET /methods.
func MethodsModule() Module {
	return ModuleFunc(func(g *gin.RouterGroup) {
		g.GET("/methods", ResolveEndpoint(listMethods))
	})
}

func listMethods(ctx *gin.Context) (any, *Error) {
	out := make([]methodInfo, 0, len(praytime.Methods()))
	for _, m := range praytime.Methods() {
		p, err := praytime.ParamsFor(m, nil)
		if err != nil {
			return nil, &Error{Code: 500, Message: err.Error()}
		}
		out = append(out, methodInfo{Name: m.String(), Params: p})
	}
	return out, nil
}

// TimesModule serves the prayer time endpoints.
func TimesModule(defaults *config.Config) Module {
	h := &timesHandler{defaults: defaults}
	return ModuleFunc(func(g *gin.RouterGroup) {
		g.GET("/times", ResolveEndpoint(h.day))
		g.GET("/times/month", ResolveEndpoint(h.month))
		g.GET("/athan", ResolveEndpoint(h.athan))
	})
}

type timesHandler struct {
	defaults *config.Config
}

type timings struct {
	Fajr     praytime.ClockTime `json:"fajr"`
	Sunrise  praytime.ClockTime `json:"sunrise"`
	Dhuhr    praytime.ClockTime `json:"dhuhr"`
	Asr      praytime.ClockTime `json:"asr"`
	Sunset   praytime.ClockTime `json:"sunset"`
	Maghrib  praytime.ClockTime `json:"maghrib"`
	Isha     praytime.ClockTime `json:"isha"`
	Midnight praytime.ClockTime `json:"midnight"`
}

func timingsOf(t praytime.Times) timings {
	return timings{
		Fajr:     t.Fajr,
		Sunrise:  t.Sunrise,
		Dhuhr:    t.Dhuhr,
		Asr:      t.Asr,
		Sunset:   t.Sunset,
		Maghrib:  t.Maghrib,
		Isha:     t.Isha,
		Midnight: t.Midnight,
	}
}

type dayResponse struct {
	Date      string  `json:"date"`
	Timezone  string  `json:"timezone"`
	Method    string  `json:"method"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timings   timings `json:"timings"`
}

type monthDay struct {
	Date    string  `json:"date"`
	Timings timings `json:"timings"`
}

type monthResponse struct {
	Month     string     `json:"month"`
	Timezone  string     `json:"timezone"`
	Method    string     `json:"method"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Days      []monthDay `json:"days"`
}

// athanPrayer is the display form used by signage clients.
type athanPrayer struct {
	Name   string `json:"name"`   // "FAJR", "DHUHR", ...
	Time   string `json:"time"`   // "05:12"
	Period string `json:"period"` // "AM" or "PM"
}

// request is a parsed and validated query.
type request struct {
	calc *praytime.Calculator
	loc  *time.Location
}

func (h *timesHandler) parse(ctx *gin.Context) (request, *Error) {
	d := h.defaults
	coords := d.Coordinates
	latS, lonS := ctx.Query("lat"), ctx.Query("lon")
	switch {
	case (latS == "") != (lonS == ""):
		return request{}, badRequest("lat and lon must be given together")
	case latS == "":
		if !d.HasLocation {
			return request{}, badRequest("lat and lon are required")
		}
	default:
		var err error
		if coords.Lat, err = strconv.ParseFloat(latS, 64); err != nil {
			return request{}, badRequest(fmt.Sprintf("invalid lat %q", latS))
		}
		if coords.Lon, err = strconv.ParseFloat(lonS, 64); err != nil {
			return request{}, badRequest(fmt.Sprintf("invalid lon %q", lonS))
		}
	}
	if s := ctx.Query("elev"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return request{}, badRequest(fmt.Sprintf("invalid elev %q", s))
		}
		coords.Elevation = v
	}

	loc := d.Location
	if s := ctx.Query("tz"); s != "" {
		l, err := time.LoadLocation(s)
		if err != nil {
			return request{}, badRequest(fmt.Sprintf("unknown tz %q", s))
		}
		loc = l
	}

	cfg := d.Calc
	var err error
	if s := ctx.Query("method"); s != "" {
		if cfg.Method, err = praytime.ParseMethod(s); err != nil {
			return request{}, badRequest(err.Error())
		}
	}
	if s := ctx.Query("asr"); s != "" {
		if cfg.Asr, err = praytime.ParseAsr(s); err != nil {
			return request{}, badRequest(err.Error())
		}
	}
	if s := ctx.Query("highlat"); s != "" {
		if cfg.HighLat, err = praytime.ParseHighLat(s); err != nil {
			return request{}, badRequest(err.Error())
		}
	}
	if s := ctx.Query("midnight"); s != "" {
		if cfg.Midnight, err = praytime.ParseMidnight(s); err != nil {
			return request{}, badRequest(err.Error())
		}
	}
	if s, ok := ctx.GetQuery("offsets"); ok {
		if cfg.Offsets, err = praytime.ParseOffsets(s); err != nil {
			return request{}, badRequest(err.Error())
		}
	}

	calc, err := praytime.New(coords, cfg)
	if err != nil {
		return request{}, badRequest(strings.TrimSpace(err.Error()))
	}
	return request{calc: calc, loc: loc}, nil
}

func (r request) date(ctx *gin.Context) (time.Time, *Error) {
	s := ctx.Query("date")
	if s == "" {
		return time.Now().In(r.loc), nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, r.loc)
	if err != nil {
		return time.Time{}, badRequest(fmt.Sprintf("invalid date %q, want YYYY-MM-DD", s))
	}
	return d, nil
}

func (h *timesHandler) day(ctx *gin.Context) (any, *Error) {
	req, apiErr := h.parse(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	date, apiErr := req.date(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	t := req.calc.TimesFor(date)
	warnUnsolved(req.calc, t)
	c := req.calc.Coordinates()
	return dayResponse{
		Date:      t.Date.Format("2006-01-02"),
		Timezone:  req.loc.String(),
		Method:    req.calc.Method().String(),
		Latitude:  c.Lat,
		Longitude: c.Lon,
		Timings:   timingsOf(t),
	}, nil
}

func (h *timesHandler) month(ctx *gin.Context) (any, *Error) {
	req, apiErr := h.parse(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	var first time.Time
	if s := ctx.Query("month"); s == "" {
		now := time.Now().In(req.loc)
		first = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, req.loc)
	} else {
		var err error
		if first, err = time.ParseInLocation("2006-01", s, req.loc); err != nil {
			return nil, badRequest(fmt.Sprintf("invalid month %q, want YYYY-MM", s))
		}
	}

	days := req.calc.Month(first.Year(), first.Month(), req.loc)
	out := make([]monthDay, len(days))
	for i, t := range days {
		warnUnsolved(req.calc, t)
		out[i] = monthDay{Date: t.Date.Format("2006-01-02"), Timings: timingsOf(t)}
	}
	c := req.calc.Coordinates()
	return monthResponse{
		Month:     first.Format("2006-01"),
		Timezone:  req.loc.String(),
		Method:    req.calc.Method().String(),
		Latitude:  c.Lat,
		Longitude: c.Lon,
		Days:      out,
	}, nil
}

func (h *timesHandler) athan(ctx *gin.Context) (any, *Error) {
	req, apiErr := h.parse(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	date, apiErr := req.date(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	t := req.calc.TimesFor(date)
	warnUnsolved(req.calc, t)
	order := []praytime.Prayer{praytime.Fajr, praytime.Dhuhr, praytime.Asr, praytime.Maghrib, praytime.Isha}
	prayers := make([]athanPrayer, len(order))
	for i, p := range order {
		hhmm, period := t.Get(p).Clock12()
		prayers[i] = athanPrayer{
			Name:   strings.ToUpper(p.String()),
			Time:   hhmm,
			Period: period,
		}
	}
	return prayers, nil
}

func warnUnsolved(calc *praytime.Calculator, t praytime.Times) {
	t.Each(func(p praytime.Prayer, c praytime.ClockTime) {
		if !c.OK {
			log.Warn().
				Float64("lat", calc.Coordinates().Lat).
				Str("date", t.Date.Format("2006-01-02")).
				Str("prayer", p.String()).
				Msg("time does not occur; consider a highlat policy")
		}
	})
}
