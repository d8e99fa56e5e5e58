package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thurmanmarka/praytime"
	"github.com/thurmanmarka/praytime/internal/config"
	"github.com/thurmanmarka/praytime/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
	logging.Setup("error", "json", io.Discard)
}

func testConfig() *config.Config {
	return &config.Config{
		CORSOrigins: []string{"*"},
		Location:    time.FixedZone("PDT", -7*3600),
		Calc:        praytime.Config{Method: praytime.MWL},
	}
}

func get(t *testing.T, r http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	w := get(t, New(testConfig()), "/healthz")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("GET /healthz = %d %s", w.Code, w.Body.String())
	}
}

func TestMethods(t *testing.T) {
	w := get(t, New(testConfig()), "/api/methods")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/methods = %d %s", w.Code, w.Body.String())
	}
	var got []struct {
		Name    string  `json:"name"`
		Imsak   float64 `json:"imsak"`
		Fajr    float64 `json:"fajr"`
		Maghrib struct {
			Kind  string  `json:"kind"`
			Value float64 `json:"value"`
		} `json:"maghrib"`
		Isha struct {
			Kind  string  `json:"kind"`
			Value float64 `json:"value"`
		} `json:"isha"`
	}
	decode(t, w, &got)
	if len(got) != 7 {
		t.Fatalf("got %d methods, want 7", len(got))
	}
	for _, m := range got {
		if m.Name == "Makkah" {
			if m.Fajr != 19 || m.Isha.Kind != "minutes" || m.Isha.Value != 90 {
				t.Errorf("Makkah = %+v", m)
			}
		}
	}
}

func TestTimesRedmond(t *testing.T) {
	url := "/api/times?lat=47.660918&lon=-122.136371&date=2015-08-03&method=isna&tz=Etc/GMT%2B7"
	w := get(t, New(testConfig()), url)
	if w.Code == http.StatusBadRequest && strings.Contains(w.Body.String(), "unknown tz") {
		t.Skip("tzdata unavailable")
	}
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s = %d %s", url, w.Code, w.Body.String())
	}
	var got struct {
		Date     string            `json:"date"`
		Timezone string            `json:"timezone"`
		Method   string            `json:"method"`
		Timings  map[string]string `json:"timings"`
	}
	decode(t, w, &got)

	if got.Date != "2015-08-03" || got.Method != "ISNA" || got.Timezone != "Etc/GMT+7" {
		t.Errorf("header = %+v", got)
	}
	want := map[string]string{
		"fajr": "04:01", "sunrise": "05:48", "dhuhr": "13:15", "asr": "17:18",
		"sunset": "20:40", "maghrib": "20:40", "isha": "22:28",
	}
	for k, v := range want {
		if got.Timings[k] != v {
			t.Errorf("%s = %q, want %q", k, got.Timings[k], v)
		}
	}
}

func TestTimesDefaultsFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Coordinates = praytime.Coordinates{Lat: 47.660918, Lon: -122.136371}
	cfg.HasLocation = true
	cfg.Calc.Method = praytime.ISNA

	w := get(t, New(cfg), "/api/times?date=2015-08-03")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d %s", w.Code, w.Body.String())
	}
	var got struct {
		Timings map[string]string `json:"timings"`
	}
	decode(t, w, &got)
	if got.Timings["fajr"] != "04:01" {
		t.Errorf("fajr = %q, want 04:01", got.Timings["fajr"])
	}
}

func TestTimesUnsolvedIsNull(t *testing.T) {
	w := get(t, New(testConfig()), "/api/times?lat=65&lon=25&date=2025-06-21")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d %s", w.Code, w.Body.String())
	}
	var got struct {
		Timings map[string]*string `json:"timings"`
	}
	decode(t, w, &got)
	if got.Timings["fajr"] != nil {
		t.Errorf("fajr = %q, want null", *got.Timings["fajr"])
	}
	if got.Timings["sunrise"] == nil {
		t.Errorf("sunrise = null, want a time")
	}
}

func TestBadRequests(t *testing.T) {
	r := New(testConfig())
	urls := []string{
		"/api/times",
		"/api/times?lat=abc&lon=1",
		"/api/times?lat=95&lon=1",
		"/api/times?lat=1&lon=1&method=tehran",
		"/api/times?lat=1&lon=1&asr=maliki",
		"/api/times?lat=1&lon=1&highlat=nearest",
		"/api/times?lat=1&lon=1&midnight=noon",
		"/api/times?lat=1&lon=1&offsets=1,2,3,4,5,6",
		"/api/times?lat=1&lon=1&date=03-08-2015",
		"/api/times?lat=1&lon=1&tz=Mars/Olympus",
		"/api/times/month?lat=1&lon=1&month=2015-13",
		"/api/athan?lon=1",
		"/api/times?lat=1&lon=1&elev=-50",
	}
	for _, u := range urls {
		assertBadRequest(t, r, u)
	}

	// A configured default location never fills in half a pair.
	cfg := testConfig()
	cfg.HasLocation = true
	cfg.Coordinates = praytime.Coordinates{Lat: 47.66, Lon: -122.14}
	r = New(cfg)
	for _, u := range []string{
		"/api/times?lat=21.42&date=2015-08-03",
		"/api/times/month?lon=39.83&month=2015-08",
		"/api/athan?lat=21.42",
	} {
		if body := assertBadRequest(t, r, u); body != nil && !strings.Contains(body["error"], "together") {
			t.Errorf("GET %s: error %q, want lat and lon together", u, body["error"])
		}
	}
}

func assertBadRequest(t *testing.T, r http.Handler, url string) map[string]string {
	t.Helper()
	w := get(t, r, url)
	if w.Code != http.StatusBadRequest {
		t.Errorf("GET %s = %d, want 400", url, w.Code)
		return nil
	}
	var body map[string]string
	decode(t, w, &body)
	if body["error"] == "" {
		t.Errorf("GET %s: no error message in %s", url, w.Body.String())
	}
	return body
}

func TestUnsolvedTimesAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logging.Setup("warn", "json", &buf)
	defer logging.Setup("error", "json", io.Discard)

	r := New(testConfig())
	for _, u := range []string{
		"/api/times?lat=65&lon=25&date=2025-06-21",
		"/api/times/month?lat=65&lon=25&month=2025-06",
		"/api/athan?lat=65&lon=25&date=2025-06-21",
	} {
		buf.Reset()
		if w := get(t, r, u); w.Code != http.StatusOK {
			t.Fatalf("GET %s = %d %s", u, w.Code, w.Body.String())
		}
		if !strings.Contains(buf.String(), `"prayer":"Fajr"`) {
			t.Errorf("GET %s: no warning for unsolved Fajr in %q", u, buf.String())
		}
	}
}

func TestMonth(t *testing.T) {
	w := get(t, New(testConfig()), "/api/times/month?lat=47.660918&lon=-122.136371&month=2015-08&method=ISNA")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d %s", w.Code, w.Body.String())
	}
	var got struct {
		Month string `json:"month"`
		Days  []struct {
			Date    string            `json:"date"`
			Timings map[string]string `json:"timings"`
		} `json:"days"`
	}
	decode(t, w, &got)
	if got.Month != "2015-08" || len(got.Days) != 31 {
		t.Fatalf("month %q with %d days", got.Month, len(got.Days))
	}
	if d := got.Days[2]; d.Date != "2015-08-03" || d.Timings["isha"] != "22:28" {
		t.Errorf("Aug 3 = %+v", d)
	}
}

func TestAthan(t *testing.T) {
	w := get(t, New(testConfig()), "/api/athan?lat=47.660918&lon=-122.136371&date=2015-08-03&method=ISNA")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d %s", w.Code, w.Body.String())
	}
	var got []athanPrayer
	decode(t, w, &got)
	want := []athanPrayer{
		{"FAJR", "04:01", "AM"},
		{"DHUHR", "01:15", "PM"},
		{"ASR", "05:18", "PM"},
		{"MAGHRIB", "08:40", "PM"},
		{"ISHA", "10:28", "PM"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d prayers, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("prayer %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCORS(t *testing.T) {
	cfg := testConfig()
	cfg.CORSOrigins = []string{"https://display.example"}
	r := New(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://display.example")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://display.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign origin status = %d, want 403", w.Code)
	}
}
