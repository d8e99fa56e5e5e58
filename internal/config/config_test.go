package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/thurmanmarka/praytime"
)

var allKeys = []string{
	"PRAYTIME_ADDR", "PRAYTIME_METHOD", "PRAYTIME_ASR", "PRAYTIME_HIGHLAT",
	"PRAYTIME_MIDNIGHT", "PRAYTIME_OFFSETS", "PRAYTIME_LAT", "PRAYTIME_LON",
	"PRAYTIME_ELEV", "PRAYTIME_TZ", "PRAYTIME_LOG_LEVEL", "PRAYTIME_LOG_FORMAT",
	"PRAYTIME_CORS_ORIGINS",
}

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerAddress != ":8080" || cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Calc.Method != praytime.MWL || cfg.Calc.Asr != praytime.AsrShafii ||
		cfg.Calc.HighLat != praytime.HighLatNone || cfg.Calc.Midnight != praytime.MidnightStandard {
		t.Errorf("calc defaults = %+v", cfg.Calc)
	}
	if cfg.HasLocation {
		t.Errorf("HasLocation = true without PRAYTIME_LAT/LON")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRAYTIME_METHOD", "isna")
	t.Setenv("PRAYTIME_ASR", "hanafi")
	t.Setenv("PRAYTIME_HIGHLAT", "oneseventh")
	t.Setenv("PRAYTIME_MIDNIGHT", "jafari")
	t.Setenv("PRAYTIME_OFFSETS", "2,0,0,1")
	t.Setenv("PRAYTIME_LAT", "47.66")
	t.Setenv("PRAYTIME_LON", "-122.13")
	t.Setenv("PRAYTIME_ELEV", "50")
	t.Setenv("PRAYTIME_TZ", "UTC")
	t.Setenv("PRAYTIME_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := praytime.Config{
		Method:   praytime.ISNA,
		Asr:      praytime.AsrHanafi,
		HighLat:  praytime.HighLatOneSeventh,
		Midnight: praytime.MidnightJafari,
		Offsets:  praytime.Offsets{Fajr: 2, Maghrib: 1},
	}
	if cfg.Calc != want {
		t.Errorf("Calc = %+v, want %+v", cfg.Calc, want)
	}
	if !cfg.HasLocation || cfg.Coordinates != (praytime.Coordinates{Lat: 47.66, Lon: -122.13, Elevation: 50}) {
		t.Errorf("Coordinates = %+v (HasLocation %v)", cfg.Coordinates, cfg.HasLocation)
	}
	if cfg.Location.String() != "UTC" {
		t.Errorf("Location = %v", cfg.Location)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %q", cfg.CORSOrigins)
	}
}

func TestLoadReportsEveryProblem(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRAYTIME_METHOD", "tehran")
	t.Setenv("PRAYTIME_ASR", "maliki")
	t.Setenv("PRAYTIME_LAT", "123")
	t.Setenv("PRAYTIME_LON", "x")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() succeeded with invalid settings")
	}
	for _, target := range []error{praytime.ErrUnknownMethod, praytime.ErrInvalidAsr, praytime.ErrInvalidCoordinates} {
		if !errors.Is(err, target) {
			t.Errorf("Load() error %v does not match %v", err, target)
		}
	}
	t.Logf("Load() error:\n%v", err)
}

func TestLoadPartialLocation(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRAYTIME_LAT", "21.4")
	if _, err := Load(); err == nil {
		t.Error("Load() accepted PRAYTIME_LAT without PRAYTIME_LON")
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PRAYTIME_ADDR", ":9000")

	path := filepath.Join(t.TempDir(), ".env")
	body := "PRAYTIME_METHOD=Makkah\nPRAYTIME_ADDR=:7000\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("PRAYTIME_METHOD") })

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Calc.Method != praytime.Makkah {
		t.Errorf("Method = %v, want Makkah from .env", cfg.Calc.Method)
	}
	if cfg.ServerAddress != ":9000" {
		t.Errorf("ServerAddress = %q, the environment should win over .env", cfg.ServerAddress)
	}
}
