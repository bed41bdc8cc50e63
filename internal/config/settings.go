package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/joho/godotenv"
	"github.com/mtcalc/malta-tax-engine/pkg/dateutil"
)

// Environment variables read by LoadSettings
const (
	EnvLogLevel  = "MTCALC_LOG_LEVEL"
	EnvLogFormat = "MTCALC_LOG_FORMAT"
	EnvOutput    = "MTCALC_OUTPUT"
	EnvToday     = "MTCALC_TODAY"
)

// Settings are the runtime knobs of the CLI
type Settings struct {
	LogLevel  string
	LogFormat string
	Output    string
	// Today pins the run date; nil means the system clock.
	Today *civil.Date
}

// LoadSettings reads settings from the environment after loading any of the
// given .env files (default ".env"). Missing .env files are not an error.
func LoadSettings(envFiles ...string) (Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	s := Settings{
		LogLevel:  getEnv(EnvLogLevel, "info"),
		LogFormat: strings.ToLower(getEnv(EnvLogFormat, "text")),
		Output:    getEnv(EnvOutput, "console"),
	}
	if s.LogFormat != "text" && s.LogFormat != "json" {
		return Settings{}, fmt.Errorf("%w: %s must be text or json, got %q", ErrInvalidInput, EnvLogFormat, s.LogFormat)
	}
	if v := getEnv(EnvToday, ""); v != "" {
		d, err := dateutil.ParseDate(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: %s: %v", ErrInvalidInput, EnvToday, err)
		}
		s.Today = &d
	}
	return s, nil
}

// ResolveToday returns the pinned date or the calendar date of now
func (s Settings) ResolveToday(now time.Time) civil.Date {
	if s.Today != nil {
		return *s.Today
	}
	return dateutil.Today(now)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}
