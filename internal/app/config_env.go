package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig overrides cfg with any TEXTCRAWL_* variables that are set.
// Unparseable numbers and durations are ignored.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if v := env("TEXTCRAWL_URL"); v != "" {
		cfg.URL = v
	}
	if v := env("TEXTCRAWL_OUTPUT"); v != "" {
		cfg.OutputPath = v
	}
	if v := env("TEXTCRAWL_OUTPUT_PDF"); v != "" {
		cfg.OutputPDFPath = v
	}
	if v := env("TEXTCRAWL_PDF_FONT"); v != "" {
		cfg.PDFFontPath = v
	}
	if v := env("TEXTCRAWL_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := env("TEXTCRAWL_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := env("TEXTCRAWL_SELECTOR"); v != "" {
		cfg.Selector = v
	}
	if n, err := strconv.Atoi(env("TEXTCRAWL_WIDTH")); err == nil && n > 0 {
		cfg.Width = n
	}
	if n, err := strconv.Atoi(env("TEXTCRAWL_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.MaxAttempts = n
	}
	if d, err := time.ParseDuration(env("TEXTCRAWL_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if d, err := time.ParseDuration(env("TEXTCRAWL_BACKOFF")); err == nil && d >= 0 {
		cfg.Backoff = d
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
