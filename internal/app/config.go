package app

import (
	"time"

	"github.com/hyperifyio/textcrawl/internal/extract"
	"github.com/hyperifyio/textcrawl/internal/fetch"
	"github.com/hyperifyio/textcrawl/internal/format"
)

// DefaultOutputPath is where the wrapped text goes when nothing else is set.
const DefaultOutputPath = "scraped_output.txt"

// Config holds runtime configuration for the application.
type Config struct {
	URL           string `validate:"required,http_url"`
	OutputPath    string `validate:"required"`
	OutputPDFPath string
	// PDFFontPath is a UTF-8 TrueType font embedded in the PDF; without it
	// only cp1252 text renders.
	PDFFontPath string

	// Formatting
	Width int `validate:"gte=1"`

	// Fetching
	UserAgent   string        `validate:"required"`
	Timeout     time.Duration `validate:"gt=0"`
	MaxAttempts int           `validate:"gte=1"`
	Backoff     time.Duration `validate:"gt=0"`

	// Extraction
	Mode     string `validate:"omitempty,oneof=full content"`
	Selector string

	Verbose bool
}

// DefaultConfig returns the configuration used before file, env and flag
// overrides are applied.
func DefaultConfig() Config {
	return Config{
		OutputPath:  DefaultOutputPath,
		Width:       format.DefaultWidth,
		UserAgent:   fetch.DefaultUserAgent,
		Timeout:     fetch.DefaultPerRequestTimeout,
		MaxAttempts: fetch.DefaultMaxAttempts,
		Backoff:     fetch.DefaultBackoffBase,
		Mode:        string(extract.ModeFull),
	}
}
