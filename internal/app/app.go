package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/textcrawl/internal/extract"
	"github.com/hyperifyio/textcrawl/internal/fetch"
	"github.com/hyperifyio/textcrawl/internal/format"
	"github.com/hyperifyio/textcrawl/internal/normalize"
)

// Fetcher retrieves a single page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (fetch.Result, error)
}

// App runs the fetch, extract, normalize and write pipeline for one URL.
type App struct {
	cfg        Config
	log        zerolog.Logger
	fetcher    Fetcher
	extractor  extract.Extractor
	normalizer *normalize.Normalizer
}

// New validates cfg and wires the pipeline stages.
func New(cfg Config, logger zerolog.Logger) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	ex, err := extract.New(extract.Mode(cfg.Mode), cfg.Selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	a := &App{
		cfg:        cfg,
		log:        logger,
		extractor:  ex,
		normalizer: normalize.Default(),
	}
	a.fetcher = &fetch.Client{
		HTTPClient:        newHTTPClient(cfg.Timeout),
		UserAgent:         cfg.UserAgent,
		MaxAttempts:       cfg.MaxAttempts,
		PerRequestTimeout: cfg.Timeout,
		BackoffBase:       cfg.Backoff,
		Logger:            &a.log,
	}
	return a, nil
}

// Run scrapes the configured URL and writes the wrapped text to the output
// path, plus the optional PDF. Any failure aborts before anything is written.
func (a *App) Run(ctx context.Context) error {
	start := time.Now()
	text, err := a.Scrape(ctx, a.cfg.URL)
	if err != nil {
		return err
	}
	if text == "" {
		a.log.Warn().Str("url", a.cfg.URL).Msg("page produced no text; nothing written")
		return ErrNoText
	}

	lines := format.Lines(text, a.cfg.Width)
	formatted := format.Wrap(text, a.cfg.Width)
	// An interrupt that arrived while cleaning must not produce a file.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := format.WriteFile(formatted, a.cfg.OutputPath); err != nil {
		return &ScrapingError{Stage: StageWrite, URL: a.cfg.URL, Err: err}
	}
	a.log.Info().Str("path", a.cfg.OutputPath).Int("lines", len(lines)).Msg("result saved")

	if a.cfg.OutputPDFPath != "" {
		if err := format.WritePDF(lines, a.cfg.OutputPDFPath, a.cfg.PDFFontPath); err != nil {
			return &ScrapingError{Stage: StageWrite, URL: a.cfg.URL, Err: err}
		}
		a.log.Info().Str("path", a.cfg.OutputPDFPath).Msg("pdf saved")
	}
	a.log.Debug().Dur("elapsed", time.Since(start)).Msg("run complete")
	return nil
}

// Scrape fetches url and returns its cleaned text.
func (a *App) Scrape(ctx context.Context, url string) (string, error) {
	a.log.Info().Str("url", url).Msg("request started")
	res, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", &ScrapingError{Stage: StageFetch, URL: url, Err: err}
	}
	a.log.Debug().
		Int("status", res.StatusCode).
		Str("encoding", res.Encoding).
		Int("attempts", res.Attempts).
		Int("bytes", len(res.Body)).
		Msg("response received")

	doc, err := a.extractor.Extract([]byte(res.Body))
	if err != nil {
		return "", &ScrapingError{Stage: StageExtract, URL: url, Err: err}
	}
	a.log.Info().Str("title", doc.Title).Msg("html parsed and text extracted")

	cleaned := a.normalizer.Normalize(doc.Text)
	a.log.Info().Int("chars", len([]rune(cleaned))).Msg("text cleaned")
	return cleaned, nil
}
