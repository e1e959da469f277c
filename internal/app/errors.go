package app

import (
	"errors"
	"fmt"
)

// Stage names the pipeline step a ScrapingError came from.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageExtract Stage = "extract"
	StageWrite   Stage = "write"
)

// ErrNoText is returned when the page produced no text after cleaning.
// Nothing is written in that case.
var ErrNoText = errors.New("no text extracted")

// ScrapingError wraps a stage failure with the URL being processed. The
// underlying cause stays reachable through errors.As and errors.Is.
type ScrapingError struct {
	Stage Stage
	URL   string
	Err   error
}

func (e *ScrapingError) Error() string {
	return fmt.Sprintf("scrape %s: %s: %v", e.URL, e.Stage, e.Err)
}

func (e *ScrapingError) Unwrap() error { return e.Err }
