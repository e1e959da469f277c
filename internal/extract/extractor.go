package extract

import (
	"fmt"

	"github.com/andybalholm/cascadia"
)

// Extractor defines a minimal interface for content extraction strategies.
// Implementations can swap tactics without changing callers.
type Extractor interface {
	// Extract converts raw HTML bytes into a simplified Document.
	// Implementations should be deterministic and avoid side effects.
	Extract(input []byte) (Document, error)
}

// Mode names an extraction strategy.
type Mode string

const (
	// ModeFull renders the whole document.
	ModeFull Mode = "full"
	// ModeContent renders the main content root and drops page chrome.
	ModeContent Mode = "content"
)

// FullText uses FromHTML.
type FullText struct{}

func (FullText) Extract(input []byte) (Document, error) { return FromHTML(input) }

// Heuristic uses MainContent.
type Heuristic struct{}

func (Heuristic) Extract(input []byte) (Document, error) { return MainContent(input) }

// Selector restricts extraction to elements matching a CSS selector.
type Selector struct {
	Query string
}

func (s Selector) Extract(input []byte) (Document, error) { return Selected(input, s.Query) }

// New returns the extractor for mode. A non-empty selector takes precedence
// over the mode and must compile.
func New(mode Mode, selector string) (Extractor, error) {
	if selector != "" {
		if _, err := cascadia.Compile(selector); err != nil {
			return nil, fmt.Errorf("selector %q: %w", selector, err)
		}
		return Selector{Query: selector}, nil
	}
	switch mode {
	case "", ModeFull:
		return FullText{}, nil
	case ModeContent:
		return Heuristic{}, nil
	default:
		return nil, fmt.Errorf("unknown extract mode %q", mode)
	}
}
