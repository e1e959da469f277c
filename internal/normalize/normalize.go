// Package normalize cleans extracted page text with an ordered list of
// regular-expression rules.
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrPattern marks a rule whose pattern does not compile.
var ErrPattern = errors.New("invalid normalization pattern")

// Rule replaces every match of Pattern with Replace. Rules run in order, each
// on the output of the previous one.
type Rule struct {
	Name    string
	Pattern string
	Replace string
	// Trim strips leading and trailing whitespace after the replacement.
	Trim bool
}

// DefaultRules removes bracketed asides, collapses whitespace and strips
// control characters, in that order. Brackets are matched non-greedily and
// never across a line break; unmatched brackets are left alone.
var DefaultRules = []Rule{
	{Name: "parentheses", Pattern: `\(.*?\)`},
	{Name: "square-brackets", Pattern: `\[.*?\]`},
	// Unicode whitespace: ASCII space and controls, file/group/record/unit
	// separators, NEL and the Z categories (NBSP, ideographic space, ...).
	{Name: "whitespace", Pattern: `[\t\n\v\f\r\x{1c}-\x{1f}\x{85}\p{Z}]+`, Replace: " ", Trim: true},
	{Name: "control-characters", Pattern: `[\x00-\x1f\x7f]`},
}

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Normalizer applies compiled rules. It is safe for concurrent use.
type Normalizer struct {
	rules []compiledRule
}

// New compiles rules. A pattern that fails to compile yields an error
// wrapping ErrPattern.
func New(rules []Rule) (*Normalizer, error) {
	n := &Normalizer{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %q: %v", ErrPattern, r.Name, err)
		}
		n.rules = append(n.rules, compiledRule{Rule: r, re: re})
	}
	return n, nil
}

var defaultNormalizer = mustNew(DefaultRules)

func mustNew(rules []Rule) *Normalizer {
	n, err := New(rules)
	if err != nil {
		panic(err)
	}
	return n
}

// Default returns the normalizer built from DefaultRules.
func Default() *Normalizer { return defaultNormalizer }

// Normalize cleans text with DefaultRules.
func Normalize(text string) string { return defaultNormalizer.Normalize(text) }

// Normalize runs every rule over text.
func (n *Normalizer) Normalize(text string) string {
	for _, r := range n.rules {
		text = r.re.ReplaceAllLiteralString(text, r.Replace)
		if r.Trim {
			text = strings.TrimSpace(text)
		}
	}
	return text
}
