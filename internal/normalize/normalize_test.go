package normalize

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalize_Table(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"parentheses", "a (b) c", "a c"},
		{"square brackets", "a [b] c", "a c"},
		{"non-greedy", "x (one) y (two) z", "x y z"},
		{"nested parens keep tail", "a (b (c) d) e", "a d) e"},
		{"unmatched open", "a ( b", "a ( b"},
		{"unmatched close", "a ) b", "a ) b"},
		{"paren does not cross newline", "a (b\nc) d", "a (b c) d"},
		{"brackets before whitespace", "a [x]\n\n(y) b", "a b"},
		{"whitespace collapse", "a\n\n  b\t c", "a b c"},
		{"trim", "  \n lead and trail \t ", "lead and trail"},
		{"nbsp and ideographic space", "a\u00a0b\u3000c", "a b c"},
		{"bell removed", "ab\x07cd", "abcd"},
		{"delete removed", "ab\x7fcd", "abcd"},
		{"separator chars are whitespace", "a\x1cb", "a b"},
		{"korean text", "채용 공고 (마감) [광고] 안내", "채용 공고 안내"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_BracketRemovalBeforeCollapse(t *testing.T) {
	n, err := New(DefaultRules[:2])
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := n.Normalize("a (b) c"); got != "a  c" {
		t.Fatalf("expected brackets removed with spaces intact, got %q", got)
	}
}

func TestNormalize_ControlCharacterOnlyRemoved(t *testing.T) {
	in := "alpha\x07beta"
	got := Normalize(in)
	if got != strings.ReplaceAll(in, "\x07", "") {
		t.Fatalf("expected only the control byte removed, got %q", got)
	}
}

func TestNormalize_ControlCharacterAfterCollapse(t *testing.T) {
	// Control characters are stripped after whitespace collapse, so the
	// surrounding spaces survive.
	if got := Normalize("a \x00 b"); got != "a  b" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"plain words here",
		"  spaced\tout\n\ntext  ",
		"유니코드 텍스트 포함",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New([]Rule{{Name: "broken", Pattern: `(`}})
	if !errors.Is(err, ErrPattern) {
		t.Fatalf("expected ErrPattern, got %v", err)
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Fatalf("expected rule name in error, got %v", err)
	}
}

func TestNew_CustomRules(t *testing.T) {
	n, err := New([]Rule{{Name: "digits", Pattern: `[0-9]+`, Replace: "#"}})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := n.Normalize("call 555 1234"); got != "call # #" {
		t.Fatalf("unexpected result %q", got)
	}
}
