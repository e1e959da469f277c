package format

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWrap_ExactChunks(t *testing.T) {
	if got := Wrap("abcdefghij", 4); got != "abcd\nefgh\nij" {
		t.Fatalf("unexpected wrap: %q", got)
	}
	if got := Wrap("abcd", 4); got != "abcd" {
		t.Fatalf("expected single line without trailing newline, got %q", got)
	}
	if got := Wrap("", 4); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestWrap_DefaultWidth(t *testing.T) {
	text := strings.Repeat("x", 120)
	lines := strings.Split(Wrap(text, 0), "\n")
	if len(lines) != 3 || len(lines[0]) != DefaultWidth || len(lines[2]) != 20 {
		t.Fatalf("unexpected default wrap: %d lines", len(lines))
	}
}

func TestLines_LengthProperties(t *testing.T) {
	texts := []string{
		"a",
		"hello world, this is a hard wrap",
		strings.Repeat("0123456789", 13),
		"채용공고 안내문입니다 지원 자격 및 우대 사항",
	}
	for _, text := range texts {
		for _, w := range []int{1, 3, 7, 50} {
			lines := Lines(text, w)
			n := utf8.RuneCountInString(text)
			if want := (n + w - 1) / w; len(lines) != want {
				t.Fatalf("width %d: expected %d lines, got %d", w, want, len(lines))
			}
			for i, l := range lines {
				c := utf8.RuneCountInString(l)
				if c > w || (i < len(lines)-1 && c != w) {
					t.Fatalf("width %d: line %d has %d chars", w, i, c)
				}
			}
			if strings.Join(lines, "") != text {
				t.Fatalf("width %d: concatenation does not reconstruct input", w)
			}
		}
	}
}

func TestLines_RuneSafe(t *testing.T) {
	lines := Lines("가나다라", 3)
	if len(lines) != 2 || lines[0] != "가나다" || lines[1] != "라" {
		t.Fatalf("unexpected rune chunks: %q", lines)
	}
}

func TestWriteFile_OverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "scraped.txt")
	if err := WriteFile("first", path); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteFile("second\n한글", path); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "second\n한글" {
		t.Fatalf("unexpected content %q", string(b))
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no temp files left, found %d entries", len(entries))
	}
}

func TestWriteFile_UnwritableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	if err := os.Mkdir(locked, 0o500); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(locked, "out.txt")
	err := WriteFile("data", path)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output file, stat err=%v", statErr)
	}
}

func TestWriteFile_PathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	err := WriteFile("data", dir)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError when target is a directory, got %v", err)
	}
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := WritePDF(Lines(strings.Repeat("line of text ", 20), 50), path, ""); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(b), "%PDF-") {
		t.Fatalf("expected PDF header")
	}
}

func TestWritePDF_MissingFontIsIOError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pdf")
	err := WritePDF([]string{"채용 공고"}, path, filepath.Join(dir, "missing.ttf"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "render" {
		t.Fatalf("expected render IOError, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("expected no pdf written")
	}
}
