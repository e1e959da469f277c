package fetch

import (
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// minSniffConfidence is the lowest chardet score trusted for an undeclared
// body. Below it the body is read as UTF-8.
const minSniffConfidence = 30

// decodeBody converts body to a UTF-8 string. The charset comes from the
// Content-Type header, a BOM or a <meta> declaration, then content sniffing;
// anything unresolvable is read as UTF-8 with invalid bytes replaced.
func decodeBody(body []byte, contentType string) (string, string) {
	enc, name := detectEncoding(body, contentType)
	if name == "utf-8" {
		enc = unicode.UTF8
	}
	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return strings.ToValidUTF8(string(body), "\uFFFD"), "utf-8"
	}
	return string(out), name
}

func detectEncoding(body []byte, contentType string) (encoding.Encoding, string) {
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if enc != nil && name != "" && (certain || name != "windows-1252") {
		return enc, name
	}
	// windows-1252 without certainty is x/net's locale default, not a
	// detection result.
	if utf8.Valid(body) {
		return unicode.UTF8, "utf-8"
	}
	return sniffEncoding(body)
}

// sniffEncoding guesses the charset of undeclared, non-UTF-8 content.
func sniffEncoding(body []byte) (encoding.Encoding, string) {
	res, err := chardet.NewHtmlDetector().DetectBest(body)
	if err != nil || res == nil || res.Confidence < minSniffConfidence {
		return unicode.UTF8, "utf-8"
	}
	enc, name := charset.Lookup(res.Charset)
	if enc == nil {
		return unicode.UTF8, "utf-8"
	}
	return enc, name
}
