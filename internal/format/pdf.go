package format

import (
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const pdfFontFamily = "body"

// WritePDF renders lines one per row. With fontPath set, that UTF-8 TrueType
// font is embedded so any script it covers (Hangul included) is shown.
// Without it the Courier core font is used, which only covers cp1252;
// other characters are replaced.
func WritePDF(lines []string, path string, fontPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := func(s string) string { return s }
	if fontPath != "" {
		pdf.AddUTF8Font(pdfFontFamily, "", fontPath)
		pdf.SetFont(pdfFontFamily, "", 10)
	} else {
		pdf.SetFont("Courier", "", 10)
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.AddPage()
	for _, line := range lines {
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
	if err := pdf.Error(); err != nil {
		return &IOError{Op: "render", Path: path, Err: err}
	}
	return writeAtomic(path, func(f *os.File) error {
		if err := pdf.Output(f); err != nil {
			return fmt.Errorf("pdf output: %w", err)
		}
		return nil
	})
}
