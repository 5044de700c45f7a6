package services

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// TextExtractor pulls plain text out of an uploaded CV payload. It never
// fails: every unreadable input degrades to nil, which tells the caller to
// fall back to the filename.
type TextExtractor interface {
	ExtractText(data []byte, filename string) *string
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

var pdfMagic = []byte("%PDF")

// ExtractText implements TextExtractor.
func (t *textExtractor) ExtractText(data []byte, filename string) *string {
	if len(data) == 0 {
		return nil
	}

	if bytes.HasPrefix(data, pdfMagic) || strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return extractPDFText(data)
	}

	// Plain text: strict UTF-8 first, then substitute invalid bytes rather
	// than fail.
	if utf8.Valid(data) {
		text := string(data)
		return &text
	}
	text := strings.ToValidUTF8(string(data), string(utf8.RuneError))
	return &text
}

func extractPDFText(data []byte) (result *string) {
	// The pdf package panics on some corrupt files; a corrupt upload must
	// degrade to the filename fallback, not kill the pipeline.
	defer func() {
		if r := recover(); r != nil {
			result = nil
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages but keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return nil
	}

	return &text
}
