package textextract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

func IsPDF(fileName string) bool {
	return strings.HasSuffix(strings.ToLower(fileName), ".pdf")
}

func IsImage(fileName string) bool {
	lower := strings.ToLower(fileName)
	return strings.HasSuffix(lower, ".jpg") ||
		strings.HasSuffix(lower, ".jpeg") ||
		strings.HasSuffix(lower, ".png")
}

// ExtractText pulls plain text out of a PDF attachment. Images return ""
// (they are rendered inline, not transcribed). Extraction problems are
// reported in-band so the view can still render.
func ExtractText(fileName string, b []byte) string {
	if !IsPDF(fileName) {
		return ""
	}
	return extractFromPDF(b)
}

func extractFromPDF(b []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "[Error extracting text from PDF: " + err.Error() + "]"
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "[No readable text found in this PDF]"
	}
	return out
}
