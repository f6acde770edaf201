package out

import (
	"fmt"
	"strings"

	"rsc.io/pdf"

	sessionout "github.com/pauljayakar30/Paninis-eye/internal/modules/session/port/out"
)

// LocalPDFReader extracts text from manuscript PDFs on the local disk.
type LocalPDFReader struct{}

func NewLocalPDFReader() sessionout.PageReader {
	return &LocalPDFReader{}
}

func (r *LocalPDFReader) ExtractText(path string) (string, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	var pages []string
	for num := 1; num <= doc.NumPage(); num++ {
		page := doc.Page(num)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		parts := make([]string, 0, len(content.Text))
		for _, text := range content.Text {
			if strings.TrimSpace(text.S) == "" {
				continue
			}
			parts = append(parts, text.S)
		}
		if len(parts) > 0 {
			pages = append(pages, strings.Join(parts, " "))
		}
	}
	return strings.Join(pages, "\n"), nil
}
