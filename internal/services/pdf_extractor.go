package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFExtractorService interface {
	ExtractText(data []byte) (string, error)
}

type pdfExtractorService struct{}

func NewPDFExtractorService() PDFExtractorService {
	return &pdfExtractorService{}
}

// ExtractText pulls best-effort plain text out of an in-memory PDF. Pages
// that fail to decode are skipped; whitespace-only output is an error so the
// caller can reject unreadable resumes before the analysis pipeline runs.
func (p *pdfExtractorService) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
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
			// Log error but continue with other pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}
