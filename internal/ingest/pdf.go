package ingest

import (
	"bytes"
	"fmt"

	"github.com/dslipak/pdf"
)

// pdfText extracts the plain text of every page of a PDF document
func pdfText(path string) (string, error) {
	reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return buf.String(), nil
}
