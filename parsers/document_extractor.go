package parsers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"baliance.com/gooxml/document"
)

// DocumentExtractor pulls plain text out of uploaded CV files before
// they reach the parser. Extraction is best-effort plumbing around the
// pure core: the parser itself only ever sees plain text.
type DocumentExtractor struct{}

// NewDocumentExtractor creates a new text extractor.
func NewDocumentExtractor() *DocumentExtractor {
	return &DocumentExtractor{}
}

// ExtractText dispatches on file extension. Unknown extensions are
// read as plain text.
func (e *DocumentExtractor) ExtractText(filePath string) (string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return e.extractPDF(filePath)
	case ".docx":
		return e.extractDocx(filePath)
	default:
		content, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(content), nil
	}
}

// extractPDF tries pdftotext first, then ps2ascii as a fallback.
func (e *DocumentExtractor) extractPDF(filePath string) (string, error) {
	if text, err := e.extractWithPdfToText(filePath); err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	if text, err := e.extractWithPs2Ascii(filePath); err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	return "", fmt.Errorf("failed to extract text from PDF using all available methods")
}

// extractWithPdfToText uses the poppler-utils pdftotext command.
func (e *DocumentExtractor) extractWithPdfToText(filePath string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %w", err)
	}

	tempFile := filePath + ".txt"
	defer os.Remove(tempFile)

	cmd := exec.Command("pdftotext", "-layout", filePath, tempFile)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}

	content, err := os.ReadFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("failed to read extracted text: %w", err)
	}
	return string(content), nil
}

// extractWithPs2Ascii uses ps2ascii as another fallback.
func (e *DocumentExtractor) extractWithPs2Ascii(filePath string) (string, error) {
	if _, err := exec.LookPath("ps2ascii"); err != nil {
		return "", fmt.Errorf("ps2ascii not available: %w", err)
	}

	output, err := exec.Command("ps2ascii", filePath).Output()
	if err != nil {
		return "", fmt.Errorf("ps2ascii failed: %w", err)
	}
	return string(output), nil
}

// extractDocx reads paragraph text out of a Word document.
func (e *DocumentExtractor) extractDocx(filePath string) (string, error) {
	doc, err := document.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}

	var b strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			b.WriteString(run.Text())
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
