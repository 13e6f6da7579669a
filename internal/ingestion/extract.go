// Package ingestion turns uploaded resume and job description files into
// plain text.
package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// UnsupportedFormatError indicates a declared type this package cannot read.
type UnsupportedFormatError struct {
	DeclaredType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.DeclaredType)
}

// ExtractError represents a failure reading a supported format.
type ExtractError struct {
	DeclaredType string
	Cause        error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.DeclaredType, e.Cause)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

// ExtractText converts file bytes into cleaned plain text based on the
// declared MIME type.
func ExtractText(data []byte, declaredType string) (string, error) {
	var (
		text string
		err  error
	)
	switch declaredType {
	case "text/plain":
		text = string(data)

	case "application/pdf":
		text, err = extractPDFText(bytes.NewReader(data))

	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		text, err = extractDocxText(bytes.NewReader(data))

	case "text/html":
		text, err = extractHTMLText(bytes.NewReader(data))

	default:
		return "", &UnsupportedFormatError{DeclaredType: declaredType}
	}
	if err != nil {
		return "", &ExtractError{DeclaredType: declaredType, Cause: err}
	}
	return CleanText(text), nil
}

func extractPDFText(reader *bytes.Reader) (string, error) {
	pdfReader, err := pdf.NewReader(reader, int64(reader.Len()))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

var (
	docxParaRe = regexp.MustCompile(`</w:p>`)
	docxTagRe  = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(reader *bytes.Reader) (string, error) {
	doc, err := docx.ReadDocxFromMemory(reader, int64(reader.Len()))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	content = docxParaRe.ReplaceAllString(content, "\n")
	return docxTagRe.ReplaceAllString(content, ""), nil
}

func extractHTMLText(reader io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	var textBuilder strings.Builder
	doc.Find("body").Each(func(_ int, sel *goquery.Selection) {
		textBuilder.WriteString(sel.Text())
	})
	if textBuilder.Len() == 0 {
		return doc.Text(), nil
	}
	return textBuilder.String(), nil
}
