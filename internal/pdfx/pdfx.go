// Package pdfx extracts plain text from act PDFs.
package pdfx

import (
	"fmt"
	"strings"

	"rsc.io/pdf"
)

// ExtractText reads every page of the PDF at path and concatenates the text
// content. Unreadable pages are skipped so a partially damaged file still
// yields best-effort text.
func ExtractText(path string) (string, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		text, ok := pageText(r, i)
		if !ok {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// pageText pulls the text runs of one page. The pdf package panics on some
// malformed content streams, so the page is abandoned on recover.
func pageText(r *pdf.Reader, num int) (text string, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			text, ok = "", false
		}
	}()

	p := r.Page(num)
	if p.V.IsNull() {
		return "", false
	}
	var sb strings.Builder
	for _, t := range p.Content().Text {
		// embedded NULs break downstream storage
		sb.WriteString(strings.ReplaceAll(t.S, "\x00", ""))
	}
	return sb.String(), true
}

// Sanitize normalizes extracted text to single-space separated words.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.Join(strings.Fields(s), " ")
}
