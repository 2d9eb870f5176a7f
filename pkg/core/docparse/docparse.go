// Package docparse converts uploaded documents into plain text for the
// extraction step. HTML is parsed properly; text and markdown pass through.
// Binary office formats are out of scope and rejected with a clear error.
package docparse

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MaxDocumentChars caps the text handed to the LLM. Long documents front-load
// the relevant numbers, so truncation loses little.
const MaxDocumentChars = 30000

// ToText extracts plain text from a document, dispatching on the filename
// extension.
func ToText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md", "":
		return truncate(string(data)), nil
	case ".html", ".htm":
		text, err := htmlToText(data)
		if err != nil {
			return "", err
		}
		return truncate(text), nil
	default:
		return "", fmt.Errorf("UNSUPPORTED_DOCUMENT_TYPE: %s (supported: .txt, .md, .html)", ext)
	}
}

// htmlToText strips markup and returns readable text, skipping script and
// style content.
func htmlToText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		return "", fmt.Errorf("HTML_PARSE_ERROR: %v", err)
	}

	doc.Find("script, style, noscript").Remove()

	var parts []string
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, td, th, caption, blockquote").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})

	if len(parts) == 0 {
		// No block structure at all; fall back to the full text content.
		return strings.TrimSpace(doc.Text()), nil
	}
	return strings.Join(parts, "\n"), nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > MaxDocumentChars {
		return s[:MaxDocumentChars]
	}
	return s
}
