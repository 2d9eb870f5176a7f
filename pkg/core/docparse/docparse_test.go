package docparse

import (
	"strings"
	"testing"
)

func TestPlainTextPassthrough(t *testing.T) {
	text, err := ToText("case.txt", []byte("  Annual savings: €2M  "))
	if err != nil {
		t.Fatalf("ToText failed: %v", err)
	}
	if text != "Annual savings: €2M" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestHTMLExtraction(t *testing.T) {
	html := `<html><head><style>p{color:red}</style><script>alert(1)</script></head>
<body><h1>Fleet Retrofit</h1><p>Annual savings of €2,000,000.</p>
<table><tr><td>Development cost</td><td>€300,000</td></tr></table></body></html>`

	text, err := ToText("case.html", []byte(html))
	if err != nil {
		t.Fatalf("ToText failed: %v", err)
	}
	for _, want := range []string{"Fleet Retrofit", "Annual savings of €2,000,000.", "€300,000"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in extracted text:\n%s", want, text)
		}
	}
	if strings.Contains(text, "alert(1)") || strings.Contains(text, "color:red") {
		t.Error("script/style content must be stripped")
	}
}

func TestUnsupportedExtension(t *testing.T) {
	if _, err := ToText("case.pdf", []byte("%PDF-1.4")); err == nil {
		t.Error("expected error for unsupported document type")
	}
}

func TestTruncation(t *testing.T) {
	long := strings.Repeat("x", MaxDocumentChars+500)
	text, err := ToText("case.txt", []byte(long))
	if err != nil {
		t.Fatalf("ToText failed: %v", err)
	}
	if len(text) != MaxDocumentChars {
		t.Errorf("expected truncation to %d chars, got %d", MaxDocumentChars, len(text))
	}
}
