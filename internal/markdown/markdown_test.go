package markdown

import (
	"strings"
	"testing"
)

func TestRenderBasics(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render("# Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "<h1") {
		t.Errorf("missing h1 in %q", out)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("missing strong in %q", out)
	}
}

func TestRenderGFMTable(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("GFM table not rendered: %q", out)
	}
}

func TestRenderKeepsRawHTML(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render(`<img src="/images/blog/cover.jpg" alt="cover" />`)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "<img") {
		t.Errorf("raw HTML should pass through: %q", out)
	}
}

func TestFirstParagraph(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "skips heading",
			source: "# Title\n\nFirst paragraph here.\n\nSecond paragraph.",
			want:   "First paragraph here.",
		},
		{
			name:   "joins wrapped lines",
			source: "line one\nline two\n\nnext",
			want:   "line one line two",
		},
		{
			name:   "skips list and rule",
			source: "---\n- item\n\nActual text.",
			want:   "Actual text.",
		},
		{
			name:   "empty document",
			source: "",
			want:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstParagraph(tt.source); got != tt.want {
				t.Errorf("FirstParagraph() = %q, want %q", got, tt.want)
			}
		})
	}
}
