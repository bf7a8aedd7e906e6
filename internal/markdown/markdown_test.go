package markdown

import (
	"strings"
	"testing"
)

func TestRenderBasicMarkdown(t *testing.T) {
	out := Render("hello **world**")
	if !strings.Contains(out, "<strong>world</strong>") {
		t.Errorf("expected bold rendering, got %q", out)
	}
}

func TestRenderStripsScript(t *testing.T) {
	out := Render(`hi <script>alert("x")</script>`)
	if strings.Contains(out, "<script>") {
		t.Errorf("script tag survived sanitization: %q", out)
	}
}

func TestRenderLinksOpenInNewTab(t *testing.T) {
	out := Render("[site](https://example.com)")
	if !strings.Contains(out, `target="_blank"`) {
		t.Errorf("expected target=_blank on links, got %q", out)
	}
}
