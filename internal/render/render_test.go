package render

import (
	"strings"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Width != 80 {
		t.Errorf("expected Width=80, got %d", opts.Width)
	}
	if opts.Style != "dark" {
		t.Errorf("expected Style='dark', got %s", opts.Style)
	}
	if !opts.EnableEmoji || !opts.PreserveNewLines || !opts.TableWrap {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if opts.InlineTableLinks {
		t.Error("expected InlineTableLinks=false")
	}
}

func TestOptionsChaining(t *testing.T) {
	opts := DefaultOptions().WithWidth(100).WithStyle("light").WithEmoji(false)

	if opts.Width != 100 || opts.Style != "light" || opts.EnableEmoji {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestMarkdown(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		width    int
		contains string
	}{
		{"heading", "# Invertir una lista", 80, "Invertir"},
		{"inline code", "Usa slicing: `lista[::-1]`", 80, "lista[::-1]"},
		{"code block", "```python\nprint(lista[::-1])\n```", 80, "print"},
		{"list", "- reversed()\n- slicing", 80, "slicing"},
		{"link", "[docs](https://docs.python.org)", 80, "docs"},
		{"narrow", "# Un encabezado largo que debería ajustarse", 30, "encabezado"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output, err := Markdown(tc.input, DefaultOptions().WithWidth(tc.width))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(output, tc.contains) {
				t.Errorf("output should contain %q, got: %s", tc.contains, output)
			}
		})
	}
}

func TestMarkdownWithWidth(t *testing.T) {
	output, err := MarkdownWithWidth("# Hola\n\nEsto es una prueba.", 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, "Hola") || !strings.Contains(output, "prueba") {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestMarkdownEmoji(t *testing.T) {
	input := "Listo :rocket:"

	output, err := Markdown(input, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(output, ":rocket:") {
		t.Errorf("emoji should have been converted, got: %s", output)
	}

	output, err = Markdown(input, DefaultOptions().WithEmoji(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output, ":rocket:") {
		t.Errorf("emoji should NOT have been converted, got: %s", output)
	}
}

func TestMarkdownBuiltinStyles(t *testing.T) {
	for _, style := range []string{"dark", "light", "dracula", "tokyo-night", "notty"} {
		t.Run(style, func(t *testing.T) {
			if _, err := Markdown("**hola**", DefaultOptions().WithStyle(style)); err != nil {
				t.Errorf("style %q failed: %v", style, err)
			}
		})
	}
}

func TestMarkdownInvalidStyle(t *testing.T) {
	_, err := Markdown("# Test", DefaultOptions().WithStyle("/nonexistent/style.json"))
	if err == nil {
		t.Error("expected error for invalid style path")
	}
}

func TestReply(t *testing.T) {
	out := Reply("Usa slicing: `lista[::-1]`", DefaultOptions())
	if !strings.Contains(out, "lista[::-1]") {
		t.Errorf("Reply() = %q", out)
	}
	if strings.HasPrefix(out, "\n") || strings.HasSuffix(out, "\n") {
		t.Errorf("Reply() should trim surrounding newlines: %q", out)
	}
}

func TestReply_FallbackToRaw(t *testing.T) {
	raw := "**texto**"
	out := Reply(raw, DefaultOptions().WithStyle("/nonexistent/style.json"))
	if out != raw {
		t.Errorf("Reply() = %q, want raw text on render failure", out)
	}
}
