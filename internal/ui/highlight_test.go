package ui

import (
	"strings"
	"testing"
)

func TestGetFileType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"firefox.desktop", "Desktop Entry"},
		{"Games.directory", "Directory Entry"},
		{"config.yaml", "YAML"},
		{"favorites.yml", "YAML"},
		{"config.json", "JSON"},
		{"config.jsonc", "JSONC"},
		{"mimeapps.ini", "Config"},
		{"README", "Text"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			result := GetFileType(tt.filename)
			if result != tt.expected {
				t.Errorf("GetFileType(%s) = %s, want %s", tt.filename, result, tt.expected)
			}
		})
	}
}

func TestGetLexerForFile(t *testing.T) {
	tests := []struct {
		filename string
		lexer    string
	}{
		{"firefox.desktop", "INI"},
		{"config.yaml", "YAML"},
		{"config.jsonc", "JSON"},
	}

	for _, tt := range tests {
		lexer := getLexerForFile(tt.filename)
		if lexer == nil {
			t.Errorf("getLexerForFile(%s) returned nil", tt.filename)
			continue
		}
		if name := lexer.Config().Name; name != tt.lexer {
			t.Errorf("getLexerForFile(%s) = %s, want %s", tt.filename, name, tt.lexer)
		}
	}
}

func TestHighlighter_HighlightLine(t *testing.T) {
	h := NewHighlighter()

	tests := []struct {
		line     string
		filename string
	}{
		{"[Desktop Entry]", "firefox.desktop"},
		{"Categories=Network;WebBrowser;", "firefox.desktop"},
		{"Exec=firefox %u", "firefox.desktop"},
		{"skip_empty_categories: true", "config.yaml"},
		{`{"favorites": ["firefox"]}`, "favorites.json"},
		{"plain text", "notes"},
	}

	for _, tt := range tests {
		result := h.HighlightLine(tt.line, tt.filename)
		if result == "" {
			t.Errorf("HighlightLine(%q, %s) returned empty string", tt.line, tt.filename)
		}
	}
}

func TestHighlighter_UnknownFileUnchanged(t *testing.T) {
	h := NewHighlighter()
	if got := h.HighlightLine("just words", "no-extension-file"); got != "just words" {
		t.Errorf("expected unknown file to pass through, got %q", got)
	}
}

func TestHighlighter_KeepsText(t *testing.T) {
	h := NewHighlighter()
	lines := []string{"[Desktop Entry]", "Name=Files", "Exec=nautilus --new-window %U"}

	for _, line := range lines {
		// Twice, so the cached lexer and styles are used too
		for rep := 0; rep < 2; rep++ {
			if got := stripANSI(h.HighlightLine(line, "files.desktop")); got != line {
				t.Errorf("HighlightLine(%q) lost its text: %q", line, got)
			}
		}
	}
}

func TestSplitFieldCodes(t *testing.T) {
	tests := []struct {
		in   string
		want []segment
	}{
		{"firefox", []segment{{text: "firefox"}}},
		{"firefox %u", []segment{{text: "firefox "}, {text: "%u", code: true}}},
		{"%F", []segment{{text: "%F", code: true}}},
		{"a %f b %% c", []segment{
			{text: "a "}, {text: "%f", code: true}, {text: " b "}, {text: "%%", code: true}, {text: " c"},
		}},
		{"100%x", []segment{{text: "100%x"}}},
	}

	for _, tt := range tests {
		got := splitFieldCodes(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitFieldCodes(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitFieldCodes(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

// stripANSI removes terminal escape sequences
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return b.String()
}
