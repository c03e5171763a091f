package ui

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// fieldCode matches Exec field codes such as %u and %F
var fieldCode = regexp.MustCompile(`%[fFuUdDnNickvm%]`)

// Highlighter colours descriptor and settings files line by line.
// Lexers and token styles are resolved once per extension and token type.
// Not safe for concurrent use; the menu calls it from its update loop.
type Highlighter struct {
	style  *chroma.Style
	lexers map[string]chroma.Lexer
	tokens map[chroma.TokenType]*lipgloss.Style
}

// NewHighlighter creates a highlighter using the catppuccin-mocha palette
func NewHighlighter() *Highlighter {
	return &Highlighter{
		style:  styles.Get("catppuccin-mocha"),
		lexers: make(map[string]chroma.Lexer),
		tokens: make(map[chroma.TokenType]*lipgloss.Style),
	}
}

// HighlightLine colours one line of filename. Lines of unknown file types
// are returned unchanged. In desktop entries, Exec field codes stand out.
func (h *Highlighter) HighlightLine(line, filename string) string {
	lexer := h.lexerFor(filename)
	if lexer == nil {
		return line
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	desktopFile := isDesktopFile(filename)
	var b strings.Builder
	for token := iterator(); token != chroma.EOF; token = iterator() {
		// Lexers may append a newline the line never had
		value := strings.TrimSuffix(token.Value, "\n")
		if value == "" {
			continue
		}
		style := h.tokenStyle(token.Type)
		if !desktopFile {
			b.WriteString(render(style, value))
			continue
		}
		for _, seg := range splitFieldCodes(value) {
			if seg.code {
				b.WriteString(FieldCodeStyle.Render(seg.text))
			} else {
				b.WriteString(render(style, seg.text))
			}
		}
	}
	return b.String()
}

func render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}

// tokenStyle returns the lipgloss style for a token type, nil when the
// palette leaves it uncoloured
func (h *Highlighter) tokenStyle(t chroma.TokenType) *lipgloss.Style {
	if s, ok := h.tokens[t]; ok {
		return s
	}

	var out *lipgloss.Style
	entry := h.style.Get(t)
	if entry.Colour.IsSet() {
		s := lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Colour.String()))
		if entry.Bold == chroma.Yes {
			s = s.Bold(true)
		}
		if entry.Italic == chroma.Yes {
			s = s.Italic(true)
		}
		out = &s
	}
	h.tokens[t] = out
	return out
}

func (h *Highlighter) lexerFor(filename string) chroma.Lexer {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = filepath.Base(filename)
	}
	if l, ok := h.lexers[ext]; ok {
		return l
	}
	l := getLexerForFile(filename)
	if l != nil {
		l = chroma.Coalesce(l)
	}
	h.lexers[ext] = l
	return l
}

// getLexerForFile returns the appropriate lexer for a filename
func getLexerForFile(filename string) chroma.Lexer {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".desktop", ".directory", ".ini":
		// Desktop entries are INI with ';' lists; the INI lexer handles both
		return lexers.Get("ini")
	case ".yaml", ".yml":
		return lexers.Get("yaml")
	case ".json", ".jsonc":
		return lexers.Get("json")
	}

	return lexers.Match(filename)
}

func isDesktopFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".desktop" || ext == ".directory"
}

type segment struct {
	text string
	code bool
}

// splitFieldCodes cuts s around Exec field codes
func splitFieldCodes(s string) []segment {
	locs := fieldCode.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return []segment{{text: s}}
	}

	var out []segment
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			out = append(out, segment{text: s[prev:loc[0]]})
		}
		out = append(out, segment{text: s[loc[0]:loc[1]], code: true})
		prev = loc[1]
	}
	if prev < len(s) {
		out = append(out, segment{text: s[prev:]})
	}
	return out
}

// GetFileType returns a human-readable file type for display
func GetFileType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".desktop":
		return "Desktop Entry"
	case ".directory":
		return "Directory Entry"
	case ".yaml", ".yml":
		return "YAML"
	case ".json":
		return "JSON"
	case ".jsonc":
		return "JSONC"
	case ".ini":
		return "Config"
	default:
		return "Text"
	}
}
