package components

import (
	"fmt"
	"os"
	"strings"

	"appmenu/internal/desktop"
	"appmenu/internal/iconcache"
	"appmenu/internal/models"
	"appmenu/internal/ui"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PreviewIconSize is the icon size shown in the preview header
const PreviewIconSize = 48

// maxPreviewSize caps the descriptor bytes loaded into the preview
const maxPreviewSize = 256 * 1024

// Preview shows an entry's details and its highlighted descriptor file
type Preview struct {
	viewport    viewport.Model
	highlighter *ui.Highlighter
	icons       *iconcache.Cache

	// Entry info
	Entry      models.Entry
	Argv       []string
	Icon       iconcache.Handle
	TotalLines int

	// Dimensions
	Width  int
	Height int

	// Styles
	lineNumStyle lipgloss.Style
	headerStyle  lipgloss.Style
	infoStyle    lipgloss.Style
	borderStyle  lipgloss.Style
}

// NewPreview creates a new Preview with viewport
func NewPreview(icons *iconcache.Cache) *Preview {
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &Preview{
		viewport:    vp,
		highlighter: ui.NewHighlighter(),
		icons:       icons,
		Width:       80,
		Height:      20,
		lineNumStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")).
			Width(4).
			Align(lipgloss.Right),
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89b4fa")),
		infoStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")),
		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#89b4fa")).
			Padding(0, 1),
	}
}

// SetSize updates the viewport dimensions
func (p *Preview) SetSize(width, height int) {
	p.Width = width
	p.Height = height

	// Account for header (5 lines) and border (2 lines)
	p.viewport.Width = max(width-4, 20)
	p.viewport.Height = max(height-7, 5)
}

// Load shows an entry and the descriptor file it came from
func (p *Preview) Load(e models.Entry) error {
	p.Entry = e
	p.Argv, _ = desktop.ExpandExec(e)
	if p.icons != nil {
		p.Icon = p.icons.Resolve(e.Icon, PreviewIconSize)
	} else {
		p.Icon = iconcache.Handle{Name: e.Icon, Size: PreviewIconSize}
	}

	info, err := os.Stat(e.Path)
	if err != nil {
		return err
	}
	if info.Size() > maxPreviewSize {
		p.setMessage([]string{
			"",
			"  Descriptor is too large to preview",
			fmt.Sprintf("  Size: %d bytes", info.Size()),
		})
		return nil
	}

	data, err := os.ReadFile(e.Path)
	if err != nil {
		return err
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	// Build content with line numbers and syntax highlighting
	var b strings.Builder
	maxWidth := max(p.viewport.Width-8, 40)
	for i, line := range lines {
		if len(line) > maxWidth {
			line = line[:maxWidth-3] + "..."
		}
		b.WriteString(p.lineNumStyle.Render(fmt.Sprintf("%d", i+1)) + " │ " + p.highlighter.HighlightLine(line, e.Path))
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}

	p.TotalLines = len(lines)
	p.viewport.SetContent(b.String())
	p.viewport.GotoTop()
	return nil
}

// setMessage sets a simple message content
func (p *Preview) setMessage(lines []string) {
	p.TotalLines = len(lines)
	p.viewport.SetContent(strings.Join(lines, "\n"))
	p.viewport.GotoTop()
}

// Update handles messages for viewport scrolling
func (p *Preview) Update(msg tea.Msg) (*Preview, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the preview
func (p *Preview) View() string {
	var b strings.Builder

	b.WriteString(p.headerStyle.Render(p.Entry.Name))
	b.WriteString(p.infoStyle.Render(fmt.Sprintf("  %s  %s", p.Entry.AppID, ui.GetFileType(p.Entry.Path))) + "\n")
	b.WriteString(p.infoStyle.Render("exec: "+strings.Join(p.Argv, " ")) + "\n")
	b.WriteString(p.infoStyle.Render("icon: "+p.iconLine()) + "\n")
	b.WriteString(p.infoStyle.Render(p.Entry.Path) + "\n")

	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color("#313244")).
		Render(strings.Repeat("─", max(p.Width-4, 1))) + "\n")

	b.WriteString(p.viewport.View())

	// Scroll indicator
	if p.TotalLines > p.viewport.Height {
		b.WriteString("\n" + p.infoStyle.Render(fmt.Sprintf("─── %.0f%% ───", p.viewport.ScrollPercent()*100)))
	}

	return p.borderStyle.Width(p.Width).Height(p.Height).Render(b.String())
}

func (p *Preview) iconLine() string {
	switch {
	case p.Icon.Found() && p.Icon.Name == p.Entry.Icon:
		return p.Icon.Path
	case p.Icon.Found():
		return fmt.Sprintf("%s (fallback %s)", p.Icon.Path, p.Icon.Name)
	default:
		return p.Entry.Icon + " (not found)"
	}
}

// ScrollUp scrolls up one line
func (p *Preview) ScrollUp() {
	p.viewport.LineUp(1)
}

// ScrollDown scrolls down one line
func (p *Preview) ScrollDown() {
	p.viewport.LineDown(1)
}

// PageUp scrolls up by a page
func (p *Preview) PageUp() {
	p.viewport.ViewUp()
}

// PageDown scrolls down by a page
func (p *Preview) PageDown() {
	p.viewport.ViewDown()
}
