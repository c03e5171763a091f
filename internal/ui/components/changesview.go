package components

import (
	"fmt"
	"slices"
	"strings"

	"appmenu/internal/index"
	"appmenu/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

// ChangesView lists the entries added and removed by the latest rebuild,
// grouped by category
type ChangesView struct {
	Width  int
	Height int

	Generation uint64
	Summary    index.Summary

	// Navigation
	ScrollOffset int
	CurrentGroup int

	groups []changeGroup

	// Styles
	addStyle    lipgloss.Style
	deleteStyle lipgloss.Style
	headerStyle lipgloss.Style
}

type changeLine struct {
	added bool
	name  string
	appID string
}

type changeGroup struct {
	category string
	lines    []changeLine
}

// NewChangesView creates a new ChangesView
func NewChangesView() *ChangesView {
	return &ChangesView{
		Width:  80,
		Height: 20,
		addStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a6e3a1")),
		deleteStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f38ba8")),
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89b4fa")),
	}
}

// SetChanges sets the summary to display and resets the scroll position
func (c *ChangesView) SetChanges(generation uint64, summary index.Summary) {
	c.Generation = generation
	c.Summary = summary
	c.groups = groupChanges(summary)
	c.ScrollOffset = 0
	c.CurrentGroup = 0
}

// groupChanges splits summary lines by category, categories in name order,
// removals before additions within a category
func groupChanges(s index.Summary) []changeGroup {
	byCategory := make(map[string]*changeGroup)
	var order []string

	add := func(raw string, added bool) {
		parts := strings.SplitN(raw, "\t", 3)
		for len(parts) < 3 {
			parts = append(parts, "")
		}
		g, ok := byCategory[parts[0]]
		if !ok {
			g = &changeGroup{category: parts[0]}
			byCategory[parts[0]] = g
			order = append(order, parts[0])
		}
		g.lines = append(g.lines, changeLine{added: added, name: parts[1], appID: parts[2]})
	}
	for _, l := range s.Removed {
		add(l, false)
	}
	for _, l := range s.Added {
		add(l, true)
	}

	slices.Sort(order)
	groups := make([]changeGroup, 0, len(order))
	for _, category := range order {
		groups = append(groups, *byCategory[category])
	}
	return groups
}

// ScrollUp scrolls the view up
func (c *ChangesView) ScrollUp() {
	if c.ScrollOffset > 0 {
		c.ScrollOffset--
	}
}

// ScrollDown scrolls the view down
func (c *ChangesView) ScrollDown() {
	if c.ScrollOffset < len(c.lines())-1 {
		c.ScrollOffset++
	}
}

// NextGroup jumps to the next category
func (c *ChangesView) NextGroup() {
	if c.CurrentGroup < len(c.groups)-1 {
		c.CurrentGroup++
		c.ScrollOffset = c.groupOffset(c.CurrentGroup)
	}
}

// PrevGroup jumps to the previous category
func (c *ChangesView) PrevGroup() {
	if c.CurrentGroup > 0 {
		c.CurrentGroup--
		c.ScrollOffset = c.groupOffset(c.CurrentGroup)
	}
}

// groupOffset returns the line of a group's header
func (c *ChangesView) groupOffset(group int) int {
	offset := 0
	for i := 0; i < group; i++ {
		offset += len(c.groups[i].lines) + 2 // header and blank line
	}
	return offset
}

// View renders the changes view
func (c *ChangesView) View() string {
	var b strings.Builder

	b.WriteString(c.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(c.renderStats())
	b.WriteString("\n\n")
	b.WriteString(c.renderBody())
	b.WriteString("\n")
	b.WriteString(c.renderFooter())

	return b.String()
}

func (c *ChangesView) renderHeader() string {
	title := c.headerStyle.Render("Menu changes")
	return fmt.Sprintf("%s  %s", title, ui.MutedStyle.Render(fmt.Sprintf("rebuild %d", c.Generation)))
}

func (c *ChangesView) renderStats() string {
	if c.Summary.Empty() {
		return ui.MutedStyle.Render("No changes in the last rebuild")
	}

	var parts []string
	if n := len(c.Summary.Added); n > 0 {
		parts = append(parts, c.addStyle.Render(fmt.Sprintf("+%d", n)))
	}
	if n := len(c.Summary.Removed); n > 0 {
		parts = append(parts, c.deleteStyle.Render(fmt.Sprintf("-%d", n)))
	}
	return strings.Join(parts, " ") + "  " + ui.MutedStyle.Render(fmt.Sprintf("%d categories", len(c.groups)))
}

// lines renders every group, unscrolled
func (c *ChangesView) lines() []string {
	var lines []string
	lineWidth := max(c.Width-4, 10)

	for i, g := range c.groups {
		header := fmt.Sprintf("@@ %s @@", g.category)
		if i == c.CurrentGroup {
			header = ui.SelectedItemStyle.Render(header)
		} else {
			header = ui.CategoryStyle.Render(header)
		}
		lines = append(lines, header)

		for _, l := range g.lines {
			text := truncate(fmt.Sprintf("%s  %s", l.name, l.appID), lineWidth-2)
			if l.added {
				lines = append(lines, c.addStyle.Render("+ "+text))
			} else {
				lines = append(lines, c.deleteStyle.Render("- "+text))
			}
		}
		lines = append(lines, "")
	}
	return lines
}

func (c *ChangesView) renderBody() string {
	lines := c.lines()
	if len(lines) == 0 {
		return ""
	}

	visible := max(c.Height-6, 1)
	start := min(c.ScrollOffset, len(lines)-1)
	end := min(start+visible, len(lines))
	return strings.Join(lines[start:end], "\n")
}

func (c *ChangesView) renderFooter() string {
	items := []string{
		ui.RenderHelpItem("j/k", "scroll"),
		ui.RenderHelpItem("n/N", "next/prev category"),
		ui.RenderHelpItem("esc", "close"),
	}
	return ui.StatusBarStyle.Render(strings.Join(items, "  "))
}

// HasChanges reports whether the last rebuild changed anything
func (c *ChangesView) HasChanges() bool {
	return !c.Summary.Empty()
}

// GroupCount returns the number of categories with changes
func (c *ChangesView) GroupCount() int {
	return len(c.groups)
}
