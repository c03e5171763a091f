package components

import (
	"fmt"
	"strings"

	"appmenu/internal/config"
	"appmenu/internal/iconcache"
	"appmenu/internal/models"
	"appmenu/internal/ui"
)

// ListIconSize is the icon size looked up for list rows
const ListIconSize = 24

// EntryList is the right pane listing the entries of one category
type EntryList struct {
	Entries   []models.Entry
	Favorites config.Favorites
	Icons     *iconcache.Cache // Optional; rows mark entries whose icon is missing
	Cursor    int
	Width     int
	Height    int
	Focused   bool
	Title     string
}

// NewEntryList creates a new entry list
func NewEntryList(icons *iconcache.Cache) *EntryList {
	return &EntryList{
		Icons:  icons,
		Width:  50,
		Height: 15,
		Title:  "Applications",
	}
}

// SetEntries replaces the entries and resets the scroll position
func (l *EntryList) SetEntries(title string, entries []models.Entry) {
	l.Title = title
	l.Entries = entries
	l.Cursor = 0
}

// Refresh replaces the entries, keeping the cursor on the same app when possible
func (l *EntryList) Refresh(entries []models.Entry) {
	current, ok := l.Current()
	l.Entries = entries
	l.Cursor = 0
	if !ok {
		return
	}
	for i, e := range entries {
		if e.AppID == current.AppID {
			l.Cursor = i
			return
		}
	}
}

// MoveUp moves cursor up
func (l *EntryList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves cursor down
func (l *EntryList) MoveDown() {
	if l.Cursor < len(l.Entries)-1 {
		l.Cursor++
	}
}

// PageUp moves cursor up by a page
func (l *EntryList) PageUp() {
	pageSize := l.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	l.Cursor = max(l.Cursor-pageSize, 0)
}

// PageDown moves cursor down by a page
func (l *EntryList) PageDown() {
	pageSize := l.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	l.Cursor = min(l.Cursor+pageSize, max(len(l.Entries)-1, 0))
}

// GoToFirst moves cursor to the first item
func (l *EntryList) GoToFirst() {
	l.Cursor = 0
}

// GoToLast moves cursor to the last item
func (l *EntryList) GoToLast() {
	if len(l.Entries) > 0 {
		l.Cursor = len(l.Entries) - 1
	}
}

// Current returns the entry under the cursor
func (l *EntryList) Current() (models.Entry, bool) {
	if len(l.Entries) > 0 && l.Cursor < len(l.Entries) {
		return l.Entries[l.Cursor], true
	}
	return models.Entry{}, false
}

// View renders the entry list
func (l *EntryList) View() string {
	var b strings.Builder

	title := l.Title
	if len(l.Entries) > 0 {
		title = fmt.Sprintf("%s (%d)", l.Title, len(l.Entries))
	}
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(l.Width-2, 1))))
	b.WriteString("\n")

	if len(l.Entries) == 0 {
		b.WriteString(ui.ItemStyle.Render("No applications"))
		return l.wrapInPanel(b.String())
	}

	// Calculate visible range
	visibleHeight := max(l.Height-3, 1)
	startIdx := 0
	if l.Cursor >= visibleHeight {
		startIdx = l.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(l.Entries))

	// Show scroll indicator at top
	if startIdx > 0 {
		b.WriteString(ui.MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(l.renderItem(l.Entries[i], i == l.Cursor))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	// Show scroll indicator at bottom
	if endIdx < len(l.Entries) {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render("  ↓ more"))
	}

	return l.wrapInPanel(b.String())
}

// renderItem renders a single entry row
func (l *EntryList) renderItem(e models.Entry, isCursor bool) string {
	mark := ui.RenderFavoriteMark(l.Favorites.Contains(e.AppID))

	iconMark := " "
	if l.Icons != nil && !l.Icons.Resolve(e.Icon, ListIconSize).Found() {
		iconMark = ui.MutedStyle.Render("·")
	}

	nameWidth := max(l.Width/2-4, 10)
	name := truncate(e.Name, nameWidth)
	comment := truncate(e.Comment, max(l.Width-nameWidth-12, 0))

	if isCursor && l.Focused {
		return ui.SelectedItemStyle.Width(max(l.Width-4, 1)).Render(fmt.Sprintf("%s%s %-*s %s", mark, iconMark, nameWidth, name, comment))
	}
	return ui.ItemStyle.Render(fmt.Sprintf("%s%s %s %s", mark, iconMark,
		ui.EntryNameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)), ui.EntryCommentStyle.Render(comment)))
}

// wrapInPanel wraps content in a panel border
func (l *EntryList) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if l.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(l.Width).Height(l.Height).Render(content)
}
