package components

import (
	"fmt"
	"strings"

	"appmenu/internal/models"
	"appmenu/internal/ui"
)

// CategoryList is the left pane listing index categories
type CategoryList struct {
	Categories []string
	Counts     map[string]int
	Cursor     int
	Width      int
	Height     int
	Focused    bool
	Title      string
}

// NewCategoryList creates a new category list
func NewCategoryList() *CategoryList {
	return &CategoryList{
		Counts:  make(map[string]int),
		Width:   24,
		Height:  15,
		Focused: true,
		Title:   "Categories",
	}
}

// SetIndex replaces the categories, keeping the cursor on the same name when it survives
func (l *CategoryList) SetIndex(idx models.Index, categories []string) {
	current := l.Current()

	l.Categories = categories
	l.Counts = make(map[string]int, len(categories))
	for _, c := range categories {
		l.Counts[c] = len(idx.Bucket(c))
	}

	l.Cursor = 0
	for i, c := range categories {
		if c == current {
			l.Cursor = i
			break
		}
	}
}

// Select moves the cursor to a category by name and reports whether it exists
func (l *CategoryList) Select(category string) bool {
	for i, c := range l.Categories {
		if c == category {
			l.Cursor = i
			return true
		}
	}
	return false
}

// MoveUp moves cursor up
func (l *CategoryList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves cursor down
func (l *CategoryList) MoveDown() {
	if l.Cursor < len(l.Categories)-1 {
		l.Cursor++
	}
}

// GoToFirst moves cursor to the first item
func (l *CategoryList) GoToFirst() {
	l.Cursor = 0
}

// GoToLast moves cursor to the last item
func (l *CategoryList) GoToLast() {
	if len(l.Categories) > 0 {
		l.Cursor = len(l.Categories) - 1
	}
}

// Current returns the category under the cursor, or "" when empty
func (l *CategoryList) Current() string {
	if len(l.Categories) > 0 && l.Cursor < len(l.Categories) {
		return l.Categories[l.Cursor]
	}
	return ""
}

// View renders the category list
func (l *CategoryList) View() string {
	var b strings.Builder

	b.WriteString(ui.PanelTitleStyle.Render(l.Title))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(l.Width-2, 1))))
	b.WriteString("\n")

	if len(l.Categories) == 0 {
		b.WriteString(ui.ItemStyle.Render("No categories"))
		return l.wrapInPanel(b.String())
	}

	visibleHeight := max(l.Height-3, 1) // Minus title and divider
	startIdx := 0
	if l.Cursor >= visibleHeight {
		startIdx = l.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(l.Categories))

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(l.renderItem(l.Categories[i], i == l.Cursor))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	return l.wrapInPanel(b.String())
}

// renderItem renders a single category with its entry count
func (l *CategoryList) renderItem(category string, isCursor bool) string {
	name := truncate(category, max(l.Width-10, 6))
	content := fmt.Sprintf("%s %s", ui.CategoryStyle.Render(name), ui.CountStyle.Render(fmt.Sprintf("(%d)", l.Counts[category])))

	if isCursor && l.Focused {
		return ui.SelectedItemStyle.Width(max(l.Width-4, 1)).Render(fmt.Sprintf("%s (%d)", name, l.Counts[category]))
	}
	if isCursor {
		return ui.ItemStyle.Render(ui.CursorStyle.Render("›") + content)
	}
	return ui.ItemStyle.Render(" " + content)
}

// wrapInPanel wraps content in a panel border
func (l *CategoryList) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if l.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(l.Width).Height(l.Height).Render(content)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
