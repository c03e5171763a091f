package ui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	Primary    = lipgloss.Color("#7C3AED") // Purple
	Secondary  = lipgloss.Color("#06B6D4") // Cyan
	Success    = lipgloss.Color("#10B981") // Green
	Warning    = lipgloss.Color("#F59E0B") // Amber
	Error      = lipgloss.Color("#EF4444") // Red
	Muted      = lipgloss.Color("#6B7280") // Gray
	Foreground = lipgloss.Color("#F9FAFB") // Light
	Border     = lipgloss.Color("#374151") // Border gray
	Selected   = lipgloss.Color("#4F46E5") // Indigo
	Favorite   = lipgloss.Color("#FBBF24") // Gold
)

// Styles
var (
	// App container
	AppStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Foreground)

	VersionStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary).
			Padding(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Primary).
				Padding(0, 1)

	// List items
	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Selected).
				Foreground(Foreground)

	CursorStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Category names in the category pane
	CategoryStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	CountStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Entry details
	EntryNameStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	EntryCommentStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Italic(true)

	FavoriteStyle = lipgloss.NewStyle().
			Foreground(Favorite)

	// Exec field codes (%u, %F) in descriptor previews
	FieldCodeStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Underline(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	// Help bar
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Muted text
	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Divider
	DividerStyle = lipgloss.NewStyle().
			Foreground(Border)
)

// NotifyKind selects the style of a status notification
type NotifyKind int

const (
	NotifyInfo NotifyKind = iota
	NotifySuccess
	NotifyError
)

// notifications maps each kind to its badge icon and colours
var notifications = map[NotifyKind]struct {
	icon   string
	fg, bg lipgloss.Color
}{
	NotifyInfo:    {"ℹ", "#93C5FD", "#1E3A5F"},
	NotifySuccess: {"✓", Success, "#064E3B"},
	NotifyError:   {"✗", "#FCA5A5", "#7F1D1D"},
}

// RenderHelpItem renders a help key-description pair
func RenderHelpItem(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

// RenderNotification renders a status badge. Unknown kinds render as info.
func RenderNotification(kind NotifyKind, message string) string {
	n, ok := notifications[kind]
	if !ok {
		n = notifications[NotifyInfo]
	}
	return lipgloss.NewStyle().
		Foreground(n.fg).
		Background(n.bg).
		Bold(true).
		Padding(0, 1).
		Render(n.icon + " " + message)
}

// RenderFavoriteMark returns a star for favorited entries and padding otherwise
func RenderFavoriteMark(favorite bool) string {
	if favorite {
		return FavoriteStyle.Render("★")
	}
	return " "
}
