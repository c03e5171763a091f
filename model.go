package main

import (
	"context"
	"fmt"
	"strings"

	"appmenu/internal/config"
	"appmenu/internal/engine"
	"appmenu/internal/iconcache"
	"appmenu/internal/launch"
	"appmenu/internal/models"
	"appmenu/internal/ui"
	"appmenu/internal/ui/components"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents different screens in the app
type Screen int

const (
	ScreenLoading Screen = iota // Waiting for the first index
	ScreenMain
	ScreenPreview
	ScreenChanges
	ScreenHelp
)

// Panel represents which panel is focused
type Panel int

const (
	PanelCategories Panel = iota
	PanelEntries
)

// Messages
type (
	updateMsg engine.Update

	launchedMsg struct {
		entry models.Entry
		pid   int
		err   error
	}

	favoritesSavedMsg struct {
		favorites config.Favorites
		err       error
	}
)

// Model is the interactive menu
type Model struct {
	ctx           context.Context
	engine        *engine.Engine
	favoritesPath string

	// UI Components
	categoryList *components.CategoryList
	entryList    *components.EntryList
	preview      *components.Preview
	changesView  *components.ChangesView
	spinner      spinner.Model
	help         help.Model
	keys         ui.KeyMap

	// State
	current      engine.Update
	screen       Screen
	focusedPanel Panel
	status       string
	statusKind   ui.NotifyKind
	width        int
	height       int
}

func newModel(ctx context.Context, e *engine.Engine, icons *iconcache.Cache, favoritesPath string) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ui.Primary)

	m := &Model{
		ctx:           ctx,
		engine:        e,
		favoritesPath: favoritesPath,
		categoryList:  components.NewCategoryList(),
		entryList:     components.NewEntryList(icons),
		preview:       components.NewPreview(icons),
		changesView:   components.NewChangesView(),
		spinner:       s,
		help:          help.New(),
		keys:          ui.DefaultKeyMap(),
		screen:        ScreenLoading,
		focusedPanel:  PanelCategories,
		status:        "Scanning applications...",
		width:         80,
		height:        24,
	}
	m.updatePanelSizes()

	// The engine may already hold an index when the menu opens
	if u := e.Current(); u.Generation > 0 {
		m.applyUpdate(u)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForUpdate())
}

// waitForUpdate blocks on the engine's update channel until the menu closes
func (m *Model) waitForUpdate() tea.Cmd {
	updates := m.engine.Updates()
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case u := <-updates:
			return updateMsg(u)
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updatePanelSizes()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		if m.screen == ScreenPreview {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}

	case spinner.TickMsg:
		if m.screen != ScreenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case updateMsg:
		first := m.current.Generation == 0
		m.applyUpdate(engine.Update(msg))
		if first {
			m.setStatus(ui.NotifyInfo, fmt.Sprintf("%d applications", msg.Index.Len()))
		} else if !msg.Changes.Empty() {
			m.setStatus(ui.NotifyInfo, "Menu updated: "+msg.Changes.String())
		}
		return m, m.waitForUpdate()

	case launchedMsg:
		if msg.err != nil {
			m.setStatus(ui.NotifyError, msg.err.Error())
			return m, nil
		}
		// Close the menu once the application is running
		return m, tea.Quit

	case favoritesSavedMsg:
		if msg.err != nil {
			m.setStatus(ui.NotifyError, "Could not save favorites: "+msg.err.Error())
			return m, nil
		}
		m.engine.SetFavorites(msg.favorites)
		m.entryList.Favorites = msg.favorites
		m.setStatus(ui.NotifySuccess, "Favorites saved")
		return m, nil
	}

	return m, nil
}

// applyUpdate installs a new index in the panes, keeping the selection where possible
func (m *Model) applyUpdate(u engine.Update) {
	m.current = u
	m.changesView.SetChanges(u.Generation, u.Changes)
	m.categoryList.SetIndex(u.Index, u.Categories)
	m.entryList.Favorites = u.Favorites
	m.syncEntries(false)
	if m.screen == ScreenLoading {
		m.screen = ScreenMain
	}
}

// syncEntries shows the bucket of the selected category.
// A new category resets the entry scroll; a refresh of the same one keeps it.
func (m *Model) syncEntries(reset bool) {
	category := m.categoryList.Current()
	bucket := m.current.Index.Bucket(category)
	if reset || m.entryList.Title != category {
		m.entryList.SetEntries(category, bucket)
		return
	}
	m.entryList.Refresh(bucket)
}

func (m *Model) setStatus(kind ui.NotifyKind, status string) {
	m.statusKind = kind
	m.status = status
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenPreview:
		return m.handlePreviewKeys(msg)
	case ScreenChanges:
		return m.handleChangesKeys(msg)
	case ScreenHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.screen = ScreenMain
		}
		return m, nil
	case ScreenLoading:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	return m.handleMainKeys(msg)
}

func (m *Model) handleMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.screen = ScreenHelp

	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
		m.togglePanel()

	case key.Matches(msg, m.keys.Escape):
		if m.focusedPanel == PanelEntries {
			m.togglePanel()
		}

	case key.Matches(msg, m.keys.Up):
		m.handleNavigation(true)
	case key.Matches(msg, m.keys.Down):
		m.handleNavigation(false)
	case key.Matches(msg, m.keys.PageUp):
		m.handlePageNavigation(true)
	case key.Matches(msg, m.keys.PageDown):
		m.handlePageNavigation(false)
	case key.Matches(msg, m.keys.Home):
		m.handleHomeEnd(true)
	case key.Matches(msg, m.keys.End):
		m.handleHomeEnd(false)

	case key.Matches(msg, m.keys.Launch):
		if m.focusedPanel == PanelCategories {
			m.togglePanel()
			return m, nil
		}
		return m.handleLaunch()

	case key.Matches(msg, m.keys.Favorite):
		return m.handleFavorite()

	case key.Matches(msg, m.keys.Preview):
		return m.handlePreview()

	case key.Matches(msg, m.keys.Changes):
		m.screen = ScreenChanges

	case key.Matches(msg, m.keys.Refresh):
		m.engine.Trigger()
		m.setStatus(ui.NotifyInfo, "Refreshing...")
	}
	return m, nil
}

func (m *Model) handlePreviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Preview):
		m.screen = ScreenMain
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Quit):
		m.screen = ScreenMain
	case key.Matches(msg, m.keys.Up):
		m.preview.ScrollUp()
	case key.Matches(msg, m.keys.Down):
		m.preview.ScrollDown()
	case key.Matches(msg, m.keys.PageUp):
		m.preview.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.preview.PageDown()
	case key.Matches(msg, m.keys.Launch):
		return m, launchCmd(m.preview.Entry)
	}
	return m, nil
}

func (m *Model) handleChangesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Changes), key.Matches(msg, m.keys.Quit):
		m.screen = ScreenMain
	case key.Matches(msg, m.keys.Up):
		m.changesView.ScrollUp()
	case key.Matches(msg, m.keys.Down):
		m.changesView.ScrollDown()
	case key.Matches(msg, m.keys.NextCat):
		m.changesView.NextGroup()
	case key.Matches(msg, m.keys.PrevCat):
		m.changesView.PrevGroup()
	}
	return m, nil
}

func (m *Model) handleNavigation(up bool) {
	if m.focusedPanel == PanelEntries {
		if up {
			m.entryList.MoveUp()
		} else {
			m.entryList.MoveDown()
		}
		return
	}
	if up {
		m.categoryList.MoveUp()
	} else {
		m.categoryList.MoveDown()
	}
	m.syncEntries(true)
}

func (m *Model) handlePageNavigation(up bool) {
	if m.focusedPanel != PanelEntries {
		m.handleHomeEnd(up)
		return
	}
	if up {
		m.entryList.PageUp()
	} else {
		m.entryList.PageDown()
	}
}

func (m *Model) handleHomeEnd(home bool) {
	if m.focusedPanel == PanelEntries {
		if home {
			m.entryList.GoToFirst()
		} else {
			m.entryList.GoToLast()
		}
		return
	}
	if home {
		m.categoryList.GoToFirst()
	} else {
		m.categoryList.GoToLast()
	}
	m.syncEntries(true)
}

func (m *Model) togglePanel() {
	if m.focusedPanel == PanelCategories {
		m.focusedPanel = PanelEntries
	} else {
		m.focusedPanel = PanelCategories
	}
	m.categoryList.Focused = m.focusedPanel == PanelCategories
	m.entryList.Focused = m.focusedPanel == PanelEntries
}

func (m *Model) handleLaunch() (tea.Model, tea.Cmd) {
	e, ok := m.entryList.Current()
	if !ok {
		return m, nil
	}
	m.setStatus(ui.NotifyInfo, "Launching "+e.Name+"...")
	return m, launchCmd(e)
}

func launchCmd(e models.Entry) tea.Cmd {
	return func() tea.Msg {
		pid, err := launch.Spawn(e)
		return launchedMsg{entry: e, pid: pid, err: err}
	}
}

func (m *Model) handleFavorite() (tea.Model, tea.Cmd) {
	e, ok := m.entryList.Current()
	if !ok {
		return m, nil
	}
	favs := m.engine.Favorites().Toggle(e.AppID)
	path := m.favoritesPath
	return m, func() tea.Msg {
		if path == "" {
			return favoritesSavedMsg{favorites: favs}
		}
		return favoritesSavedMsg{favorites: favs, err: favs.Save(path)}
	}
}

func (m *Model) handlePreview() (tea.Model, tea.Cmd) {
	e, ok := m.entryList.Current()
	if !ok {
		return m, nil
	}
	if err := m.preview.Load(e); err != nil {
		m.setStatus(ui.NotifyError, "Preview failed: "+err.Error())
		return m, nil
	}
	m.screen = ScreenPreview
	return m, nil
}

func (m *Model) updatePanelSizes() {
	panelHeight := max(m.height-6, 5)
	categoryWidth := max(m.width/4, 20)

	m.categoryList.Width = categoryWidth
	m.categoryList.Height = panelHeight
	m.entryList.Width = max(m.width-categoryWidth-6, 30)
	m.entryList.Height = panelHeight
	m.preview.SetSize(max(m.width-4, 20), panelHeight)
	m.changesView.Width = max(m.width-4, 20)
	m.changesView.Height = panelHeight
	m.help.Width = m.width
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.screen {
	case ScreenLoading:
		b.WriteString(lipgloss.NewStyle().
			Width(m.width-2).
			Height(max(m.height-6, 1)).
			Align(lipgloss.Center, lipgloss.Center).
			Render(m.spinner.View() + " Scanning applications..."))
	case ScreenPreview:
		b.WriteString(m.preview.View())
	case ScreenChanges:
		b.WriteString(m.changesView.View())
	case ScreenHelp:
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	default:
		b.WriteString(lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.categoryList.View(),
			"  ",
			m.entryList.View(),
		))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return ui.AppStyle.Render(b.String())
}

func (m *Model) renderHeader() string {
	title := ui.TitleStyle.Render("Applications")
	ver := ui.VersionStyle.Render("v" + version)
	return ui.HeaderStyle.Render(title + "  " + ver)
}

func (m *Model) renderStatusBar() string {
	var stats []string
	if m.current.Generation > 0 {
		stats = append(stats,
			fmt.Sprintf("Apps: %d", m.current.Index.Len()),
			fmt.Sprintf("Favorites: %d", len(m.current.Favorites.AppIDs)))
	}

	status := ui.RenderNotification(m.statusKind, m.status)
	if len(stats) == 0 {
		return ui.StatusBarStyle.Render(status)
	}
	return ui.StatusBarStyle.Render(status + "  •  " + strings.Join(stats, "  •  "))
}
