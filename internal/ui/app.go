package ui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/shhac/prtree/internal/config"
	"github.com/shhac/prtree/internal/tree"
)

const statusMessageDuration = 3 * time.Second

// App is the root Bubbletea model for the tree browser.
type App struct {
	source  TreeSource
	cache   TreeCache // nil when caching is disabled
	state   *TreeState
	timeout time.Duration

	viewport    viewport.Model
	spinner     spinner.Model
	spinning    bool
	statusBar   StatusBarModel
	helpOverlay HelpOverlayModel

	rows     []Row
	cursor   int
	cursorID string

	// Path to reveal once enough of the tree has been fetched.
	revealPath string
	// Set when the root could not be fetched and there is nothing to show.
	loadErr error

	width  int
	height int
	ready  bool
}

// NewApp creates the browser for src. cache may be nil. A non-empty
// startPath is revealed as soon as its directories have loaded.
func NewApp(src TreeSource, cfg *config.Config, cache TreeCache, startPath string) App {
	if cfg == nil {
		cfg = &config.Config{
			FetchTimeout: config.DefaultFetchTimeoutMs,
			Locale:       config.DefaultLocale,
		}
	}

	sorter, err := tree.ParseSorter(cfg.Locale)
	if err != nil {
		log.Printf("warning: %v, sorting with %s", err, tree.DefaultSorter.Locale())
		sorter = tree.DefaultSorter
	}
	state := NewTreeState(sorter)

	if cache != nil {
		cached, err := cache.Get(src.Name())
		if err != nil {
			log.Printf("warning: tree cache unreadable for %s: %v", src.Name(), err)
		} else if cached != nil {
			state.Seed(cached.Roots, cached.Expanded)
		}
	}

	m := App{
		source:      src,
		cache:       cache,
		state:       state,
		timeout:     cfg.FetchTimeoutDuration(),
		spinner:     newLoadingSpinner(),
		spinning:    true,
		statusBar:   NewStatusBarModel(),
		helpOverlay: NewHelpOverlayModel(),
	}
	if startPath != "" {
		m.revealPath = tree.NormalizePath(startPath)
	}
	return m
}

// State exposes the tree state, mainly for tests.
func (m App) State() *TreeState {
	return m.state
}

func (m App) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.fetch("/")}
	for _, dir := range m.state.UnloadedExpanded() {
		cmds = append(cmds, m.fetch(dir))
	}
	if m.revealPath != "" {
		if dir := m.state.Reveal(m.revealPath); dir != "" {
			cmds = append(cmds, m.fetch(dir))
		}
	}
	return tea.Batch(cmds...)
}

// Update dispatches messages to sub-handlers.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case DirectoryLoadedMsg:
		return m.handleDirectoryLoaded(msg)

	case DirectoryErrorMsg:
		return m.handleDirectoryError(msg)

	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)

	case StatusBarClearMsg:
		m.statusBar.ClearIfSeqMatch(msg.Seq)
		return m, nil

	case HelpClosedMsg:
		return m, nil

	case tea.KeyMsg:
		if m.helpOverlay.IsVisible() {
			var cmd tea.Cmd
			m.helpOverlay, cmd = m.helpOverlay.Update(msg)
			return m, cmd
		}
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleWindowSize processes terminal resize events.
func (m App) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.helpOverlay.SetSize(m.width, m.height)
	m.statusBar.SetWidth(m.width)

	bodyH := max(1, m.height-2) // header + status bar
	if !m.ready {
		m.viewport = viewport.New(m.width, bodyH)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = bodyH
	}
	m.refreshRows()
	return m, nil
}

func (m App) View() string {
	if !m.ready {
		return ""
	}
	if m.helpOverlay.IsVisible() {
		return m.helpOverlay.View()
	}

	header := headerStyle.Render("prtree") + " " + headerMetaStyle.Render(m.source.Name())
	header = ansi.Truncate(header, m.width, "…")

	var body string
	if len(m.rows) == 0 {
		body = lipgloss.NewStyle().Width(m.width).Height(m.viewport.Height).Render(m.emptyBody())
	} else {
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.statusBar.View())
}

func (m App) emptyBody() string {
	switch {
	case m.loadErr != nil:
		return renderErrorWithHint(formatUserError(m.loadErr.Error()), "Press r to retry")
	case m.state.LoadingCount() > 0:
		return lipgloss.NewStyle().Padding(1, 2).Render(m.spinner.View() + " Loading " + m.source.Name() + "…")
	default:
		return renderEmptyState("Nothing here", "Press r to refresh")
	}
}

// fetch starts loading dir unless a fetch for it is already running.
func (m *App) fetch(dir string) tea.Cmd {
	if !m.state.StartLoading(dir) {
		return nil
	}
	return fetchDirectoryCmd(m.source, dir, m.timeout)
}

// startSpinner restarts the spinner tick loop if it stopped.
func (m *App) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// refreshRows re-flattens the tree, keeping the cursor on the same node when
// it is still visible.
func (m *App) refreshRows() {
	m.rows = m.state.VisibleRows()
	if i := indexOf(m.rows, m.cursorID); i >= 0 {
		m.cursor = i
	}
	m.setCursor(m.cursor)
}

// setCursor clamps i to the visible rows, re-renders and scrolls so the
// cursor stays on screen.
func (m *App) setCursor(i int) {
	if len(m.rows) == 0 {
		m.cursor = 0
		m.cursorID = ""
	} else {
		m.cursor = max(0, min(i, len(m.rows)-1))
		m.cursorID = m.rows[m.cursor].Node.Identifier
	}

	selected := ""
	if len(m.rows) > 0 {
		selected = m.rows[m.cursor].Node.Path
		if m.rows[m.cursor].Node.IsPlaceholder {
			selected = ""
		}
	}
	m.statusBar.SetState(selected, len(m.rows), m.state.LoadingCount())

	if !m.ready {
		return
	}
	m.viewport.SetContent(renderRows(m.rows, m.cursor, m.width, m.spinner.View()))
	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// saveCache persists the tree for the next session.
func (m App) saveCache() {
	if m.cache == nil || len(m.state.Roots()) == 0 {
		return
	}
	if err := m.cache.Put(m.source.Name(), m.state.Roots(), m.state.Expanded()); err != nil {
		log.Printf("warning: failed to cache tree for %s: %v", m.source.Name(), err)
	}
}
