package ui

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shhac/prtree/internal/tree"
)

// handleDirectoryLoaded merges a fetched payload and continues any pending
// reveal.
func (m App) handleDirectoryLoaded(msg DirectoryLoadedMsg) (tea.Model, tea.Cmd) {
	m.state.FinishLoading(msg.Dir)
	m.loadErr = nil

	for _, c := range m.state.Apply(msg.Payload) {
		log.Printf("warning: %s changed from %s to %s, keeping %s", c.Path, c.Discarded, c.Kept, c.Kept)
	}

	var cmd tea.Cmd
	if m.revealPath != "" {
		if dir := m.state.Reveal(m.revealPath); dir != "" && dir != tree.NormalizePath(msg.Dir) {
			cmd = tea.Batch(m.fetch(dir), m.startSpinner())
		} else {
			m.cursorID = m.revealPath
			m.revealPath = ""
		}
	}

	m.refreshRows()
	return m, cmd
}

func (m App) handleDirectoryError(msg DirectoryErrorMsg) (tea.Model, tea.Cmd) {
	m.state.FinishLoading(msg.Dir)
	m.revealPath = ""
	log.Printf("warning: fetch %s from %s failed: %v", msg.Dir, m.source.Name(), msg.Err)

	if len(m.state.Roots()) == 0 {
		m.loadErr = msg.Err
	}
	m.refreshRows()
	return m, m.statusBar.SetTemporaryMessage(formatUserError(msg.Err.Error()), statusMessageDuration)
}

// handleSpinnerTick animates loading rows and stops ticking once nothing is
// in flight.
func (m App) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if m.state.LoadingCount() == 0 {
		m.spinning = false
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	m.refreshRows()
	return m, cmd
}

func (m App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, GlobalKeys.Quit):
		m.saveCache()
		return m, tea.Quit

	case key.Matches(msg, GlobalKeys.Help):
		m.helpOverlay.Show()
		return m, nil

	case key.Matches(msg, GlobalKeys.Refresh):
		return m.refresh()

	case key.Matches(msg, GlobalKeys.ExpandAll):
		m.state.ExpandAll()
		m.refreshRows()
		return m, nil

	case key.Matches(msg, GlobalKeys.CollapseAll):
		m.state.CollapseAll()
		m.refreshRows()
		return m, nil

	case key.Matches(msg, TreeKeys.Up):
		m.setCursor(m.cursor - 1)
	case key.Matches(msg, TreeKeys.Down):
		m.setCursor(m.cursor + 1)
	case key.Matches(msg, TreeKeys.HalfUp):
		m.setCursor(m.cursor - max(1, m.viewport.Height/2))
	case key.Matches(msg, TreeKeys.HalfDown):
		m.setCursor(m.cursor + max(1, m.viewport.Height/2))
	case key.Matches(msg, TreeKeys.Top):
		m.setCursor(0)
	case key.Matches(msg, TreeKeys.Bottom):
		m.setCursor(len(m.rows) - 1)

	case key.Matches(msg, TreeKeys.Toggle):
		return m.toggleSelected()
	case key.Matches(msg, TreeKeys.Expand):
		return m.expandSelected()
	case key.Matches(msg, TreeKeys.Collapse):
		return m.collapseSelected()
	}
	return m, nil
}

func (m App) selectedRow() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

func (m App) toggleSelected() (tea.Model, tea.Cmd) {
	r, ok := m.selectedRow()
	if !ok || !r.Node.IsDir() {
		return m, nil
	}
	var cmds []tea.Cmd
	if m.state.Toggle(r.Node.Identifier) {
		cmds = append(cmds, m.fetch(r.Node.Path), m.startSpinner())
	}
	m.refreshRows()
	return m, tea.Batch(cmds...)
}

// expandSelected opens a closed directory, or steps into an open one.
func (m App) expandSelected() (tea.Model, tea.Cmd) {
	r, ok := m.selectedRow()
	if !ok || !r.Node.IsDir() {
		return m, nil
	}
	if r.Expanded {
		m.setCursor(m.cursor + 1)
		return m, nil
	}
	var cmds []tea.Cmd
	if m.state.Expand(r.Node.Path) {
		cmds = append(cmds, m.fetch(r.Node.Path), m.startSpinner())
	}
	m.refreshRows()
	return m, tea.Batch(cmds...)
}

// collapseSelected closes an open directory, or moves to the parent row.
func (m App) collapseSelected() (tea.Model, tea.Cmd) {
	r, ok := m.selectedRow()
	if !ok {
		return m, nil
	}
	if r.Node.IsDir() && r.Expanded {
		m.state.Collapse(r.Node.Identifier)
		m.refreshRows()
		return m, nil
	}
	for i := m.cursor - 1; i >= 0; i-- {
		if m.rows[i].Depth < r.Depth {
			m.setCursor(i)
			break
		}
	}
	return m, nil
}

// refresh drops the cached tree and refetches the root and every open
// directory. Results merge in whatever order they arrive.
func (m App) refresh() (tea.Model, tea.Cmd) {
	if m.cache != nil {
		if err := m.cache.Delete(m.source.Name()); err != nil {
			log.Printf("warning: failed to drop cached tree for %s: %v", m.source.Name(), err)
		}
	}
	m.state.Reset()
	m.loadErr = nil

	cmds := []tea.Cmd{
		m.statusBar.SetTemporaryMessage(fmt.Sprintf("Refreshing %s...", m.source.Name()), statusMessageDuration),
		m.fetch("/"),
	}
	for _, dir := range m.state.Expanded() {
		cmds = append(cmds, m.fetch(dir))
	}
	cmds = append(cmds, m.startSpinner())
	m.refreshRows()
	return m, tea.Batch(cmds...)
}
