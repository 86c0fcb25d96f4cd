package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StatusBarModel renders the bottom status bar.
type StatusBarModel struct {
	width    int
	selected string // path under the cursor
	loading  int
	visible  int

	// Temporary flash message (e.g. "Refreshing acme/gateway@main...")
	statusMessage string
	// Monotonic counter: incremented on each SetTemporaryMessage call.
	// StatusBarClearMsg carries the seq at time of scheduling; if it doesn't
	// match current seq the clear is stale and ignored.
	messageSeq int
}

func NewStatusBarModel() StatusBarModel {
	return StatusBarModel{}
}

func (m *StatusBarModel) SetWidth(width int) {
	m.width = width
}

// SetState updates the cursor path and row/fetch counters.
func (m *StatusBarModel) SetState(selected string, visible, loading int) {
	m.selected = selected
	m.visible = visible
	m.loading = loading
}

// SetTemporaryMessage shows a flash message in the status bar.
// Returns a tea.Cmd that will send a StatusBarClearMsg after the given duration,
// which the caller must include in the returned command batch.
func (m *StatusBarModel) SetTemporaryMessage(msg string, duration time.Duration) tea.Cmd {
	m.messageSeq++
	m.statusMessage = msg
	seq := m.messageSeq
	return tea.Tick(duration, func(_ time.Time) tea.Msg {
		return StatusBarClearMsg{Seq: seq}
	})
}

// ClearIfSeqMatch clears the message only if the given seq matches the current one.
// Returns true if the message was cleared.
func (m *StatusBarModel) ClearIfSeqMatch(seq int) bool {
	if seq == m.messageSeq {
		m.statusMessage = ""
		return true
	}
	return false
}

func (m StatusBarModel) View() string {
	var left string
	if m.statusMessage != "" {
		left = " " + strings.ReplaceAll(m.statusMessage, "\n", " ")
	} else {
		left = " " + m.selected
	}
	rightInfo := m.contextInfo()

	rightRendered := statusBarStyle.Render(rightInfo)
	rightWidth := lipgloss.Width(rightRendered)
	left = ansi.Truncate(left, max(0, m.width-rightWidth-1), "…")
	leftRendered := statusBarAccentStyle.Render(left)

	padding := m.width - lipgloss.Width(leftRendered) - rightWidth
	if padding < 0 {
		padding = 0
	}

	bar := leftRendered +
		statusBarStyle.Render(strings.Repeat(" ", padding)) +
		rightRendered

	return statusBarStyle.Width(m.width).Render(bar)
}

func (m StatusBarModel) contextInfo() string {
	info := fmt.Sprintf(" %d rows ", m.visible)
	if m.loading > 0 {
		info = fmt.Sprintf(" %d loading ·", m.loading) + info
	}
	return info + "[?]help "
}
