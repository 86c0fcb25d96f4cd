package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// fetchDirectoryCmd returns a command that fetches dir (with its ancestors)
// from src, bounded by timeout.
func fetchDirectoryCmd(src TreeSource, dir string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		payload, err := src.FetchDirectory(ctx, dir)
		if err != nil {
			return DirectoryErrorMsg{Dir: dir, Err: err}
		}
		return DirectoryLoadedMsg{Dir: dir, Payload: payload}
	}
}
