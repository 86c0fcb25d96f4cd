package ui

import "github.com/shhac/prtree/internal/tree"

// -- Directory loading --

// DirectoryLoadedMsg is sent when a directory and its ancestors have been fetched.
type DirectoryLoadedMsg struct {
	Dir     string
	Payload tree.Payload
}

// DirectoryErrorMsg is sent when fetching a directory fails.
type DirectoryErrorMsg struct {
	Dir string
	Err error
}

// -- Status bar --

// StatusBarClearMsg clears a temporary status message. Seq must match the
// status bar's current sequence, otherwise a newer message is showing.
type StatusBarClearMsg struct {
	Seq int
}

// HelpClosedMsg is sent when the help overlay is dismissed.
type HelpClosedMsg struct{}
