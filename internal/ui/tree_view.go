package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const indentWidth = 2

// renderRow draws one tree line, truncated to width. spin is the current
// spinner frame, shown next to directories being fetched.
func renderRow(r Row, selected bool, width int, spin string) string {
	var b strings.Builder
	if selected {
		b.WriteString(treeCursorGutter.Render("▶"))
	} else {
		b.WriteString(" ")
	}
	if r.Depth > 0 {
		b.WriteString(treeGuideStyle.Render(strings.Repeat("│"+strings.Repeat(" ", indentWidth-1), r.Depth)))
	}

	n := r.Node
	switch {
	case n.IsPlaceholder:
		switch {
		case r.Loading:
			b.WriteString("  " + spin + treePlaceholderStyle.Render(" loading"))
		case r.Empty:
			b.WriteString("  " + treePlaceholderStyle.Render("(empty)"))
		default:
			b.WriteString("  " + treePlaceholderStyle.Render(n.DisplayName))
		}
	case n.IsDir():
		marker := "▸ "
		if r.Expanded {
			marker = "▾ "
		}
		b.WriteString(marker + treeDirStyle.Render(n.DisplayName+"/"))
		if r.Loading {
			b.WriteString(" " + spin)
		}
	default:
		b.WriteString("  " + treeFileStyle.Render(n.DisplayName))
	}

	line := ansi.Truncate(b.String(), width, "…")
	if selected {
		return lipgloss.NewStyle().Background(treeCursorBg).Width(width).Render(line)
	}
	return line
}

// renderRows draws every row, highlighting cursor.
func renderRows(rows []Row, cursor, width int, spin string) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = renderRow(r, i == cursor, width, spin)
	}
	return strings.Join(lines, "\n")
}
