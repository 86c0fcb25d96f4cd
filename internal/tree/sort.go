package tree

import (
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sorter orders siblings: directories before files, then by display name
// using the collation rules of a locale.
//
// A Sorter is safe for concurrent use; each sort builds its own collator
// because collate.Collator keeps scratch buffers.
type Sorter struct {
	tag language.Tag
}

// DefaultSorter collates with English rules.
var DefaultSorter = NewSorter(language.English)

// NewSorter returns a Sorter for the given locale.
func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{tag: tag}
}

// ParseSorter returns a Sorter for a BCP 47 locale string such as "en" or
// "sv-SE". An empty string selects DefaultSorter.
func ParseSorter(locale string) (*Sorter, error) {
	if locale == "" {
		return DefaultSorter, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return NewSorter(tag), nil
}

// Locale returns the language tag used for collation.
func (s *Sorter) Locale() language.Tag {
	return s.tag
}

func (s *Sorter) collator() *collate.Collator {
	return collate.New(s.tag)
}

// SortSiblings returns a sorted copy of nodes. Only the given level is
// ordered; children are copied as-is.
func (s *Sorter) SortSiblings(nodes []Node) []Node {
	return sortLevel(s.collator(), copyLevel(nodes))
}

// SortTree returns a copy of nodes with every level sorted.
func (s *Sorter) SortTree(nodes []Node) []Node {
	return sortRecursive(s.collator(), nodes)
}

// SortSiblings orders one level with DefaultSorter.
func SortSiblings(nodes []Node) []Node {
	return DefaultSorter.SortSiblings(nodes)
}

// SortTree orders every level with DefaultSorter.
func SortTree(nodes []Node) []Node {
	return DefaultSorter.SortTree(nodes)
}

func compareNodes(c *collate.Collator, a, b Node) int {
	if a.Kind != b.Kind {
		if a.Kind == Directory {
			return -1
		}
		return 1
	}
	return c.CompareString(a.DisplayName, b.DisplayName)
}

func sortLevel(c *collate.Collator, nodes []Node) []Node {
	slices.SortStableFunc(nodes, func(a, b Node) int {
		return compareNodes(c, a, b)
	})
	return nodes
}

func sortRecursive(c *collate.Collator, nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
		if n.IsDir() {
			out[i].Children = sortRecursive(c, n.Children)
		} else {
			out[i].Children = nil
		}
	}
	return sortLevel(c, out)
}

// copyLevel deep-copies nodes so the result never aliases the input.
func copyLevel(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = clone(n)
	}
	return out
}
