package tree

import (
	"golang.org/x/text/collate"
)

// Conflict records a path that two merged trees disagree about: one side says
// file, the other directory. The first operand's kind is kept.
type Conflict struct {
	Path      string
	Kept      Kind
	Discarded Kind
}

// MergeSiblings merges incoming into base using DefaultSorter.
func MergeSiblings(base, incoming []Node) []Node {
	return DefaultSorter.MergeSiblings(base, incoming)
}

// MergeNode merges two nodes sharing a path using DefaultSorter.
func MergeNode(a, b Node) Node {
	return DefaultSorter.MergeNode(a, b)
}

// MergeSiblings combines two sibling lists describing the same region of the
// tree. Nodes are matched by path; real nodes beat placeholders and
// directories are merged recursively, so previously fetched descendants are
// never lost. The result is sorted at every level.
func (s *Sorter) MergeSiblings(base, incoming []Node) []Node {
	out, _ := s.MergeSiblingsReport(base, incoming)
	return out
}

// MergeSiblingsReport is MergeSiblings that also returns every kind conflict
// it resolved.
func (s *Sorter) MergeSiblingsReport(base, incoming []Node) ([]Node, []Conflict) {
	m := merger{c: s.collator()}
	out := m.finish(m.siblings(base, incoming))
	return out, m.conflicts
}

// MergeNode combines two nodes known to share a path.
func (s *Sorter) MergeNode(a, b Node) Node {
	m := merger{c: s.collator()}
	return m.finish([]Node{m.node(a, b)})[0]
}

type merger struct {
	c         *collate.Collator
	conflicts []Conflict
}

// siblings merges by path, preserving first-appearance order. Sorting and
// placeholder cleanup happen once in finish.
func (m *merger) siblings(base, incoming []Node) []Node {
	index := make(map[string]int, len(base)+len(incoming))
	out := make([]Node, 0, len(base)+len(incoming))
	add := func(n Node) {
		if i, ok := index[n.Path]; ok {
			out[i] = m.node(out[i], n)
			return
		}
		index[n.Path] = len(out)
		out = append(out, clone(n))
	}
	for _, n := range base {
		add(n)
	}
	for _, n := range incoming {
		add(n)
	}
	return out
}

func (m *merger) node(a, b Node) Node {
	switch {
	case a.IsPlaceholder && b.IsPlaceholder:
		return clone(a)
	case a.IsPlaceholder:
		return clone(b)
	case b.IsPlaceholder:
		return clone(a)
	}

	if a.Kind != b.Kind {
		m.conflicts = append(m.conflicts, Conflict{Path: a.Path, Kept: a.Kind, Discarded: b.Kind})
	}

	out := a
	if out.IsDir() {
		out.Children = m.siblings(a.Children, b.Children)
	} else {
		out.Children = nil
	}
	return out
}

// finish enforces the output contract at every level: a placeholder never
// shares a list with real nodes, directories hold a non-nil slice, files hold
// none, and siblings are sorted. Nodes that compare equal keep the order in
// which siblings first saw them, the same tie-break SortTree uses.
func (m *merger) finish(nodes []Node) []Node {
	realCount := 0
	for _, n := range nodes {
		if !n.IsPlaceholder {
			realCount++
		}
	}

	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.IsPlaceholder && realCount > 0 {
			continue
		}
		if n.IsDir() {
			n.Children = m.finish(n.Children)
		} else {
			n.Children = nil
		}
		out = append(out, n)
	}

	return sortLevel(m.c, out)
}
