package tree

import (
	"cmp"
	"maps"
	"slices"
)

// buildNode is the mutable form used while entries are attached to parents.
type buildNode struct {
	path     string
	name     string
	kind     Kind
	children []*buildNode
}

// Build converts a listing payload into a sorted tree using DefaultSorter.
func Build(p Payload) []Node {
	return DefaultSorter.Build(p)
}

// Build converts a listing payload into a tree sorted with s.
//
// Entries are placed shallowest first so a parent is always known before its
// children. Entries whose parent never appears, or whose parent is a file,
// are dropped. Directories left without real children receive a placeholder.
func (s *Sorter) Build(p Payload) []Node {
	entries := collectEntries(p)
	if len(entries) == 0 {
		return []Node{}
	}

	slices.SortStableFunc(entries, func(a, b validEntry) int {
		if c := cmp.Compare(Depth(a.path), Depth(b.path)); c != 0 {
			return c
		}
		return cmp.Compare(a.path, b.path)
	})

	lookup := make(map[string]*buildNode, len(entries))
	var roots []*buildNode
	for _, e := range entries {
		n := &buildNode{path: e.path, name: e.name, kind: e.kind}
		parent := parentPath(e.path)
		if parent == "/" {
			roots = append(roots, n)
			lookup[e.path] = n
			continue
		}
		pn, ok := lookup[parent]
		if !ok || pn.kind != Directory {
			continue
		}
		pn.children = append(pn.children, n)
		lookup[e.path] = n
	}

	out := make([]Node, len(roots))
	for i, r := range roots {
		out[i] = r.toNode()
	}
	return s.SortTree(out)
}

// collectEntries merges level and flat entries into one entry per path.
// Levels are read in key order; a flat entry overrides a level entry for the
// same path.
func collectEntries(p Payload) []validEntry {
	byPath := make(map[string]int)
	var entries []validEntry
	put := func(e Entry) {
		v, ok := e.validate()
		if !ok {
			return
		}
		if i, seen := byPath[v.path]; seen {
			entries[i] = v
			return
		}
		byPath[v.path] = len(entries)
		entries = append(entries, v)
	}

	for _, dir := range slices.Sorted(maps.Keys(p.Levels)) {
		for _, e := range p.Levels[dir].TreeItems {
			put(e)
		}
	}
	for _, e := range p.Items {
		put(e)
	}
	return entries
}

func (b *buildNode) toNode() Node {
	n := Node{
		Identifier:  b.path,
		DisplayName: b.name,
		Path:        b.path,
		Kind:        b.kind,
	}
	if b.kind != Directory {
		return n
	}
	n.Children = make([]Node, 0, len(b.children))
	for _, c := range b.children {
		n.Children = append(n.Children, c.toNode())
	}
	if len(n.Children) == 0 {
		n.Children = append(n.Children, Placeholder(b.path))
	}
	return n
}
