package ui

import (
	"path"
	"slices"

	"github.com/shhac/prtree/internal/tree"
)

// Row is one visible line of the tree.
type Row struct {
	Node     tree.Node
	Depth    int
	Expanded bool
	// Loading is set on a directory being fetched, and on the placeholder
	// beneath it.
	Loading bool
	// Empty marks a placeholder whose directory has been fetched and really
	// has no children.
	Empty bool
}

// TreeState holds the browsable tree and which directories are open. It
// never talks to a source; the App feeds it payloads.
type TreeState struct {
	roots    []tree.Node
	expanded map[string]bool
	loading  map[string]bool
	fetched  map[string]bool
	sorter   *tree.Sorter
}

// NewTreeState returns an empty state that orders siblings with sorter.
func NewTreeState(sorter *tree.Sorter) *TreeState {
	if sorter == nil {
		sorter = tree.DefaultSorter
	}
	return &TreeState{
		roots:    []tree.Node{},
		expanded: make(map[string]bool),
		loading:  make(map[string]bool),
		fetched:  make(map[string]bool),
		sorter:   sorter,
	}
}

// Roots returns the current top-level nodes.
func (s *TreeState) Roots() []tree.Node {
	return s.roots
}

// Seed replaces the tree with a cached copy. Directories that already hold
// real children count as fetched.
func (s *TreeState) Seed(roots []tree.Node, expanded []string) {
	s.roots = s.sorter.SortTree(roots)
	s.expanded = make(map[string]bool, len(expanded))
	for _, p := range expanded {
		s.expanded[p] = true
	}
	s.fetched = make(map[string]bool)
	if len(s.roots) > 0 {
		s.fetched["/"] = true
	}
	tree.Walk(s.roots, func(n tree.Node, _ int) bool {
		if n.IsDir() && n.HasRealChildren() {
			s.fetched[n.Path] = true
		}
		return true
	})
}

// Reset drops the tree but keeps the expanded set, so a refetch reopens the
// same directories.
func (s *TreeState) Reset() {
	s.roots = []tree.Node{}
	s.fetched = make(map[string]bool)
}

// Apply builds p and merges it into the current tree. Fresh data is the
// first merge operand, so it wins when a path changed between file and
// directory. Returned conflicts are informational.
func (s *TreeState) Apply(p tree.Payload) []tree.Conflict {
	fresh := s.sorter.Build(p)
	merged, conflicts := s.sorter.MergeSiblingsReport(fresh, s.roots)
	s.roots = merged

	for dir := range p.Levels {
		s.fetched[tree.NormalizePath(dir)] = true
	}
	if len(p.Items) > 0 {
		s.fetched["/"] = true
		for _, e := range p.Items {
			if k, ok := tree.ParseKind(e.ContentType); ok && k == tree.Directory {
				s.fetched[tree.NormalizePath(e.Path)] = true
			}
		}
	}
	return conflicts
}

// StartLoading marks dir as in flight. It returns false when a fetch for dir
// is already running.
func (s *TreeState) StartLoading(dir string) bool {
	dir = tree.NormalizePath(dir)
	if s.loading[dir] {
		return false
	}
	s.loading[dir] = true
	return true
}

// FinishLoading clears the in-flight mark for dir.
func (s *TreeState) FinishLoading(dir string) {
	delete(s.loading, tree.NormalizePath(dir))
}

// IsLoading reports whether a fetch for dir is in flight.
func (s *TreeState) IsLoading(dir string) bool {
	return s.loading[tree.NormalizePath(dir)]
}

// LoadingCount returns the number of fetches in flight.
func (s *TreeState) LoadingCount() int {
	return len(s.loading)
}

// NeedsFetch reports whether dir's listing has not been received yet.
func (s *TreeState) NeedsFetch(dir string) bool {
	return !s.fetched[tree.NormalizePath(dir)]
}

// IsExpanded reports whether the directory with identifier id is open.
func (s *TreeState) IsExpanded(id string) bool {
	return s.expanded[id]
}

// Expanded returns the open directories in sorted order.
func (s *TreeState) Expanded() []string {
	out := make([]string, 0, len(s.expanded))
	for id := range s.expanded {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// UnloadedExpanded returns the open directories present in the tree whose
// listing has not been received, in pre-order. A cached tree can hold these
// when a fetch was still pending as the previous session ended.
func (s *TreeState) UnloadedExpanded() []string {
	var out []string
	tree.Walk(s.roots, func(n tree.Node, _ int) bool {
		if n.IsDir() && s.expanded[n.Identifier] && s.NeedsFetch(n.Path) {
			out = append(out, n.Path)
		}
		return true
	})
	return out
}

// Expand opens a directory. It returns true when its contents still have to
// be fetched and no fetch is running.
func (s *TreeState) Expand(dir string) bool {
	dir = tree.NormalizePath(dir)
	if n := tree.FindByIdentifier(s.roots, dir); n != nil && !n.IsDir() {
		return false
	}
	s.expanded[dir] = true
	return s.NeedsFetch(dir) && !s.IsLoading(dir)
}

// Collapse closes the directory with identifier id along with everything
// open beneath it.
func (s *TreeState) Collapse(id string) {
	delete(s.expanded, id)
	for _, d := range tree.DescendantIdentifiersOf(s.roots, id) {
		delete(s.expanded, d)
	}
}

// Toggle opens or closes the directory with identifier id. It returns true
// when opening requires a fetch. Files and placeholders are ignored.
func (s *TreeState) Toggle(id string) bool {
	n := tree.FindByIdentifier(s.roots, id)
	if n == nil || !n.IsDir() {
		return false
	}
	if s.expanded[id] {
		s.Collapse(id)
		return false
	}
	return s.Expand(n.Path)
}

// ExpandAll opens every directory whose contents are already loaded.
func (s *TreeState) ExpandAll() {
	tree.Walk(s.roots, func(n tree.Node, _ int) bool {
		if n.IsDir() && n.HasRealChildren() {
			s.expanded[n.Identifier] = true
		}
		return true
	})
}

// CollapseAll closes every directory.
func (s *TreeState) CollapseAll() {
	s.expanded = make(map[string]bool)
}

// Reveal opens every directory on the way to p. It returns the directory
// that has to be fetched before the walk can go further, or "" once p is
// visible or known not to exist.
func (s *TreeState) Reveal(p string) string {
	for _, a := range tree.AncestorPathsOf(p) {
		n := tree.FindByIdentifier(s.roots, a)
		if n == nil {
			if parent := path.Dir(a); s.NeedsFetch(parent) {
				return parent
			}
			return ""
		}
		if !n.IsDir() {
			return ""
		}
		s.expanded[a] = true
		if s.NeedsFetch(a) {
			return a
		}
	}
	return ""
}

// VisibleRows flattens the open part of the tree in display order.
func (s *TreeState) VisibleRows() []Row {
	var rows []Row
	s.appendRows(&rows, s.roots, 0, "/")
	return rows
}

func (s *TreeState) appendRows(rows *[]Row, nodes []tree.Node, depth int, parent string) {
	for _, n := range nodes {
		r := Row{Node: n, Depth: depth}
		switch {
		case n.IsPlaceholder:
			r.Loading = s.loading[parent]
			r.Empty = s.fetched[parent]
		case n.IsDir():
			r.Expanded = s.expanded[n.Identifier]
			r.Loading = s.loading[n.Path]
		}
		*rows = append(*rows, r)
		if r.Expanded {
			s.appendRows(rows, n.Children, depth+1, n.Path)
		}
	}
}

// indexOf returns the row index of identifier id, or -1.
func indexOf(rows []Row, id string) int {
	return slices.IndexFunc(rows, func(r Row) bool {
		return r.Node.Identifier == id
	})
}
