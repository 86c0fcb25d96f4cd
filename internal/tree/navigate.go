package tree

import "strings"

// FindByIdentifier returns the first node, in depth-first pre-order, whose
// identifier equals id. The pointer refers into roots.
func FindByIdentifier(roots []Node, id string) *Node {
	for i := range roots {
		if roots[i].Identifier == id {
			return &roots[i]
		}
		if found := FindByIdentifier(roots[i].Children, id); found != nil {
			return found
		}
	}
	return nil
}

// AncestorPathsOf returns every prefix of p from the shallowest up to p
// itself, excluding the root: "/a/b/c" gives "/a", "/a/b", "/a/b/c".
func AncestorPathsOf(p string) []string {
	p = NormalizePath(p)
	if p == "" || p == "/" {
		return []string{}
	}

	segments := strings.Split(strings.TrimPrefix(p, "/"), "/")
	out := make([]string, 0, len(segments))
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(seg)
		out = append(out, b.String())
	}
	return out
}

// ExpansionPathsFor is AncestorPathsOf seeded with the root, i.e. every
// directory that has to be listed to reveal p.
func ExpansionPathsFor(p string) []string {
	return append([]string{"/"}, AncestorPathsOf(p)...)
}

// DescendantIdentifiersOf lists the identifiers of every node below id in
// depth-first pre-order, excluding id itself.
func DescendantIdentifiersOf(roots []Node, id string) []string {
	n := FindByIdentifier(roots, id)
	if n == nil || len(n.Children) == 0 {
		return []string{}
	}
	var out []string
	Walk(n.Children, func(c Node, _ int) bool {
		out = append(out, c.Identifier)
		return true
	})
	return out
}

// Walk visits nodes in depth-first pre-order. depth is 0 for the given
// nodes. Returning false from fn skips that node's children.
func Walk(nodes []Node, fn func(n Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int) bool) {
	for _, n := range nodes {
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}
