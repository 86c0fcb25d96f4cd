// Package tree reconciles directory-listing payloads into a canonical file
// tree. Every function is pure: inputs are never mutated and no state is kept
// between calls, so the caller owns the tree and decides when to replace it.
package tree

import (
	"encoding/json"
	"fmt"
)

// Kind distinguishes files from directories.
type Kind int

const (
	File Kind = iota
	Directory
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Directory:
		return "directory"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalJSON encodes the kind as its content type name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts the same names ParseKind does.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseKind(s)
	if !ok {
		return fmt.Errorf("unknown node kind %q", s)
	}
	*k = parsed
	return nil
}

// ParseKind maps a listing content type to a Kind.
// "dir" is accepted because that is what the GitHub contents API reports.
func ParseKind(contentType string) (Kind, bool) {
	switch contentType {
	case "file":
		return File, true
	case "directory", "dir":
		return Directory, true
	default:
		return File, false
	}
}

// Node is one entry of the browsable tree.
type Node struct {
	Identifier    string `json:"identifier"`
	DisplayName   string `json:"displayName"`
	Path          string `json:"path"`
	Kind          Kind   `json:"kind"`
	Children      []Node `json:"children,omitempty"`
	IsPlaceholder bool   `json:"isPlaceholder,omitempty"`
}

// IsDir reports whether the node is a directory.
func (n Node) IsDir() bool {
	return n.Kind == Directory
}

// HasRealChildren reports whether at least one child is not a placeholder.
func (n Node) HasRealChildren() bool {
	for _, c := range n.Children {
		if !c.IsPlaceholder {
			return true
		}
	}
	return false
}

// IsUnloaded reports whether n is a directory whose contents have not been
// fetched yet, i.e. it only holds a placeholder.
func (n Node) IsUnloaded() bool {
	return n.IsDir() && !n.HasRealChildren()
}

const placeholderSuffix = "-placeholder"

// Placeholder returns the filler leaf used for a directory with no real
// children. Its identifier doubles as its path. It always differs from the
// real siblings it sits among, so a merge never matches the two, but it can
// equal a real entry elsewhere: "/a-placeholder" is both the filler of an
// empty "/a" and a file of that name in "/". Lookups by identifier then
// return whichever comes first in pre-order.
func Placeholder(dirPath string) Node {
	id := dirPath + placeholderSuffix
	return Node{
		Identifier:    id,
		DisplayName:   "…",
		Path:          id,
		Kind:          File,
		IsPlaceholder: true,
	}
}

// clone deep-copies n so results never share child slices with inputs.
func clone(n Node) Node {
	out := n
	if n.Children != nil {
		out.Children = make([]Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = clone(c)
		}
	}
	return out
}
