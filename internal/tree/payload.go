package tree

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

// Entry is one item of a directory listing as delivered by a server.
type Entry struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
}

// Listing is the contents of one directory.
type Listing struct {
	TreeItems []Entry `json:"tree_items"`
}

// Payload is the normalized form of every listing shape a server may send.
// Levels holds a multi-level snapshot keyed by directory path; Items is a flat
// list. Either or both may be set.
type Payload struct {
	Levels map[string]Listing
	Items  []Entry
}

// Empty reports whether the payload carries no entries at all.
func (p Payload) Empty() bool {
	if len(p.Items) > 0 {
		return false
	}
	for _, l := range p.Levels {
		if len(l.TreeItems) > 0 {
			return false
		}
	}
	return true
}

// AddLevel records the listing of dir, appending to any listing already held
// for the same directory.
func (p *Payload) AddLevel(dir string, entries []Entry) {
	if p.Levels == nil {
		p.Levels = make(map[string]Listing)
	}
	dir = NormalizePath(dir)
	if dir == "" {
		dir = "/"
	}
	l := p.Levels[dir]
	l.TreeItems = append(l.TreeItems, entries...)
	p.Levels[dir] = l
}

const treeItemsKey = "tree_items"

// DecodePayload parses either JSON shape of a directory listing:
//
//	{"tree_items": [...]}
//	{"/a": {"tree_items": [...]}, "/a/b": {"tree_items": [...]}}
//
// A document mixing both is accepted. Keys whose value is not a listing are
// ignored, and entries that are not objects of the expected shape are
// skipped one by one wherever they appear. Only a document that is not a
// JSON object is an error.
func DecodePayload(data []byte) (Payload, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Payload{}, fmt.Errorf("failed to parse listing payload: %w", err)
	}

	var p Payload
	for key, value := range raw {
		if key == treeItemsKey {
			if items, ok := decodeEntries(value); ok {
				p.Items = append(p.Items, items...)
			}
			continue
		}

		var l struct {
			TreeItems json.RawMessage `json:"tree_items"`
		}
		if err := json.Unmarshal(value, &l); err != nil || l.TreeItems == nil {
			continue
		}
		if items, ok := decodeEntries(l.TreeItems); ok {
			p.AddLevel(key, items)
		}
	}
	return p, nil
}

// decodeEntries parses a tree_items array, dropping elements that do not
// decode as an Entry. It reports false when data is not an array.
func decodeEntries(data json.RawMessage) ([]Entry, bool) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil || raws == nil {
		return nil, false
	}
	entries := make([]Entry, 0, len(raws))
	for _, r := range raws {
		var e Entry
		if err := json.Unmarshal(r, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, true
}

// NormalizePath returns p with a leading slash, no trailing slash and no
// redundant elements. The empty string stays empty. Spaces are part of the
// name: git allows "x " next to "x".
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}
	return path.Clean("/" + p)
}

// Depth counts the separators in a normalized path; "/" has depth 0.
func Depth(p string) int {
	if p == "/" || p == "" {
		return 0
	}
	return strings.Count(p, "/")
}

// parentPath returns the directory containing p, "/" for top-level entries.
func parentPath(p string) string {
	return path.Dir(p)
}

// validEntry is an entry that passed boundary validation.
type validEntry struct {
	path string
	name string
	kind Kind
}

// validate normalizes e, reporting false for entries that cannot be placed.
func (e Entry) validate() (validEntry, bool) {
	p := NormalizePath(e.Path)
	if p == "" || p == "/" || e.Name == "" {
		return validEntry{}, false
	}
	kind, ok := ParseKind(e.ContentType)
	if !ok {
		return validEntry{}, false
	}
	return validEntry{path: p, name: e.Name, kind: kind}, true
}
