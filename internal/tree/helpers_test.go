package tree

import "strings"

// shape renders nodes compactly: directories get a trailing slash and their
// children in brackets, placeholders render as "~".
func shape(nodes []Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		switch {
		case n.IsPlaceholder:
			parts = append(parts, "~")
		case n.IsDir():
			parts = append(parts, n.DisplayName+"/["+shape(n.Children)+"]")
		default:
			parts = append(parts, n.DisplayName)
		}
	}
	return strings.Join(parts, " ")
}

func dir(p string) Entry {
	return Entry{Path: p, Name: baseName(p), ContentType: "directory"}
}

func file(p string) Entry {
	return Entry{Path: p, Name: baseName(p), ContentType: "file"}
}

func baseName(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

func levels(m map[string][]Entry) Payload {
	var p Payload
	for d, entries := range m {
		p.AddLevel(d, entries)
	}
	return p
}
