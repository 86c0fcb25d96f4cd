package tree

import "testing"

func TestAncestorPathsOf(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/a/b/c", []string{"/a", "/a/b", "/a/b/c"}},
		{"/a", []string{"/a"}},
		{"a/b/", []string{"/a", "/a/b"}},
		{"/", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := AncestorPathsOf(tt.path)
			if got == nil || !equalStrings(got, tt.want) {
				t.Errorf("AncestorPathsOf(%q) = %#v, want %#v", tt.path, got, tt.want)
			}
		})
	}
}

func TestExpansionPathsFor(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"/"}},
		{"", []string{"/"}},
		{"/a", []string{"/", "/a"}},
		{"/a/b/c", []string{"/", "/a", "/a/b", "/a/b/c"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ExpansionPathsFor(tt.path); !equalStrings(got, tt.want) {
				t.Errorf("ExpansionPathsFor(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func descendantFixture() []Node {
	return Build(levels(map[string][]Entry{
		"/":    {dir("/a"), file("/z")},
		"/a":   {file("/a/b"), dir("/a/c")},
		"/a/c": {file("/a/c/d")},
	}))
}

func TestDescendantIdentifiersOf(t *testing.T) {
	roots := descendantFixture()

	tests := []struct {
		id   string
		want []string
	}{
		{"/a", []string{"/a/c", "/a/c/d", "/a/b"}},
		{"/a/c", []string{"/a/c/d"}},
		{"/z", []string{}},
		{"/missing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := DescendantIdentifiersOf(roots, tt.id)
			if !equalStrings(got, tt.want) {
				t.Errorf("DescendantIdentifiersOf(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestDescendantIdentifiersOf_UnsortedInputKeepsPreOrder(t *testing.T) {
	roots := []Node{{
		Identifier: "/a", Path: "/a", DisplayName: "a", Kind: Directory,
		Children: []Node{
			{Identifier: "/a/b", Path: "/a/b", DisplayName: "b", Kind: File},
			{Identifier: "/a/c", Path: "/a/c", DisplayName: "c", Kind: Directory, Children: []Node{
				{Identifier: "/a/c/d", Path: "/a/c/d", DisplayName: "d", Kind: File},
			}},
		},
	}}

	got := DescendantIdentifiersOf(roots, "/a")
	want := []string{"/a/b", "/a/c", "/a/c/d"}
	if !equalStrings(got, want) {
		t.Errorf("DescendantIdentifiersOf() = %v, want %v", got, want)
	}
}

func TestDescendantIdentifiersOf_IncludesPlaceholders(t *testing.T) {
	roots := Build(levels(map[string][]Entry{"/": {dir("/empty")}}))
	got := DescendantIdentifiersOf(roots, "/empty")
	if !equalStrings(got, []string{"/empty-placeholder"}) {
		t.Errorf("DescendantIdentifiersOf() = %v", got)
	}
}

func TestFindByIdentifier(t *testing.T) {
	roots := descendantFixture()

	if n := FindByIdentifier(roots, "/a/c/d"); n == nil || n.DisplayName != "d" {
		t.Errorf("FindByIdentifier(/a/c/d) = %+v", n)
	}
	if n := FindByIdentifier(roots, "/nope"); n != nil {
		t.Errorf("FindByIdentifier(/nope) = %+v, want nil", n)
	}
	if n := FindByIdentifier(nil, "/a"); n != nil {
		t.Errorf("FindByIdentifier(nil) = %+v, want nil", n)
	}

	withPlaceholder := Build(levels(map[string][]Entry{"/": {dir("/e")}}))
	if n := FindByIdentifier(withPlaceholder, "/e-placeholder"); n == nil || !n.IsPlaceholder {
		t.Errorf("placeholder lookup = %+v", n)
	}
}

func TestWalk_SkipChildren(t *testing.T) {
	roots := descendantFixture()

	var visited []string
	Walk(roots, func(n Node, depth int) bool {
		visited = append(visited, n.Path)
		return n.Path != "/a/c"
	})

	want := []string{"/a", "/a/c", "/a/b", "/z"}
	if !equalStrings(visited, want) {
		t.Errorf("visited = %v, want %v", visited, want)
	}
}
