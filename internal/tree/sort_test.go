package tree

import (
	"testing"

	"golang.org/x/text/language"
)

func names(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.DisplayName
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortSiblings(t *testing.T) {
	tests := []struct {
		name  string
		input []Node
		want  []string
	}{
		{
			name: "directory before file",
			input: []Node{
				{DisplayName: "b", Path: "/b", Kind: File},
				{DisplayName: "a", Path: "/a", Kind: Directory, Children: []Node{}},
			},
			want: []string{"a", "b"},
		},
		{
			name: "directory wins regardless of name",
			input: []Node{
				{DisplayName: "aaa", Path: "/aaa", Kind: File},
				{DisplayName: "zzz", Path: "/zzz", Kind: Directory, Children: []Node{}},
			},
			want: []string{"zzz", "aaa"},
		},
		{
			name: "locale comparison ignores case",
			input: []Node{
				{DisplayName: "README.md", Path: "/README.md", Kind: File},
				{DisplayName: "main.go", Path: "/main.go", Kind: File},
				{DisplayName: "b", Path: "/b", Kind: File},
			},
			want: []string{"b", "main.go", "README.md"},
		},
		{
			name:  "empty",
			input: []Node{},
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(SortSiblings(tt.input))
			if !equalStrings(got, tt.want) {
				t.Errorf("SortSiblings() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortSiblings_Stable(t *testing.T) {
	input := []Node{
		{Identifier: "first", DisplayName: "same", Path: "/x/same", Kind: File},
		{Identifier: "second", DisplayName: "same", Path: "/y/same", Kind: File},
		{Identifier: "third", DisplayName: "same", Path: "/z/same", Kind: File},
	}
	got := SortSiblings(input)
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Identifier != want {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Identifier, want)
		}
	}
}

func TestSortSiblings_DoesNotMutateInput(t *testing.T) {
	input := []Node{
		{DisplayName: "b", Path: "/b", Kind: File},
		{DisplayName: "a", Path: "/a", Kind: File},
	}
	_ = SortSiblings(input)
	if input[0].DisplayName != "b" || input[1].DisplayName != "a" {
		t.Errorf("input reordered to %v", names(input))
	}
}

func TestSortTree_Recursive(t *testing.T) {
	input := []Node{
		{DisplayName: "z.txt", Path: "/z.txt", Kind: File},
		{DisplayName: "lib", Path: "/lib", Kind: Directory, Children: []Node{
			{DisplayName: "y.go", Path: "/lib/y.go", Kind: File},
			{DisplayName: "internal", Path: "/lib/internal", Kind: Directory, Children: []Node{
				{DisplayName: "b.go", Path: "/lib/internal/b.go", Kind: File},
				{DisplayName: "a.go", Path: "/lib/internal/a.go", Kind: File},
			}},
		}},
	}

	got := shape(SortTree(input))
	want := "lib/[internal/[a.go b.go] y.go] z.txt"
	if got != want {
		t.Errorf("SortTree() = %q, want %q", got, want)
	}
	if shape(input) != "z.txt lib/[y.go internal/[b.go a.go]]" {
		t.Errorf("input mutated: %q", shape(input))
	}
}

func TestSorter_Locale(t *testing.T) {
	input := []Node{
		{DisplayName: "zeta", Path: "/zeta", Kind: File},
		{DisplayName: "äpple", Path: "/äpple", Kind: File},
	}

	en := NewSorter(language.English).SortSiblings(input)
	if got := names(en); !equalStrings(got, []string{"äpple", "zeta"}) {
		t.Errorf("en order = %v", got)
	}

	sv, err := ParseSorter("sv")
	if err != nil {
		t.Fatalf("ParseSorter(sv): %v", err)
	}
	if got := names(sv.SortSiblings(input)); !equalStrings(got, []string{"zeta", "äpple"}) {
		t.Errorf("sv order = %v", got)
	}
}

func TestParseSorter(t *testing.T) {
	s, err := ParseSorter("")
	if err != nil || s != DefaultSorter {
		t.Errorf("ParseSorter(\"\") = %v, %v; want DefaultSorter", s, err)
	}
	if _, err := ParseSorter("not a locale!"); err == nil {
		t.Error("expected error for invalid locale")
	}
}
