package github

// Repo identifies a GitHub repository.
type Repo struct {
	Owner    string
	Name     string
	FullName string
}

// User represents a GitHub user.
type User struct {
	Login     string
	AvatarURL string
}

// PRDetail is the subset of a pull request needed to browse its tree.
type PRDetail struct {
	Number     int
	Title      string
	HTMLURL    string
	Author     User
	Repo       Repo
	BaseBranch string
	HeadBranch string
	HeadSHA    string
}

// PRFile represents a single changed file in a PR.
type PRFile struct {
	Filename  string
	Status    string // "added", "removed", "modified", "renamed"
	Additions int
	Deletions int
}

// ghContent is one item of the contents API response.
type ghContent struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file", "dir", "symlink", "submodule"
}
