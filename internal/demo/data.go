package demo

import "github.com/shhac/prtree/internal/github"

// RepoName is the fictional repository the demo browses.
const RepoName = "acme/gateway"

// repoFiles lists every file in the demo repository. Directories are derived
// from the paths; emptyDirs adds directories that hold nothing.
var repoFiles = []string{
	".github/workflows/ci.yml",
	".github/workflows/release.yml",
	".gitignore",
	"LICENSE",
	"Makefile",
	"README.md",
	"go.mod",
	"go.sum",
	"cmd/gateway/main.go",
	"cmd/gateway/flags.go",
	"cmd/gatewayctl/main.go",
	"docs/architecture.md",
	"docs/rate-limiting.md",
	"docs/images/topology.png",
	"internal/auth/jwt.go",
	"internal/auth/jwt_test.go",
	"internal/auth/middleware.go",
	"internal/config/config.go",
	"internal/config/config_test.go",
	"internal/middleware/logging.go",
	"internal/middleware/ratelimit.go",
	"internal/middleware/ratelimit_test.go",
	"internal/middleware/recover.go",
	"internal/proxy/proxy.go",
	"internal/proxy/proxy_test.go",
	"internal/proxy/upstream.go",
	"internal/router/router.go",
	"internal/router/routes.go",
	"pkg/client/client.go",
	"pkg/client/options.go",
	"scripts/bench.sh",
	"scripts/release.sh",
	"testdata/fixtures/routes.yaml",
	"testdata/fixtures/upstreams.yaml",
	"Ångström/notes.md",
}

var emptyDirs = []string{
	"deploy",
	"internal/plugins",
}

// prFiles are the changed files of demo pull requests, keyed by number.
var prFiles = map[int][]github.PRFile{
	101: {
		{Filename: "internal/middleware/ratelimit.go", Status: "added", Additions: 45},
		{Filename: "internal/middleware/ratelimit_test.go", Status: "added", Additions: 62},
		{Filename: "internal/router/routes.go", Status: "modified", Additions: 3, Deletions: 1},
		{Filename: "docs/rate-limiting.md", Status: "added", Additions: 28},
	},
	102: {
		{Filename: "internal/proxy/upstream.go", Status: "modified", Additions: 12, Deletions: 30},
		{Filename: "internal/proxy/pool.go", Status: "added", Additions: 52},
	},
}
