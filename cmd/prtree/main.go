package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shhac/prtree/internal/config"
	"github.com/shhac/prtree/internal/store"
	"github.com/shhac/prtree/internal/tree"
	"github.com/shhac/prtree/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		refFlag     = flag.String("ref", "", "Branch, tag or commit to browse (defaults to the default branch, or HEAD with -local)")
		prFlag      = flag.Int("pr", 0, "Browse the files changed by this pull request")
		localFlag   = flag.String("local", "", "Browse a local git repository instead of GitHub")
		demoFlag    = flag.Bool("demo", false, "Browse built-in demo data")
		pathFlag    = flag.String("path", "", "Path to reveal on start, e.g. /internal/auth")
		localeFlag  = flag.String("locale", "", "Sort names for this locale, e.g. sv or de (remembered in the config file)")
		noCache     = flag.Bool("no-cache", false, "Neither read nor write the tree cache")
		versionFlag = flag.Bool("version", false, "Print version and exit")
	)

	flag.Usage = func() {
		usage(os.Stderr)
	}

	flag.Parse()

	if *versionFlag || flag.Arg(0) == "version" {
		fmt.Printf("prtree %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	closeLog, err := setupLogging(os.Getenv("PRTREE_DEBUG"))
	if err != nil {
		exitWithError(err)
	}
	defer closeLog()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("warning: config load failed, using defaults: %v", err)
		cfg = &config.Config{
			FetchTimeout:     config.DefaultFetchTimeoutMs,
			FetchConcurrency: config.DefaultFetchConcurrency,
			Locale:           config.DefaultLocale,
		}
	}

	if *localeFlag != "" {
		if _, err := tree.ParseSorter(*localeFlag); err != nil {
			exitWithError(err)
		}
		cfg.Locale = *localeFlag
		if err := config.Save(cfg); err != nil {
			log.Printf("warning: failed to save config: %v", err)
		}
	}

	opts := sourceOptions{
		repo:  flag.Arg(0),
		ref:   *refFlag,
		pr:    *prFlag,
		local: *localFlag,
		demo:  *demoFlag,
	}
	if flag.NArg() > 1 {
		exitWithError(fmt.Errorf("unexpected arguments: %v", flag.Args()[1:]))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeoutDuration())
	src, err := newSource(ctx, opts, cfg.FetchConcurrency)
	cancel()
	if err != nil {
		exitWithError(err)
	}

	var cache ui.TreeCache
	if cfg.CacheOn() && !*noCache {
		cache = store.NewTreeStore(config.TreeCacheDir())
	}

	p := tea.NewProgram(ui.NewApp(src, cfg, cache, *pathFlag), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging routes the standard logger to a file while the TUI owns the
// terminal. An empty target discards log output; "1" picks a default file.
func setupLogging(target string) (func(), error) {
	if target == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if target == "1" || target == "true" {
		target = "prtree-debug.log"
	}
	f, err := tea.LogToFile(target, "prtree")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return func() { f.Close() }, nil
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [flags] [owner/repo]\n\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(w, "prtree browses a repository tree in the terminal, loading directories")
	fmt.Fprintln(w, "as they are opened. Sources are GitHub (via the gh CLI), a local git")
	fmt.Fprintln(w, "repository, or built-in demo data.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	output := flag.CommandLine.Output()
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
	flag.CommandLine.SetOutput(output)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PRTREE_DEBUG  write logs to this file (\"1\" for prtree-debug.log)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  prtree cli/cli")
	fmt.Fprintln(w, "  prtree -ref v2.40.0 -path /pkg/cmd cli/cli")
	fmt.Fprintln(w, "  prtree -pr 1234 cli/cli")
	fmt.Fprintln(w, "  prtree -local . -locale sv")
	fmt.Fprintln(w, "  prtree -demo")
}
