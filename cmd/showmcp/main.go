// showmcp: light-show composition MCP server.
//
// Bridges an AI client to a networked lighting controller: static phase
// and scene specifications are composed into applied effects, named
// scenes, and playlists on the controller.
//
// Usage:
//
//	showmcp serve              # Start MCP server (stdio transport)
//	showmcp compose [flags]    # Run one composition from the command line
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/lumenlabs/showmcp/internal/config"
	"github.com/lumenlabs/showmcp/internal/journal"
	"github.com/lumenlabs/showmcp/internal/ledfx"
	"github.com/lumenlabs/showmcp/internal/show"
	showserver "github.com/lumenlabs/showmcp/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "compose":
		if err := runCompose(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
	case "--version", "-v", "version":
		fmt.Printf("showmcp v%s\n", showserver.Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	s, cleanup, err := showserver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	return server.ServeStdio(s)
}

func runCompose(args []string) error {
	fs := flag.NewFlagSet("compose", flag.ExitOnError)
	targets := fs.String("targets", "", "comma-separated device queries (required)")
	prefix := fs.String("prefix", "Show", "naming profile for scenes, palettes, and playlists")
	blends := fs.Bool("blends", false, "compose three-layer blended scenes on blender-ready targets")
	strict := fs.Bool("strict", false, "fail when a target lacks blend companions")
	dryRun := fs.Bool("dry-run", false, "skip all mutating controller calls")
	playlists := fs.Bool("playlists", true, "build per-phase and full-show playlists")
	showFile := fs.String("show-file", "", "YAML show file appended to the built-in show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*targets) == "" {
		fs.Usage()
		return fmt.Errorf("-targets is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	client := ledfx.New(cfg.ControllerURL, cfg.HTTPTimeout)

	opts := show.Options{
		NamePrefix:     *prefix,
		IncludeBlends:  *blends,
		Strict:         *strict,
		DryRun:         *dryRun,
		BuildPlaylists: *playlists,
	}
	for _, q := range strings.Split(*targets, ",") {
		if q = strings.TrimSpace(q); q != "" {
			opts.Targets = append(opts.Targets, q)
		}
	}
	if *showFile != "" {
		extra, err := show.LoadShowFile(*showFile)
		if err != nil {
			return err
		}
		opts.Specs = show.DefaultShow().Merge(extra)
	}

	started := time.Now()
	summary, err := show.Compose(context.Background(), client, opts)
	if err != nil {
		return err
	}
	printSummary(summary)

	// Best-effort journaling; the CLI run already succeeded.
	if j, jerr := journal.Open(cfg.JournalPath); jerr == nil {
		defer func() { _ = j.Close() }()
		_ = j.Record(context.Background(), journal.RunRecord{
			ID:            journal.NewRunID(),
			StartedAt:     started,
			FinishedAt:    time.Now(),
			DryRun:        summary.DryRun,
			Targets:       summary.Targets,
			Scenes:        summary.ScenesCreated,
			Playlists:     summary.PlaylistsCreated,
			Substitutions: summary.Substitutions,
		})
	}
	return nil
}

func printSummary(s *show.Summary) {
	if s.DryRun {
		fmt.Println("Dry run complete; controller untouched.")
	}
	fmt.Printf("Targets:   %s\n", strings.Join(s.Targets, ", "))
	fmt.Printf("Scenes:    %d\n", s.ScenesCreated)
	fmt.Printf("Playlists: %d\n", s.PlaylistsCreated)
	for main, missing := range s.SkippedSets {
		fmt.Printf("Skipped blend set %s (missing %s)\n", main, strings.Join(missing, ", "))
	}
	for _, sub := range s.Substitutions {
		fmt.Printf("Fallback: %s on %s: %s -> %s\n", sub.Scene, sub.VirtualID, sub.Requested, sub.Resolved)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `showmcp v%s — light-show composition MCP server

Usage:
  showmcp serve              Start the MCP server (stdio transport)
  showmcp compose [flags]    Run one composition (see 'showmcp compose -h')

Environment:
  SHOWMCP_CONTROLLER_URL   Controller base URL (default http://127.0.0.1:8888)
  SHOWMCP_HTTP_TIMEOUT     Per-request timeout (default 15s)
  SHOWMCP_JOURNAL_PATH     Run-history sqlite file

MCP configuration:

  {
    "mcpServers": {
      "showmcp": {
        "command": "showmcp",
        "args": ["serve"]
      }
    }
  }
`, showserver.Version)
}
