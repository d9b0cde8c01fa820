// Package tools implements the MCP tool handlers.
//
// Each tool is one file: a struct carrying its dependencies, a
// Definition() for registration, and a Handle() compatible with mcp-go's
// CallToolRequest signature. Operator-input problems come back as tool
// result errors; internal failures come back as Go errors.
package tools

import (
	"fmt"
	"strings"

	"github.com/lumenlabs/showmcp/internal/show"
)

// splitTargets parses a comma-separated target list into trimmed,
// non-empty queries.
func splitTargets(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if q := strings.TrimSpace(part); q != "" {
			out = append(out, q)
		}
	}
	return out
}

// formatSummary renders a run summary as markdown for the AI client.
func formatSummary(s *show.Summary) string {
	var b strings.Builder
	if s.DryRun {
		b.WriteString("# Dry Run Complete\n\n")
		b.WriteString("No controller state was modified.\n\n")
	} else {
		b.WriteString("# Show Composed\n\n")
	}
	fmt.Fprintf(&b, "- Targets: %s\n", strings.Join(s.Targets, ", "))
	fmt.Fprintf(&b, "- Scenes: %d\n", s.ScenesCreated)
	fmt.Fprintf(&b, "- Playlists: %d\n", s.PlaylistsCreated)

	if len(s.SkippedSets) > 0 {
		b.WriteString("\n## Skipped Blend Sets\n\n")
		for main, missing := range s.SkippedSets {
			fmt.Fprintf(&b, "- %s: missing %s\n", main, strings.Join(missing, ", "))
		}
	}
	if len(s.Substitutions) > 0 {
		b.WriteString("\n## Fallbacks Used\n\n")
		for _, sub := range s.Substitutions {
			fmt.Fprintf(&b, "- %s on %s: %s -> %s\n", sub.Scene, sub.VirtualID, sub.Requested, sub.Resolved)
		}
	}
	if len(s.Scenes) > 0 {
		b.WriteString("\n## Scenes\n\n")
		for _, sc := range s.Scenes {
			fmt.Fprintf(&b, "- %s (%s, %s, %s, %dms)\n", sc.Name, sc.Phase, sc.Kind, sc.Mode, sc.DurationMs)
		}
	}
	return b.String()
}
