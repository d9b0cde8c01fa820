package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lumenlabs/showmcp/internal/journal"
)

// HistoryTool handles the show_history MCP tool.
type HistoryTool struct {
	journal *journal.Store
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(j *journal.Store) *HistoryTool {
	return &HistoryTool{journal: j}
}

// Definition returns the MCP tool definition for registration.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("show_history",
		mcp.WithDescription(
			"List recent composition runs from the local journal: when they ran, "+
				"what they targeted, how many scenes and playlists they produced, and "+
				"which fallback substitutions were used.",
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum runs to return. Default: 10"),
		),
	)
}

// Handle processes the show_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(req.GetFloat("limit", 10))
	records, err := t.journal.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}
	if len(records) == 0 {
		return mcp.NewToolResultText("No composition runs recorded yet."), nil
	}

	var b strings.Builder
	b.WriteString("# Run History\n\n")
	for _, rec := range records {
		outcome := "ok"
		if rec.Error != "" {
			outcome = "failed: " + rec.Error
		}
		mode := "live"
		if rec.DryRun {
			mode = "dry-run"
		}
		fmt.Fprintf(&b, "- %s (%s) targets=%s scenes=%d playlists=%d %s\n",
			rec.StartedAt.Local().Format(time.RFC3339),
			mode,
			strings.Join(rec.Targets, ","),
			rec.Scenes,
			rec.Playlists,
			outcome,
		)
		for _, sub := range rec.Substitutions {
			fmt.Fprintf(&b, "  - fallback: %s on %s: %s -> %s\n", sub.Scene, sub.VirtualID, sub.Requested, sub.Resolved)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
