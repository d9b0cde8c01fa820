package tools

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lumenlabs/showmcp/internal/journal"
	"github.com/lumenlabs/showmcp/internal/show"
)

// ComposeTool handles the compose_show MCP tool: it runs the full
// composition pipeline against the controller and journals the outcome.
type ComposeTool struct {
	ctrl    show.Controller
	journal *journal.Store
}

// NewComposeTool creates a ComposeTool. The journal may be nil; history
// is then simply not recorded.
func NewComposeTool(ctrl show.Controller, j *journal.Store) *ComposeTool {
	return &ComposeTool{ctrl: ctrl, journal: j}
}

// Definition returns the MCP tool definition for registration.
func (t *ComposeTool) Definition() mcp.Tool {
	return mcp.NewTool("compose_show",
		mcp.WithDescription(
			"Compose the full light show on the controller: resolve target devices, "+
				"upsert per-phase palettes, apply direct and blended scenes with fallback "+
				"substitution, snapshot them as named scenes, and build per-phase plus "+
				"full-show playlists. Use dry_run first to validate targets and schemas "+
				"without touching the controller.",
		),
		mcp.WithString("targets",
			mcp.Required(),
			mcp.Description("Comma-separated device queries; each must resolve to exactly one virtual. "+
				"Example: 'ceiling, desk strip'"),
		),
		mcp.WithString("prefix",
			mcp.Description("Naming profile applied to scene, palette, and playlist names. Default: 'Show'"),
		),
		mcp.WithBoolean("include_blends",
			mcp.Description("Also compose three-layer blended scenes on blender-ready targets. Default: false"),
		),
		mcp.WithBoolean("strict",
			mcp.Description("Fail when a target lacks blend companions instead of skipping it. Default: false"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Run every resolution and synthesis step but skip all mutating controller calls. Default: false"),
		),
		mcp.WithBoolean("playlists",
			mcp.Description("Build per-phase and full-show playlists after composing scenes. Default: true"),
		),
		mcp.WithString("show_file",
			mcp.Description("Path to a YAML show file whose scene specs are appended to the built-in show."),
		),
	)
}

// Handle processes the compose_show tool call.
func (t *ComposeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	targets := splitTargets(req.GetString("targets", ""))
	if len(targets) == 0 {
		return mcp.NewToolResultError("'targets' is required — name at least one device to compose onto"), nil
	}

	opts := show.Options{
		Targets:        targets,
		NamePrefix:     req.GetString("prefix", ""),
		IncludeBlends:  req.GetBool("include_blends", false),
		Strict:         req.GetBool("strict", false),
		DryRun:         req.GetBool("dry_run", false),
		BuildPlaylists: req.GetBool("playlists", true),
	}
	if path := req.GetString("show_file", ""); path != "" {
		extra, err := show.LoadShowFile(path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts.Specs = show.DefaultShow().Merge(extra)
	}

	started := time.Now()
	summary, err := show.Compose(ctx, t.ctrl, opts)
	t.record(ctx, started, targets, opts.DryRun, summary, err)
	if err != nil {
		var cfgErr *show.ConfigurationError
		var resErr *show.ResolutionError
		if errors.As(err, &cfgErr) || errors.As(err, &resErr) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}
	return mcp.NewToolResultText(formatSummary(summary)), nil
}

// record journals the run outcome. Best-effort: a journal failure is
// logged, never surfaced.
func (t *ComposeTool) record(ctx context.Context, started time.Time, targets []string, dryRun bool, summary *show.Summary, runErr error) {
	if t.journal == nil {
		return
	}
	rec := journal.RunRecord{
		ID:         journal.NewRunID(),
		StartedAt:  started,
		FinishedAt: time.Now(),
		DryRun:     dryRun,
		Targets:    targets,
	}
	if summary != nil {
		rec.Scenes = summary.ScenesCreated
		rec.Playlists = summary.PlaylistsCreated
		rec.Substitutions = summary.Substitutions
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	if err := t.journal.Record(ctx, rec); err != nil {
		log.Printf("WARNING: journaling run: %v", err)
	}
}
