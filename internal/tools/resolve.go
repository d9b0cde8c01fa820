package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lumenlabs/showmcp/internal/show"
)

// ResolveTool handles the resolve_target MCP tool: a read-only preview of
// what a target query would match.
type ResolveTool struct {
	ctrl show.Controller
}

// NewResolveTool creates a ResolveTool.
func NewResolveTool(ctrl show.Controller) *ResolveTool {
	return &ResolveTool{ctrl: ctrl}
}

// Definition returns the MCP tool definition for registration.
func (t *ResolveTool) Definition() mcp.Tool {
	return mcp.NewTool("resolve_target",
		mcp.WithDescription(
			"Preview target resolution: fuzzy-match a device query against the "+
				"controller's virtuals and report the winner and its blend companions. "+
				"Ambiguous or unmatched queries report the candidates, exactly as "+
				"compose_show would fail.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The device query to resolve. Example: 'ceiling'"),
		),
	)
}

// Handle processes the resolve_target tool call.
func (t *ResolveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	devices, err := t.ctrl.ListVirtuals(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing virtuals: %w", err)
	}

	v, err := show.ResolveTarget(query, devices)
	if err != nil {
		var resErr *show.ResolutionError
		if errors.As(err, &resErr) {
			return mcp.NewToolResultError(resErr.Error()), nil
		}
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Query %q resolves to **%s** (%s).\n", query, v.ID, v.Name)
	set := show.ResolveVirtualSet(v.ID, devices)
	if set.Ready {
		fmt.Fprintf(&b, "Blender-ready: companions %s, %s, %s all exist.\n", set.Background, set.Foreground, set.Mask)
	} else {
		fmt.Fprintf(&b, "Not blender-ready: missing %s.\n", strings.Join(set.Missing, ", "))
	}
	return mcp.NewToolResultText(b.String()), nil
}
