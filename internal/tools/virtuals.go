package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lumenlabs/showmcp/internal/show"
)

// VirtualsTool handles the list_virtuals MCP tool.
type VirtualsTool struct {
	ctrl show.Controller
}

// NewVirtualsTool creates a VirtualsTool.
func NewVirtualsTool(ctrl show.Controller) *VirtualsTool {
	return &VirtualsTool{ctrl: ctrl}
}

// Definition returns the MCP tool definition for registration.
func (t *VirtualsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_virtuals",
		mcp.WithDescription(
			"List every addressable device (virtual) on the lighting controller, "+
				"with its blend-companion readiness. Use this before compose_show to "+
				"see what targets exist.",
		),
	)
}

// Handle processes the list_virtuals tool call.
func (t *VirtualsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	devices, err := t.ctrl.ListVirtuals(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing virtuals: %w", err)
	}
	if len(devices) == 0 {
		return mcp.NewToolResultText("The controller reports no virtuals."), nil
	}

	var b strings.Builder
	b.WriteString("# Virtuals\n\n")
	for _, v := range devices {
		state := "inactive"
		if v.Active {
			state = "active"
		}
		fmt.Fprintf(&b, "- **%s** (%s, %s)", v.ID, v.Name, state)
		if !show.IsCompanion(v.ID) {
			set := show.ResolveVirtualSet(v.ID, devices)
			if set.Ready {
				b.WriteString(", blender-ready")
			} else if len(set.Missing) < 3 {
				fmt.Fprintf(&b, ", missing companions: %s", strings.Join(set.Missing, ", "))
			}
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}
