package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lumenlabs/showmcp/internal/show"
)

// PaletteTool handles the preview_palette MCP tool. It is pure: no
// controller access, just the static phase tables and the gradient math.
type PaletteTool struct{}

// NewPaletteTool creates a PaletteTool.
func NewPaletteTool() *PaletteTool {
	return &PaletteTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *PaletteTool) Definition() mcp.Tool {
	return mcp.NewTool("preview_palette",
		mcp.WithDescription(
			"Preview the color palette and gradient a phase produces in a given "+
				"mode, without contacting the controller. Phases: phase-1 through "+
				"phase-4. Modes: normal, crazy.",
		),
		mcp.WithString("phase",
			mcp.Required(),
			mcp.Description("Phase key, e.g. 'phase-1'"),
		),
		mcp.WithString("mode",
			mcp.Description("Palette mode: 'normal' (default) or 'crazy' (reversed colors)"),
		),
		mcp.WithString("prefix",
			mcp.Description("Naming profile used for the palette id. Default: 'Show'"),
		),
	)
}

// Handle processes the preview_palette tool call.
func (t *PaletteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode := show.Mode(req.GetString("mode", string(show.ModeNormal)))
	if err := show.ValidateMode(mode); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	phase, err := show.Phase(req.GetString("phase", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	prefix := req.GetString("prefix", "")
	if strings.TrimSpace(prefix) == "" {
		prefix = "Show"
	}

	p := show.NewPalette(prefix, phase, mode)
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s)\n\n", phase.Label, mode)
	fmt.Fprintf(&b, "- Palette id: `%s`\n", p.ID)
	fmt.Fprintf(&b, "- Colors: %s\n", strings.Join(p.Colors, ", "))
	fmt.Fprintf(&b, "- Stops: low %s, mid %s, high %s\n", p.Low(), p.Mid(), p.High())
	fmt.Fprintf(&b, "- Gradient: `%s`\n", p.Gradient)
	return mcp.NewToolResultText(b.String()), nil
}
