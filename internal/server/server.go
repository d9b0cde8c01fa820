// Package server wires the MCP components and creates the server
// instance. It is the composition root: concrete client and journal are
// created here and injected into tools. No composition logic lives here.
package server

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/lumenlabs/showmcp/internal/config"
	"github.com/lumenlabs/showmcp/internal/journal"
	"github.com/lumenlabs/showmcp/internal/ledfx"
	"github.com/lumenlabs/showmcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools registered.
//
// The returned cleanup function closes the journal database and must be
// called on shutdown (typically via defer). It is always non-nil and safe
// to call even if journal init failed.
func New(cfg config.Config) (*server.MCPServer, func(), error) {
	client := ledfx.New(cfg.ControllerURL, cfg.HTTPTimeout)

	s := server.NewMCPServer(
		"showmcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	composeTool := tools.NewComposeTool(client, nil)

	// The journal is an independent subsystem: if it fails to open, show
	// composition still works. We log a warning and skip the history
	// tool.
	cleanup := noop
	j, err := journal.Open(cfg.JournalPath)
	if err != nil {
		log.Printf("WARNING: run journal disabled: %v", err)
	} else {
		cleanup = func() {
			if err := j.Close(); err != nil {
				log.Printf("WARNING: journal close: %v", err)
			}
		}
		composeTool = tools.NewComposeTool(client, j)

		historyTool := tools.NewHistoryTool(j)
		s.AddTool(historyTool.Definition(), historyTool.Handle)
	}

	s.AddTool(composeTool.Definition(), composeTool.Handle)

	virtualsTool := tools.NewVirtualsTool(client)
	s.AddTool(virtualsTool.Definition(), virtualsTool.Handle)

	resolveTool := tools.NewResolveTool(client)
	s.AddTool(resolveTool.Definition(), resolveTool.Handle)

	paletteTool := tools.NewPaletteTool()
	s.AddTool(paletteTool.Definition(), paletteTool.Handle)

	return s, cleanup, nil
}

// noop is the default cleanup when the journal is disabled.
func noop() {}

// serverInstructions tells the AI client how to drive the show composer.
func serverInstructions() string {
	return `You have access to showmcp, a light-show composition server for a
networked lighting controller.

## Workflow

1. Call list_virtuals to see the controller's devices and which ones are
   blender-ready (have -background/-foreground/-mask companions).
2. Call resolve_target to check what a fuzzy device query would match
   before composing with it.
3. Call compose_show with dry_run=true first. A dry run performs every
   resolution, scoring, and synthesis step and surfaces the same errors a
   live run would, without modifying the controller.
4. Call compose_show live. It creates per-phase palettes, applies every
   scene spec (substituting fallback effect types where a device rejects
   the requested one), snapshots the applied state into named scenes, and
   builds per-phase and full-show playlists.

## Notes

- Runs are idempotent: scenes are upserted by name and palettes by id, so
  re-running after a failure converges to the same end state.
- Strobe scenes get a short playlist duration, scroll/scan scenes a
  medium one; report the fallback substitutions in the summary to the
  user.
- preview_palette shows a phase's colors and gradient without touching
  the controller.
- show_history lists recent runs from the local journal.`
}
