package show

import (
	"context"
	"fmt"
	"strings"
)

// Options are the fully-resolved parameters of one composition run. The
// boundary layers (CLI flags, MCP tool arguments) validate operator
// intent and hand a complete Options in; the engine itself never consults
// the environment.
type Options struct {
	// Targets are resolver queries; each must resolve to exactly one
	// virtual.
	Targets []string
	// NamePrefix is the naming profile applied to scene, palette, and
	// playlist names. Defaults to "Show".
	NamePrefix string
	// IncludeBlends composes the three-layer blended scenes on every
	// blender-ready target set.
	IncludeBlends bool
	// Strict turns a not-blender-ready target set into a fatal error
	// instead of a skip.
	Strict bool
	// DryRun executes every resolution, scoring, and synthesis step but
	// skips all mutating controller calls.
	DryRun bool
	// BuildPlaylists assembles per-phase and full-show playlists after
	// scene composition.
	BuildPlaylists bool
	// Specs is the scene spec set to compose. Zero value means the
	// built-in show.
	Specs ShowSpec
}

// Summary is the structured result of a run, returned for the boundary
// layer to print.
type Summary struct {
	DryRun           bool
	Targets          []string
	ScenesCreated    int
	PlaylistsCreated int
	Substitutions    []Substitution
	SkippedSets      map[string][]string
	Scenes           []CreatedScene
}

// run is the mutable state threaded through one composition. It is
// created per call, so runs are reentrant and testable in isolation; the
// static tables above are never touched.
type run struct {
	ctrl      Controller
	opts      Options
	schemas   map[string]PropertySet
	devices   []Virtual
	targets   []Virtual
	readySets []VirtualSet
	palettes  map[string]Palette
	scenes    []CreatedScene
	subs      []Substitution
	skipped   map[string][]string
}

func (r *run) palette(phaseKey string, mode Mode) Palette {
	return r.palettes[phaseKey+"/"+string(mode)]
}

// Compose runs the whole pipeline strictly sequentially: schemas, target
// resolution, palettes, direct scenes, blended scenes, playlists. Every
// controller call is awaited before the next begins, and the first error
// aborts the run with whatever partial state already exists on the
// controller; re-running converges because palette and scene writes are
// idempotent by id and name.
func Compose(ctx context.Context, ctrl Controller, opts Options) (*Summary, error) {
	if len(opts.Targets) == 0 {
		return nil, &ConfigurationError{Detail: "at least one target query is required"}
	}
	if strings.TrimSpace(opts.NamePrefix) == "" {
		opts.NamePrefix = "Show"
	}
	if len(opts.Specs.Direct) == 0 && len(opts.Specs.Blender) == 0 {
		opts.Specs = DefaultShow()
	}
	if err := opts.Specs.Validate(); err != nil {
		return nil, err
	}
	if opts.DryRun {
		ctrl = dryController{ctrl}
	}

	r := &run{
		ctrl:     ctrl,
		opts:     opts,
		palettes: make(map[string]Palette),
		skipped:  make(map[string][]string),
	}

	schemas, err := ctrl.EffectSchemas(ctx)
	if err != nil {
		return nil, &SchemaError{Detail: err.Error()}
	}
	if len(schemas) == 0 {
		return nil, &SchemaError{Detail: "controller returned no effect schemas"}
	}
	r.schemas = schemas

	r.devices, err = ctrl.ListVirtuals(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing virtuals: %w", err)
	}

	if err := r.resolveTargets(); err != nil {
		return nil, err
	}
	if err := r.ensurePalettes(ctx); err != nil {
		return nil, err
	}

	for _, spec := range r.opts.Specs.Direct {
		if err := r.composeDirect(ctx, spec); err != nil {
			return nil, err
		}
	}
	if r.opts.IncludeBlends {
		for _, spec := range r.opts.Specs.Blender {
			if err := r.composeBlender(ctx, spec); err != nil {
				return nil, err
			}
		}
	}

	var playlists int
	if r.opts.BuildPlaylists {
		playlists, err = r.buildPlaylists(ctx)
		if err != nil {
			return nil, err
		}
	}

	targetIDs := make([]string, len(r.targets))
	for i, t := range r.targets {
		targetIDs[i] = t.ID
	}
	return &Summary{
		DryRun:           r.opts.DryRun,
		Targets:          targetIDs,
		ScenesCreated:    len(r.scenes),
		PlaylistsCreated: playlists,
		Substitutions:    r.subs,
		SkippedSets:      r.skipped,
		Scenes:           r.scenes,
	}, nil
}

// resolveTargets maps every query to one virtual, de-duplicated in query
// order, and probes blend companions when blends are requested. In strict
// mode a partial companion set is fatal; otherwise it is skipped and
// reported in the summary.
func (r *run) resolveTargets() error {
	seen := make(map[string]bool)
	for _, q := range r.opts.Targets {
		v, err := ResolveTarget(q, r.devices)
		if err != nil {
			return err
		}
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		r.targets = append(r.targets, v)
	}

	if !r.opts.IncludeBlends {
		return nil
	}
	for _, t := range r.targets {
		set := ResolveVirtualSet(t.ID, r.devices)
		if set.Ready {
			r.readySets = append(r.readySets, set)
			continue
		}
		if r.opts.Strict {
			return fmt.Errorf("strict mode: %s is not blender-ready, missing companions: %s",
				t.ID, strings.Join(set.Missing, ", "))
		}
		r.skipped[t.ID] = set.Missing
	}
	return nil
}

// ensurePalettes upserts one normal and one crazy palette per phase under
// stable ids, before any effect config references them.
func (r *run) ensurePalettes(ctx context.Context) error {
	for _, key := range PhaseOrder() {
		phase := phases[key]
		for _, mode := range []Mode{ModeNormal, ModeCrazy} {
			p := NewPalette(r.opts.NamePrefix, phase, mode)
			if err := r.ctrl.UpsertColor(ctx, p.ID, p.Gradient); err != nil {
				return fmt.Errorf("upserting palette %s: %w", p.ID, err)
			}
			r.palettes[key+"/"+string(mode)] = p
		}
	}
	return nil
}
