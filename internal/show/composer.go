package show

import (
	"context"
	"fmt"
	"strings"
)

// Kind distinguishes single-effect scenes from three-layer blends.
type Kind string

const (
	KindDirect  Kind = "direct"
	KindBlender Kind = "blender"
)

// CreatedScene is the run-scoped record the composer appends for every
// registered scene and the playlist assembler consumes.
type CreatedScene struct {
	ID          string
	Name        string
	Phase       string
	Kind        Kind
	Mode        Mode
	Role        string
	Order       int
	Strobe      bool
	RapidMotion bool
	DurationMs  int
}

// Substitution records one fallback actually used during a run.
type Substitution struct {
	Scene     string
	VirtualID string
	Requested string
	Resolved  string
}

// Per-item playlist durations by scene classification.
const (
	defaultDurationMs = 30000
	rapidDurationMs   = 20000
	strobeDurationMs  = 10000
)

func isStrobeType(effectType string) bool {
	return strings.Contains(effectType, "strobe")
}

func classifyDuration(explicitMs int, strobe, rapid bool) int {
	if explicitMs > 0 {
		return explicitMs
	}
	if strobe {
		return strobeDurationMs
	}
	if rapid {
		return rapidDurationMs
	}
	return defaultDurationMs
}

func (r *run) sceneName(label string) string {
	return r.opts.NamePrefix + " " + label
}

func sceneTags(phase PhaseDefinition, role string, mode Mode, kind Kind) []string {
	tags := append([]string{}, phase.Tags...)
	return append(tags, role, string(mode), string(kind))
}

// composeDirect applies one DirectSceneSpec to every resolved target and
// registers the result as a single scene covering all of them.
func (r *run) composeDirect(ctx context.Context, spec DirectSceneSpec) error {
	phase, err := Phase(spec.Phase)
	if err != nil {
		return err
	}
	profile, err := Profile(spec.Profile)
	if err != nil {
		return err
	}
	palette := r.palette(spec.Phase, spec.Mode)
	name := r.sceneName(spec.Label)

	var strobe, rapid bool
	targetIDs := make([]string, 0, len(r.targets))
	for _, target := range r.targets {
		res, err := applyWithFallback(ctx, r.ctrl, r.schemas, target.ID, effectRequest{
			Type:      spec.Effect,
			Fallbacks: spec.Fallbacks,
			Phase:     phase,
			Mode:      spec.Mode,
			Profile:   profile,
			Palette:   palette,
			Overrides: spec.Overrides,
		})
		if err != nil {
			return fmt.Errorf("scene %q on %s: %w", name, target.ID, err)
		}
		if res.FallbackUsed {
			r.subs = append(r.subs, Substitution{Scene: name, VirtualID: target.ID, Requested: spec.Effect, Resolved: res.Type})
		}
		strobe = strobe || isStrobeType(res.Type)
		rapid = rapid || rapidMotionTypes[res.Type]

		if err := r.ctrl.SavePreset(ctx, target.ID, name); err != nil {
			return fmt.Errorf("saving preset %q on %s: %w", name, target.ID, err)
		}
		targetIDs = append(targetIDs, target.ID)
	}

	tags := sceneTags(phase, spec.Role, spec.Mode, KindDirect)
	id, err := r.registerScene(ctx, name, tags, targetIDs)
	if err != nil {
		return err
	}

	r.scenes = append(r.scenes, CreatedScene{
		ID:          id,
		Name:        name,
		Phase:       spec.Phase,
		Kind:        KindDirect,
		Mode:        spec.Mode,
		Role:        spec.Role,
		Order:       spec.Order,
		Strobe:      strobe,
		RapidMotion: rapid,
		DurationMs:  classifyDuration(spec.DurationMs, strobe, rapid),
	})
	return nil
}

// layerRole names the three blend layers in composition order.
type layerRole string

const (
	roleBackground layerRole = "background"
	roleForeground layerRole = "foreground"
	roleMask       layerRole = "mask"
)

// layerDefaults returns the role default for singleColor-style layers: the
// background sits near the phase background color at partial brightness,
// the mask defaults to black at zero brightness (pass-through).
func layerDefaults(role layerRole, phase PhaseDefinition) map[string]any {
	switch role {
	case roleBackground:
		return map[string]any{"color": phase.Background, "brightness": 0.4}
	case roleMask:
		return map[string]any{"color": "#000000", "brightness": 0.0}
	}
	return nil
}

// composeBlender composes one BlenderSceneSpec onto every blender-ready
// target set: each layer is resolved independently on its companion
// virtual, the three resolved layers are submitted as one blend call on
// the main virtual, and the scene is registered against the main virtual
// only.
func (r *run) composeBlender(ctx context.Context, spec BlenderSceneSpec) error {
	phase, err := Phase(spec.Phase)
	if err != nil {
		return err
	}

	for _, set := range r.readySets {
		name := r.sceneName(spec.Label)
		if len(r.readySets) > 1 {
			name = fmt.Sprintf("%s (%s)", name, set.Main)
		}

		var strobe, rapid bool
		resolved := make(map[layerRole]BlendLayer, 3)
		for _, lr := range []struct {
			role      layerRole
			virtualID string
			layer     LayerSpec
		}{
			{roleBackground, set.Background, spec.Background},
			{roleForeground, set.Foreground, spec.Foreground},
			{roleMask, set.Mask, spec.Mask},
		} {
			mode := lr.layer.Mode
			if mode == "" {
				mode = spec.Mode
			}
			profileName := lr.layer.Profile
			if profileName == "" {
				if lr.role == roleMask {
					profileName = maskProfile
				} else {
					profileName = spec.Profile
				}
			}
			profile, err := Profile(profileName)
			if err != nil {
				return err
			}

			res, err := applyWithFallback(ctx, r.ctrl, r.schemas, lr.virtualID, effectRequest{
				Type:        lr.layer.Effect,
				Fallbacks:   lr.layer.Fallbacks,
				Phase:       phase,
				Mode:        mode,
				Profile:     profile,
				Palette:     r.palette(spec.Phase, mode),
				Overrides:   lr.layer.Overrides,
				Defaults:    layerDefaults(lr.role, phase),
				DefaultsFor: "singleColor",
			})
			if err != nil {
				return fmt.Errorf("scene %q %s layer: %w", name, lr.role, err)
			}
			if res.FallbackUsed {
				r.subs = append(r.subs, Substitution{Scene: name, VirtualID: lr.virtualID, Requested: lr.layer.Effect, Resolved: res.Type})
			}
			strobe = strobe || isStrobeType(res.Type)
			rapid = rapid || rapidMotionTypes[res.Type]
			resolved[lr.role] = BlendLayer{VirtualID: lr.virtualID, Type: res.Type, Config: res.Config}
		}

		if err := r.ctrl.ApplyBlend(ctx, set.Main, BlendLayers{
			Background: resolved[roleBackground],
			Foreground: resolved[roleForeground],
			Mask:       resolved[roleMask],
		}); err != nil {
			return fmt.Errorf("scene %q: blend on %s: %w", name, set.Main, err)
		}
		if err := r.ctrl.SavePreset(ctx, set.Main, name); err != nil {
			return fmt.Errorf("saving preset %q on %s: %w", name, set.Main, err)
		}

		tags := sceneTags(phase, spec.Role, spec.Mode, KindBlender)
		id, err := r.registerScene(ctx, name, tags, []string{set.Main})
		if err != nil {
			return err
		}

		r.scenes = append(r.scenes, CreatedScene{
			ID:          id,
			Name:        name,
			Phase:       spec.Phase,
			Kind:        KindBlender,
			Mode:        spec.Mode,
			Role:        spec.Role,
			Order:       spec.Order,
			Strobe:      strobe,
			RapidMotion: rapid,
			DurationMs:  classifyDuration(spec.DurationMs, strobe, rapid),
		})
	}
	return nil
}
