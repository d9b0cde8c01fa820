package show

import "context"

// effectFallbacks is the static effect-type fallback table: when the
// requested type is rejected by a device, these are tried next, in order,
// after any spec-level explicit fallbacks.
var effectFallbacks = map[string][]string{
	"melt":           {"energy", "wavelength"},
	"glitch":         {"energy", "magnitude"},
	"fire":           {"melt", "gradient"},
	"water":          {"melt", "energy"},
	"power":          {"magnitude", "energy"},
	"blocks":         {"bands", "equalizer"},
	"rainbow":        {"gradient"},
	"scan_and_flare": {"scan", "scroll"},
	"real_strobe":    {"strobe", "flash"},
}

// rapidMotionTypes are the directional scroll/scan effects that earn a
// scene the shorter rapid-motion playlist duration.
var rapidMotionTypes = map[string]bool{
	"scan":           true,
	"scan_and_flare": true,
	"scroll":         true,
	"scroll_plus":    true,
}

// effectRequest bundles everything needed to synthesize and apply one
// effect to one virtual.
type effectRequest struct {
	Type      string
	Fallbacks []string
	Phase     PhaseDefinition
	Mode      Mode
	Profile   MotionProfile
	Palette   Palette
	Overrides map[string]any
	// Defaults are filled into Overrides-like position only when the
	// candidate type matches DefaultsFor (role defaulting for
	// singleColor-style blend layers).
	Defaults    map[string]any
	DefaultsFor string
}

// resolvedEffect is the outcome of a successful fallback resolution.
type resolvedEffect struct {
	Type         string
	Config       map[string]any
	FallbackUsed bool
}

// candidateChain builds the ordered candidate list: requested type first,
// then explicit spec fallbacks, then the static table's fallbacks for the
// requested type, de-duplicated preserving first occurrence.
func candidateChain(requested string, explicit []string) []string {
	seen := make(map[string]bool)
	var chain []string
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			chain = append(chain, t)
		}
	}
	add(requested)
	for _, t := range explicit {
		add(t)
	}
	for _, t := range effectFallbacks[requested] {
		add(t)
	}
	return chain
}

// applyWithFallback tries each candidate effect type in order against the
// virtual, synthesizing a fresh schema-valid config per candidate, until
// the controller accepts one. An exhausted chain is always an error; it is
// never silently ignored.
func applyWithFallback(ctx context.Context, ctrl Controller, schemas map[string]PropertySet, virtualID string, req effectRequest) (resolvedEffect, error) {
	chain := candidateChain(req.Type, req.Fallbacks)

	var lastErr error
	for _, candidate := range chain {
		props, ok := schemas[candidate]
		if !ok {
			lastErr = &SchemaError{Detail: "no schema for effect type " + candidate}
			continue
		}

		overrides := req.Overrides
		if req.DefaultsFor != "" && candidate == req.DefaultsFor {
			overrides = mergeDefaults(req.Defaults, req.Overrides)
		}
		cfg := SynthesizeConfig(candidate, props, req.Phase, req.Mode, req.Profile, req.Palette, overrides)

		if err := ctrl.ApplyEffect(ctx, virtualID, candidate, cfg); err != nil {
			lastErr = err
			continue
		}
		return resolvedEffect{
			Type:         candidate,
			Config:       cfg,
			FallbackUsed: candidate != req.Type,
		}, nil
	}

	return resolvedEffect{}, &EffectApplicationError{
		VirtualID: virtualID,
		Attempted: chain,
		Last:      lastErr,
	}
}

// mergeDefaults layers explicit overrides on top of role defaults; keys
// set in both keep the explicit value.
func mergeDefaults(defaults, overrides map[string]any) map[string]any {
	if len(defaults) == 0 {
		return overrides
	}
	merged := make(map[string]any, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
