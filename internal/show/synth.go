package show

import "strings"

// Numeric bounds for synthesized parameters.
const (
	minSpeed      = 0.25
	maxSpeed      = 9
	minBrightness = 0.05
	maxBrightness = 1
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// flashStyle reports whether an effect type takes its accent through the
// dedicated flash color slot.
func flashStyle(effectType string) bool {
	return strings.Contains(effectType, "flash") || strings.Contains(effectType, "strobe")
}

// SynthesizeConfig maps phase constants, a motion profile, and a palette
// reference into a parameter map for one effect type. It is a pure
// function of its inputs: only parameter names present in props are ever
// written, and explicit overrides are applied last, again filtered by
// props, so a config can never leak parameters across effect types.
func SynthesizeConfig(effectType string, props PropertySet, phase PhaseDefinition, mode Mode, profile MotionProfile, palette Palette, overrides map[string]any) map[string]any {
	cfg := make(map[string]any)

	if supports(props, "background_color") {
		cfg["background_color"] = phase.Background
	}
	if supports(props, "gradient") {
		// Named palette pointer, not inline colors: the gradient was
		// upserted under the palette id before any scene is composed.
		cfg["gradient"] = palette.ID
	}
	if supports(props, "color") {
		cfg["color"] = palette.Low()
	}
	if supports(props, "color_lows") {
		cfg["color_lows"] = palette.Low()
	}
	if supports(props, "color_mids") {
		cfg["color_mids"] = palette.Mid()
	}
	if supports(props, "color_high") {
		cfg["color_high"] = palette.High()
	}
	if supports(props, "flash_color") && flashStyle(effectType) {
		cfg["flash_color"] = palette.High()
	}
	if supports(props, "mirror") {
		cfg["mirror"] = profile.Mirror
	}
	if supports(props, "speed") {
		cfg["speed"] = clamp(baseSpeed(phase, mode)*profile.SpeedMultiplier, minSpeed, maxSpeed)
	}
	if supports(props, "brightness") {
		cfg["brightness"] = clamp(phase.Brightness+profile.BrightnessDelta, minBrightness, maxBrightness)
	}
	if supports(props, "sensitivity") {
		cfg["sensitivity"] = profile.Sensitivity
	}
	if supports(props, "frequency_range") {
		cfg["frequency_range"] = profile.FrequencyRange
	}

	for k, v := range overrides {
		if supports(props, k) {
			cfg[k] = v
		}
	}
	return cfg
}
