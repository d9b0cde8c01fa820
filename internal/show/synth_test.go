package show

import (
	"testing"
)

func fullPropertySet() PropertySet {
	return PropertySet{
		"background_color": true,
		"gradient":         true,
		"color":            true,
		"color_lows":       true,
		"color_mids":       true,
		"color_high":       true,
		"flash_color":      true,
		"mirror":           true,
		"speed":            true,
		"brightness":       true,
		"sensitivity":      true,
		"frequency_range":  true,
	}
}

func testPhase() PhaseDefinition {
	return PhaseDefinition{
		Key:        "phase-1",
		Background: "#001A00",
		Colors:     []string{"#228B22", "#00AA00", "#FFFF00", "#0096C8"},
		Speed:      2,
		Brightness: 0.6,
	}
}

func TestSynthesizeConfig_MappedValues(t *testing.T) {
	phase := testPhase()
	palette := NewPalette("Show", phase, ModeNormal)
	profile := MotionProfile{Name: "steady", SpeedMultiplier: 1, BrightnessDelta: 0, Sensitivity: 0.5, FrequencyRange: "Mids"}

	cfg := SynthesizeConfig("gradient", fullPropertySet(), phase, ModeNormal, profile, palette, nil)

	want := map[string]any{
		"background_color": "#001A00",
		"gradient":         palette.ID,
		"color":            "#228B22",
		"color_lows":       "#228B22",
		"color_mids":       "#FFFF00",
		"color_high":       "#0096C8",
		"mirror":           false,
		"speed":            2.0,
		"brightness":       0.6,
		"sensitivity":      0.5,
		"frequency_range":  "Mids",
	}
	for k, v := range want {
		if cfg[k] != v {
			t.Errorf("cfg[%q] = %v, want %v", k, cfg[k], v)
		}
	}
	if _, ok := cfg["flash_color"]; ok {
		t.Error("flash_color should only be set for flash-style effect types")
	}
}

func TestSynthesizeConfig_FlashColorForStrobeTypes(t *testing.T) {
	phase := testPhase()
	palette := NewPalette("Show", phase, ModeNormal)
	profile := MotionProfile{Name: "frantic", SpeedMultiplier: 1}

	for _, effectType := range []string{"real_strobe", "strobe", "flash"} {
		cfg := SynthesizeConfig(effectType, fullPropertySet(), phase, ModeNormal, profile, palette, nil)
		if got, want := cfg["flash_color"], "#0096C8"; got != want {
			t.Errorf("%s: flash_color = %v, want %v", effectType, got, want)
		}
	}
}

func TestSynthesizeConfig_NoLeakage(t *testing.T) {
	// A schema without speed must never receive a speed key, whatever the
	// phase, mode, or profile.
	props := PropertySet{"color": true, "brightness": true}
	for _, key := range PhaseOrder() {
		phase, _ := Phase(key)
		for _, mode := range []Mode{ModeNormal, ModeCrazy} {
			for name := range motionProfiles {
				profile, _ := Profile(name)
				palette := NewPalette("Show", phase, mode)
				cfg := SynthesizeConfig("energy", props, phase, mode, profile, palette, nil)
				for k := range cfg {
					if !props[k] {
						t.Fatalf("phase %s mode %s profile %s: config leaked key %q", key, mode, name, k)
					}
				}
			}
		}
	}
}

func TestSynthesizeConfig_CrazyModeBumpsBaseSpeed(t *testing.T) {
	phase := testPhase()
	profile := MotionProfile{SpeedMultiplier: 1}
	props := PropertySet{"speed": true}

	normal := SynthesizeConfig("energy", props, phase, ModeNormal, profile, NewPalette("Show", phase, ModeNormal), nil)
	crazy := SynthesizeConfig("energy", props, phase, ModeCrazy, profile, NewPalette("Show", phase, ModeCrazy), nil)

	if got, want := normal["speed"], 2.0; got != want {
		t.Errorf("normal speed = %v, want %v", got, want)
	}
	if got, want := crazy["speed"], 3.0; got != want {
		t.Errorf("crazy speed = %v, want %v", got, want)
	}
}

func TestSynthesizeConfig_NumericBounds(t *testing.T) {
	props := PropertySet{"speed": true, "brightness": true}
	extremes := []MotionProfile{
		{SpeedMultiplier: 0.001, BrightnessDelta: -5},
		{SpeedMultiplier: 100, BrightnessDelta: 5},
	}
	for _, key := range PhaseOrder() {
		phase, _ := Phase(key)
		for _, mode := range []Mode{ModeNormal, ModeCrazy} {
			for _, profile := range append(extremes, profileValues()...) {
				palette := NewPalette("Show", phase, mode)
				cfg := SynthesizeConfig("energy", props, phase, mode, profile, palette, nil)
				speed := cfg["speed"].(float64)
				brightness := cfg["brightness"].(float64)
				if speed < minSpeed || speed > maxSpeed {
					t.Errorf("phase %s mode %s mult %v: speed %v out of [%v, %v]", key, mode, profile.SpeedMultiplier, speed, minSpeed, maxSpeed)
				}
				if brightness < minBrightness || brightness > maxBrightness {
					t.Errorf("phase %s mode %s delta %v: brightness %v out of [%v, %v]", key, mode, profile.BrightnessDelta, brightness, minBrightness, maxBrightness)
				}
			}
		}
	}
}

func profileValues() []MotionProfile {
	var out []MotionProfile
	for name := range motionProfiles {
		out = append(out, motionProfiles[name])
	}
	return out
}

func TestSynthesizeConfig_Overrides(t *testing.T) {
	phase := testPhase()
	palette := NewPalette("Show", phase, ModeNormal)
	profile := MotionProfile{SpeedMultiplier: 1}
	props := PropertySet{"speed": true, "color": true}

	cfg := SynthesizeConfig("energy", props, phase, ModeNormal, profile, palette, map[string]any{
		"speed":    7.5,
		"gradient": "ignored",
		"blur":     "ignored",
	})

	if got, want := cfg["speed"], 7.5; got != want {
		t.Errorf("override lost: speed = %v, want %v", got, want)
	}
	if _, ok := cfg["gradient"]; ok {
		t.Error("override for unsupported key 'gradient' must be dropped")
	}
	if _, ok := cfg["blur"]; ok {
		t.Error("override for unknown key 'blur' must be dropped")
	}
}
