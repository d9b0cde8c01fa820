package show

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DirectSceneSpec declares one single-effect scene applied to every
// resolved target device.
type DirectSceneSpec struct {
	Phase      string         `yaml:"phase"`
	Order      int            `yaml:"order"`
	Role       string         `yaml:"role"`
	Label      string         `yaml:"label"`
	Mode       Mode           `yaml:"mode"`
	Effect     string         `yaml:"effect"`
	Fallbacks  []string       `yaml:"fallbacks,omitempty"`
	Profile    string         `yaml:"profile"`
	Overrides  map[string]any `yaml:"overrides,omitempty"`
	DurationMs int            `yaml:"duration_ms,omitempty"`
}

// LayerSpec declares one layer of a blended scene. Mode and Profile
// override the scene header when set; the mask layer's profile defaults
// to the aggressive maskProfile when left empty.
type LayerSpec struct {
	Effect    string         `yaml:"effect"`
	Fallbacks []string       `yaml:"fallbacks,omitempty"`
	Profile   string         `yaml:"profile,omitempty"`
	Mode      Mode           `yaml:"mode,omitempty"`
	Overrides map[string]any `yaml:"overrides,omitempty"`
}

// BlenderSceneSpec declares one three-layer blended scene per
// blender-ready target set.
type BlenderSceneSpec struct {
	Phase      string    `yaml:"phase"`
	Order      int       `yaml:"order"`
	Role       string    `yaml:"role"`
	Label      string    `yaml:"label"`
	Mode       Mode      `yaml:"mode"`
	Profile    string    `yaml:"profile"`
	Background LayerSpec `yaml:"background"`
	Foreground LayerSpec `yaml:"foreground"`
	Mask       LayerSpec `yaml:"mask"`
	DurationMs int       `yaml:"duration_ms,omitempty"`
}

// ShowSpec is a full set of scene declarations for one run.
type ShowSpec struct {
	Direct  []DirectSceneSpec  `yaml:"direct"`
	Blender []BlenderSceneSpec `yaml:"blender"`
}

// DefaultShow returns the built-in show's scene tables.
func DefaultShow() ShowSpec {
	return ShowSpec{
		Direct: []DirectSceneSpec{
			{Phase: "phase-1", Order: 10, Role: "backdrop", Label: "Emerald Wash", Mode: ModeNormal, Effect: "gradient", Profile: "drift"},
			{Phase: "phase-1", Order: 20, Role: "motion", Label: "Emerald Sweep", Mode: ModeNormal, Effect: "scan", Profile: "steady"},
			{Phase: "phase-2", Order: 10, Role: "backdrop", Label: "Amber Glow", Mode: ModeNormal, Effect: "fire", Profile: "drift"},
			{Phase: "phase-2", Order: 20, Role: "accent", Label: "Amber Pulse", Mode: ModeNormal, Effect: "energy", Profile: "driving"},
			{Phase: "phase-3", Order: 10, Role: "motion", Label: "Violet Scroll", Mode: ModeCrazy, Effect: "scroll", Profile: "driving"},
			{Phase: "phase-3", Order: 20, Role: "impact", Label: "Violet Strobe", Mode: ModeCrazy, Effect: "real_strobe", Fallbacks: []string{"strobe"}, Profile: "frantic"},
			{Phase: "phase-4", Order: 10, Role: "wash", Label: "Crimson Power", Mode: ModeNormal, Effect: "power", Profile: "driving"},
			{Phase: "phase-4", Order: 20, Role: "impact", Label: "Crimson Blitz", Mode: ModeCrazy, Effect: "glitch", Profile: "frantic"},
		},
		Blender: []BlenderSceneSpec{
			{
				Phase: "phase-1", Order: 30, Role: "wash", Label: "Emerald Layers", Mode: ModeNormal, Profile: "steady",
				Background: LayerSpec{Effect: "singleColor", Profile: "drift"},
				Foreground: LayerSpec{Effect: "melt", Profile: "steady"},
				Mask:       LayerSpec{Effect: "scan"},
			},
			{
				Phase: "phase-2", Order: 30, Role: "wash", Label: "Amber Layers", Mode: ModeNormal, Profile: "steady",
				Background: LayerSpec{Effect: "singleColor", Profile: "drift"},
				Foreground: LayerSpec{Effect: "fire", Profile: "driving"},
				Mask:       LayerSpec{Effect: "singleColor"},
			},
			{
				Phase: "phase-3", Order: 30, Role: "wash", Label: "Violet Layers", Mode: ModeCrazy, Profile: "driving",
				Background: LayerSpec{Effect: "singleColor", Profile: "drift"},
				Foreground: LayerSpec{Effect: "glitch", Profile: "frantic"},
				Mask:       LayerSpec{Effect: "scan_and_flare"},
			},
			{
				Phase: "phase-4", Order: 30, Role: "impact", Label: "Crimson Layers", Mode: ModeCrazy, Profile: "frantic",
				Background: LayerSpec{Effect: "singleColor", Profile: "steady"},
				Foreground: LayerSpec{Effect: "power", Profile: "frantic"},
				Mask:       LayerSpec{Effect: "strobe", Mode: ModeCrazy},
			},
		},
	}
}

// LoadShowFile reads extra scene specs from a YAML document. The loaded
// specs are validated against the same phase, profile, and mode tables as
// the built-in show.
func LoadShowFile(path string) (ShowSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ShowSpec{}, fmt.Errorf("reading show file: %w", err)
	}
	var spec ShowSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return ShowSpec{}, fmt.Errorf("parsing show file %s: %w", path, err)
	}
	if err := spec.Validate(); err != nil {
		return ShowSpec{}, fmt.Errorf("show file %s: %w", path, err)
	}
	return spec, nil
}

// Merge appends another show's specs after this one's.
func (s ShowSpec) Merge(other ShowSpec) ShowSpec {
	return ShowSpec{
		Direct:  append(append([]DirectSceneSpec{}, s.Direct...), other.Direct...),
		Blender: append(append([]BlenderSceneSpec{}, s.Blender...), other.Blender...),
	}
}

// Validate checks every spec against the static tables and rejects
// duplicate labels, which would collide on scene names within a run.
func (s ShowSpec) Validate() error {
	labels := make(map[string]bool)
	checkHeader := func(phase, profile, label string, mode Mode) error {
		if _, err := Phase(phase); err != nil {
			return err
		}
		if _, err := Profile(profile); err != nil {
			return err
		}
		if err := ValidateMode(mode); err != nil {
			return &ConfigurationError{Detail: err.Error()}
		}
		if label == "" {
			return &ConfigurationError{Detail: "scene label must not be empty"}
		}
		if labels[label] {
			return &ConfigurationError{Detail: fmt.Sprintf("duplicate scene label %q", label)}
		}
		labels[label] = true
		return nil
	}

	for _, d := range s.Direct {
		if err := checkHeader(d.Phase, d.Profile, d.Label, d.Mode); err != nil {
			return err
		}
		if d.Effect == "" {
			return &ConfigurationError{Detail: fmt.Sprintf("scene %q: effect must not be empty", d.Label)}
		}
	}
	for _, b := range s.Blender {
		if err := checkHeader(b.Phase, b.Profile, b.Label, b.Mode); err != nil {
			return err
		}
		for role, layer := range map[string]LayerSpec{"background": b.Background, "foreground": b.Foreground, "mask": b.Mask} {
			if layer.Effect == "" {
				return &ConfigurationError{Detail: fmt.Sprintf("scene %q: %s layer effect must not be empty", b.Label, role)}
			}
			if layer.Profile != "" {
				if _, err := Profile(layer.Profile); err != nil {
					return err
				}
			}
			if layer.Mode != "" {
				if err := ValidateMode(layer.Mode); err != nil {
					return &ConfigurationError{Detail: fmt.Sprintf("scene %q %s layer: %v", b.Label, role, err)}
				}
			}
		}
	}
	return nil
}
