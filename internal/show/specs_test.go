package show

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultShow_Valid(t *testing.T) {
	if err := DefaultShow().Validate(); err != nil {
		t.Fatalf("built-in show must validate: %v", err)
	}
}

func TestShowSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    ShowSpec
		wantErr bool
	}{
		{
			name: "valid direct spec",
			spec: ShowSpec{Direct: []DirectSceneSpec{
				{Phase: "phase-1", Label: "Extra", Mode: ModeNormal, Effect: "energy", Profile: "steady"},
			}},
		},
		{
			name: "unknown phase",
			spec: ShowSpec{Direct: []DirectSceneSpec{
				{Phase: "phase-9", Label: "Extra", Mode: ModeNormal, Effect: "energy", Profile: "steady"},
			}},
			wantErr: true,
		},
		{
			name: "unknown profile",
			spec: ShowSpec{Direct: []DirectSceneSpec{
				{Phase: "phase-1", Label: "Extra", Mode: ModeNormal, Effect: "energy", Profile: "sluggish"},
			}},
			wantErr: true,
		},
		{
			name: "invalid mode",
			spec: ShowSpec{Direct: []DirectSceneSpec{
				{Phase: "phase-1", Label: "Extra", Mode: "wild", Effect: "energy", Profile: "steady"},
			}},
			wantErr: true,
		},
		{
			name: "duplicate labels collide on scene names",
			spec: ShowSpec{Direct: []DirectSceneSpec{
				{Phase: "phase-1", Label: "Extra", Mode: ModeNormal, Effect: "energy", Profile: "steady"},
				{Phase: "phase-2", Label: "Extra", Mode: ModeNormal, Effect: "energy", Profile: "steady"},
			}},
			wantErr: true,
		},
		{
			name: "missing effect",
			spec: ShowSpec{Direct: []DirectSceneSpec{
				{Phase: "phase-1", Label: "Extra", Mode: ModeNormal, Profile: "steady"},
			}},
			wantErr: true,
		},
		{
			name: "blender layer without effect",
			spec: ShowSpec{Blender: []BlenderSceneSpec{
				{
					Phase: "phase-1", Label: "Extra", Mode: ModeNormal, Profile: "steady",
					Background: LayerSpec{Effect: "singleColor"},
					Foreground: LayerSpec{Effect: "melt"},
				},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadShowFile(t *testing.T) {
	doc := `
direct:
  - phase: phase-1
    order: 40
    role: accent
    label: Custom Shimmer
    mode: normal
    effect: energy
    fallbacks: [wavelength]
    profile: steady
    overrides:
      blur: 2.5
blender:
  - phase: phase-2
    order: 50
    role: wash
    label: Custom Layers
    mode: crazy
    profile: driving
    background:
      effect: singleColor
      profile: drift
    foreground:
      effect: melt
    mask:
      effect: scan
      mode: crazy
`
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing show file: %v", err)
	}

	spec, err := LoadShowFile(path)
	if err != nil {
		t.Fatalf("LoadShowFile: %v", err)
	}
	if len(spec.Direct) != 1 || len(spec.Blender) != 1 {
		t.Fatalf("loaded %d direct and %d blender specs, want 1 and 1", len(spec.Direct), len(spec.Blender))
	}

	d := spec.Direct[0]
	if d.Label != "Custom Shimmer" || d.Effect != "energy" || d.Order != 40 {
		t.Errorf("direct spec = %+v", d)
	}
	if len(d.Fallbacks) != 1 || d.Fallbacks[0] != "wavelength" {
		t.Errorf("fallbacks = %v, want [wavelength]", d.Fallbacks)
	}
	if d.Overrides["blur"] != 2.5 {
		t.Errorf("overrides = %v, want blur 2.5", d.Overrides)
	}

	b := spec.Blender[0]
	if b.Mask.Mode != ModeCrazy || b.Mask.Effect != "scan" {
		t.Errorf("mask layer = %+v", b.Mask)
	}
	if b.Background.Profile != "drift" {
		t.Errorf("background profile = %q, want drift", b.Background.Profile)
	}
}

func TestLoadShowFile_RejectsInvalid(t *testing.T) {
	doc := `
direct:
  - phase: phase-9
    label: Bad
    mode: normal
    effect: energy
    profile: steady
`
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing show file: %v", err)
	}
	if _, err := LoadShowFile(path); err == nil {
		t.Fatal("invalid show file should be rejected")
	}
}

func TestShowSpec_Merge(t *testing.T) {
	base := DefaultShow()
	extra := ShowSpec{Direct: []DirectSceneSpec{
		{Phase: "phase-1", Label: "Extra", Mode: ModeNormal, Effect: "energy", Profile: "steady"},
	}}
	merged := base.Merge(extra)

	if got, want := len(merged.Direct), len(base.Direct)+1; got != want {
		t.Errorf("merged direct specs = %d, want %d", got, want)
	}
	if merged.Direct[len(merged.Direct)-1].Label != "Extra" {
		t.Error("extra specs must come after the built-in show")
	}
	if len(base.Direct) == len(merged.Direct) {
		t.Error("Merge must not mutate the receiver")
	}
}
