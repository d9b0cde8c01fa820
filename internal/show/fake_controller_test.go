package show

import (
	"context"
	"fmt"
)

// fakeController is an in-memory stand-in for the lighting controller.
// rejects marks (virtual, effectType) pairs the controller refuses, which
// drives the fallback search in tests.
type fakeController struct {
	virtuals []Virtual
	schemas  map[string]PropertySet
	rejects  map[string]map[string]bool

	attempts  []string                  // "virtualID:effectType" in ApplyEffect order
	configs   map[string]map[string]any // last config per "virtualID:effectType"
	mutations []string                  // coarse log of every mutating call

	applied     map[string]*Effect
	blends      map[string]BlendLayers
	colors      map[string]string
	presets     map[string][]string
	scenes      []fakeScene
	nextSceneID int
	playlists   map[string]*fakePlaylist
}

type fakeScene struct {
	ID      string
	Name    string
	Tags    []string
	Devices map[string]SceneDevice
}

type fakePlaylist struct {
	Name      string
	SceneIDs  []string
	Mode      string
	DefaultMs int
	Tags      []string
	Durations map[int]int
}

func newFakeController(virtuals []Virtual, schemas map[string]PropertySet) *fakeController {
	return &fakeController{
		virtuals:  virtuals,
		schemas:   schemas,
		rejects:   make(map[string]map[string]bool),
		configs:   make(map[string]map[string]any),
		applied:   make(map[string]*Effect),
		blends:    make(map[string]BlendLayers),
		colors:    make(map[string]string),
		presets:   make(map[string][]string),
		playlists: make(map[string]*fakePlaylist),
	}
}

func (f *fakeController) reject(virtualID, effectType string) {
	if f.rejects[virtualID] == nil {
		f.rejects[virtualID] = make(map[string]bool)
	}
	f.rejects[virtualID][effectType] = true
}

func (f *fakeController) ListVirtuals(context.Context) ([]Virtual, error) {
	return f.virtuals, nil
}

func (f *fakeController) GetVirtual(_ context.Context, id string) (*VirtualState, error) {
	return &VirtualState{ID: id, ActiveEffect: f.applied[id]}, nil
}

func (f *fakeController) ApplyEffect(_ context.Context, virtualID, effectType string, config map[string]any) error {
	f.attempts = append(f.attempts, virtualID+":"+effectType)
	f.mutations = append(f.mutations, "applyEffect")
	if f.rejects[virtualID][effectType] {
		return fmt.Errorf("effect %s rejected by %s", effectType, virtualID)
	}
	f.configs[virtualID+":"+effectType] = config
	f.applied[virtualID] = &Effect{Type: effectType, Config: config}
	return nil
}

func (f *fakeController) ApplyBlend(_ context.Context, mainID string, layers BlendLayers) error {
	f.mutations = append(f.mutations, "applyBlend")
	f.blends[mainID] = layers
	f.applied[mainID] = &Effect{Type: "blender", Config: map[string]any{
		"background": layers.Background.VirtualID,
		"foreground": layers.Foreground.VirtualID,
		"mask":       layers.Mask.VirtualID,
	}}
	return nil
}

func (f *fakeController) EffectSchemas(context.Context) (map[string]PropertySet, error) {
	return f.schemas, nil
}

func (f *fakeController) UpsertColor(_ context.Context, id, value string) error {
	f.mutations = append(f.mutations, "upsertColor")
	f.colors[id] = value
	return nil
}

func (f *fakeController) SavePreset(_ context.Context, virtualID, name string) error {
	f.mutations = append(f.mutations, "savePreset")
	f.presets[virtualID] = append(f.presets[virtualID], name)
	return nil
}

func (f *fakeController) ListScenes(context.Context) ([]SceneRef, error) {
	refs := make([]SceneRef, len(f.scenes))
	for i, sc := range f.scenes {
		refs[i] = SceneRef{ID: sc.ID, Name: sc.Name}
	}
	return refs, nil
}

func (f *fakeController) CreateScene(_ context.Context, name string, tags []string) error {
	f.mutations = append(f.mutations, "createScene")
	f.nextSceneID++
	f.scenes = append(f.scenes, fakeScene{
		ID:   fmt.Sprintf("scene-%d", f.nextSceneID),
		Name: name,
		Tags: tags,
	})
	return nil
}

func (f *fakeController) DeleteScene(_ context.Context, id string) error {
	f.mutations = append(f.mutations, "deleteScene")
	for i, sc := range f.scenes {
		if sc.ID == id {
			f.scenes = append(f.scenes[:i], f.scenes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("scene %s not found", id)
}

func (f *fakeController) WriteSceneDevices(_ context.Context, sceneID string, devices map[string]SceneDevice) error {
	f.mutations = append(f.mutations, "writeSceneDevices")
	for i, sc := range f.scenes {
		if sc.ID == sceneID {
			f.scenes[i].Devices = devices
			return nil
		}
	}
	return fmt.Errorf("scene %s not found", sceneID)
}

func (f *fakeController) UpsertPlaylist(_ context.Context, id, name string, sceneIDs []string, mode string, defaultDurationMs int, tags []string) error {
	f.mutations = append(f.mutations, "upsertPlaylist")
	f.playlists[id] = &fakePlaylist{
		Name:      name,
		SceneIDs:  sceneIDs,
		Mode:      mode,
		DefaultMs: defaultDurationMs,
		Tags:      tags,
		Durations: make(map[int]int),
	}
	return nil
}

func (f *fakeController) PatchPlaylistItemDuration(_ context.Context, playlistID string, index, durationMs int) error {
	f.mutations = append(f.mutations, "patchPlaylistItemDuration")
	pl, ok := f.playlists[playlistID]
	if !ok {
		return fmt.Errorf("playlist %s not found", playlistID)
	}
	pl.Durations[index] = durationMs
	return nil
}

func (f *fakeController) sceneByName(name string) (fakeScene, bool) {
	for _, sc := range f.scenes {
		if sc.Name == name {
			return sc, true
		}
	}
	return fakeScene{}, false
}

// defaultSchemas covers every effect type the built-in show can reach.
func defaultSchemas() map[string]PropertySet {
	base := func(extra ...string) PropertySet {
		props := PropertySet{
			"background_color": true,
			"gradient":         true,
			"speed":            true,
			"brightness":       true,
			"sensitivity":      true,
			"frequency_range":  true,
			"mirror":           true,
		}
		for _, p := range extra {
			props[p] = true
		}
		return props
	}
	return map[string]PropertySet{
		"gradient":       base(),
		"energy":         base("color_lows", "color_mids", "color_high"),
		"wavelength":     base(),
		"magnitude":      base(),
		"melt":           base(),
		"fire":           base(),
		"glitch":         base(),
		"power":          base("color_high"),
		"scan":           base("color"),
		"scan_and_flare": base("color"),
		"scroll":         base("color_lows", "color_mids", "color_high"),
		"strobe":         base("color", "flash_color"),
		"real_strobe":    base("color", "flash_color"),
		"flash":          base("color", "flash_color"),
		"singleColor":    PropertySet{"color": true, "brightness": true, "background_color": true},
		"bands":          base(),
		"equalizer":      base(),
	}
}
