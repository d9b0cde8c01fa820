// Package show implements the declarative show-composition engine: it
// resolves target devices on the lighting controller, synthesizes
// schema-valid effect configurations from static phase and motion tables,
// composes direct and three-layer blended scenes, snapshots them into
// named scenes, and orders the result into playlists.
//
// The engine talks to the controller exclusively through the Controller
// interface, so the whole pipeline runs against a fake in tests and
// against internal/ledfx in production.
package show

import "context"

// Virtual is one addressable output target on the controller.
type Virtual struct {
	ID     string
	Name   string
	Active bool
}

// Effect is a named animation pattern with its parameter map.
type Effect struct {
	Type   string         `json:"type"`
	Config map[string]any `json:"config"`
}

// VirtualState is the readable state of one virtual.
type VirtualState struct {
	ID           string
	Active       bool
	ActiveEffect *Effect
}

// BlendLayer is one layer of a three-layer blend: the companion virtual it
// runs on plus the effect resolved for it.
type BlendLayer struct {
	VirtualID string
	Type      string
	Config    map[string]any
}

// BlendLayers carries the three layers of a blend-composition call.
type BlendLayers struct {
	Background BlendLayer
	Foreground BlendLayer
	Mask       BlendLayer
}

// SceneRef identifies a scene stored on the controller.
type SceneRef struct {
	ID   string
	Name string
}

// SceneDevice is the per-device entry of a scene payload: the effect to
// activate when the scene is recalled.
type SceneDevice struct {
	Type   string         `json:"type"`
	Config map[string]any `json:"config"`
	Action string         `json:"action"`
}

// PropertySet is the set of parameter names an effect type's schema
// recognizes.
type PropertySet map[string]bool

// supports reports whether the schema recognizes the given parameter name.
// Every conditional parameter write in the synthesizer goes through this.
func supports(props PropertySet, key string) bool {
	return props[key]
}

// Controller is the boundary to the external lighting controller. Each
// method is a blocking round trip; failures are propagated, never
// swallowed.
type Controller interface {
	ListVirtuals(ctx context.Context) ([]Virtual, error)
	GetVirtual(ctx context.Context, id string) (*VirtualState, error)
	ApplyEffect(ctx context.Context, virtualID, effectType string, config map[string]any) error
	ApplyBlend(ctx context.Context, mainID string, layers BlendLayers) error
	EffectSchemas(ctx context.Context) (map[string]PropertySet, error)
	UpsertColor(ctx context.Context, id, value string) error
	SavePreset(ctx context.Context, virtualID, name string) error
	ListScenes(ctx context.Context) ([]SceneRef, error)
	CreateScene(ctx context.Context, name string, tags []string) error
	DeleteScene(ctx context.Context, id string) error
	WriteSceneDevices(ctx context.Context, sceneID string, devices map[string]SceneDevice) error
	UpsertPlaylist(ctx context.Context, id, name string, sceneIDs []string, mode string, defaultDurationMs int, tags []string) error
	PatchPlaylistItemDuration(ctx context.Context, playlistID string, index, durationMs int) error
}

// dryController wraps a Controller and turns the per-device mutating calls
// into accepted no-ops, so a dry run exercises every resolution and
// synthesis step without touching the controller. Scene and playlist
// writes are skipped at the call sites instead, because those steps read
// back state their own writes would have produced.
type dryController struct {
	Controller
}

func (dryController) ApplyEffect(context.Context, string, string, map[string]any) error { return nil }
func (dryController) ApplyBlend(context.Context, string, BlendLayers) error            { return nil }
func (dryController) UpsertColor(context.Context, string, string) error                { return nil }
func (dryController) SavePreset(context.Context, string, string) error                 { return nil }
