// Package ledfx is the HTTP client for the lighting controller's REST
// API. It is a thin, mechanical pass-through: every method is one blocking
// round trip, JSON in and out, with no retry or caching of its own. The
// show engine consumes it through the show.Controller interface.
package ledfx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lumenlabs/showmcp/internal/show"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx controller response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("controller returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("controller returned %d", e.Status)
}

// Client talks to one controller instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the controller at baseURL. A zero timeout uses
// the default.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do sends one request and decodes the JSON response into out (when out
// is non-nil). Non-2xx responses become an *APIError carrying the
// controller's message when one is present.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%s %s: %w", method, path, &APIError{Status: resp.StatusCode, Message: apiErr.Message})
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

type virtualPayload struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Active bool         `json:"active"`
	Effect *show.Effect `json:"effect,omitempty"`
}

// ListVirtuals returns every addressable virtual on the controller.
func (c *Client) ListVirtuals(ctx context.Context) ([]show.Virtual, error) {
	var resp struct {
		Virtuals []virtualPayload `json:"virtuals"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/virtuals", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]show.Virtual, len(resp.Virtuals))
	for i, v := range resp.Virtuals {
		out[i] = show.Virtual{ID: v.ID, Name: v.Name, Active: v.Active}
	}
	return out, nil
}

// GetVirtual reads one virtual's state, including its active effect if
// any.
func (c *Client) GetVirtual(ctx context.Context, id string) (*show.VirtualState, error) {
	var resp virtualPayload
	if err := c.do(ctx, http.MethodGet, "/api/virtuals/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &show.VirtualState{ID: resp.ID, Active: resp.Active, ActiveEffect: resp.Effect}, nil
}

// ApplyEffect sets the active effect on a virtual. The controller rejects
// configs it cannot render; that rejection drives the engine's fallback
// search.
func (c *Client) ApplyEffect(ctx context.Context, virtualID, effectType string, config map[string]any) error {
	body := map[string]any{"type": effectType, "config": config}
	return c.do(ctx, http.MethodPost, "/api/virtuals/"+url.PathEscape(virtualID)+"/effects", body, nil)
}

type blendLayerPayload struct {
	VirtualID string         `json:"virtual_id"`
	Type      string         `json:"type"`
	Config    map[string]any `json:"config"`
}

// ApplyBlend submits a three-layer composition onto the main virtual.
func (c *Client) ApplyBlend(ctx context.Context, mainID string, layers show.BlendLayers) error {
	body := map[string]blendLayerPayload{
		"background": {VirtualID: layers.Background.VirtualID, Type: layers.Background.Type, Config: layers.Background.Config},
		"foreground": {VirtualID: layers.Foreground.VirtualID, Type: layers.Foreground.Type, Config: layers.Foreground.Config},
		"mask":       {VirtualID: layers.Mask.VirtualID, Type: layers.Mask.Type, Config: layers.Mask.Config},
	}
	return c.do(ctx, http.MethodPost, "/api/virtuals/"+url.PathEscape(mainID)+"/blend", body, nil)
}

// EffectSchemas fetches the recognized parameter names per effect type.
func (c *Client) EffectSchemas(ctx context.Context) (map[string]show.PropertySet, error) {
	var resp struct {
		Effects map[string]struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"effects"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/schema/effects", nil, &resp); err != nil {
		return nil, err
	}
	out := make(map[string]show.PropertySet, len(resp.Effects))
	for effectType, schema := range resp.Effects {
		props := make(show.PropertySet, len(schema.Properties))
		for name := range schema.Properties {
			props[name] = true
		}
		out[effectType] = props
	}
	return out, nil
}

// UpsertColor creates or replaces a named user color or gradient.
func (c *Client) UpsertColor(ctx context.Context, id, value string) error {
	body := map[string]string{"id": id, "value": value}
	return c.do(ctx, http.MethodPost, "/api/colors", body, nil)
}

// SavePreset stores the virtual's current effect under a named preset.
func (c *Client) SavePreset(ctx context.Context, virtualID, name string) error {
	body := map[string]string{"name": name}
	return c.do(ctx, http.MethodPost, "/api/virtuals/"+url.PathEscape(virtualID)+"/presets", body, nil)
}

// ListScenes returns the id and name of every stored scene.
func (c *Client) ListScenes(ctx context.Context) ([]show.SceneRef, error) {
	var resp struct {
		Scenes []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"scenes"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/scenes", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]show.SceneRef, len(resp.Scenes))
	for i, sc := range resp.Scenes {
		out[i] = show.SceneRef{ID: sc.ID, Name: sc.Name}
	}
	return out, nil
}

// CreateScene creates a new named scene with tags.
func (c *Client) CreateScene(ctx context.Context, name string, tags []string) error {
	body := map[string]any{"name": name, "scene_tags": tags}
	return c.do(ctx, http.MethodPost, "/api/scenes", body, nil)
}

// DeleteScene removes a scene by id.
func (c *Client) DeleteScene(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/scenes/"+url.PathEscape(id), nil, nil)
}

// WriteSceneDevices writes the per-device activation payload of a scene.
func (c *Client) WriteSceneDevices(ctx context.Context, sceneID string, devices map[string]show.SceneDevice) error {
	body := map[string]any{"devices": devices}
	return c.do(ctx, http.MethodPut, "/api/scenes/"+url.PathEscape(sceneID)+"/devices", body, nil)
}

// UpsertPlaylist creates or replaces a playlist by id.
func (c *Client) UpsertPlaylist(ctx context.Context, id, name string, sceneIDs []string, mode string, defaultDurationMs int, tags []string) error {
	body := map[string]any{
		"name":                name,
		"scene_ids":           sceneIDs,
		"mode":                mode,
		"default_duration_ms": defaultDurationMs,
		"tags":                tags,
	}
	return c.do(ctx, http.MethodPut, "/api/playlists/"+url.PathEscape(id), body, nil)
}

// PatchPlaylistItemDuration overrides one playlist item's duration by
// index.
func (c *Client) PatchPlaylistItemDuration(ctx context.Context, playlistID string, index, durationMs int) error {
	body := map[string]any{"duration_ms": durationMs}
	path := fmt.Sprintf("/api/playlists/%s/items/%d", url.PathEscape(playlistID), index)
	return c.do(ctx, http.MethodPatch, path, body, nil)
}
