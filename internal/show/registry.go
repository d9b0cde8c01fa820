package show

import (
	"context"
	"fmt"
	"strings"
)

// registerScene upserts a scene by name and snapshots the live effect
// state of every referenced virtual as the scene payload.
//
// Upsert-by-name: an existing scene with the exact name is deleted first,
// then the scene is recreated and re-fetched to learn its assigned id.
// The payload records each virtual's currently active effect, not the
// spec literal, so the scene replays exactly what the composer just
// applied. Re-running a show therefore converges: one scene per name,
// payload from the latest run.
func (r *run) registerScene(ctx context.Context, name string, tags []string, targetIDs []string) (string, error) {
	if r.opts.DryRun {
		return "dry-run:" + slug(name), nil
	}

	existing, err := r.ctrl.ListScenes(ctx)
	if err != nil {
		return "", fmt.Errorf("listing scenes: %w", err)
	}
	for _, sc := range existing {
		if sc.Name == name {
			if err := r.ctrl.DeleteScene(ctx, sc.ID); err != nil {
				return "", fmt.Errorf("deleting stale scene %q: %w", name, err)
			}
		}
	}

	if err := r.ctrl.CreateScene(ctx, name, tags); err != nil {
		return "", fmt.Errorf("creating scene %q: %w", name, err)
	}

	created, err := r.ctrl.ListScenes(ctx)
	if err != nil {
		return "", fmt.Errorf("re-listing scenes: %w", err)
	}
	var sceneID string
	for _, sc := range created {
		if sc.Name == name {
			sceneID = sc.ID
			break
		}
	}
	if sceneID == "" {
		return "", &SceneIntegrityError{Scene: name, Detail: "not found after creation"}
	}

	devices := make(map[string]SceneDevice, len(targetIDs))
	for _, id := range targetIDs {
		state, err := r.ctrl.GetVirtual(ctx, id)
		if err != nil {
			return "", fmt.Errorf("reading %s for scene %q: %w", id, name, err)
		}
		if state.ActiveEffect == nil {
			return "", &SceneIntegrityError{Scene: name, Detail: "virtual " + id + " has no active effect to snapshot"}
		}
		devices[id] = SceneDevice{
			Type:   state.ActiveEffect.Type,
			Config: state.ActiveEffect.Config,
			Action: "activate",
		}
	}

	if err := r.ctrl.WriteSceneDevices(ctx, sceneID, devices); err != nil {
		return "", fmt.Errorf("writing scene %q devices: %w", name, err)
	}
	return sceneID, nil
}

// slug lowercases a name and replaces runs of non-alphanumerics with
// single dashes, for use in controller-side ids.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
