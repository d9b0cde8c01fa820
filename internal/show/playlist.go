package show

import (
	"context"
	"fmt"
	"sort"
)

// roleWeights fixes the tie-break weight per scene role. Unknown roles
// sort last.
var roleWeights = map[string]int{
	"backdrop": 0,
	"wash":     10,
	"motion":   20,
	"accent":   30,
	"impact":   40,
}

const unknownRoleWeight = 100

func roleWeight(role string) int {
	if w, ok := roleWeights[role]; ok {
		return w
	}
	return unknownRoleWeight
}

// sceneLess is the total order within a phase group: ascending explicit
// order, then role weight, then direct before blender, then scene name.
// The order is a pure function of the scene records, so identical runs
// always produce identical playlists.
func sceneLess(a, b CreatedScene) bool {
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	if wa, wb := roleWeight(a.Role), roleWeight(b.Role); wa != wb {
		return wa < wb
	}
	if a.Kind != b.Kind {
		return a.Kind == KindDirect
	}
	return a.Name < b.Name
}

// orderScenes returns a sorted copy of the scene records.
func orderScenes(scenes []CreatedScene) []CreatedScene {
	out := make([]CreatedScene, len(scenes))
	copy(out, scenes)
	sort.SliceStable(out, func(i, j int) bool { return sceneLess(out[i], out[j]) })
	return out
}

// buildPlaylists groups the accumulated scenes by phase in the fixed phase
// order, upserts one playlist per phase plus one full-show playlist, and
// patches the duration of every scene whose classified duration differs
// from the playlist default.
func (r *run) buildPlaylists(ctx context.Context) (int, error) {
	byPhase := make(map[string][]CreatedScene)
	for _, sc := range r.scenes {
		byPhase[sc.Phase] = append(byPhase[sc.Phase], sc)
	}

	prefix := slug(r.opts.NamePrefix)
	var count int
	var fullShow []CreatedScene
	for _, phaseKey := range PhaseOrder() {
		group, ok := byPhase[phaseKey]
		if !ok {
			continue
		}
		phase, err := Phase(phaseKey)
		if err != nil {
			return count, err
		}
		ordered := orderScenes(group)
		fullShow = append(fullShow, ordered...)

		id := fmt.Sprintf("%s-%s", prefix, phaseKey)
		name := fmt.Sprintf("%s %s", r.opts.NamePrefix, phase.Label)
		if err := r.upsertPlaylist(ctx, id, name, ordered, phase.Tags); err != nil {
			return count, err
		}
		count++
	}

	if len(fullShow) > 0 {
		id := prefix + "-full-show"
		name := r.opts.NamePrefix + " Full Show"
		if err := r.upsertPlaylist(ctx, id, name, fullShow, []string{"full-show"}); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (r *run) upsertPlaylist(ctx context.Context, id, name string, ordered []CreatedScene, tags []string) error {
	if r.opts.DryRun {
		return nil
	}
	sceneIDs := make([]string, len(ordered))
	for i, sc := range ordered {
		sceneIDs[i] = sc.ID
	}
	if err := r.ctrl.UpsertPlaylist(ctx, id, name, sceneIDs, "sequence", defaultDurationMs, tags); err != nil {
		return fmt.Errorf("upserting playlist %q: %w", name, err)
	}
	for i, sc := range ordered {
		if sc.DurationMs == defaultDurationMs {
			continue
		}
		if err := r.ctrl.PatchPlaylistItemDuration(ctx, id, i, sc.DurationMs); err != nil {
			return fmt.Errorf("patching playlist %q item %d: %w", name, i, err)
		}
	}
	return nil
}
