package show

import (
	"context"
	"reflect"
	"testing"
)

func TestOrderScenes_ByExplicitOrder(t *testing.T) {
	scenes := []CreatedScene{
		{ID: "c", Name: "C", Order: 30},
		{ID: "a", Name: "A", Order: 10},
		{ID: "b", Name: "B", Order: 20},
	}
	ordered := orderScenes(scenes)

	var ids []string
	for _, sc := range ordered {
		ids = append(ids, sc.ID)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ordered ids = %v, want %v", ids, want)
	}
}

func TestOrderScenes_TieBreaks(t *testing.T) {
	tests := []struct {
		name   string
		scenes []CreatedScene
		want   []string
	}{
		{
			name: "role weight breaks order ties",
			scenes: []CreatedScene{
				{ID: "impact", Order: 10, Role: "impact"},
				{ID: "backdrop", Order: 10, Role: "backdrop"},
				{ID: "motion", Order: 10, Role: "motion"},
			},
			want: []string{"backdrop", "motion", "impact"},
		},
		{
			name: "unknown roles sort last",
			scenes: []CreatedScene{
				{ID: "mystery", Order: 10, Role: "lasers"},
				{ID: "impact", Order: 10, Role: "impact"},
			},
			want: []string{"impact", "mystery"},
		},
		{
			name: "direct before blender",
			scenes: []CreatedScene{
				{ID: "blend", Order: 10, Role: "wash", Kind: KindBlender},
				{ID: "direct", Order: 10, Role: "wash", Kind: KindDirect},
			},
			want: []string{"direct", "blend"},
		},
		{
			name: "name is the final tie break",
			scenes: []CreatedScene{
				{ID: "z", Name: "Zeta", Order: 10, Role: "wash", Kind: KindDirect},
				{ID: "a", Name: "Alpha", Order: 10, Role: "wash", Kind: KindDirect},
			},
			want: []string{"a", "z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ordered := orderScenes(tt.scenes)
			var ids []string
			for _, sc := range ordered {
				ids = append(ids, sc.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("ordered ids = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestOrderScenes_Deterministic(t *testing.T) {
	scenes := []CreatedScene{
		{ID: "c", Name: "C", Order: 30, Role: "wash"},
		{ID: "a", Name: "A", Order: 10, Role: "impact"},
		{ID: "b", Name: "B", Order: 10, Role: "backdrop"},
	}
	first := orderScenes(scenes)
	for range 10 {
		if got := orderScenes(scenes); !reflect.DeepEqual(got, first) {
			t.Fatalf("ordering is not deterministic: %v vs %v", got, first)
		}
	}
}

func TestBuildPlaylists(t *testing.T) {
	f := newFakeController(nil, nil)
	r := &run{
		ctrl: f,
		opts: Options{NamePrefix: "Show"},
		scenes: []CreatedScene{
			{ID: "s3", Name: "Three", Phase: "phase-2", Order: 10, Role: "wash", DurationMs: defaultDurationMs},
			{ID: "s2", Name: "Two", Phase: "phase-1", Order: 20, Role: "impact", Strobe: true, DurationMs: strobeDurationMs},
			{ID: "s1", Name: "One", Phase: "phase-1", Order: 10, Role: "backdrop", DurationMs: defaultDurationMs},
		},
	}

	count, err := r.buildPlaylists(context.Background())
	if err != nil {
		t.Fatalf("buildPlaylists: %v", err)
	}
	// Two phase playlists plus the full show.
	if count != 3 {
		t.Errorf("playlists created = %d, want 3", count)
	}

	p1, ok := f.playlists["show-phase-1"]
	if !ok {
		t.Fatal("playlist show-phase-1 not created")
	}
	if want := []string{"s1", "s2"}; !reflect.DeepEqual(p1.SceneIDs, want) {
		t.Errorf("phase-1 scene ids = %v, want %v", p1.SceneIDs, want)
	}
	if p1.DefaultMs != defaultDurationMs {
		t.Errorf("phase-1 default duration = %d, want %d", p1.DefaultMs, defaultDurationMs)
	}
	// The strobe scene at index 1 gets its shorter duration patched in.
	if got, want := p1.Durations, map[int]int{1: strobeDurationMs}; !reflect.DeepEqual(got, want) {
		t.Errorf("phase-1 patched durations = %v, want %v", got, want)
	}

	full, ok := f.playlists["show-full-show"]
	if !ok {
		t.Fatal("playlist show-full-show not created")
	}
	if want := []string{"s1", "s2", "s3"}; !reflect.DeepEqual(full.SceneIDs, want) {
		t.Errorf("full show scene ids = %v, want %v", full.SceneIDs, want)
	}
	if got, want := full.Durations, map[int]int{1: strobeDurationMs}; !reflect.DeepEqual(got, want) {
		t.Errorf("full show patched durations = %v, want %v", got, want)
	}
}

func TestClassifyDuration(t *testing.T) {
	tests := []struct {
		name     string
		explicit int
		strobe   bool
		rapid    bool
		want     int
	}{
		{"default", 0, false, false, defaultDurationMs},
		{"strobe is short", 0, true, false, strobeDurationMs},
		{"rapid motion is medium", 0, false, true, rapidDurationMs},
		{"strobe wins over rapid", 0, true, true, strobeDurationMs},
		{"explicit duration wins", 45000, true, true, 45000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyDuration(tt.explicit, tt.strobe, tt.rapid); got != tt.want {
				t.Errorf("classifyDuration(%d, %v, %v) = %d, want %d", tt.explicit, tt.strobe, tt.rapid, got, tt.want)
			}
		})
	}
}
