package show

import (
	"sort"
	"strings"
)

// Companion role suffixes used to locate blend-layer virtuals by id.
// There is no explicit link metadata on the controller; the suffix
// convention is the only discovery signal.
const (
	suffixBackground = "-background"
	suffixForeground = "-foreground"
	suffixMask       = "-mask"
)

// maxAmbiguityList caps how many tied candidates an ambiguity error names.
const maxAmbiguityList = 5

// VirtualSet is a main virtual together with its blend companions. Ready
// is true only when all three companions exist.
type VirtualSet struct {
	Main       string
	Background string
	Foreground string
	Mask       string
	Ready      bool
	Missing    []string
}

// IsCompanion reports whether an id carries a companion-role suffix.
func IsCompanion(id string) bool {
	return strings.HasSuffix(id, suffixBackground) ||
		strings.HasSuffix(id, suffixForeground) ||
		strings.HasSuffix(id, suffixMask)
}

// scoreVirtual ranks one device against a query. Zero means excluded.
func scoreVirtual(query string, v Virtual) int {
	q := strings.ToLower(strings.TrimSpace(query))
	id := strings.ToLower(v.ID)
	name := strings.ToLower(v.Name)

	var score int
	switch {
	case q == id || q == name:
		score = 100
	case strings.HasPrefix(id, q) || strings.HasPrefix(name, q):
		score = 80
	case strings.Contains(id, q) || strings.Contains(name, q):
		score = 60
	default:
		return 0
	}
	if !IsCompanion(v.ID) {
		score += 10
	}
	if v.Active {
		score += 2
	}
	return score
}

// ResolveTarget fuzzy-matches a query to exactly one virtual. Scoring:
// exact match 100, prefix 80, substring 60; +10 for a main (non-companion)
// id, +2 for an active device. No match or a tie at the top is a
// ResolutionError.
func ResolveTarget(query string, devices []Virtual) (Virtual, error) {
	type candidate struct {
		v     Virtual
		score int
	}
	var candidates []candidate
	for _, v := range devices {
		if s := scoreVirtual(query, v); s > 0 {
			candidates = append(candidates, candidate{v: v, score: s})
		}
	}
	if len(candidates) == 0 {
		known := make([]string, 0, len(devices))
		for _, v := range devices {
			known = append(known, v.ID)
		}
		sort.Strings(known)
		return Virtual{}, &ResolutionError{Query: query, Candidates: known}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > 1 && candidates[0].score == candidates[1].score {
		var tied []string
		for _, c := range candidates {
			if c.score != candidates[0].score {
				break
			}
			tied = append(tied, c.v.ID)
			if len(tied) == maxAmbiguityList {
				break
			}
		}
		return Virtual{}, &ResolutionError{Query: query, Candidates: tied, Ambiguous: true}
	}
	return candidates[0].v, nil
}

// ResolveVirtualSet probes the device list for the main virtual's blend
// companions by id suffix. A missing companion marks the set not ready and
// is reported in Missing; whether that is fatal is the caller's strict
// mode decision.
func ResolveVirtualSet(mainID string, devices []Virtual) VirtualSet {
	known := make(map[string]bool, len(devices))
	for _, v := range devices {
		known[v.ID] = true
	}

	set := VirtualSet{
		Main:       mainID,
		Background: mainID + suffixBackground,
		Foreground: mainID + suffixForeground,
		Mask:       mainID + suffixMask,
	}
	for _, id := range []string{set.Background, set.Foreground, set.Mask} {
		if !known[id] {
			set.Missing = append(set.Missing, id)
		}
	}
	set.Ready = len(set.Missing) == 0
	return set
}
