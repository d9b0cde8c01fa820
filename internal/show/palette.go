package show

import (
	"fmt"
	"math"
	"strings"
)

// Palette is the ordered color sequence and derived gradient for one
// (phase, mode) pair. Crazy mode reverses the phase's color order; the
// reversal is deliberate and kept literal rather than replaced by a
// separate high-energy palette design.
type Palette struct {
	ID       string
	Phase    string
	Mode     Mode
	Colors   []string
	Gradient string
}

// NewPalette derives the palette for a phase and mode. The palette id
// doubles as the controller-side gradient name other configs reference.
func NewPalette(prefix string, phase PhaseDefinition, mode Mode) Palette {
	colors := make([]string, len(phase.Colors))
	copy(colors, phase.Colors)
	if mode == ModeCrazy {
		for i, j := 0, len(colors)-1; i < j; i, j = i+1, j-1 {
			colors[i], colors[j] = colors[j], colors[i]
		}
	}
	return Palette{
		ID:       paletteID(prefix, phase.Key, mode),
		Phase:    phase.Key,
		Mode:     mode,
		Colors:   colors,
		Gradient: gradientString(colors),
	}
}

func paletteID(prefix, phaseKey string, mode Mode) string {
	return fmt.Sprintf("%s-%s-%s", strings.ToLower(strings.ReplaceAll(prefix, " ", "-")), phaseKey, mode)
}

// gradientString builds a CSS linear gradient with evenly spaced stops.
// A single color becomes a flat two-stop gradient.
func gradientString(colors []string) string {
	var b strings.Builder
	b.WriteString("linear-gradient(90deg, ")
	if len(colors) == 1 {
		fmt.Fprintf(&b, "%s 0%%, %s 100%%", colors[0], colors[0])
	} else {
		for i, c := range colors {
			if i > 0 {
				b.WriteString(", ")
			}
			pct := int(math.Round(float64(i) / float64(len(colors)-1) * 100))
			fmt.Fprintf(&b, "%s %d%%", c, pct)
		}
	}
	b.WriteString(")")
	return b.String()
}

// Low is the first palette color.
func (p Palette) Low() string { return p.Colors[0] }

// Mid is the color at the middle stop, floor(N/2).
func (p Palette) Mid() string { return p.Colors[len(p.Colors)/2] }

// High is the last palette color.
func (p Palette) High() string { return p.Colors[len(p.Colors)-1] }
