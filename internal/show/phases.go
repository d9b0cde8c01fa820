package show

import "fmt"

// Mode selects the energy level of a scene: normal uses the phase palette
// as designed, crazy reverses it and bumps the base speed.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeCrazy  Mode = "crazy"
)

// ValidateMode returns an error if the mode is not recognized.
func ValidateMode(m Mode) error {
	switch m {
	case ModeNormal, ModeCrazy:
		return nil
	}
	return fmt.Errorf("invalid mode %q: must be %q or %q", m, ModeNormal, ModeCrazy)
}

// PhaseDefinition is the static description of one show stage. The tables
// below are loaded once and never mutated at runtime.
type PhaseDefinition struct {
	Key        string
	Label      string
	Tags       []string
	Background string
	Colors     []string
	Speed      float64
	Brightness float64
}

// MotionProfile bundles the multipliers and offsets that turn a phase's
// base values into per-scene effect parameters.
type MotionProfile struct {
	Name            string
	SpeedMultiplier float64
	BrightnessDelta float64
	Sensitivity     float64
	FrequencyRange  string
	Mirror          bool
}

// phaseOrder fixes the playback order of phases for playlist assembly.
var phaseOrder = []string{"phase-1", "phase-2", "phase-3", "phase-4"}

// phases is the built-in show's stage table.
var phases = map[string]PhaseDefinition{
	"phase-1": {
		Key:        "phase-1",
		Label:      "Emerald Rise",
		Tags:       []string{"phase-1", "opening"},
		Background: "#001A00",
		Colors:     []string{"#228B22", "#00AA00", "#FFFF00", "#0096C8"},
		Speed:      2,
		Brightness: 0.6,
	},
	"phase-2": {
		Key:        "phase-2",
		Label:      "Amber Drift",
		Tags:       []string{"phase-2", "build"},
		Background: "#1A0D00",
		Colors:     []string{"#FF8C00", "#FFD700", "#FF4500"},
		Speed:      3,
		Brightness: 0.7,
	},
	"phase-3": {
		Key:        "phase-3",
		Label:      "Violet Surge",
		Tags:       []string{"phase-3", "peak"},
		Background: "#0D001A",
		Colors:     []string{"#8A2BE2", "#FF00FF", "#4B0082", "#00FFFF"},
		Speed:      4,
		Brightness: 0.85,
	},
	"phase-4": {
		Key:        "phase-4",
		Label:      "Crimson Finale",
		Tags:       []string{"phase-4", "finale"},
		Background: "#1A0000",
		Colors:     []string{"#FF0000", "#FF6347", "#FFFFFF"},
		Speed:      5,
		Brightness: 1,
	},
}

// motionProfiles maps profile names to their parameter bundles. The
// frequency ranges use the controller's audio band names.
var motionProfiles = map[string]MotionProfile{
	"drift": {
		Name:            "drift",
		SpeedMultiplier: 0.5,
		BrightnessDelta: -0.15,
		Sensitivity:     0.3,
		FrequencyRange:  "Lows (beat+bass)",
	},
	"steady": {
		Name:            "steady",
		SpeedMultiplier: 1,
		BrightnessDelta: 0,
		Sensitivity:     0.5,
		FrequencyRange:  "Mids",
	},
	"driving": {
		Name:            "driving",
		SpeedMultiplier: 1.6,
		BrightnessDelta: 0.1,
		Sensitivity:     0.7,
		FrequencyRange:  "Bass",
	},
	"frantic": {
		Name:            "frantic",
		SpeedMultiplier: 2.5,
		BrightnessDelta: 0.2,
		Sensitivity:     0.95,
		FrequencyRange:  "Beat",
		Mirror:          true,
	},
}

// maskProfile is the aggressive default for blend mask layers when a
// BlenderSceneSpec does not name one.
const maskProfile = "frantic"

// Phase returns the phase definition for a key.
func Phase(key string) (PhaseDefinition, error) {
	p, ok := phases[key]
	if !ok {
		return PhaseDefinition{}, &ConfigurationError{Detail: fmt.Sprintf("unknown phase %q", key)}
	}
	return p, nil
}

// Profile returns the motion profile for a name.
func Profile(name string) (MotionProfile, error) {
	p, ok := motionProfiles[name]
	if !ok {
		return MotionProfile{}, &ConfigurationError{Detail: fmt.Sprintf("unknown motion profile %q", name)}
	}
	return p, nil
}

// PhaseOrder returns the fixed phase playback order.
func PhaseOrder() []string {
	out := make([]string, len(phaseOrder))
	copy(out, phaseOrder)
	return out
}

// baseSpeed is the phase base speed, incremented by one in crazy mode.
func baseSpeed(phase PhaseDefinition, mode Mode) float64 {
	if mode == ModeCrazy {
		return phase.Speed + 1
	}
	return phase.Speed
}
