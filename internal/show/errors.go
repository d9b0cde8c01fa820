package show

import (
	"fmt"
	"strings"
)

// The composer is fail-fast: every error type below aborts the run at the
// point it is raised. Nothing is retried except the fallback candidate
// search in fallback.go, which is a deliberate substitution search rather
// than a transient-failure retry.

// ResolutionError reports a target query that matched no device or matched
// several devices equally well.
type ResolutionError struct {
	Query      string
	Candidates []string
	Ambiguous  bool
}

func (e *ResolutionError) Error() string {
	if e.Ambiguous {
		return fmt.Sprintf("target %q is ambiguous between: %s", e.Query, strings.Join(e.Candidates, ", "))
	}
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("target %q matched no known device", e.Query)
	}
	return fmt.Sprintf("target %q matched no known device; known devices: %s", e.Query, strings.Join(e.Candidates, ", "))
}

// SchemaError reports a missing or malformed effect schema response from
// the controller.
type SchemaError struct {
	Detail string
}

func (e *SchemaError) Error() string {
	return "effect schemas: " + e.Detail
}

// EffectApplicationError reports an exhausted fallback chain: every
// candidate effect type was attempted against the device and rejected.
type EffectApplicationError struct {
	VirtualID string
	Attempted []string
	Last      error
}

func (e *EffectApplicationError) Error() string {
	return fmt.Sprintf("no effect accepted by %s after trying %s: %v",
		e.VirtualID, strings.Join(e.Attempted, " -> "), e.Last)
}

func (e *EffectApplicationError) Unwrap() error { return e.Last }

// SceneIntegrityError reports a registry-consistency failure: a device had
// no active effect at snapshot time, or a just-created scene could not be
// re-found by name.
type SceneIntegrityError struct {
	Scene  string
	Detail string
}

func (e *SceneIntegrityError) Error() string {
	return fmt.Sprintf("scene %q: %s", e.Scene, e.Detail)
}

// ConfigurationError reports caller misuse of the compose entry point
// (unknown phase keys, motion profiles, modes, empty target lists).
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Detail
}
