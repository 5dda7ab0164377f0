// internal/host/host.go
package host

import (
	"context"
	"errors"

	"github.com/OCAP2/playerstart/pkg/core"
)

var (
	// ErrNoEditorSubsystem is returned when the editor scripting subsystem cannot be reached.
	ErrNoEditorSubsystem = errors.New("editor subsystem not found")

	// ErrNoScene is returned when the editor has no level open.
	ErrNoScene = errors.New("no editor world")

	// ErrSpawnFailed is returned when the editor did not create the requested actor.
	ErrSpawnFailed = errors.New("spawn failed")
)

// Scene is an opaque handle to the level currently open in the editor.
type Scene string

// Entity is an opaque handle to an actor owned by the editor.
type Entity string

// SpawnResult is the outcome of a single spawn request.
type SpawnResult struct {
	Entity Entity
	Err    error
}

// OK reports whether the spawn produced an entity.
func (r SpawnResult) OK() bool {
	return r.Err == nil && r.Entity != ""
}

// Spawned returns a successful result.
func Spawned(e Entity) SpawnResult {
	return SpawnResult{Entity: e}
}

// Failed returns a failed result wrapping ErrSpawnFailed when err is nil.
func Failed(err error) SpawnResult {
	if err == nil {
		err = ErrSpawnFailed
	}
	return SpawnResult{Err: err}
}

// Host is the set of editor capabilities placement needs.
type Host interface {
	// ActiveScene returns the level open for editing.
	ActiveScene(ctx context.Context) (Scene, error)

	// CountEntities returns how many actors of class exist in scene.
	CountEntities(ctx context.Context, scene Scene, class string) (int, error)

	// Spawn asks the editor to create an actor of class at location.
	Spawn(ctx context.Context, scene Scene, class string, location core.Coordinate, rotation core.Rotation) SpawnResult

	// SetLabel sets the actor label shown in the editor outliner.
	SetLabel(ctx context.Context, entity Entity, label string) error
}
