// internal/host/memory/memory.go
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/OCAP2/playerstart/internal/config"
	"github.com/OCAP2/playerstart/internal/host"
	"github.com/OCAP2/playerstart/pkg/core"
)

// SpawnRequest records one call to Spawn.
type SpawnRequest struct {
	Scene    host.Scene
	Class    string
	Location core.Coordinate
	Rotation core.Rotation
}

// Host is an in-process editor with a single scene.
type Host struct {
	cfg config.MemoryHostConfig

	existing map[string]int     // keyed by class
	labels   map[host.Entity]string
	spawned  map[host.Entity]string // entity -> class
	failAt   map[int]bool          // spawn call numbers that fail
	requests []SpawnRequest

	idCounter uint
	mu        sync.RWMutex
}

// New creates a memory host seeded from cfg.
func New(cfg config.MemoryHostConfig) *Host {
	h := &Host{
		cfg:      cfg,
		existing: make(map[string]int),
		labels:   make(map[host.Entity]string),
		spawned:  make(map[host.Entity]string),
		failAt:   make(map[int]bool),
	}
	if cfg.Existing > 0 {
		h.existing[core.PlayerStartClass] = cfg.Existing
	}
	for _, n := range cfg.FailSpawns {
		h.failAt[n] = true
	}
	return h
}

// SetExisting sets the number of pre-existing actors of class.
func (h *Host) SetExisting(class string, n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.existing[class] = n
}

// FailSpawn makes the n-th Spawn call (0-based) return a failed result.
func (h *Host) FailSpawn(n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failAt[n] = true
}

// ActiveScene returns the scene name, or the configured environment failure.
func (h *Host) ActiveScene(ctx context.Context) (host.Scene, error) {
	if h.cfg.NoSubsystem {
		return "", host.ErrNoEditorSubsystem
	}
	if h.cfg.NoScene {
		return "", host.ErrNoScene
	}
	return host.Scene(h.sceneName()), nil
}

// CountEntities returns pre-existing plus spawned actors of class.
func (h *Host) CountEntities(ctx context.Context, scene host.Scene, class string) (int, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if scene != host.Scene(h.sceneName()) {
		return 0, fmt.Errorf("unknown scene: %s", scene)
	}

	n := h.existing[class]
	for _, c := range h.spawned {
		if c == class {
			n++
		}
	}
	return n, nil
}

// Spawn records the request and creates an entity unless a failure was injected.
func (h *Host) Spawn(ctx context.Context, scene host.Scene, class string, location core.Coordinate, rotation core.Rotation) host.SpawnResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	call := len(h.requests)
	h.requests = append(h.requests, SpawnRequest{
		Scene:    scene,
		Class:    class,
		Location: location,
		Rotation: rotation,
	})

	if h.failAt[call] {
		return host.Failed(nil)
	}

	h.idCounter++
	e := host.Entity(fmt.Sprintf("%s:PersistentLevel.Actor_%d", scene, h.idCounter))
	h.spawned[e] = class
	return host.Spawned(e)
}

// SetLabel labels an entity previously returned by Spawn.
func (h *Host) SetLabel(ctx context.Context, entity host.Entity, label string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.spawned[entity]; !ok {
		return fmt.Errorf("unknown entity: %s", entity)
	}
	h.labels[entity] = label
	return nil
}

// Requests returns a copy of every spawn request in call order.
func (h *Host) Requests() []SpawnRequest {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]SpawnRequest, len(h.requests))
	copy(out, h.requests)
	return out
}

// Labels returns the labels assigned so far.
func (h *Host) Labels() map[host.Entity]string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[host.Entity]string, len(h.labels))
	for k, v := range h.labels {
		out[k] = v
	}
	return out
}

// LabelOf returns the label of entity, if any.
func (h *Host) LabelOf(entity host.Entity) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	l, ok := h.labels[entity]
	return l, ok
}

func (h *Host) sceneName() string {
	if h.cfg.SceneName == "" {
		return "/Memory/Untitled.Untitled"
	}
	return h.cfg.SceneName
}
