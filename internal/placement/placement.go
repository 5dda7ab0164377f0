// Package placement adds the two Player Start markers to the level open in the editor.
//
// Run is a single linear sequence: look up the scene, count existing markers,
// apply the threshold, then attempt both spawns in index order. Every failure
// becomes a log line; nothing is returned to the caller as an error.
package placement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OCAP2/playerstart/internal/host"
	"github.com/OCAP2/playerstart/pkg/core"
)

// MarkerCount is the number of markers a run adds, and the existing count at
// which a run is skipped unless AddIfAlreadyPresent is set.
const MarkerCount = 2

// Logger is the sink for the run's output log.
type Logger interface {
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Config is the static configuration of a run.
type Config struct {
	// Offsets are added to the base point, one per marker index.
	Offsets [MarkerCount]core.Coordinate `json:"offsets"`
	// BaseHeight is the Z of the shared base point (0, 0, BaseHeight).
	BaseHeight float64 `json:"baseHeight"`
	// AddIfAlreadyPresent always adds two markers regardless of the existing count.
	AddIfAlreadyPresent bool `json:"addIfAlreadyPresent"`
	// MarkerClass is the editor class spawned and counted.
	MarkerClass string `json:"markerClass"`
}

// DefaultConfig places the markers 200cm either side of the origin, 100cm up.
func DefaultConfig() Config {
	return Config{
		Offsets: [MarkerCount]core.Coordinate{
			{X: 0, Y: -200, Z: 0},
			{X: 0, Y: 200, Z: 0},
		},
		BaseHeight:          100,
		AddIfAlreadyPresent: false,
		MarkerClass:         core.PlayerStartClass,
	}
}

// Positions returns the spawn location of each marker index.
func Positions(cfg Config) [MarkerCount]core.Coordinate {
	base := core.Coordinate{X: 0, Y: 0, Z: cfg.BaseHeight}
	var out [MarkerCount]core.Coordinate
	for i, off := range cfg.Offsets {
		out[i] = base.Add(off)
	}
	return out
}

// Run performs one placement against h. It never returns an error; the
// returned Report describes what happened.
func Run(ctx context.Context, h host.Host, log Logger, cfg Config) (report Report) {
	if cfg.MarkerClass == "" {
		cfg.MarkerClass = core.PlayerStartClass
	}

	inst := newInstruments()
	report = Report{
		Config:    cfg,
		StartedAt: time.Now(),
		Override:  cfg.AddIfAlreadyPresent,
		Class:     cfg.MarkerClass,
	}
	defer func() {
		report.Duration = time.Since(report.StartedAt)
		inst.recordRun(ctx, report)
	}()

	scene, err := h.ActiveScene(ctx)
	if err == nil && scene == "" {
		err = host.ErrNoScene
	}
	if err != nil {
		report.Status = StatusUnavailable
		report.Err = err
		switch {
		case errors.Is(err, host.ErrNoScene):
			log.Error("No editor world. Open a level first.", "error", err)
		case errors.Is(err, host.ErrNoEditorSubsystem):
			log.Error("Editor subsystem not found. Run this from the editor.", "error", err)
		default:
			log.Error("Could not reach the editor world.", "error", err)
		}
		return report
	}
	report.Scene = scene

	count, err := h.CountEntities(ctx, scene, cfg.MarkerClass)
	if err != nil {
		report.Status = StatusUnavailable
		report.Err = err
		log.Error("Failed to count existing Player Starts.", "scene", string(scene), "error", err)
		return report
	}
	report.Existing = count

	if count >= MarkerCount && !cfg.AddIfAlreadyPresent {
		report.Status = StatusSkipped
		log.Info(fmt.Sprintf(
			"Level already has %d Player Start(s). Skipping. Set addIfAlreadyPresent to add more.", count),
			"count", count)
		return report
	}

	for i, location := range Positions(cfg) {
		report.Attempts = append(report.Attempts, spawnOne(ctx, h, log, inst, scene, cfg.MarkerClass, i, location))
	}

	report.Status = StatusCompleted
	log.Info("Done. Save the level to keep the new Player Starts.", "created", report.Created())
	return report
}

func spawnOne(
	ctx context.Context,
	h host.Host,
	log Logger,
	inst *instruments,
	scene host.Scene,
	class string,
	index int,
	location core.Coordinate,
) Attempt {
	attempt := Attempt{
		Index:    index,
		Label:    core.MarkerLabel(index),
		Location: location,
	}

	res := h.Spawn(ctx, scene, class, location, core.Rotation{})
	inst.recordAttempt(ctx, res.OK())
	if !res.OK() {
		attempt.Err = res.Err
		if attempt.Err == nil {
			attempt.Err = host.ErrSpawnFailed
		}
		log.Error(fmt.Sprintf("Failed to spawn %s", attempt.Label), "index", index, "error", attempt.Err)
		return attempt
	}
	attempt.Entity = res.Entity

	if err := h.SetLabel(ctx, res.Entity, attempt.Label); err != nil {
		attempt.LabelErr = err
		log.Error(fmt.Sprintf("Failed to label %s", attempt.Label), "index", index, "entity", string(res.Entity), "error", err)
	}

	log.Info(fmt.Sprintf("Spawned: %s at %s", attempt.Label, location), "index", index, "entity", string(res.Entity))
	return attempt
}
