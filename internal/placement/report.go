// internal/placement/report.go
package placement

import (
	"context"
	"time"

	"github.com/OCAP2/playerstart/internal/host"
	"github.com/OCAP2/playerstart/pkg/core"
)

// Status is the outcome of a run as a whole.
type Status string

const (
	// StatusCompleted means both spawns were attempted.
	StatusCompleted Status = "completed"
	// StatusSkipped means enough markers already existed.
	StatusSkipped Status = "skipped"
	// StatusUnavailable means the editor or its world could not be used.
	StatusUnavailable Status = "unavailable"
)

// Attempt is the result of one spawn index.
type Attempt struct {
	Index    int
	Label    string
	Location core.Coordinate
	Entity   host.Entity
	Err      error
	LabelErr error
}

// Created reports whether the editor created the marker.
func (a Attempt) Created() bool {
	return a.Err == nil && a.Entity != ""
}

// Report summarizes a run.
type Report struct {
	Config    Config
	Status    Status
	Scene     host.Scene
	Class     string
	Existing  int
	Override  bool
	Attempts  []Attempt
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// Created returns the number of markers the run added.
func (r Report) Created() int {
	n := 0
	for _, a := range r.Attempts {
		if a.Created() {
			n++
		}
	}
	return n
}

// Failed returns the number of spawn attempts that produced no marker.
func (r Report) Failed() int {
	return len(r.Attempts) - r.Created()
}

// Recorder persists or exports a finished run.
type Recorder interface {
	Record(ctx context.Context, r Report) error
}
