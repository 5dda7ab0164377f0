package main

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/OCAP2/playerstart/internal/config"
	"github.com/OCAP2/playerstart/internal/influx"
	"github.com/OCAP2/playerstart/internal/journal"
	"github.com/OCAP2/playerstart/internal/placement"
	"github.com/rs/zerolog"
)

// namedRecorder is a run recorder with the name used in its log lines.
type namedRecorder struct {
	Name string
	placement.Recorder
}

// openRecorders connects every enabled run recorder, journal first. A
// recorder that fails to open is logged and left out.
func openRecorders(ctx context.Context, log zerolog.Logger, logsDir string) ([]namedRecorder, func()) {
	var recorders []namedRecorder
	var closers []func() error

	if jc := config.GetJournalConfig(); jc.Enabled {
		j, err := journal.Open(jc, log.With().Str("component", "journal").Logger())
		if err != nil {
			Logger.Warn("Journal disabled", "error", err)
		} else {
			Logger.Info("Journal opened", "driver", j.Driver)
			recorders = append(recorders, namedRecorder{Name: "journal", Recorder: j})
			closers = append(closers, j.Close)
		}
	}

	im := influx.NewManager(
		config.GetInfluxConfig(),
		log.With().Str("component", "influx").Logger(),
		filepath.Join(logsDir, "influx_backup.log.gz"),
	)
	switch err := im.Connect(ctx); {
	case errors.Is(err, influx.ErrDisabled):
	case err != nil:
		Logger.Warn("InfluxDB disabled", "error", err)
	default:
		recorders = append(recorders, namedRecorder{Name: "influx", Recorder: im})
		closers = append(closers, im.Close)
	}

	return recorders, func() {
		for _, c := range closers {
			if err := c(); err != nil {
				Logger.Warn("Failed to close recorder", "error", err)
			}
		}
	}
}
