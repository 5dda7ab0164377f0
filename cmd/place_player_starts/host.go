package main

import (
	"context"

	"github.com/OCAP2/playerstart/internal/config"
	"github.com/OCAP2/playerstart/internal/host"
	"github.com/OCAP2/playerstart/internal/host/memory"
	"github.com/OCAP2/playerstart/internal/host/remote"
)

// newHost builds the editor connection selected by host.type.
func newHost(ctx context.Context, hc config.HostConfig) host.Host {
	switch hc.Type {
	case "memory":
		Logger.Info("Using in-memory editor (dry run)", "existing", hc.Memory.Existing)
		return memory.New(hc.Memory)
	case "remote", "":
	default:
		Logger.Warn("Unknown host type, using remote", "type", hc.Type)
	}

	client := remote.New(hc.URL, hc.Timeout)
	// The scene lookup still runs when this fails so the run reports which
	// part of the editor was unavailable.
	if err := client.Healthcheck(ctx); err != nil {
		Logger.Warn("Editor Remote Control API not responding", "url", hc.URL, "error", err)
	} else {
		Logger.Info("Editor Remote Control API reachable", "url", hc.URL)
	}
	return client
}
