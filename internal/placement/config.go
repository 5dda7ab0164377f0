// internal/placement/config.go
package placement

import (
	"fmt"

	"github.com/OCAP2/playerstart/internal/config"
	"github.com/OCAP2/playerstart/pkg/core"
)

// FromConfig converts the loaded placement section into a Config.
func FromConfig(pc config.PlacementConfig) (Config, error) {
	if len(pc.Offsets) != MarkerCount {
		return Config{}, fmt.Errorf("placement.offsets needs %d entries, got %d", MarkerCount, len(pc.Offsets))
	}

	cfg := Config{
		BaseHeight:          pc.BaseHeight,
		AddIfAlreadyPresent: pc.AddIfAlreadyPresent,
		MarkerClass:         pc.MarkerClass,
	}
	for i, v := range pc.Offsets {
		off, err := core.CoordinateFromSlice(v)
		if err != nil {
			return Config{}, fmt.Errorf("placement.offsets[%d]: %w", i, err)
		}
		cfg.Offsets[i] = off
	}
	if cfg.MarkerClass == "" {
		cfg.MarkerClass = core.PlayerStartClass
	}
	return cfg, nil
}
