// internal/host/host_test.go
package host

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpawnResult_OK(t *testing.T) {
	tests := []struct {
		name   string
		result SpawnResult
		want   bool
	}{
		{name: "spawned", result: Spawned("/Game/Map.Map:PersistentLevel.PlayerStart_3"), want: true},
		{name: "failed", result: Failed(nil), want: false},
		{name: "empty entity without error", result: SpawnResult{}, want: false},
		{name: "entity with error", result: SpawnResult{Entity: "x", Err: errors.New("boom")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.OK())
		})
	}
}

func TestFailed_DefaultsToErrSpawnFailed(t *testing.T) {
	r := Failed(nil)
	assert.ErrorIs(t, r.Err, ErrSpawnFailed)

	custom := errors.New("timeout")
	r = Failed(custom)
	assert.ErrorIs(t, r.Err, custom)
}
