// internal/host/memory/memory_test.go
package memory

import (
	"context"
	"testing"

	"github.com/OCAP2/playerstart/internal/config"
	"github.com/OCAP2/playerstart/internal/host"
	"github.com/OCAP2/playerstart/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Verify Host implements host.Host interface
var _ host.Host = (*Host)(nil)

func TestNew(t *testing.T) {
	h := New(config.MemoryHostConfig{Existing: 3, FailSpawns: []int{1}})

	if h == nil {
		t.Fatal("New returned nil")
	}
	assert.Equal(t, 3, h.existing[core.PlayerStartClass])
	assert.True(t, h.failAt[1])
	assert.NotNil(t, h.labels)
	assert.NotNil(t, h.spawned)
}

func TestActiveScene(t *testing.T) {
	ctx := context.Background()

	scene, err := New(config.MemoryHostConfig{}).ActiveScene(ctx)
	require.NoError(t, err)
	assert.Equal(t, host.Scene("/Memory/Untitled.Untitled"), scene)

	scene, err = New(config.MemoryHostConfig{SceneName: "/Game/Arena.Arena"}).ActiveScene(ctx)
	require.NoError(t, err)
	assert.Equal(t, host.Scene("/Game/Arena.Arena"), scene)

	_, err = New(config.MemoryHostConfig{NoSubsystem: true}).ActiveScene(ctx)
	assert.ErrorIs(t, err, host.ErrNoEditorSubsystem)

	_, err = New(config.MemoryHostConfig{NoScene: true}).ActiveScene(ctx)
	assert.ErrorIs(t, err, host.ErrNoScene)
}

func TestSpawnAndCount(t *testing.T) {
	ctx := context.Background()
	h := New(config.MemoryHostConfig{Existing: 1})
	scene, err := h.ActiveScene(ctx)
	require.NoError(t, err)

	n, err := h.CountEntities(ctx, scene, core.PlayerStartClass)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	res := h.Spawn(ctx, scene, core.PlayerStartClass, core.Coordinate{Y: 5}, core.Rotation{})
	require.True(t, res.OK())

	n, err = h.CountEntities(ctx, scene, core.PlayerStartClass)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = h.CountEntities(ctx, scene, "/Script/Engine.PointLight")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	reqs := h.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, core.Coordinate{Y: 5}, reqs[0].Location)
	assert.Equal(t, scene, reqs[0].Scene)
}

func TestCountEntities_UnknownScene(t *testing.T) {
	h := New(config.MemoryHostConfig{})
	_, err := h.CountEntities(context.Background(), "/Game/Other.Other", core.PlayerStartClass)
	assert.Error(t, err)
}

func TestFailSpawn(t *testing.T) {
	ctx := context.Background()
	h := New(config.MemoryHostConfig{})
	h.FailSpawn(0)
	scene, _ := h.ActiveScene(ctx)

	first := h.Spawn(ctx, scene, core.PlayerStartClass, core.Coordinate{}, core.Rotation{})
	second := h.Spawn(ctx, scene, core.PlayerStartClass, core.Coordinate{}, core.Rotation{})

	assert.False(t, first.OK())
	assert.ErrorIs(t, first.Err, host.ErrSpawnFailed)
	assert.True(t, second.OK())
	assert.Len(t, h.Requests(), 2, "failed spawns are still recorded")

	n, _ := h.CountEntities(ctx, scene, core.PlayerStartClass)
	assert.Equal(t, 1, n)
}

func TestSetLabel(t *testing.T) {
	ctx := context.Background()
	h := New(config.MemoryHostConfig{})
	scene, _ := h.ActiveScene(ctx)

	res := h.Spawn(ctx, scene, core.PlayerStartClass, core.Coordinate{}, core.Rotation{})
	require.NoError(t, h.SetLabel(ctx, res.Entity, "PlayerStart_0"))

	label, ok := h.LabelOf(res.Entity)
	assert.True(t, ok)
	assert.Equal(t, "PlayerStart_0", label)
	assert.Len(t, h.Labels(), 1)

	assert.Error(t, h.SetLabel(ctx, "nope", "x"))
}
