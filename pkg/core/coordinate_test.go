// pkg/core/coordinate_test.go
package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinate_Add(t *testing.T) {
	base := Coordinate{X: 0, Y: 0, Z: 100}
	got := base.Add(Coordinate{X: 12.5, Y: -200, Z: 0.25})
	assert.Equal(t, Coordinate{X: 12.5, Y: -200, Z: 100.25}, got)
	assert.Equal(t, Coordinate{X: 0, Y: 0, Z: 100}, base, "receiver must not change")
}

func TestCoordinate_String(t *testing.T) {
	assert.Equal(t, "X=0.000 Y=-200.000 Z=100.000", Coordinate{Y: -200, Z: 100}.String())
}

func TestCoordinateFromSlice(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want Coordinate
	}{
		{name: "empty", in: nil, want: Coordinate{}},
		{name: "xy only", in: []float64{1, 2}, want: Coordinate{X: 1, Y: 2}},
		{name: "full", in: []float64{1, 2, 3}, want: Coordinate{X: 1, Y: 2, Z: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoordinateFromSlice(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoordinateFromSlice_TooLong(t *testing.T) {
	_, err := CoordinateFromSlice([]float64{1, 2, 3, 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 components")
}

func TestMarkerLabel(t *testing.T) {
	assert.Equal(t, "PlayerStart_0", MarkerLabel(0))
	assert.Equal(t, "PlayerStart_1", MarkerLabel(1))
}
