// pkg/core/coordinate.go
package core

import "fmt"

// Coordinate is a point or displacement in the editor scene, in centimeters.
type Coordinate struct {
	X float64 `json:"x"` // forward
	Y float64 `json:"y"` // lateral
	Z float64 `json:"z"` // vertical
}

// Add returns the component-wise sum of c and o.
func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("X=%.3f Y=%.3f Z=%.3f", c.X, c.Y, c.Z)
}

// CoordinateFromSlice builds a Coordinate from a [x, y, z] list as found in
// config files. Missing components are zero.
func CoordinateFromSlice(v []float64) (Coordinate, error) {
	if len(v) > 3 {
		return Coordinate{}, fmt.Errorf("coordinate has %d components, expected at most 3", len(v))
	}
	var c Coordinate
	if len(v) > 0 {
		c.X = v[0]
	}
	if len(v) > 1 {
		c.Y = v[1]
	}
	if len(v) > 2 {
		c.Z = v[2]
	}
	return c, nil
}

// Rotation is an orientation in degrees.
type Rotation struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
}
