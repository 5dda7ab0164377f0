package geo

import (
	"errors"

	"github.com/OCAP2/playerstart/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// Scene positions are stored as XYZ points in the editor's local centimeter
// frame. There is no SRID; the values are written as WKB by the geom Valuer.

// ErrEmptyPoint is returned when a stored point has no coordinates.
var ErrEmptyPoint = errors.New("empty point")

// PointFromCoordinate converts a scene coordinate into an XYZ point.
// Non-finite components are rejected.
func PointFromCoordinate(c core.Coordinate) (geom.Point, error) {
	return geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: c.X, Y: c.Y},
			Z:    c.Z,
			Type: geom.DimXYZ,
		},
	)
}

// CoordinateFromPoint converts a stored point back into a scene coordinate.
// Points without a Z component yield Z = 0.
func CoordinateFromPoint(p geom.Point) (core.Coordinate, error) {
	coords, ok := p.Coordinates()
	if !ok {
		return core.Coordinate{}, ErrEmptyPoint
	}
	c := core.Coordinate{X: coords.XY.X, Y: coords.XY.Y}
	if coords.Type.Is3D() {
		c.Z = coords.Z
	}
	return c, nil
}
