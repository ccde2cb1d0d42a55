package movement

import "github.com/go-gl/mathgl/mgl64"

// Location is a position of an entity along with its rotation.
type Location struct {
	Pos   mgl64.Vec3
	Yaw   float64
	Pitch float64
}

// Loc returns a Location at the position passed with no rotation.
func Loc(x, y, z float64) Location {
	return Location{Pos: mgl64.Vec3{x, y, z}}
}

// Input is the state of the entity's controls during a move.
type Input struct {
	Sprinting bool
	Sneaking  bool
	Blocking  bool
}
