package movement

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/survivalfly/game"
)

// Move is a single movement event from one location to another, along with its derived distances.
type Move struct {
	From, To Location

	XDist, YDist, ZDist float64
	// HDist is the distance covered on the X/Z plane.
	HDist float64
}

// NewMove ...
func NewMove(from, to Location) Move {
	m := Move{From: from, To: to}
	if m.Null() {
		return m
	}
	delta := to.Pos.Sub(from.Pos)
	m.XDist, m.YDist, m.ZDist = delta.X(), delta.Y(), delta.Z()
	m.HDist = game.HorizontalLength(delta)
	return m
}

// Null returns true if the move did not change the position.
func (m Move) Null() bool {
	return m.From.Pos == m.To.Pos
}

// HasHorizontal returns true if the move covered any distance on the X/Z plane.
func (m Move) HasHorizontal() bool {
	return m.XDist != 0 || m.ZDist != 0
}

// Delta ...
func (m Move) Delta() mgl64.Vec3 {
	return mgl64.Vec3{m.XDist, m.YDist, m.ZDist}
}
