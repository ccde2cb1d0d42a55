package game

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// FeetBox returns a box around the feet of an entity at pos with the width passed. The box reaches
// below down from the feet and above up from them, and is grown by xzMargin on both horizontal axes.
func FeetBox(pos mgl64.Vec3, width, xzMargin, below, above float64) cube.BBox {
	r := width/2 + xzMargin
	return cube.Box(
		pos.X()-r, pos.Y()-below, pos.Z()-r,
		pos.X()+r, pos.Y()+above, pos.Z()+r,
	)
}

// SpanBox returns the smallest box covering the feet of an entity at both a and b.
func SpanBox(a, b mgl64.Vec3, xzMargin, below, above float64) cube.BBox {
	return cube.Box(
		math.Min(a.X(), b.X())-xzMargin, math.Min(a.Y(), b.Y())-below, math.Min(a.Z(), b.Z())-xzMargin,
		math.Max(a.X(), b.X())+xzMargin, math.Max(a.Y(), b.Y())+above, math.Max(a.Z(), b.Z())+xzMargin,
	)
}

// BlocksInBox returns every block position a box intersects with.
func BlocksInBox(box cube.BBox) []cube.Pos {
	min, max := box.Min(), box.Max()
	minX, minY, minZ := int(math.Floor(min.X())), int(math.Floor(min.Y())), int(math.Floor(min.Z()))
	maxX, maxY, maxZ := int(math.Floor(max.X())), int(math.Floor(max.Y())), int(math.Floor(max.Z()))

	positions := make([]cube.Pos, 0, (maxX-minX+1)*(maxY-minY+1)*(maxZ-minZ+1))
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				positions = append(positions, cube.Pos{x, y, z})
			}
		}
	}
	return positions
}
