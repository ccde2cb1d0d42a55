package world

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/survivalfly/game"
)

// Geometry answers the world queries movement validation depends on. Positions are the feet position
// of the entity being validated. Implementations must be read-only.
type Geometry interface {
	// IsSolidGround returns true if the volume intersects anything an entity could stand on.
	IsSolidGround(volume cube.BBox) bool
	IsLiquid(pos mgl64.Vec3) bool
	IsWeb(pos mgl64.Vec3) bool
	IsClimbable(pos mgl64.Vec3) bool
	// IsAttachedClimbable returns true if the climbable at pos can be climbed upwards, e.g. a ladder
	// or a vine hanging on a solid block.
	IsAttachedClimbable(pos mgl64.Vec3) bool
	IsIce(pos mgl64.Vec3) bool
	// IsHeadObstructed returns true if something solid is within margin above the head.
	IsHeadObstructed(pos mgl64.Vec3, margin float64) bool
	// IsDownStream returns true if moving by (dx, dz) follows the flow of the liquid at pos.
	IsDownStream(pos mgl64.Vec3, dx, dz float64) bool
}

// BlockGeometry is a Geometry backed by the blocks of a Source, for an entity of the given width and
// height.
type BlockGeometry struct {
	src    Source
	width  float64
	height float64
}

// NewBlockGeometry returns a BlockGeometry for a player sized entity.
func NewBlockGeometry(src Source) *BlockGeometry {
	return &BlockGeometry{src: src, width: game.PlayerWidth, height: game.PlayerHeight}
}

// blockSource adapts a Source to dragonfly's block source for block models.
type blockSource struct {
	Source
}

// BlockCollisions returns the collision boxes of the block at pos in world space.
func (g *BlockGeometry) BlockCollisions(pos cube.Pos) []cube.BBox {
	b := g.src.Block(pos)
	if _, ok := b.(world.Liquid); ok {
		return nil
	}
	model := modelBoxes(b, pos, blockSource{g.src})
	boxes := make([]cube.BBox, 0, len(model))
	for _, bb := range model {
		boxes = append(boxes, bb.Translate(pos.Vec3()))
	}
	return boxes
}

// IsSolidGround ...
func (g *BlockGeometry) IsSolidGround(volume cube.BBox) bool {
	for _, pos := range game.BlocksInBox(volume) {
		for _, bb := range g.BlockCollisions(pos) {
			if bb.IntersectsWith(volume) {
				return true
			}
		}
	}
	return false
}

func (g *BlockGeometry) anyBlock(box cube.BBox, f func(b world.Block) bool) bool {
	for _, pos := range game.BlocksInBox(box) {
		if f(g.src.Block(pos)) {
			return true
		}
	}
	return false
}

// IsLiquid ...
func (g *BlockGeometry) IsLiquid(pos mgl64.Vec3) bool {
	box := game.FeetBox(pos, g.width, -0.001, -0.001, 0.4)
	return g.anyBlock(box, func(b world.Block) bool {
		_, ok := BlockLiquid(b)
		return ok
	})
}

// IsWeb ...
func (g *BlockGeometry) IsWeb(pos mgl64.Vec3) bool {
	box := game.FeetBox(pos, g.width, -0.001, -0.001, g.height-0.001)
	return g.anyBlock(box, BlockWeb)
}

// IsClimbable ...
func (g *BlockGeometry) IsClimbable(pos mgl64.Vec3) bool {
	return BlockClimbable(g.src.Block(cube.PosFromVec3(pos)))
}

// IsAttachedClimbable ...
func (g *BlockGeometry) IsAttachedClimbable(pos mgl64.Vec3) bool {
	blockPos := cube.PosFromVec3(pos)
	b := g.src.Block(blockPos)
	if !BlockClimbable(b) {
		return false
	}
	if !blockVine(b) {
		return true
	}
	for _, face := range cube.HorizontalFaces() {
		if len(g.BlockCollisions(blockPos.Side(face))) > 0 {
			return true
		}
	}
	return false
}

// IsIce ...
func (g *BlockGeometry) IsIce(pos mgl64.Vec3) bool {
	return BlockSlippery(g.src.Block(cube.PosFromVec3(pos.Sub(mgl64.Vec3{0, 0.01, 0}))))
}

// IsHeadObstructed ...
func (g *BlockGeometry) IsHeadObstructed(pos mgl64.Vec3, margin float64) bool {
	top := pos.Add(mgl64.Vec3{0, g.height, 0})
	return g.IsSolidGround(game.FeetBox(top, g.width, 0, 0, margin))
}

// IsDownStream ...
func (g *BlockGeometry) IsDownStream(pos mgl64.Vec3, dx, dz float64) bool {
	blockPos := cube.PosFromVec3(pos)
	l, ok := BlockLiquid(g.src.Block(blockPos))
	if !ok {
		return false
	}

	next := blockPos
	if math.Abs(dx) >= math.Abs(dz) {
		next[0] += game.Sign(dx)
	} else {
		next[2] += game.Sign(dz)
	}
	if next == blockPos {
		return false
	}

	nl, ok := BlockLiquid(g.src.Block(next))
	if !ok {
		// Liquid spilling over an edge flows towards it.
		_, below := BlockLiquid(g.src.Block(next.Side(cube.FaceDown)))
		return below && !l.LiquidFalling()
	}
	return nl.LiquidDepth() < l.LiquidDepth() || nl.LiquidFalling()
}
