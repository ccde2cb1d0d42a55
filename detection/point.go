package detection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/survivalfly/game"
	"github.com/oomph-ac/survivalfly/movement"
	"github.com/oomph-ac/survivalfly/world"
)

// point is one end of a move, classified against the world.
type point struct {
	loc    movement.Location
	flags  movement.Flags
	medium movement.Medium

	geo       world.Geometry
	width     float64
	height    float64
	yOnGround float64
}

// classify resolves the medium flags of the location passed.
func (s *SurvivalFly) classify(geo world.Geometry, loc movement.Location) point {
	p := point{loc: loc, geo: geo, width: s.opts.Width, height: s.opts.Height, yOnGround: s.opts.YOnGround}
	p.flags.OnGround = geo.IsSolidGround(game.FeetBox(loc.Pos, p.width, 0, p.yOnGround, 0))
	p.flags.InLiquid = geo.IsLiquid(loc.Pos)
	p.flags.InWeb = geo.IsWeb(loc.Pos)
	p.flags.OnClimbable = geo.IsClimbable(loc.Pos)
	p.flags.OnIce = p.flags.OnGround && geo.IsIce(loc.Pos)
	p.medium = p.flags.Medium()
	return p
}

func (p point) pos() mgl64.Vec3 {
	return p.loc.Pos
}

func (p point) y() float64 {
	return p.loc.Pos.Y()
}

func (p point) onGround() bool {
	return p.flags.OnGround
}

func (p point) resetCond() bool {
	return p.flags.ResetCondition()
}

// isOnGround checks for ground below the point with the margins passed. The box reaches yOnGround+yMargin
// below the feet and yMargin above them.
func (p point) isOnGround(yOnGround, xzMargin, yMargin float64) bool {
	if xzMargin >= 0 && p.flags.OnGround && yOnGround >= p.yOnGround {
		return true
	}
	return p.geo.IsSolidGround(game.FeetBox(p.pos(), p.width, xzMargin, yOnGround+yMargin, yMargin))
}

// isNextToGround checks the whole body box, grown by the margins passed.
func (p point) isNextToGround(xzMargin, yMargin float64) bool {
	if p.flags.OnGround {
		return true
	}
	return p.geo.IsSolidGround(game.FeetBox(p.pos(), p.width, xzMargin, yMargin, p.height+yMargin))
}

// isHeadObstructed checks for anything solid right above the head.
func (p point) isHeadObstructed(eyeHeight float64) bool {
	return p.geo.IsHeadObstructed(p.pos(), math.Max(0, 2-eyeHeight)+p.yOnGround)
}

// canClimbUp returns true if the climbable at the point holds the entity, or if it could have jumped
// onto it from ground within jumpHeight.
func (p point) canClimbUp(jumpHeight float64) bool {
	return p.geo.IsAttachedClimbable(p.pos()) || p.isOnGround(jumpHeight, 0, 0)
}

// isOnGroundShuffled checks for ground below the path between a and b. Unlike isOnGround, the
// margin is measured from the positions themselves and does not include the width.
func isOnGroundShuffled(geo world.Geometry, a, b mgl64.Vec3, xzMargin, yOnGround, yMargin float64) bool {
	return geo.IsSolidGround(game.SpanBox(a, b, xzMargin, yOnGround+yMargin, yMargin))
}
