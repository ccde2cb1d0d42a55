package detection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// checkLostGround tries to reconstruct ground contact the client had but never reported for a move
// starting in air. It returns true if the move is to be treated as starting on ground.
func (c *moveCheck) checkLostGround() bool {
	o, m := c.opts, c.move
	switch {
	case m.YDist > -0.7 && m.YDist <= math.Max(o.StepHeight, c.estimateJumpLiftOff(0.174)):
		if m.YDist >= 0 && c.lostGroundAscend() {
			return true
		}
		if m.YDist <= 0 && c.lostGroundDescend() {
			return true
		}
	case m.YDist <= -0.7:
		if m.HDist <= 0.5 && c.lostGroundFastDescend() {
			return true
		}
	}
	return false
}

func (c *moveCheck) lostGroundAscend() bool {
	st, o, m := c.st, c.opts, c.move
	if m.YDist > o.StepHeight || m.HDist > 1.5 {
		return false
	}
	setBackYDist := c.to.y() - st.SetBack().Y()

	if setBackYDist <= math.Max(0, 1.3+0.2*st.JumpAmplifier) && c.toOnGround {
		if st.LastYDist < 0 || c.from.isOnGround(o.StepHeight-m.YDist, 0, 0) {
			return c.applyLostGround(c.from.pos(), true, "step")
		}
	}
	if !st.HasLastYDist() || st.LastYDist >= 0 {
		return false
	}

	stepped := c.from.pos().Add(mgl64.Vec3{0, o.StepHeight, 0})
	if isOnGroundShuffled(c.env.Geometry, stepped, c.to.pos(), 0.1+c.edgeMargin(), o.YOnGround, 0) {
		return c.applyLostGround(mgl64.Vec3{}, false, "couldstep")
	}
	if c.toOnGround {
		return false
	}
	if st.HasLastFrom() && st.HasLastHDist() {
		if c.lostGroundEdgeAsc(c.from.pos(), st.LastFrom, st.LastHDist, o.YOnGround, "asc1") {
			return true
		}
		if m.YDist == 0 && st.LastYDist <= -0.3 && m.HDist <= st.LastHDist*1.1 {
			return c.lostGroundEdgeAsc(c.to.pos(), c.from.pos(), m.HDist, 0.3, "asc5")
		}
		return false
	}
	if c.from.isOnGround(o.YOnGround, 0.0625, 0) {
		return c.applyLostGround(mgl64.Vec3{}, false, "edgeasc2")
	}
	return false
}

// lostGroundStill handles moves that did not change the position after falling.
func (c *moveCheck) lostGroundStill() bool {
	if c.st.LastYDist > -0.3 {
		return false
	}
	return c.lostGroundEdgeAsc(c.to.pos(), c.from.pos(), c.move.HDist, 0.3, "asc7")
}

// lostGroundEdgeAsc checks for ground along the path from a towards b, capped to hDist on both
// horizontal axes.
func (c *moveCheck) lostGroundEdgeAsc(a, b mgl64.Vec3, hDist, yOnGround float64, tag string) bool {
	dx, dz := b.X()-a.X(), b.Z()-a.Z()
	f := 1.0
	if math.Abs(dx) > hDist {
		f = math.Min(f, hDist/math.Abs(dx))
	}
	if math.Abs(dz) > hDist {
		f = math.Min(f, hDist/math.Abs(dz))
	}
	end := mgl64.Vec3{a.X() + f*dx, a.Y(), a.Z() + f*dz}
	if !isOnGroundShuffled(c.env.Geometry, a, end, c.edgeMargin(), yOnGround, 0) {
		return false
	}
	return c.applyLostGround(mgl64.Vec3{end.X(), b.Y(), end.Z()}, true, "edge"+tag)
}

// edgeMargin is half the entity width, rounded to three decimals.
func (c *moveCheck) edgeMargin() float64 {
	return math.Round(c.opts.Width*500) / 1000
}

func (c *moveCheck) lostGroundDescend() bool {
	st, m := c.st, c.move
	setBackYDist := c.to.y() - st.SetBack().Y()

	if st.JumpPhase <= 7 {
		// Jumping onto the edge of a block while descending.
		if st.LastYDist <= m.YDist && setBackYDist < 0 && !c.toOnGround && c.from.isOnGround(0.6, 0.4, 0) {
			return c.applyLostGround(c.from.pos(), true, "pyramid")
		}
		if m.YDist == 0 && st.LastYDist > 0 && st.LastYDist < 0.25 && st.JumpPhase <= int(math.Max(0, 6+st.JumpAmplifier*3)) &&
			setBackYDist > 1 && setBackYDist < math.Max(0, 1.5+0.2*st.JumpAmplifier) && !c.toOnGround && c.from.isOnGround(0.25, 0.4, 0) {
			return c.applyLostGround(c.from.pos(), true, "ministep")
		}
	}

	if m.YDist < 0 && m.HDist <= 1.5 && st.LastYDist < 0 && m.YDist > st.LastYDist && !c.toOnGround {
		if c.from.isOnGround(0.5, 0.2, 0) || c.to.isOnGround(0.5, math.Min(0.2, 0.01+m.HDist), math.Min(0.1, 0.01-m.YDist)) {
			return c.applyLostGround(c.from.pos(), true, "edgedesc")
		}
	}
	return false
}

func (c *moveCheck) lostGroundFastDescend() bool {
	st, m := c.st, c.move
	if m.YDist <= st.LastYDist || c.toOnGround {
		return false
	}
	if c.from.isOnGround(0.5, 0.2, 0) || c.to.isOnGround(0.5, math.Min(0.3, 0.01+m.HDist), math.Min(0.1, 0.01-m.YDist)) {
		return c.applyLostGround(c.from.pos(), true, "fastedge")
	}
	return false
}

// applyLostGround treats the move as starting on ground, optionally moving the set-back to the
// position passed. It only has an effect the first time it is called for a move.
func (c *moveCheck) applyLostGround(setBack mgl64.Vec3, safe bool, tag string) bool {
	if c.lostGround {
		return true
	}
	c.lostGround = true

	st := c.st
	if safe {
		st.SetSetBack(setBack)
	}
	st.SetJumpPhase(0)
	st.JumpAmplifier = c.jumpAmplifier()
	st.ClearAccounting()
	st.AssumeGround = true
	c.tag("lostground_" + tag)
	return true
}
