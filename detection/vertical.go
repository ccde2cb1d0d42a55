package detection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/survivalfly/game"
	"github.com/oomph-ac/survivalfly/movement"
)

// vDistAir checks jumping and falling through air, including moves starting on ground.
func (c *moveCheck) vDistAir() (allowed, excess float64) {
	st, o, m := c.st, c.opts, c.move

	allowed = game.MaxJumpHeight + st.Velocity.VerticalFreedom()
	var maxJumpPhase int
	switch {
	case st.LiftOff == movement.LiftOffLimitJump:
		maxJumpPhase = game.MaxLimitedJumpPhase
		st.NoLowJump = true
		if st.JumpPhase > 0 {
			c.tag("limitjump")
		}
	case st.JumpAmplifier > 0:
		allowed += 0.6 + st.JumpAmplifier - 1
		maxJumpPhase = int(9 + (st.JumpAmplifier-1)*6)
	default:
		maxJumpPhase = game.MaxJumpPhase
	}

	if st.JumpPhase > maxJumpPhase && st.Velocity.VerticalFreedom() <= 0 && !st.Velocity.JumpPhase() && m.YDist >= 0 && !c.resetFrom {
		c.tag("maxphase")
		excess = math.Max(excess, math.Max(m.YDist, 0.15))
	}

	if total := c.to.y() - st.SetBack().Y() - allowed; total > 0 {
		if m.YDist < 0 || m.YDist > o.StepHeight || !c.hasTag("lostground_couldstep") {
			excess = math.Max(excess, total)
		}
	}
	if excess > 0 {
		c.tag("vdist")
	}

	if !c.resetFrom && !c.resetTo {
		excess = math.Max(excess, c.inAirChecks())
	}

	// Stepping up more than a block without jumping.
	lift := c.estimateJumpLiftOff(0.1)
	if (c.resetFrom || st.AssumeGround) && c.resetTo && excess <= 0 && m.YDist > o.StepHeight && m.YDist > lift {
		step := true
		if st.AssumeGround && st.HasLastYDist() && st.LastYDist <= 0 && m.YDist > 0 && m.YDist+math.Abs(st.LastYDist) <= 2*lift {
			step = false
		}
		if step && !c.hasPermission(PermissionStep) {
			if c.from.flags.OnClimbable {
				excess = math.Max(excess, math.Abs(m.YDist))
			} else {
				excess = math.Max(excess, math.Abs(m.YDist-lift))
			}
			c.tag("step")
		}
	}
	return allowed, excess
}

// inAirChecks runs the checks for moves that neither start nor end on a reset condition.
func (c *moveCheck) inAirChecks() (excess float64) {
	st, o, m := c.st, c.opts, c.move
	if st.LowJump {
		c.tag("lowjump")
	}

	yDirChange := st.HasLastYDist() && st.LastYDist != m.YDist &&
		(m.YDist <= 0 && st.LastYDist >= 0 || m.YDist >= 0 && st.LastYDist <= 0)
	if yDirChange {
		excess = c.yDirChange(excess)
	}

	if !o.VerticalAccounting {
		return excess
	}
	switch {
	case yDirChange && st.LastYDist > 0:
		// A new descending phase starts.
		st.Accounting.Clear()
		st.Accounting.Add(m.YDist)
	case !st.Velocity.HasAnyVertical():
		if m.YDist != 0 {
			st.Accounting.Add(m.YDist)
			tag := "vacc"
			if st.Velocity.JumpPhase() {
				tag += "dirty"
			}
			excess = math.Max(excess, c.verticalAccounting(tag))
		}
	default:
		st.Accounting.Clear()
	}
	return excess
}

// verticalAccounting demands that the vertical speed changes between the two older accounting
// buckets, the newest one being ignored.
func (c *moveCheck) verticalAccounting(tag string) float64 {
	count1, sc1 := c.st.Accounting.Bucket(1)
	count2, sc2 := c.st.Accounting.Bucket(2)
	if count1 == 0 || count2 == 0 {
		return 0
	}

	diff := sc1 - sc2
	y := c.move.YDist
	if diff < 0 && (y <= -1.05 || math.Abs(diff) >= 0.0625) {
		return 0
	}
	if y <= -1.05 && sc2 < -10 && sc1 < -10 {
		// Falling at high speed.
		c.tag(tag + "grace")
		return 0
	}
	c.tag(tag)
	if diff < 0 {
		return math.Max(math.Abs(-0.0625-diff), 0.001)
	}
	return 0.0625 + diff
}

// yDirChange checks a change of the vertical direction while in air.
func (c *moveCheck) yDirChange(excess float64) float64 {
	st, o, m := c.st, c.opts, c.move
	if m.YDist > 0 {
		switch {
		case st.ToWasReset:
			c.tag("ychinc")
		case !st.Velocity.HasAnyVertical() && st.BunnyHopDelay < o.BunnyHopMax-1 && !(st.FromWasReset && st.LastYDist == 0):
			// Moving upwards after falling without touching ground.
			excess = math.Max(excess, math.Abs(m.YDist))
			c.tag("ychincfly")
		default:
			c.tag("ychincair")
		}
		return excess
	}

	c.tag("ychdec")
	if st.LowJump || st.NoLowJump || st.LiftOff != movement.LiftOffGround || !st.HasLastYDist() || st.LastYDist <= 0 || st.Velocity.JumpPhase() {
		return excess
	}
	height := c.from.y() - st.SetBack().Y()
	if height <= 0 {
		return excess
	}
	// Minimal height of a full jump.
	estimate := 1.15
	if st.JumpAmplifier > 0 {
		estimate += 0.5 * c.jumpAmplifier()
	}
	if height < estimate && !c.from.isHeadObstructed(o.EyeHeight) && !c.to.isHeadObstructed(o.EyeHeight) {
		c.tag("lowjump_set")
		st.LowJump = true
	}
	return excess
}

// vDistLiquid checks swimming upwards. Descending in liquids is not checked.
func (c *moveCheck) vDistLiquid() (allowed, excess float64) {
	st, o, m := c.st, c.opts, c.move
	st.NoLowJump = true
	if m.YDist < 0 {
		return 0, 0
	}

	allowed = o.SwimSpeed + 0.02
	excess = m.YDist - allowed
	if excess > 0 && m.YDist <= 0.5 {
		surfacing := st.LiftOff == movement.LiftOffGround && !c.env.Geometry.IsLiquid(c.from.pos().Add(mgl64.Vec3{0, 1, 0}))
		if surfacing || !c.to.flags.InLiquid || c.toOnGround || st.HasLastYDist() && st.LastYDist-m.YDist >= 0.01 {
			allowed = o.SwimSpeed + 0.5
			excess = m.YDist - allowed
		}
	}
	if excess > 0 {
		c.tag("swimup")
	}
	return allowed, excess
}

// vDistClimbable checks moves on ladders and vines.
func (c *moveCheck) vDistClimbable() (excess float64) {
	st, m := c.st, c.move
	st.NoLowJump = true

	jumpHeight := game.MaxJumpHeight
	if st.JumpAmplifier > 0 {
		jumpHeight += 0.6 + st.JumpAmplifier - 1
	}

	if math.Abs(m.YDist) > game.ClimbSpeed {
		if c.from.isOnGround(jumpHeight, 0, 0) {
			if m.YDist > c.estimateJumpLiftOff(0.1) {
				c.tag("climbstep")
				excess = math.Max(excess, math.Abs(m.YDist)-game.ClimbSpeed)
			}
		} else {
			c.tag("climbspeed")
			excess = math.Max(excess, math.Abs(m.YDist)-game.ClimbSpeed)
		}
	}

	if m.YDist > 0 && !c.fromOnGround && !c.toOnGround && !st.AssumeGround && !c.from.canClimbUp(jumpHeight) {
		c.tag("climbdetached")
		excess = math.Max(excess, m.YDist)
	}
	return excess
}

// vDistWeb checks moves in cobwebs, which barely allow moving up. The last value returned is true if
// the move should be reverted silently instead.
func (c *moveCheck) vDistWeb(hExcess float64) (allowed, excess float64, silent bool) {
	st, m := c.st, c.move
	st.NoLowJump = true
	st.JumpAmplifier = 0

	if m.YDist >= 0 {
		if c.toOnGround && m.YDist <= 0.5 {
			allowed = m.YDist
			if m.YDist > 0 {
				c.tag("web_step")
			}
		} else if c.fromOnGround {
			allowed = 0.1
		}
		excess = m.YDist - allowed
	}

	if c.opts.CobwebHack && excess > 0 && hExcess <= 0 && c.hackCobweb(excess) {
		return allowed, excess, true
	}
	if excess > 0 {
		c.tag("vweb")
	}
	return allowed, excess, false
}

// hackCobweb absorbs small, repeated cobweb violations by reverting the move without a violation.
func (c *moveCheck) hackCobweb(excess float64) bool {
	st, o := c.st, c.opts
	if c.now.Sub(st.CobwebSince) > o.CobwebWindow {
		st.CobwebSince = c.now
		st.CobwebScore = excess * 100
	} else {
		st.CobwebScore += excess * 100
	}
	if st.CobwebScore >= o.CobwebThreshold {
		return false
	}
	st.SetJumpPhase(0)
	st.LastHDist, st.LastYDist = movement.Unset, movement.Unset
	return true
}
