package detection

import (
	"math"

	"github.com/oomph-ac/survivalfly/movement"
)

// allowedHDist returns the horizontal distance the entity may cover with this move. If checkPerm is
// set, bypass permissions are taken into account.
func (c *moveCheck) allowedHDist(checkPerm bool) float64 {
	st, o := c.st, c.opts
	modifier := c.walkSpeed / o.WalkSpeed

	var allowed float64
	friction := st.LastFriction

	switch c.from.medium {
	case movement.MediumWeb:
		st.IceTicks = 0
		allowed = o.WebSpeed * modifier * percent(o.WalkingPercent)
		friction = 0
	case movement.MediumLiquid, movement.MediumClimbable:
		if c.from.flags.InLiquid && c.to.flags.InLiquid {
			allowed = o.SwimSpeed * modifier * percent(o.SwimmingPercent)
			if level := c.env.Effects.DepthStriderLevel(); level > 0 {
				allowed *= o.DepthStrider[min(level, len(o.DepthStrider)-1)]
				if c.sprinting {
					allowed *= o.SprintMultiplier
				}
			}
			break
		}
		allowed, friction = c.allowedLandHDist(checkPerm)
	case movement.MediumGround, movement.MediumIce, movement.MediumAir:
		allowed, friction = c.allowedLandHDist(checkPerm)
	}

	if c.downStream {
		allowed *= o.DownStreamSpeed / o.SwimSpeed
	}
	if st.IceTicks > 0 {
		allowed *= o.IceMultiplier
	}
	if checkPerm && c.hasPermission(PermissionSpeeding) {
		allowed *= percent(o.SpeedingPercent)
	}

	if c.move.HDist <= allowed {
		st.NextFriction = 1
	}
	if st.HasLastHDist() && friction > 0 {
		return math.Max(allowed, st.LastHDist*friction)
	}
	return allowed
}

// allowedLandHDist returns the allowed distance and friction for moves that are not swimming or in a
// web. Sneaking and blocking only slow down entities standing on ground.
func (c *moveCheck) allowedLandHDist(checkPerm bool) (allowed, friction float64) {
	st, o := c.st, c.opts
	modifier := c.walkSpeed / o.WalkSpeed
	dirty := st.Velocity.JumpPhase()

	switch {
	case !dirty && c.fromOnGround && c.in.Sneaking && st.ReallySneaking && (!checkPerm || !c.hasPermission(PermissionSneaking)):
		return o.SneakSpeed * modifier * percent(o.SneakingPercent), 0
	case !dirty && c.fromOnGround && c.in.Blocking && (!checkPerm || !c.hasPermission(PermissionBlocking)):
		return o.BlockSpeed * modifier * percent(o.BlockingPercent), 0
	}

	if c.sprinting {
		allowed = c.walkSpeed * o.SprintMultiplier * percent(o.SprintingPercent)
	} else {
		allowed = c.walkSpeed * percent(o.WalkingPercent)
	}

	// The attribute already includes speed and slowness effects.
	if mul, ok := c.env.Effects.SpeedAttributeMultiplier(); ok {
		allowed *= mul
	} else if amp, ok := c.env.Effects.MovementSpeedAmplifier(); ok {
		allowed *= 1 + 0.2*float64(amp+1)
	}
	return allowed, 0
}

// hDistAfterFailure tries to explain a move exceeding the horizontal envelope, first by bunny
// hopping, then with bypass permissions, velocity and finally the horizontal buffer. It returns the
// new allowed distance, the remaining excess and the distance covered by velocity.
func (c *moveCheck) hDistAfterFailure(allowed, excess float64) (float64, float64, float64) {
	st, m := c.st, c.move

	excess = c.bunnyHop(allowed, excess)

	if excess > 0 {
		allowed = c.allowedHDist(true)
		excess = m.HDist - allowed
		c.tag("permchecks")
	}

	var freedom float64
	if excess > 0 {
		freedom = st.Velocity.HorizontalFreedom()
		if freedom < excess {
			freedom += st.Velocity.UseHorizontal(excess-freedom, st.Tick)
		}
		if freedom > 0 {
			c.tag("hvel")
			excess = math.Max(0, excess-freedom)
		}
	}

	if excess > 0 {
		excess = c.bunnyHop(allowed, excess)
	}

	if excess > 0 && st.HorizontalBuffer > 0 {
		c.tag("hbufuse")
		amount := math.Min(st.HorizontalBuffer, excess)
		excess -= amount
		st.AddHorizontalBuffer(-amount)
	}

	if excess > 0 {
		c.tag("hspeed")
	}
	return allowed, excess, freedom
}
