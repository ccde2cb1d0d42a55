package detection

import (
	"fmt"

	"github.com/oomph-ac/survivalfly/game"
	"github.com/oomph-ac/survivalfly/movement"
)

// bunnyHop checks whether the excess of the move is explained by a bunny hop: a single peak of up to
// about twice the allowed distance when jumping off ground, followed by a phase in which the speed
// has to decrease with friction. The state is only modified if the excess returned is 0.
func (c *moveCheck) bunnyHop(allowed, excess float64) float64 {
	st, o, m := c.st, c.opts, c.move
	allowHop, double := true, false

	if st.HasLastHDist() && st.BunnyHopDelay > 0 && m.HDist > o.WalkSpeed {
		allowHop = false
		hopTime := o.BunnyHopMax - st.BunnyHopDelay

		if st.LastHDist > m.HDist {
			diff := st.LastHDist - m.HDist
			if st.BunnyHopDelay == o.BunnyHopMax-1 {
				// Directly after the hop, speed has to drop by a part of the peak.
				if diff >= o.BunnySlopeFactor*(st.LastHDist-allowed) {
					c.tag("bunnyslope")
					excess = 0
				}
			} else if diff >= st.LastHDist/o.BunnyDivFriction || diff >= excess/33.3 || diff >= (m.HDist-allowed)*(1-game.FrictionAir) {
				c.tag("bunnyfriction")
				excess = 0
				if st.BunnyHopDelay == 1 && !c.to.onGround() && !c.to.resetCond() {
					// Keep one more move for the landing.
					st.BunnyHopDelay++
					c.tag("bunnyfly(keep)")
				} else {
					c.tag(fmt.Sprintf("bunnyfly(%d)", st.BunnyHopDelay))
				}
			}
		}

		if m.HDist-st.LastHDist >= o.WalkSpeed*0.5 && hopTime == 1 && st.LastYDist == 0 && (st.FromWasReset || st.ToWasReset) && m.YDist >= 0.4 {
			c.tag("doublebunny")
			allowHop, double = true, true
		}

		if !allowHop && (c.fromOnGround || st.AssumeGround) {
			if st.BunnyHopDelay <= o.BunnyEdibleDelay || c.from.isHeadObstructed(o.EyeHeight) || c.to.isHeadObstructed(o.EyeHeight) {
				c.tag("ediblebunny")
				allowHop = true
			}
		}
	}

	ratio := o.BunnyHopRatio
	if !st.HasLastHDist() || st.LastHDist == 0 && st.LastYDist == 0 {
		ratio = o.BunnyHopRatioCold
	}
	peak := allowHop && m.HDist >= o.WalkSpeed && m.HDist > ratio*allowed && m.HDist < o.BunnyHopRatioMax*allowed
	relative := (m.YDist > o.YOnGround || m.HDist < 2.6*o.WalkSpeed) && st.HasLastHDist() &&
		m.HDist > o.BunnyHopRatio*st.LastHDist && m.HDist < o.BunnyHopRatioMax*st.LastHDist
	if !peak && !relative {
		return excess
	}

	liftOff := st.LiftOff != movement.LiftOffLimitJump &&
		(st.JumpPhase == 0 && c.fromOnGround || st.JumpPhase <= 1 && st.AssumeGround) &&
		!c.from.resetCond() && !c.to.resetCond()
	if liftOff || double {
		st.BunnyHopDelay = o.BunnyHopMax
		c.tag("bunnyhop")
		return 0
	}
	c.tag("bunnyenv")
	return excess
}
