package detection

import (
	"io"
	"math"
	"time"

	"github.com/oomph-ac/survivalfly/game"
	"github.com/oomph-ac/survivalfly/movement"
	"github.com/sirupsen/logrus"
)

// CheckName is the name violations of the SurvivalFly check are reported under.
const CheckName = "SurvivalFly"

// SurvivalFly bounds the distance an entity in survival mode can legitimately cover in a single
// move. It holds no per-entity state: everything it mutates lives in the movement.State passed to
// Check, so a single SurvivalFly may serve any amount of entities concurrently as long as moves of
// the same entity are not validated in parallel.
type SurvivalFly struct {
	opts Options
	log  *logrus.Logger
	acc  ViolationAccumulator
}

// NewSurvivalFly returns a SurvivalFly with the options passed. A nil logger discards all output.
func NewSurvivalFly(opts Options, log *logrus.Logger) *SurvivalFly {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &SurvivalFly{
		opts: opts,
		log:  log,
		acc: ViolationAccumulator{
			Check:  CheckName,
			Decay:  opts.ViolationDecay,
			Freeze: opts.ViolationFreeze,
		},
	}
}

// Options ...
func (s *SurvivalFly) Options() Options {
	return s.opts
}

// moveCheck holds everything derived for the move being validated.
type moveCheck struct {
	s    *SurvivalFly
	opts *Options
	st   *movement.State
	env  Environment
	in   movement.Input
	now  time.Time

	move     movement.Move
	from, to point

	fromOnGround, toOnGround bool
	resetFrom, resetTo       bool

	sprinting  bool
	downStream bool
	// walkSpeed is the walking speed of this entity, which differs from the configured one if its
	// movement speed attribute was changed.
	walkSpeed float64

	// lostGround is set once ground contact was reconstructed for this move.
	lostGround bool

	tags []string
}

func (c *moveCheck) tag(t string) {
	c.tags = append(c.tags, t)
}

func (c *moveCheck) hasTag(t string) bool {
	for _, tag := range c.tags {
		if tag == t {
			return true
		}
	}
	return false
}

func (c *moveCheck) hasPermission(p Permission) bool {
	return c.env.Permissions.HasPermission(p)
}

// Check validates a move of the entity owning st from one location to another. The state is updated
// with the move unless the move gets cancelled, in which case the state is reset to the set-back
// returned in the Result.
func (s *SurvivalFly) Check(st *movement.State, from, to movement.Location, in movement.Input, env Environment, now time.Time) Result {
	env = env.withDefaults()
	c := &moveCheck{
		s:    s,
		opts: &s.opts,
		st:   st,
		env:  env,
		in:   in,
		now:  now,
		move: movement.NewMove(from, to),
		from: s.classify(env.Geometry, from),
		to:   s.classify(env.Geometry, to),
		tags: make([]string, 0, 8),
	}
	return c.run()
}

func (c *moveCheck) run() Result {
	st, o, m := c.st, c.opts, c.move

	st.Tick++
	st.AssumeGround = false
	st.Velocity.Expire(st.Tick, o.VelocityGraceTicks)

	// Entities joining or respawning may be moved up out of the ground by the client.
	if !st.HasSetBack() {
		st.SetSetBack(c.from.pos())
	} else if st.JoinOrRespawn && c.from.y() > st.SetBack().Y() && game.SameHorizontalPos(c.from.pos(), st.SetBack()) &&
		(c.from.onGround() || c.from.resetCond()) {
		c.s.log.Debugf("%s adjusted set-back after join/respawn to %v", c.env.Entity, c.from.pos())
		st.SetSetBack(c.from.pos())
		st.ResetPositions(c.from.pos())
	}

	c.fromOnGround, c.toOnGround = c.from.onGround(), c.to.onGround()
	c.resetTo = c.toOnGround || c.to.resetCond()

	if amp := c.jumpAmplifier(); amp > st.JumpAmplifier || c.fromOnGround || c.from.resetCond() {
		st.JumpAmplifier = amp
	}

	if c.in.Sprinting {
		st.LastSprint = c.now
	}
	c.sprinting = c.determineSprinting()
	c.walkSpeed = o.WalkSpeed * (st.WalkSpeed / movement.DefaultWalkSpeedAttribute)

	c.setNextFriction()

	switch {
	case c.fromOnGround || c.from.resetCond():
		c.resetFrom = true
	case m.Null():
		if st.HasLastHDist() && st.LastHDist > 0 && st.LastYDist < -0.3 {
			c.resetFrom = c.lostGroundStill()
		}
	default:
		c.resetFrom = c.checkLostGround()
	}

	st.BunnyHopDelay = max(st.BunnyHopDelay-1, 0)
	c.downStream = m.HDist > c.walkSpeed*o.SwimSpeed/o.WalkSpeed && c.from.flags.InLiquid &&
		c.env.Geometry.IsDownStream(c.from.pos(), m.XDist, m.ZDist)
	if c.downStream {
		c.tag("downstream")
	}

	if c.from.flags.OnIce || c.to.flags.OnIce {
		st.IceTicks = game.IceTicks
	} else if st.IceTicks > 0 {
		st.IceTicks--
	}

	res := Result{HDistance: m.HDist, YDistance: m.YDist}
	if m.HasHorizontal() {
		res.HAllowed = c.allowedHDist(false)
		res.HExcess = m.HDist - res.HAllowed
		if res.HExcess > 0 {
			res.HAllowed, res.HExcess, res.HFreedom = c.hDistAfterFailure(res.HAllowed, res.HExcess)
		} else {
			st.Velocity.ClearActiveHorizontal()
			if c.resetFrom && st.BunnyHopDelay <= o.BunnyEdibleDelay {
				st.BunnyHopDelay = 0
			}
		}

		if res.HExcess <= 0 && m.HDist > 0.1 && m.YDist == 0 && st.LastYDist == 0 && !c.toOnGround && !c.fromOnGround &&
			c.to.flags.InLiquid {
			res.HExcess = math.Max(res.HExcess, m.HDist)
			c.tag("waterwalk")
		}

		if c.sprinting && st.LostSprintCount == 0 && !o.AssumeSprint && m.HDist > c.walkSpeed && !st.Velocity.HasActiveHorizontal() &&
			game.MovingBackwards(m.XDist, m.ZDist, m.From.Yaw) && !c.hasPermission(PermissionSprinting) {
			res.HExcess = math.Max(res.HExcess, m.HDist)
			c.tag("sprintback")
		}
	} else {
		st.Velocity.ClearActiveHorizontal()
	}

	if m.YDist > 0 && st.Velocity.UseVertical(st.Tick) {
		c.tag("vvel")
	}

	var dirty bool
	if st.Velocity.JumpPhase() && (!c.resetFrom && !c.resetTo || st.Velocity.ResetJumpPhase()) {
		dirty = true
		c.tag("dirty")
	}

	switch c.from.medium {
	case movement.MediumWeb:
		var silent bool
		res.VAllowed, res.VExcess, silent = c.vDistWeb(res.HExcess)
		if silent {
			c.tag("silentsbcobweb")
			res.Outcome, res.SetBack = OutcomeSilentCorrect, c.setBackLocation()
			st.Teleport(res.SetBack.Pos)
			return c.finish(res)
		}
	case movement.MediumClimbable:
		if !dirty {
			res.VExcess = c.vDistClimbable()
			break
		}
		res.VAllowed, res.VExcess = c.vDistAir()
	case movement.MediumLiquid:
		if !dirty && (math.Abs(m.YDist) > 0.2 || c.to.flags.InLiquid) {
			res.VAllowed, res.VExcess = c.vDistLiquid()
			break
		}
		res.VAllowed, res.VExcess = c.vDistAir()
	case movement.MediumGround, movement.MediumIce, movement.MediumAir:
		res.VAllowed, res.VExcess = c.vDistAir()
	}

	res.Score = 100 * (math.Max(res.HExcess, 0) + math.Max(res.VExcess, 0))
	if res.Score > 0 {
		cancel := c.s.acc.Record(st, c.violationData(res.Score), c.env.Actions, c.now)
		if cancel {
			res.Outcome, res.SetBack = OutcomeCorrect, c.setBackLocation()
			res.Violations = st.Violations
			st.Teleport(res.SetBack.Pos)
			return c.finish(res)
		}
		st.ClearAccounting()
		st.SetJumpPhase(0)
	} else {
		c.s.acc.Cool(st, c.now)
		if res.HExcess < 0 && !m.Null() && st.HorizontalBuffer < game.HorizontalBufferMax {
			st.AddHorizontalBuffer(math.Min(o.HorizontalBufferRegain, -res.HExcess))
		}
	}
	res.Violations = st.Violations

	c.updateLiftOff()
	c.applyResets()

	limit := res.HAllowed
	if !o.StrictVelocityInvalidation {
		limit /= 2
	}
	if m.HDist <= limit {
		st.Velocity.ClearActiveHorizontal()
	}

	st.LastHDist, st.LastYDist = m.HDist, m.YDist
	st.SetLastFrom(c.from.pos())
	st.ToWasReset = c.resetTo || st.AssumeGround
	st.FromWasReset = c.resetFrom || st.AssumeGround
	st.LastFriction = st.NextFriction
	st.JoinOrRespawn = false
	return c.finish(res)
}

// finish attaches the tags to the result and emits the debug trace.
func (c *moveCheck) finish(res Result) Result {
	res.Tags = c.tags
	if c.opts.Debug {
		c.s.debug(c, res)
	}
	return res
}

func (c *moveCheck) setBackLocation() movement.Location {
	return movement.Location{Pos: c.st.SetBack(), Yaw: c.move.To.Yaw, Pitch: c.move.To.Pitch}
}

func (c *moveCheck) violationData(score float64) ViolationData {
	return ViolationData{
		Entity:   c.env.Entity,
		Check:    CheckName,
		Delta:    score,
		From:     c.from.pos(),
		To:       c.to.pos(),
		Distance: c.move.Delta().Len(),
		Tags:     append([]string(nil), c.tags...),
	}
}

// jumpAmplifier returns the jump boost amplifier in the form used by the envelopes: 0 without the
// effect, level otherwise.
func (c *moveCheck) jumpAmplifier() float64 {
	amp, ok := c.env.Effects.JumpBoostAmplifier()
	if !ok {
		return 0
	}
	return 1 + float64(amp)
}

// estimateJumpLiftOff returns a rough estimate of the height gained by the first tick of a jump.
func (c *moveCheck) estimateJumpLiftOff(margin float64) float64 {
	return game.DefaultJumpMotion + margin + 0.1*c.st.JumpAmplifier
}

// determineSprinting decides whether the move counts as sprinting. Sprinting is kept for a grace
// period after the last sprinting move, and for a few moves after sprinting was lost mid-air.
func (c *moveCheck) determineSprinting() bool {
	st, o := c.st, c.opts
	grace := !st.LastSprint.IsZero() && !c.now.After(st.LastSprint.Add(o.SprintingGrace))

	if st.LostSprintCount > 0 {
		if c.resetTo && (c.fromOnGround || c.from.resetCond()) || c.move.HDist <= o.WalkSpeed {
			st.LostSprintCount = 0
			c.tag("invalidate_lostsprint")
			return grace
		}
		c.tag("lostsprint")
		if st.LostSprintCount < 3 && c.toOnGround || c.to.resetCond() {
			st.LostSprintCount = 0
		} else {
			st.LostSprintCount--
		}
		return true
	}
	if grace {
		if !c.now.Equal(st.LastSprint) {
			c.tag("sprintgrace")
		}
		return true
	}
	return false
}

// setNextFriction sets the horizontal friction the next move inherits from this one.
func (c *moveCheck) setNextFriction() {
	switch {
	case c.from.flags.InWeb || c.to.flags.InWeb, c.from.flags.OnClimbable || c.to.flags.OnClimbable:
		c.st.NextFriction = 0
	case c.from.flags.InLiquid && c.to.flags.InLiquid:
		c.st.NextFriction = game.FrictionLiquid
	case !c.from.onGround() && !c.to.onGround():
		c.st.NextFriction = game.FrictionAir
	}
}

// updateLiftOff updates the medium the entity is considered to have lifted off from.
func (c *moveCheck) updateLiftOff() {
	st := c.st
	switch {
	case c.to.flags.InLiquid:
		jumpedIn := c.fromOnGround && !c.toOnGround && st.LiftOff == movement.LiftOffGround && st.JumpPhase <= 0 && !c.from.flags.InLiquid
		if !jumpedIn && !c.to.isNextToGround(0.15, 0.4) {
			st.LiftOff = movement.LiftOffLimitJump
		} else {
			st.LiftOff = movement.LiftOffGround
		}
	case c.to.flags.InWeb:
		st.LiftOff = movement.LiftOffLimitJump
	case c.resetTo:
		st.LiftOff = movement.LiftOffGround
	case c.from.flags.InLiquid:
		if st.LiftOff == movement.LiftOffGround && st.JumpPhase <= 0 || c.to.isNextToGround(0.15, 0.4) {
			st.LiftOff = movement.LiftOffGround
		} else {
			st.LiftOff = movement.LiftOffLimitJump
		}
	case c.from.flags.InWeb:
		st.LiftOff = movement.LiftOffLimitJump
	case c.resetFrom || st.AssumeGround:
		st.LiftOff = movement.LiftOffGround
	}
}

// applyResets re-anchors the state and updates the jump phase depending on the reset conditions met
// at both ends of the move.
func (c *moveCheck) applyResets() {
	st, m := c.st, c.move
	switch {
	case c.resetTo:
		if c.toOnGround {
			if st.BunnyHopDelay > 0 && m.YDist > 0 && c.to.y() > st.SetBack().Y()+0.12 && !c.from.resetCond() && !c.to.resetCond() {
				st.BunnyHopDelay = 0
				c.tag("resetbunny")
			}
			if m.YDist < 0 && st.Velocity.DropActiveVertical() {
				c.tag("rem_vvel")
			}
		}
		st.SetSetBack(c.to.pos())
		st.SetJumpPhase(0)
		st.ClearAccounting()
		st.NoLowJump = false
		if st.LowJump && c.resetFrom {
			st.LowJump = false
		}
	case c.resetFrom:
		st.SetSetBack(c.from.pos())
		st.SetJumpPhase(1)
		st.ClearAccounting()
		st.LowJump = false
	default:
		st.SetJumpPhase(st.JumpPhase + 1)
		if c.opts.VoidSetBack && c.to.y() < c.opts.VoidFloor {
			st.SetSetBack(c.to.pos())
		}
	}
}

// HandleHover adds the hover violation to the state of an entity that stayed in the air for too long
// at the location passed. The Result is a correction to the set-back if the move is to be cancelled.
func (s *SurvivalFly) HandleHover(st *movement.State, at movement.Location, env Environment, now time.Time) Result {
	env = env.withDefaults()
	data := ViolationData{
		Entity: env.Entity,
		Check:  CheckName,
		Delta:  s.opts.HoverViolation,
		From:   at.Pos,
		To:     at.Pos,
		Tags:   []string{"hover"},
	}
	res := Result{Score: s.opts.HoverViolation, Tags: data.Tags}
	cancel := s.acc.Record(st, data, env.Actions, now)
	res.Violations = st.Violations
	if cancel && st.HasSetBack() {
		res.Outcome = OutcomeCorrect
		res.SetBack = movement.Location{Pos: st.SetBack(), Yaw: at.Yaw, Pitch: at.Pitch}
		st.Teleport(res.SetBack.Pos)
	}
	return res
}
