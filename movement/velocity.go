package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/survivalfly/game"
)

// Credit is an amount of externally granted movement (knockback, explosions) waiting to be used.
type Credit struct {
	Amount float64
	// Expiry is the last tick the credit may still be used on.
	Expiry uint64
	// Activated is the tick the credit got used on, zero while it is still queued.
	Activated uint64
}

// Velocity holds the horizontal and vertical velocity credits of an entity. Queued credits are
// consumed oldest-first and turn into active credits, which keep granting freedom until they are
// invalidated.
type Velocity struct {
	queuedH []Credit
	activeH []Credit
	queuedV []Credit
	activeV []Credit

	jumpPhase bool
}

// Add queues the velocity passed. The horizontal magnitude and any upwards component become separate
// credits that expire grace ticks after tick.
func (v *Velocity) Add(tick uint64, vel mgl64.Vec3, grace uint64) {
	if h := game.HorizontalLength(vel); h > 0 {
		v.queuedH = append(v.queuedH, Credit{Amount: h, Expiry: tick + grace})
	}
	if vel.Y() > 0 {
		v.queuedV = append(v.queuedV, Credit{Amount: vel.Y(), Expiry: tick + grace})
	}
}

// Expire drops queued credits that were not used in time, and active credits that have been in use for
// longer than grace ticks.
func (v *Velocity) Expire(tick, grace uint64) {
	v.queuedH = dropExpired(v.queuedH, tick)
	v.queuedV = dropExpired(v.queuedV, tick)
	v.activeH = dropOutdated(v.activeH, tick, grace)
	v.activeV = dropOutdated(v.activeV, tick, grace)
}

func dropOutdated(credits []Credit, tick, grace uint64) []Credit {
	n := 0
	for _, c := range credits {
		if c.Activated+grace >= tick {
			credits[n] = c
			n++
		}
	}
	return credits[:n]
}

func dropExpired(credits []Credit, tick uint64) []Credit {
	n := 0
	for _, c := range credits {
		if c.Expiry >= tick {
			credits[n] = c
			n++
		}
	}
	return credits[:n]
}

// HorizontalFreedom returns the horizontal distance granted by active credits.
func (v *Velocity) HorizontalFreedom() (f float64) {
	for _, c := range v.activeH {
		f += c.Amount
	}
	return f
}

// UseHorizontal drains queued horizontal credits oldest-first until amount is covered, and returns the
// distance that could be used. Queued credits are decremented by what was taken from them.
func (v *Velocity) UseHorizontal(amount float64, tick uint64) (used float64) {
	n := 0
	for i, c := range v.queuedH {
		if used >= amount {
			n += copy(v.queuedH[n:], v.queuedH[i:])
			break
		}
		take := math.Min(c.Amount, amount-used)
		used += take
		v.activeH = append(v.activeH, Credit{Amount: take, Expiry: c.Expiry, Activated: tick})
		if c.Amount -= take; c.Amount > 1e-9 {
			v.queuedH[n] = c
			n++
		}
	}
	v.queuedH = v.queuedH[:n]
	if used > 0 {
		v.jumpPhase = true
	}
	return used
}

// HasActiveHorizontal returns true if any horizontal credit is in use.
func (v *Velocity) HasActiveHorizontal() bool {
	return len(v.activeH) > 0
}

// ClearActiveHorizontal invalidates all horizontal credits in use.
func (v *Velocity) ClearActiveHorizontal() {
	v.activeH = v.activeH[:0]
}

// UseVertical activates the oldest queued vertical credit, if any. It returns false if there was
// nothing to activate.
func (v *Velocity) UseVertical(tick uint64) bool {
	if len(v.queuedV) == 0 {
		return false
	}
	c := v.queuedV[0]
	v.queuedV = v.queuedV[1:]
	c.Activated = tick
	v.activeV = append(v.activeV, c)
	v.jumpPhase = true
	return true
}

// VerticalFreedom returns the extra height granted by active vertical credits.
func (v *Velocity) VerticalFreedom() (f float64) {
	for _, c := range v.activeV {
		f += ArcHeight(c.Amount)
	}
	return f
}

// HasAnyVertical returns true if there are queued or active vertical credits.
func (v *Velocity) HasAnyVertical() bool {
	return len(v.queuedV) > 0 || len(v.activeV) > 0
}

// DropActiveVertical invalidates vertical credits in use and returns true if there were any.
func (v *Velocity) DropActiveVertical() bool {
	had := len(v.activeV) > 0
	v.activeV = v.activeV[:0]
	return had
}

// JumpPhase returns true while the current airborne phase is driven by used velocity.
func (v *Velocity) JumpPhase() bool {
	return v.jumpPhase
}

// ResetJumpPhase ends the velocity driven jump phase unless credits are still in use. It returns true
// if the phase is kept.
func (v *Velocity) ResetJumpPhase() bool {
	if !v.jumpPhase {
		return false
	}
	if len(v.activeV) > 0 || len(v.activeH) > 0 {
		return true
	}
	v.jumpPhase = false
	return false
}

// Clear drops every credit.
func (v *Velocity) Clear() {
	v.queuedH, v.activeH = v.queuedH[:0], v.activeH[:0]
	v.queuedV, v.activeV = v.queuedV[:0], v.activeV[:0]
	v.jumpPhase = false
}

// ArcHeight returns the height reached by an entity launched upwards with the initial vertical speed
// passed.
func ArcHeight(speed float64) (height float64) {
	for i := 0; speed > 0 && i < 100; i++ {
		height += speed
		speed = (speed - 0.08) * 0.98
	}
	return height
}
