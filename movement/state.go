package movement

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/survivalfly/assert"
	"github.com/oomph-ac/survivalfly/game"
)

// Unset is the value of LastHDist and LastYDist when there is no previous move to refer to.
const Unset = math.MaxFloat64

// DefaultWalkSpeedAttribute is the movement speed attribute value of a player without modifiers.
const DefaultWalkSpeedAttribute = 0.2

// State is the movement state of a single tracked entity. It persists across moves and must only be
// mutated by one goroutine at a time.
type State struct {
	setBack    mgl64.Vec3
	hasSetBack bool

	// LastFrom is the origin of the previous move.
	LastFrom    mgl64.Vec3
	hasLastFrom bool

	// JumpPhase is the amount of consecutive airborne ticks since a reset condition was left.
	JumpPhase int
	// LastHDist and LastYDist are the distances of the previous move, or Unset.
	LastHDist float64
	LastYDist float64

	LiftOff LiftOff

	// HorizontalBuffer is excess horizontal distance that may still be tolerated.
	HorizontalBuffer float64
	BunnyHopDelay    int

	Velocity   *Velocity
	Accounting *Accounting

	// Violations is the accumulated violation level, LastFlagged the time it last increased.
	Violations  float64
	LastFlagged time.Time

	// ReallySneaking is true if sneaking was toggled by the entity itself.
	ReallySneaking bool
	LowJump        bool
	NoLowJump      bool
	// AssumeGround is set when ground contact was reconstructed for the current move.
	AssumeGround bool

	IceTicks      int
	JumpAmplifier float64

	LastFriction float64
	NextFriction float64

	ToWasReset   bool
	FromWasReset bool

	// JoinOrRespawn is set until the first move after a join or respawn was validated.
	JoinOrRespawn bool

	LostSprintCount int
	LastSprint      time.Time

	CobwebScore float64
	CobwebSince time.Time

	// WalkSpeed is the movement speed attribute of the entity.
	WalkSpeed float64

	// Tick is incremented on every validated move and drives the velocity grace windows.
	Tick uint64
}

// NewState returns a fresh state anchored at the position passed.
func NewState(pos mgl64.Vec3) *State {
	s := &State{
		LastHDist:  Unset,
		LastYDist:  Unset,
		Velocity:   &Velocity{},
		Accounting: NewAccounting(),
		WalkSpeed:  DefaultWalkSpeedAttribute,
	}
	s.SetSetBack(pos)
	s.ResetPositions(pos)
	return s
}

// SetBack returns the last position known to be legitimate.
func (s *State) SetBack() mgl64.Vec3 {
	return s.setBack
}

// HasSetBack ...
func (s *State) HasSetBack() bool {
	return s.hasSetBack
}

// SetSetBack anchors the state at pos.
func (s *State) SetSetBack(pos mgl64.Vec3) {
	s.setBack = pos
	s.hasSetBack = true
}

// HasLastFrom ...
func (s *State) HasLastFrom() bool {
	return s.hasLastFrom
}

// SetLastFrom records the origin of the move that is being committed.
func (s *State) SetLastFrom(pos mgl64.Vec3) {
	s.LastFrom = pos
	s.hasLastFrom = true
}

// HasLastHDist ...
func (s *State) HasLastHDist() bool {
	return s.LastHDist != Unset
}

// HasLastYDist ...
func (s *State) HasLastYDist() bool {
	return s.LastYDist != Unset
}

// ResetPositions forgets the movement history, treating pos as the new origin.
func (s *State) ResetPositions(pos mgl64.Vec3) {
	s.SetLastFrom(pos)
	s.LastHDist, s.LastYDist = Unset, Unset
	s.ClearAccounting()
}

// ClearAccounting ...
func (s *State) ClearAccounting() {
	s.Accounting.Clear()
}

// SetJumpPhase ...
func (s *State) SetJumpPhase(phase int) {
	assert.IsTrue(phase >= 0, "jump phase must not be negative (got %d)", phase)
	s.JumpPhase = phase
}

// AddHorizontalBuffer adds to the horizontal buffer, keeping it within its bounds.
func (s *State) AddHorizontalBuffer(amount float64) {
	s.HorizontalBuffer = game.ClampFloat(s.HorizontalBuffer+amount, 0, game.HorizontalBufferMax)
	assert.IsTrue(s.HorizontalBuffer >= 0 && s.HorizontalBuffer <= game.HorizontalBufferMax, "horizontal buffer out of range (%f)", s.HorizontalBuffer)
}

// Teleport applies a teleport or set-back to pos. The anchor moves to pos and the airborne phase is
// restarted.
func (s *State) Teleport(pos mgl64.Vec3) {
	s.SetSetBack(pos)
	s.ResetPositions(pos)
	s.JumpPhase = 0
	s.LowJump, s.NoLowJump = false, false
	s.AssumeGround = false
	s.LiftOff = LiftOffGround
	s.ToWasReset, s.FromWasReset = false, false
	s.Velocity.ClearActiveHorizontal()
}

// Respawn prepares the state for a join or respawn at pos.
func (s *State) Respawn(pos mgl64.Vec3) {
	s.Teleport(pos)
	s.BunnyHopDelay = 0
	s.IceTicks = 0
	s.LastFriction, s.NextFriction = 0, 0
	s.Velocity.Clear()
	s.JoinOrRespawn = true
}
