package detection

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/survivalfly/world"
)

// Effects exposes the speed and jump modifiers of an entity. The boolean returned is false if the
// modifier does not apply.
type Effects interface {
	// SpeedAttributeMultiplier returns the movement speed attribute relative to its base value. When it
	// applies, it replaces the speed effect amplifier.
	SpeedAttributeMultiplier() (float64, bool)
	// MovementSpeedAmplifier returns the amplifier of the speed effect, 0 being level I.
	MovementSpeedAmplifier() (int, bool)
	// JumpBoostAmplifier returns the amplifier of the jump boost effect, 0 being level I.
	JumpBoostAmplifier() (int, bool)
	// DepthStriderLevel returns the depth strider level of the boots worn, from 0 to 3.
	DepthStriderLevel() int
}

// Permission is a bypass an entity may be granted.
type Permission uint8

const (
	PermissionSneaking Permission = iota
	PermissionBlocking
	PermissionSpeeding
	PermissionStep
	PermissionSprinting
)

// String ...
func (p Permission) String() string {
	switch p {
	case PermissionSneaking:
		return "sneaking"
	case PermissionBlocking:
		return "blocking"
	case PermissionSpeeding:
		return "speeding"
	case PermissionStep:
		return "step"
	case PermissionSprinting:
		return "sprinting"
	}
	return "unknown"
}

// Permissions ...
type Permissions interface {
	HasPermission(p Permission) bool
}

// ViolationData describes a single violation handed to the action pipeline.
type ViolationData struct {
	Entity string
	Check  string
	// Level is the violation level after the violation was added, Delta the amount added.
	Level float64
	Delta float64

	From     mgl64.Vec3
	To       mgl64.Vec3
	Distance float64
	Tags     []string
}

// Actions executes the configured consequences of a violation.
type Actions interface {
	// ExecuteViolationActions returns true if the move that caused the violation should be cancelled.
	ExecuteViolationActions(data ViolationData) bool
}

// Environment bundles the collaborators a single validation consults. Nil collaborators are replaced
// by neutral ones: an empty world, no effects, no permissions and actions that always cancel.
type Environment struct {
	Entity      string
	Geometry    world.Geometry
	Effects     Effects
	Permissions Permissions
	Actions     Actions
}

func (env Environment) withDefaults() Environment {
	if env.Geometry == nil {
		env.Geometry = emptyGeometry{}
	}
	if env.Effects == nil {
		env.Effects = noEffects{}
	}
	if env.Permissions == nil {
		env.Permissions = noPermissions{}
	}
	if env.Actions == nil {
		env.Actions = CancelActions{}
	}
	return env
}

type emptyGeometry struct{}

func (emptyGeometry) IsSolidGround(cube.BBox) bool                   { return false }
func (emptyGeometry) IsLiquid(mgl64.Vec3) bool                       { return false }
func (emptyGeometry) IsWeb(mgl64.Vec3) bool                          { return false }
func (emptyGeometry) IsClimbable(mgl64.Vec3) bool                    { return false }
func (emptyGeometry) IsAttachedClimbable(mgl64.Vec3) bool            { return false }
func (emptyGeometry) IsIce(mgl64.Vec3) bool                          { return false }
func (emptyGeometry) IsHeadObstructed(mgl64.Vec3, float64) bool      { return false }
func (emptyGeometry) IsDownStream(mgl64.Vec3, float64, float64) bool { return false }

type noEffects struct{}

func (noEffects) SpeedAttributeMultiplier() (float64, bool) { return 0, false }
func (noEffects) MovementSpeedAmplifier() (int, bool)       { return 0, false }
func (noEffects) JumpBoostAmplifier() (int, bool)           { return 0, false }
func (noEffects) DepthStriderLevel() int                    { return 0 }

type noPermissions struct{}

func (noPermissions) HasPermission(Permission) bool { return false }

// CancelActions cancels every move that causes a violation.
type CancelActions struct{}

// ExecuteViolationActions ...
func (CancelActions) ExecuteViolationActions(ViolationData) bool { return true }

// PermissionSet is a static set of granted permissions.
type PermissionSet map[Permission]struct{}

// NewPermissionSet ...
func NewPermissionSet(perms ...Permission) PermissionSet {
	s := make(PermissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// HasPermission ...
func (s PermissionSet) HasPermission(p Permission) bool {
	_, ok := s[p]
	return ok
}
