package movement

// Medium is the medium an entity occupies at one end of a move. A position that matches more than one
// medium resolves to the first one in the order Web, Climbable, Liquid, Ice, Ground, Air.
type Medium uint8

const (
	MediumAir Medium = iota
	MediumGround
	MediumIce
	MediumLiquid
	MediumClimbable
	MediumWeb
)

// String ...
func (m Medium) String() string {
	switch m {
	case MediumAir:
		return "air"
	case MediumGround:
		return "ground"
	case MediumIce:
		return "ice"
	case MediumLiquid:
		return "liquid"
	case MediumClimbable:
		return "climbable"
	case MediumWeb:
		return "web"
	}
	return "unknown"
}

// Flags are the raw medium classifications of a single position.
type Flags struct {
	OnGround    bool
	InLiquid    bool
	InWeb       bool
	OnClimbable bool
	OnIce       bool
}

// Medium resolves the flags into a single Medium.
func (f Flags) Medium() Medium {
	switch {
	case f.InWeb:
		return MediumWeb
	case f.OnClimbable:
		return MediumClimbable
	case f.InLiquid:
		return MediumLiquid
	case f.OnIce && f.OnGround:
		return MediumIce
	case f.OnGround:
		return MediumGround
	}
	return MediumAir
}

// ResetCondition returns true if the flags describe a medium that ends a jump phase without the
// entity standing on ground.
func (f Flags) ResetCondition() bool {
	return f.InLiquid || f.InWeb || f.OnClimbable
}

// LiftOff is the medium an entity left when it became airborne.
type LiftOff uint8

const (
	// LiftOffGround allows a full jump.
	LiftOffGround LiftOff = iota
	// LiftOffLimitJump restricts the entity to a short hop, e.g. after leaving a liquid without
	// touching ground.
	LiftOffLimitJump
)

// String ...
func (l LiftOff) String() string {
	if l == LiftOffLimitJump {
		return "limit_jump"
	}
	return "ground"
}
