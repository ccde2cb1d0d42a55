package game

const (
	// WalkSpeed is the horizontal distance a player covers walking on flat ground in a single tick.
	WalkSpeed = 0.221
	// SprintMultiplier is applied to WalkSpeed while sprinting.
	SprintMultiplier = 1.3

	SneakSpeed = 0.13
	BlockSpeed = 0.16
	SwimSpeed  = 0.115
	WebSpeed   = 0.105

	// DownStreamSpeed is the horizontal speed reachable while swimming with a flowing liquid.
	DownStreamSpeed = 0.19
	IceMultiplier   = 2.5
	IceTicks        = 20

	HorizontalBufferMax    = 1.0
	HorizontalBufferRegain = 0.2

	ClimbSpeed = WalkSpeed * 1.3

	BunnyHopMax       = 10
	BunnyDivFriction  = 160.0
	BunnyEdibleDelay  = 6
	BunnySlopeFactor  = 0.66
	BunnyHopRatio     = 1.314
	BunnyHopRatioCold = 1.11
	BunnyHopRatioMax  = 2.15

	FrictionAir    = 0.98
	FrictionLiquid = 0.89

	DefaultJumpMotion = 0.42
	MaxJumpHeight     = 1.35
	StepHeight        = 0.6
	YOnGround         = 0.001

	PlayerWidth     = 0.6
	PlayerHeight    = 1.8
	PlayerEyeHeight = 1.62

	// MaxJumpPhase is the amount of airborne ticks a regular jump may take before the ascent has to end.
	MaxJumpPhase        = 6
	MaxLimitedJumpPhase = 3
)

// DepthStriderMultipliers are the swim speed multipliers applied for each depth strider level. The
// final level brings the swim speed up to walking speed.
var DepthStriderMultipliers = [4]float64{
	1.0,
	0.1645 / SwimSpeed,
	0.1995 / SwimSpeed,
	WalkSpeed / SwimSpeed,
}
