package detection

import (
	"time"

	"github.com/oomph-ac/survivalfly/game"
)

// Options are the tunables of the SurvivalFly check. Speeds are blocks per tick, percentages are
// applied as value/100.
type Options struct {
	WalkSpeed        float64
	SprintMultiplier float64
	SneakSpeed       float64
	BlockSpeed       float64
	SwimSpeed        float64
	WebSpeed         float64

	WalkingPercent   float64
	SprintingPercent float64
	SneakingPercent  float64
	BlockingPercent  float64
	SwimmingPercent  float64
	// SpeedingPercent is applied on top of everything else for entities with the speeding bypass.
	SpeedingPercent float64

	DepthStrider    [4]float64
	IceMultiplier   float64
	DownStreamSpeed float64

	StepHeight float64
	YOnGround  float64
	Width      float64
	Height     float64
	EyeHeight  float64

	HorizontalBufferRegain float64

	BunnyHopMax       int
	BunnyEdibleDelay  int
	BunnyDivFriction  float64
	BunnySlopeFactor  float64
	BunnyHopRatioCold float64
	BunnyHopRatio     float64
	BunnyHopRatioMax  float64

	// VelocityGraceTicks is the amount of moves a velocity credit stays usable.
	VelocityGraceTicks uint64
	// StrictVelocityInvalidation drops used horizontal velocity as soon as a move fits the envelope
	// instead of only on moves of at most half of it.
	StrictVelocityInvalidation bool

	SprintingGrace time.Duration
	// AssumeSprint treats every entity as possibly sprinting, disabling the sprint-backwards check.
	AssumeSprint bool

	ViolationDecay  float64
	ViolationFreeze time.Duration
	HoverViolation  float64

	VerticalAccounting bool

	CobwebHack      bool
	CobwebThreshold float64
	CobwebWindow    time.Duration

	// VoidSetBack re-anchors entities falling below VoidFloor, so a set-back never lifts them out
	// of the void.
	VoidSetBack bool
	VoidFloor   float64

	Debug bool
}

// DefaultOptions ...
func DefaultOptions() Options {
	return Options{
		WalkSpeed:        game.WalkSpeed,
		SprintMultiplier: game.SprintMultiplier,
		SneakSpeed:       game.SneakSpeed,
		BlockSpeed:       game.BlockSpeed,
		SwimSpeed:        game.SwimSpeed,
		WebSpeed:         game.WebSpeed,

		WalkingPercent:   100,
		SprintingPercent: 100,
		SneakingPercent:  100,
		BlockingPercent:  100,
		SwimmingPercent:  100,
		SpeedingPercent:  200,

		DepthStrider:    game.DepthStriderMultipliers,
		IceMultiplier:   game.IceMultiplier,
		DownStreamSpeed: game.DownStreamSpeed,

		StepHeight: game.StepHeight,
		YOnGround:  game.YOnGround,
		Width:      game.PlayerWidth,
		Height:     game.PlayerHeight,
		EyeHeight:  game.PlayerEyeHeight,

		HorizontalBufferRegain: game.HorizontalBufferRegain,

		BunnyHopMax:       game.BunnyHopMax,
		BunnyEdibleDelay:  game.BunnyEdibleDelay,
		BunnyDivFriction:  game.BunnyDivFriction,
		BunnySlopeFactor:  game.BunnySlopeFactor,
		BunnyHopRatioCold: game.BunnyHopRatioCold,
		BunnyHopRatio:     game.BunnyHopRatio,
		BunnyHopRatioMax:  game.BunnyHopRatioMax,

		VelocityGraceTicks:         20,
		StrictVelocityInvalidation: true,

		SprintingGrace: 2 * time.Second,

		ViolationDecay:  0.95,
		ViolationFreeze: 2 * time.Second,
		HoverViolation:  500,

		VerticalAccounting: true,

		CobwebHack:      true,
		CobwebThreshold: 550,
		CobwebWindow:    3 * time.Second,

		VoidSetBack: true,
		VoidFloor:   0,
	}
}

// percent turns a percentage into a factor.
func percent(p float64) float64 {
	return p / 100
}
