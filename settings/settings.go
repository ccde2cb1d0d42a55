package settings

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/oomph-ac/survivalfly/detection"
	"github.com/oomph-ac/survivalfly/punishment"
	"github.com/pelletier/go-toml"
)

// Settings contains everything that can be configured for the SurvivalFly check and the tools around it.
type Settings struct {
	SurvivalFly struct {
		Enabled bool
		Debug   bool

		Speeds struct {
			Walk             float64
			SprintMultiplier float64
			Sneak            float64
			Block            float64
			Swim             float64
			Web              float64
			DownStream       float64
			IceMultiplier    float64
			DepthStrider     []float64
		}
		Percents struct {
			Walking   float64
			Sprinting float64
			Sneaking  float64
			Blocking  float64
			Swimming  float64
			Speeding  float64
		}
		Bounds struct {
			StepHeight float64
			YOnGround  float64
			Width      float64
			Height     float64
			EyeHeight  float64
		}
		Bunny struct {
			HopMax       int
			EdibleDelay  int
			DivFriction  float64
			SlopeFactor  float64
			HopRatioCold float64
			HopRatio     float64
			HopRatioMax  float64
		}
		Velocity struct {
			GraceTicks         uint64
			StrictInvalidation bool
		}
		Sprinting struct {
			// GraceMillis is how long an entity may have stopped sprinting and still move at sprint speed.
			GraceMillis  int64
			AssumeSprint bool
		}
		Violations struct {
			Decay        float64
			FreezeMillis int64
			Hover        float64
		}
		HorizontalBufferRegain float64
		VerticalAccounting     bool
		Cobweb                 struct {
			Hack         bool
			Threshold    float64
			WindowMillis int64
		}
		Void struct {
			SetBack bool
			Floor   float64
		}
	}
	// Actions are the punishments executed once a violation level is exceeded.
	Actions []Threshold
	Journal struct {
		Enabled bool
		Path    string
	}
	Tracker struct {
		Shards  int
		Workers int
	}
	StatsView struct {
		Enabled bool
		Addr    string
	}
}

// Threshold is the configurable form of punishment.Threshold.
type Threshold struct {
	Level       float64
	Punishments []string
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	s := Settings{}
	o := detection.DefaultOptions()

	sf := &s.SurvivalFly
	sf.Enabled = true
	sf.Debug = o.Debug

	sf.Speeds.Walk = o.WalkSpeed
	sf.Speeds.SprintMultiplier = o.SprintMultiplier
	sf.Speeds.Sneak = o.SneakSpeed
	sf.Speeds.Block = o.BlockSpeed
	sf.Speeds.Swim = o.SwimSpeed
	sf.Speeds.Web = o.WebSpeed
	sf.Speeds.DownStream = o.DownStreamSpeed
	sf.Speeds.IceMultiplier = o.IceMultiplier
	sf.Speeds.DepthStrider = o.DepthStrider[:]

	sf.Percents.Walking = o.WalkingPercent
	sf.Percents.Sprinting = o.SprintingPercent
	sf.Percents.Sneaking = o.SneakingPercent
	sf.Percents.Blocking = o.BlockingPercent
	sf.Percents.Swimming = o.SwimmingPercent
	sf.Percents.Speeding = o.SpeedingPercent

	sf.Bounds.StepHeight = o.StepHeight
	sf.Bounds.YOnGround = o.YOnGround
	sf.Bounds.Width = o.Width
	sf.Bounds.Height = o.Height
	sf.Bounds.EyeHeight = o.EyeHeight

	sf.Bunny.HopMax = o.BunnyHopMax
	sf.Bunny.EdibleDelay = o.BunnyEdibleDelay
	sf.Bunny.DivFriction = o.BunnyDivFriction
	sf.Bunny.SlopeFactor = o.BunnySlopeFactor
	sf.Bunny.HopRatioCold = o.BunnyHopRatioCold
	sf.Bunny.HopRatio = o.BunnyHopRatio
	sf.Bunny.HopRatioMax = o.BunnyHopRatioMax

	sf.Velocity.GraceTicks = o.VelocityGraceTicks
	sf.Velocity.StrictInvalidation = o.StrictVelocityInvalidation

	sf.Sprinting.GraceMillis = o.SprintingGrace.Milliseconds()
	sf.Sprinting.AssumeSprint = o.AssumeSprint

	sf.Violations.Decay = o.ViolationDecay
	sf.Violations.FreezeMillis = o.ViolationFreeze.Milliseconds()
	sf.Violations.Hover = o.HoverViolation

	sf.HorizontalBufferRegain = o.HorizontalBufferRegain
	sf.VerticalAccounting = o.VerticalAccounting

	sf.Cobweb.Hack = o.CobwebHack
	sf.Cobweb.Threshold = o.CobwebThreshold
	sf.Cobweb.WindowMillis = o.CobwebWindow.Milliseconds()

	sf.Void.SetBack = o.VoidSetBack
	sf.Void.Floor = o.VoidFloor

	for _, t := range punishment.DefaultThresholds() {
		names := make([]string, 0, len(t.Punishments))
		for _, p := range t.Punishments {
			names = append(names, p.String())
		}
		s.Actions = append(s.Actions, Threshold{Level: t.Level, Punishments: names})
	}

	s.Journal.Path = "violations.db"
	s.Tracker.Shards = 16
	s.StatsView.Addr = "localhost:18066"
	return s
}

// Validate returns an error if the settings cannot be used.
func (s Settings) Validate() error {
	sf := s.SurvivalFly
	if len(sf.Speeds.DepthStrider) != 4 {
		return fmt.Errorf("depth strider needs 4 multipliers, got %d", len(sf.Speeds.DepthStrider))
	}
	for name, v := range map[string]float64{
		"walk speed":  sf.Speeds.Walk,
		"swim speed":  sf.Speeds.Swim,
		"width":       sf.Bounds.Width,
		"height":      sf.Bounds.Height,
		"step height": sf.Bounds.StepHeight,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, v)
		}
	}
	if sf.Violations.Decay < 0 || sf.Violations.Decay > 1 {
		return fmt.Errorf("violation decay must be within [0, 1], got %v", sf.Violations.Decay)
	}
	if sf.Bunny.HopMax < 0 || sf.Bunny.EdibleDelay > sf.Bunny.HopMax {
		return fmt.Errorf("invalid bunny hop delays %d/%d", sf.Bunny.EdibleDelay, sf.Bunny.HopMax)
	}
	if _, err := s.Thresholds(); err != nil {
		return err
	}
	if s.Tracker.Shards < 0 || s.Tracker.Workers < 0 {
		return errors.New("tracker shards and workers may not be negative")
	}
	return nil
}

// Options converts the settings to the options of the check.
func (s Settings) Options() detection.Options {
	sf := s.SurvivalFly
	o := detection.Options{
		WalkSpeed:        sf.Speeds.Walk,
		SprintMultiplier: sf.Speeds.SprintMultiplier,
		SneakSpeed:       sf.Speeds.Sneak,
		BlockSpeed:       sf.Speeds.Block,
		SwimSpeed:        sf.Speeds.Swim,
		WebSpeed:         sf.Speeds.Web,

		WalkingPercent:   sf.Percents.Walking,
		SprintingPercent: sf.Percents.Sprinting,
		SneakingPercent:  sf.Percents.Sneaking,
		BlockingPercent:  sf.Percents.Blocking,
		SwimmingPercent:  sf.Percents.Swimming,
		SpeedingPercent:  sf.Percents.Speeding,

		IceMultiplier:   sf.Speeds.IceMultiplier,
		DownStreamSpeed: sf.Speeds.DownStream,

		StepHeight: sf.Bounds.StepHeight,
		YOnGround:  sf.Bounds.YOnGround,
		Width:      sf.Bounds.Width,
		Height:     sf.Bounds.Height,
		EyeHeight:  sf.Bounds.EyeHeight,

		HorizontalBufferRegain: sf.HorizontalBufferRegain,

		BunnyHopMax:       sf.Bunny.HopMax,
		BunnyEdibleDelay:  sf.Bunny.EdibleDelay,
		BunnyDivFriction:  sf.Bunny.DivFriction,
		BunnySlopeFactor:  sf.Bunny.SlopeFactor,
		BunnyHopRatioCold: sf.Bunny.HopRatioCold,
		BunnyHopRatio:     sf.Bunny.HopRatio,
		BunnyHopRatioMax:  sf.Bunny.HopRatioMax,

		VelocityGraceTicks:         sf.Velocity.GraceTicks,
		StrictVelocityInvalidation: sf.Velocity.StrictInvalidation,

		SprintingGrace: time.Duration(sf.Sprinting.GraceMillis) * time.Millisecond,
		AssumeSprint:   sf.Sprinting.AssumeSprint,

		ViolationDecay:  sf.Violations.Decay,
		ViolationFreeze: time.Duration(sf.Violations.FreezeMillis) * time.Millisecond,
		HoverViolation:  sf.Violations.Hover,

		VerticalAccounting: sf.VerticalAccounting,

		CobwebHack:      sf.Cobweb.Hack,
		CobwebThreshold: sf.Cobweb.Threshold,
		CobwebWindow:    time.Duration(sf.Cobweb.WindowMillis) * time.Millisecond,

		VoidSetBack: sf.Void.SetBack,
		VoidFloor:   sf.Void.Floor,

		Debug: sf.Debug,
	}
	copy(o.DepthStrider[:], sf.Speeds.DepthStrider)
	return o
}

// Thresholds parses the configured action list.
func (s Settings) Thresholds() ([]punishment.Threshold, error) {
	out := make([]punishment.Threshold, 0, len(s.Actions))
	for _, a := range s.Actions {
		p, err := punishment.ParseAll(a.Punishments)
		if err != nil {
			return nil, fmt.Errorf("actions above %v: %w", a.Level, err)
		}
		out = append(out, punishment.Threshold{Level: a.Level, Punishments: p})
	}
	return out, nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if data, err := toml.Marshal(s); err != nil {
			return fmt.Errorf("failed encoding default settings: %w", err)
		} else if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed creating settings file: %w", err)
		}
		return nil
	}
	return errors.New("settings file already exists")
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %w", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err = settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return settings, nil
}
