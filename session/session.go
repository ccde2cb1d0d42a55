package session

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/oomph-ac/survivalfly"
	"github.com/oomph-ac/survivalfly/detection"
	"github.com/oomph-ac/survivalfly/event"
	"github.com/oomph-ac/survivalfly/oerror"
	"github.com/oomph-ac/survivalfly/player"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
	"github.com/sandertv/gophertunnel/minecraft/protocol/packet"
	"github.com/sirupsen/logrus"
)

// runtimeID is the runtime ID packets replayed into a session are addressed to.
const runtimeID = 1

// Stats summarises the moves a session validated.
type Stats struct {
	Moves             int
	Corrections       int
	SilentCorrections int
	Hovers            int
	MaxViolations     float64
	// Tags counts how often every tag appeared on a corrected move.
	Tags map[string]int
}

// Session feeds the events of a single entity into a tracker.
type Session struct {
	id      uuid.UUID
	name    string
	tracker *survivalfly.Tracker
	effects *player.Effects
	env     detection.Environment
	log     *logrus.Logger

	stats Stats
}

// New creates a session for the entity passed. The environment passed is used for every move, with
// the effects of the session filled in.
func New(id uuid.UUID, tracker *survivalfly.Tracker, env detection.Environment, log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	s := &Session{
		id:      id,
		name:    id.String(),
		tracker: tracker,
		effects: player.NewEffects(),
		env:     env,
		log:     log,
		stats:   Stats{Tags: make(map[string]int)},
	}
	s.env.Effects = s.effects
	s.env.Entity = s.name
	return s
}

// Name returns the display name of the entity, or its ID if no name is known.
func (s *Session) Name() string {
	return s.name
}

// Stats returns the statistics of the session so far.
func (s *Session) Stats() Stats {
	return s.stats
}

// HandleEvent applies a single event to the session.
func (s *Session) HandleEvent(ev event.Event) error {
	if ev.Entity() != s.id {
		return oerror.New("event for %s handled by session of %s", ev.Entity(), s.id)
	}
	now := time.UnixMilli(ev.Time())

	switch ev := ev.(type) {
	case event.JoinEvent:
		if ev.Name != "" {
			s.name = ev.Name
			s.env.Entity = ev.Name
		}
		if ev.Respawn {
			s.tracker.Respawn(s.id, ev.Pos)
		} else {
			s.tracker.Join(s.id, ev.Pos)
		}
	case event.MoveEvent:
		s.effects.Tick()
		res := s.tracker.Validate(s.id, ev.From.Loc(), ev.To.Loc(), ev.Movement(), s.env, now)
		s.record(res)
	case event.VelocityEvent:
		s.tracker.AddVelocity(s.id, ev.Velocity)
	case event.TeleportEvent:
		s.tracker.Teleport(s.id, ev.Pos)
	case event.QuitEvent:
		s.tracker.Quit(s.id)
	case event.SprintEvent:
		if ev.Lost {
			s.tracker.LostSprint(s.id)
		} else if ev.Sprinting {
			s.tracker.Sprinted(s.id, now)
		}
	case event.SneakEvent:
		s.tracker.SetReallySneaking(s.id, ev.Sneaking)
	case event.EffectEvent:
		s.effects.Handle(&packet.MobEffect{
			EntityRuntimeID: runtimeID,
			Operation:       ev.Operation,
			EffectType:      ev.Effect,
			Amplifier:       ev.Amplifier,
			Duration:        ev.Duration,
		}, runtimeID)
	case event.AttributeEvent:
		attr := protocol.Attribute{
			AttributeValue: protocol.AttributeValue{Name: "minecraft:movement", Value: float32(ev.Speed)},
		}
		if ev.Sprinting {
			attr.Modifiers = []protocol.AttributeModifier{{Name: "Sprinting speed boost", Amount: 0.3}}
		}
		s.effects.Handle(&packet.UpdateAttributes{EntityRuntimeID: runtimeID, Attributes: []protocol.Attribute{attr}}, runtimeID)
	case event.EquipmentEvent:
		s.effects.SetDepthStrider(ev.DepthStrider)
	case event.HoverEvent:
		s.stats.Hovers++
		res := s.tracker.Hover(s.id, ev.At.Loc(), s.env, now)
		s.stats.MaxViolations = max(s.stats.MaxViolations, res.Violations)
	default:
		return oerror.New("unexpected event %T in session", ev)
	}
	return nil
}

func (s *Session) record(res detection.Result) {
	s.stats.Moves++
	s.stats.MaxViolations = max(s.stats.MaxViolations, res.Violations)
	switch res.Outcome {
	case detection.OutcomeCorrect:
		s.stats.Corrections++
	case detection.OutcomeSilentCorrect:
		s.stats.SilentCorrections++
	default:
		return
	}
	for _, tag := range res.Tags {
		s.stats.Tags[tag]++
	}
	s.log.Debugf("%s: %s to %v (%s)", s.name, res.Outcome, res.SetBack.Pos, res.TagString())
}
