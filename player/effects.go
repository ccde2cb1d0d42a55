package player

import (
	"strings"
	"time"

	"github.com/df-mc/dragonfly/server/entity/effect"
	"github.com/sandertv/gophertunnel/minecraft/protocol/packet"
)

const (
	movementAttribute     = "minecraft:movement"
	baseMovementAttribute = 0.1
	sprintModifierName    = "Sprinting speed boost"
	sprintModifierFactor  = 1.3
)

// Effects tracks the status effects and speed related attributes of an entity, as sent to it by the
// server. It is not safe for concurrent use.
type Effects struct {
	effects map[int32]effect.Effect

	speedMultiplier    float64
	hasSpeedMultiplier bool
	depthStrider       int
}

// NewEffects ...
func NewEffects() *Effects {
	return &Effects{effects: make(map[int32]effect.Effect)}
}

// Get returns an effect from the passed effect ID. If the effect is not found, false is returned along
// with an empty effect.
func (e *Effects) Get(effectID int32) (effect.Effect, bool) {
	eff, ok := e.effects[effectID]
	return eff, ok
}

// Add adds an effect. An effect already present at a higher level is kept.
func (e *Effects) Add(effectID int32, eff effect.Effect) {
	if current, ok := e.effects[effectID]; ok && current.Level() > eff.Level() {
		return
	}
	e.effects[effectID] = eff
}

// Remove ...
func (e *Effects) Remove(effectID int32) {
	delete(e.effects, effectID)
}

// Tick ticks all the effects, and removes those effects in which the duration has expired.
func (e *Effects) Tick() {
	for id, eff := range e.effects {
		eff = eff.TickDuration()
		if eff.Duration() <= 0 {
			delete(e.effects, id)
		} else {
			e.effects[id] = eff
		}
	}
}

// Handle updates the effects from a packet the server sent to the entity with the runtime ID passed.
// It returns false if the packet was not relevant.
func (e *Effects) Handle(pk packet.Packet, runtimeID uint64) bool {
	switch pk := pk.(type) {
	case *packet.MobEffect:
		if pk.EntityRuntimeID != runtimeID {
			return false
		}
		switch pk.Operation {
		case packet.MobEffectAdd, packet.MobEffectModify:
			t, ok := effect.ByID(int(pk.EffectType))
			if !ok {
				return false
			}
			lt, ok := t.(effect.LastingType)
			if !ok {
				return false
			}
			e.effects[pk.EffectType] = effect.New(lt, int(pk.Amplifier)+1, time.Duration(pk.Duration*50)*time.Millisecond)
		case packet.MobEffectRemove:
			e.Remove(pk.EffectType)
		}
		return true
	case *packet.UpdateAttributes:
		if pk.EntityRuntimeID != runtimeID {
			return false
		}
		for _, attr := range pk.Attributes {
			if attr.Name != movementAttribute {
				continue
			}
			multiplier := float64(attr.Value) / baseMovementAttribute
			for _, mod := range attr.Modifiers {
				if strings.EqualFold(mod.Name, sprintModifierName) {
					multiplier /= sprintModifierFactor
				}
			}
			e.SetSpeedAttributeMultiplier(multiplier)
			return true
		}
	}
	return false
}

// SetSpeedAttributeMultiplier sets the multiplier of the movement speed attribute relative to its base
// value, sprinting excluded.
func (e *Effects) SetSpeedAttributeMultiplier(multiplier float64) {
	e.speedMultiplier, e.hasSpeedMultiplier = multiplier, true
}

// ClearSpeedAttributeMultiplier makes the speed potion amplifier apply again.
func (e *Effects) ClearSpeedAttributeMultiplier() {
	e.hasSpeedMultiplier = false
}

// SetDepthStrider sets the depth strider level of the boots worn.
func (e *Effects) SetDepthStrider(level int) {
	e.depthStrider = max(0, min(level, 3))
}

// SpeedAttributeMultiplier ...
func (e *Effects) SpeedAttributeMultiplier() (float64, bool) {
	return e.speedMultiplier, e.hasSpeedMultiplier
}

// MovementSpeedAmplifier returns the amplifier of the speed effect, 0 being level I.
func (e *Effects) MovementSpeedAmplifier() (int, bool) {
	return e.amplifier(packet.EffectSpeed)
}

// JumpBoostAmplifier returns the amplifier of the jump boost effect, 0 being level I.
func (e *Effects) JumpBoostAmplifier() (int, bool) {
	return e.amplifier(packet.EffectJumpBoost)
}

// DepthStriderLevel ...
func (e *Effects) DepthStriderLevel() int {
	return e.depthStrider
}

func (e *Effects) amplifier(effectID int32) (int, bool) {
	eff, ok := e.effects[effectID]
	if !ok {
		return 0, false
	}
	return eff.Level() - 1, true
}
