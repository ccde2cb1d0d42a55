package event

import "github.com/df-mc/dragonfly/server/block/cube"

// BlockEvent sets a block of the replayed world. Blocks are identified by their name and properties.
type BlockEvent struct {
	NopEvent
	Pos        cube.Pos       `json:"pos"`
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
}

func (BlockEvent) ID() byte {
	return EventIDBlock
}

// EffectEvent mirrors a mob effect packet sent to an entity. Duration is in ticks.
type EffectEvent struct {
	NopEvent
	Operation byte  `json:"operation"`
	Effect    int32 `json:"effect"`
	Amplifier int32 `json:"amplifier"`
	Duration  int32 `json:"duration"`
}

func (EffectEvent) ID() byte {
	return EventIDEffect
}

// AttributeEvent carries the movement speed attribute of an entity.
type AttributeEvent struct {
	NopEvent
	Speed float64 `json:"speed"`
	// Sprinting is true if the sprint modifier is included in Speed.
	Sprinting bool `json:"sprinting,omitempty"`
}

func (AttributeEvent) ID() byte {
	return EventIDAttribute
}

// EquipmentEvent carries the enchantments of the armour of an entity that affect movement.
type EquipmentEvent struct {
	NopEvent
	DepthStrider int `json:"depth_strider"`
}

func (EquipmentEvent) ID() byte {
	return EventIDEquipment
}
