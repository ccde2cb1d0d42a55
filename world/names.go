package world

import (
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/world"
)

// BlockByName resolves a block from its name and properties. Liquids default to a still source block.
func BlockByName(name string, properties map[string]any) (world.Block, bool) {
	switch name {
	case "minecraft:air", "":
		return block.Air{}, true
	case "minecraft:stone":
		if len(properties) == 0 {
			return block.Stone{}, true
		}
	case "minecraft:water":
		if len(properties) == 0 {
			return block.Water{Depth: 8, Still: true}, true
		}
	case "minecraft:lava":
		if len(properties) == 0 {
			return block.Lava{Depth: 8, Still: true}, true
		}
	}
	if properties == nil {
		properties = map[string]any{}
	}
	return world.BlockByName(name, properties)
}
