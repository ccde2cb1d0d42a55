package world

import (
	"math"
	"sync"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/world"
)

var (
	blockNameMapping     map[uint64]string
	blockNameMappingOnce sync.Once
)

func initBlockNameMapping() {
	blockNameMapping = make(map[uint64]string, len(world.Blocks()))
	for _, b := range world.Blocks() {
		x, y := b.Hash()
		if x == 0 && y == math.MaxUint64 {
			continue
		}
		name, _ := b.EncodeBlock()
		blockNameMapping[world.BlockHash(b)] = name
	}
}

// BlockName returns the canonical name of a block.
func BlockName(b world.Block) string {
	blockNameMappingOnce.Do(initBlockNameMapping)
	if n, ok := blockNameMapping[world.BlockHash(b)]; ok {
		return n
	}
	n, _ := b.EncodeBlock()
	return n
}

// BlockFriction returns the friction of the block.
func BlockFriction(b world.Block) float64 {
	if f, ok := b.(block.Frictional); ok {
		return f.Friction()
	}

	switch BlockName(b) {
	case "minecraft:slime":
		return 0.8
	case "minecraft:ice", "minecraft:packed_ice", "minecraft:frosted_ice":
		return 0.98
	case "minecraft:blue_ice":
		return 0.99
	default:
		return 0.6
	}
}

// BlockSlippery returns true if the block is slippery enough to count as ice.
func BlockSlippery(b world.Block) bool {
	return BlockFriction(b) >= 0.98
}

// BlockClimbable returns whether the given block is climbable.
func BlockClimbable(b world.Block) bool {
	if _, ok := b.(block.Ladder); ok {
		return true
	}
	return blockVine(b)
}

func blockVine(b world.Block) bool {
	switch BlockName(b) {
	case "minecraft:vine", "minecraft:cave_vines", "minecraft:cave_vines_body_with_berries", "minecraft:cave_vines_head_with_berries",
		"minecraft:twisting_vines", "minecraft:weeping_vines":
		return true
	default:
		return false
	}
}

// BlockWeb returns true if the block is a cobweb.
func BlockWeb(b world.Block) bool {
	return BlockName(b) == "minecraft:web"
}

// BlockLiquid returns the block as a liquid if it is one.
func BlockLiquid(b world.Block) (world.Liquid, bool) {
	l, ok := b.(world.Liquid)
	return l, ok
}
