package world

import (
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/block/model"
	"github.com/df-mc/dragonfly/server/world"
)

// modelBoxes returns the collision boxes of a block relative to its position. Blocks whose model
// differs from what clients collide with are overridden by name.
func modelBoxes(b world.Block, pos cube.Pos, src world.BlockSource) []cube.BBox {
	name, props := b.EncodeBlock()
	switch name {
	case "minecraft:portal", "minecraft:end_portal", "minecraft:web",
		"minecraft:redstone_ore", "minecraft:redstone_wire", "minecraft:lever",
		"minecraft:golden_rail", "minecraft:detector_rail", "minecraft:activator_rail", "minecraft:rail",
		"minecraft:redstone_torch", "minecraft:unlit_redstone_torch",
		"minecraft:tallgrass", "minecraft:fern", "minecraft:large_fern", "minecraft:rose_bush", "minecraft:peony",
		"minecraft:red_mushroom", "minecraft:brown_mushroom":
		return nil
	case "minecraft:bed":
		return []cube.BBox{cube.Box(0, 0, 0, 1, 9.0/16.0, 1)}
	case "minecraft:waterlily":
		return []cube.BBox{cube.Box(0, 0, 0, 1, 1.0/64.0, 1)}
	case "minecraft:soul_sand":
		return []cube.BBox{cube.Box(0, 0, 0, 1, 7.0/8.0, 1)}
	case "minecraft:snow_layer":
		height, ok := props["height"].(int32)
		if !ok {
			return nil
		}
		return []cube.BBox{cube.Box(0, 0, 0, 1, float64(height)/8.0, 1)}
	case "minecraft:repeater", "minecraft:unpowered_repeater", "minecraft:powered_repeater",
		"minecraft:comparator", "minecraft:unpowered_comparator", "minecraft:powered_comparator":
		return []cube.BBox{cube.Box(0, 0, 0, 1, 1.0/8.0, 1)}
	case "minecraft:daylight_detector", "minecraft:daylight_detector_inverted":
		return []cube.BBox{cube.Box(0, 0, 0, 1, 3.0/8.0, 1)}
	case "minecraft:flower_pot":
		return []cube.BBox{cube.Box(5/16.0, 0, 5/16.0, 11/16.0, 3/8.0, 11/16.0)}
	case "minecraft:end_portal_frame":
		return []cube.BBox{cube.Box(0, 0, 0, 1, 13.0/16.0, 1)}
	}
	if blockVine(b) {
		return nil
	}

	switch m := b.Model().(type) {
	case model.Wall:
		return []cube.BBox{wallBox(m)}
	}
	if _, ok := b.(block.IronBars); ok {
		return ironBarsBoxes(pos, src)
	}
	return b.Model().BBox(pos, src)
}

// wallBox returns the box of a wall, which is one and a half blocks high so it cannot be jumped over.
func wallBox(w model.Wall) cube.BBox {
	north, south := w.NorthConnection > 0, w.SouthConnection > 0
	west, east := w.WestConnection > 0, w.EastConnection > 0

	inset := 0.25
	if !w.Post && ((north && south && !west && !east) || (!north && !south && west && east)) {
		inset = 0.3125
	}

	box := cube.Box(0, 0, 0, 1, 1.5, 1)
	if !north {
		box = box.ExtendTowards(cube.FaceNorth, -inset)
	}
	if !south {
		box = box.ExtendTowards(cube.FaceSouth, -inset)
	}
	if !west {
		box = box.ExtendTowards(cube.FaceWest, -inset)
	}
	if !east {
		box = box.ExtendTowards(cube.FaceEast, -inset)
	}
	return box
}

// ironBarsBoxes returns the boxes of iron bars, a thin post with arms towards every connected side.
func ironBarsBoxes(pos cube.Pos, src world.BlockSource) (boxes []cube.BBox) {
	const (
		post = 7.0 / 16.0
		arm  = 8.0 / 16.0
	)
	connects := func(f cube.Face) bool {
		side := pos.Side(f)
		switch b := src.Block(side).(type) {
		case block.IronBars, block.Wall:
			return true
		default:
			return b.Model().FaceSolid(side, f.Opposite(), src)
		}
	}

	west, east := connects(cube.FaceWest), connects(cube.FaceEast)
	if west || east {
		bb := cube.Box(0, 0, 0, 1, 1, 1).Stretch(cube.Z, -post)
		if !west {
			bb = bb.ExtendTowards(cube.FaceWest, -arm)
		} else if !east {
			bb = bb.ExtendTowards(cube.FaceEast, -arm)
		}
		boxes = append(boxes, bb)
	}

	north, south := connects(cube.FaceNorth), connects(cube.FaceSouth)
	if north || south {
		bb := cube.Box(0, 0, 0, 1, 1, 1).Stretch(cube.X, -post)
		if !north {
			bb = bb.ExtendTowards(cube.FaceNorth, -arm)
		} else if !south {
			bb = bb.ExtendTowards(cube.FaceSouth, -arm)
		}
		boxes = append(boxes, bb)
	}

	if len(boxes) == 0 {
		boxes = append(boxes, cube.Box(0, 0, 0, 1, 1, 1).Stretch(cube.X, -post).Stretch(cube.Z, -post))
	}
	return boxes
}
