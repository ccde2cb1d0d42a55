package world

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/survivalfly/game"
	"github.com/stretchr/testify/require"
)

func flatWorld() *MapSource {
	src := NewMapSource()
	src.Fill(cube.Pos{-8, 63, -8}, cube.Pos{8, 63, 8}, block.Stone{})
	return src
}

func TestSolidGround(t *testing.T) {
	g := NewBlockGeometry(flatWorld())

	standing := mgl64.Vec3{0.5, 64, 0.5}
	require.True(t, g.IsSolidGround(game.FeetBox(standing, game.PlayerWidth, 0, game.YOnGround, 0)))

	airborne := mgl64.Vec3{0.5, 64.5, 0.5}
	require.False(t, g.IsSolidGround(game.FeetBox(airborne, game.PlayerWidth, 0, game.YOnGround, 0)))
	require.True(t, g.IsSolidGround(game.FeetBox(airborne, game.PlayerWidth, 0, 0.6, 0)))
}

func TestLiquidAndWeb(t *testing.T) {
	src := flatWorld()
	src.SetBlock(cube.Pos{0, 64, 0}, block.Water{Depth: 8, Still: true})
	g := NewBlockGeometry(src)

	require.True(t, g.IsLiquid(mgl64.Vec3{0.5, 64, 0.5}))
	require.False(t, g.IsLiquid(mgl64.Vec3{2.5, 64, 2.5}))
	require.False(t, g.IsSolidGround(game.FeetBox(mgl64.Vec3{0.5, 64.5, 0.5}, game.PlayerWidth, 0, game.YOnGround, 0)))
	require.False(t, g.IsWeb(mgl64.Vec3{0.5, 64, 0.5}))
}

func TestHeadObstructed(t *testing.T) {
	src := flatWorld()
	src.SetBlock(cube.Pos{0, 66, 0}, block.Stone{})
	g := NewBlockGeometry(src)

	require.True(t, g.IsHeadObstructed(mgl64.Vec3{0.5, 64, 0.5}, 0.4))
	require.False(t, g.IsHeadObstructed(mgl64.Vec3{3.5, 64, 3.5}, 0.4))
}

func TestDownStream(t *testing.T) {
	src := flatWorld()
	src.SetBlock(cube.Pos{0, 64, 0}, block.Water{Depth: 7})
	src.SetBlock(cube.Pos{1, 64, 0}, block.Water{Depth: 6})
	g := NewBlockGeometry(src)

	pos := mgl64.Vec3{0.5, 64, 0.5}
	require.True(t, g.IsDownStream(pos, 0.2, 0))
	require.False(t, g.IsDownStream(pos, -0.2, 0))
	require.False(t, g.IsDownStream(pos, 0, 0))
}

func TestMapSource(t *testing.T) {
	src := NewMapSource()
	src.SetBlock(cube.Pos{1, 2, 3}, block.Stone{})
	require.Equal(t, 1, src.Len())
	src.SetBlock(cube.Pos{1, 2, 3}, block.Air{})
	require.Zero(t, src.Len())
	require.IsType(t, block.Air{}, src.Block(cube.Pos{1, 2, 3}))
}

func TestCollisionOverrides(t *testing.T) {
	src := NewMapSource()
	src.SetBlock(cube.Pos{0, 63, 0}, block.SoulSand{})
	g := NewBlockGeometry(src)

	onSoulSand := mgl64.Vec3{0.5, 63.875, 0.5}
	require.True(t, g.IsSolidGround(game.FeetBox(onSoulSand, game.PlayerWidth, 0, game.YOnGround, 0)))
	require.False(t, g.IsSolidGround(game.FeetBox(mgl64.Vec3{0.5, 64, 0.5}, game.PlayerWidth, 0, game.YOnGround, 0)))

	src.SetBlock(cube.Pos{0, 63, 0}, block.IronBars{})
	boxes := g.BlockCollisions(cube.Pos{0, 63, 0})
	require.Len(t, boxes, 1)
	require.InDelta(t, 2.0/16.0, boxes[0].Width(), 1e-9)
}
