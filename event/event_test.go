package event

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	id := uuid.New()
	move := MoveEvent{
		NopEvent: NopEvent{EvEntity: id, EvTime: 1000},
		From:     Location{Pos: mgl64.Vec3{0.5, 64, 0.5}, Yaw: 90},
		To:       Location{Pos: mgl64.Vec3{0.7, 64, 0.5}, Yaw: 90},
		Input:    Input{Sprinting: true},
	}
	dat, err := Encode(move)
	require.NoError(t, err)
	require.Equal(t, byte('2'), dat[0])

	ev, err := Decode(dat)
	require.NoError(t, err)
	require.Equal(t, move, ev)
	require.Equal(t, id, ev.Entity())
	require.True(t, ev.(MoveEvent).Movement().Sprinting)

	blk := BlockEvent{NopEvent: NopEvent{EvEntity: id}, Pos: cube.Pos{1, 63, -2}, Name: "minecraft:stone"}
	dat, err = Encode(blk)
	require.NoError(t, err)
	ev, err = Decode(dat)
	require.NoError(t, err)
	require.Equal(t, blk, ev)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte("2"))
	require.Error(t, err)

	_, err = Decode([]byte("x {}"))
	require.Error(t, err)

	_, err = Decode([]byte("99 {}"))
	require.Error(t, err)

	_, err = Decode([]byte("2 {not json"))
	require.Error(t, err)
}
