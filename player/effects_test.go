package player

import (
	"testing"
	"time"

	"github.com/df-mc/dragonfly/server/entity/effect"
	"github.com/sandertv/gophertunnel/minecraft/protocol/packet"
	"github.com/stretchr/testify/require"
)

func lasting(t *testing.T, id int32, level int, d time.Duration) effect.Effect {
	t.Helper()
	et, ok := effect.ByID(int(id))
	require.True(t, ok)
	lt, ok := et.(effect.LastingType)
	require.True(t, ok)
	return effect.New(lt, level, d)
}

func TestEffectsFromPackets(t *testing.T) {
	e := NewEffects()
	_, ok := e.JumpBoostAmplifier()
	require.False(t, ok)

	require.True(t, e.Handle(&packet.MobEffect{
		EntityRuntimeID: 1,
		Operation:       packet.MobEffectAdd,
		EffectType:      packet.EffectJumpBoost,
		Amplifier:       1,
		Duration:        200,
	}, 1))
	amp, ok := e.JumpBoostAmplifier()
	require.True(t, ok)
	require.Equal(t, 1, amp)

	// Packets for other entities are ignored.
	require.False(t, e.Handle(&packet.MobEffect{
		EntityRuntimeID: 2,
		Operation:       packet.MobEffectAdd,
		EffectType:      packet.EffectSpeed,
		Duration:        200,
	}, 1))
	_, ok = e.MovementSpeedAmplifier()
	require.False(t, ok)

	require.True(t, e.Handle(&packet.MobEffect{
		EntityRuntimeID: 1,
		Operation:       packet.MobEffectRemove,
		EffectType:      packet.EffectJumpBoost,
	}, 1))
	_, ok = e.JumpBoostAmplifier()
	require.False(t, ok)
}

func TestEffectsKeepHigherLevel(t *testing.T) {
	e := NewEffects()
	e.Add(packet.EffectSpeed, lasting(t, packet.EffectSpeed, 2, time.Second))
	e.Add(packet.EffectSpeed, lasting(t, packet.EffectSpeed, 1, time.Second))

	amp, ok := e.MovementSpeedAmplifier()
	require.True(t, ok)
	require.Equal(t, 1, amp)
}

func TestEffectsExpire(t *testing.T) {
	e := NewEffects()
	e.Add(packet.EffectSpeed, lasting(t, packet.EffectSpeed, 1, 50*time.Millisecond))
	e.Tick()
	_, ok := e.Get(packet.EffectSpeed)
	require.False(t, ok)
}

func TestDepthStriderClamped(t *testing.T) {
	e := NewEffects()
	e.SetDepthStrider(7)
	require.Equal(t, 3, e.DepthStriderLevel())
	e.SetDepthStrider(-1)
	require.Zero(t, e.DepthStriderLevel())
}
