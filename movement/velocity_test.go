package movement

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestHorizontalCreditsConsumedOldestFirst(t *testing.T) {
	v := &Velocity{}
	v.Add(1, mgl64.Vec3{0.3, 0, 0.4}, 20) // 0.5
	v.Add(2, mgl64.Vec3{1, 0, 0}, 20)

	used := v.UseHorizontal(0.7, 3)
	require.InDelta(t, 0.7, used, 1e-9)
	require.InDelta(t, 0.7, v.HorizontalFreedom(), 1e-9)
	require.True(t, v.HasActiveHorizontal())
	require.True(t, v.JumpPhase())

	// 0.8 of the second credit remains queued.
	used = v.UseHorizontal(5, 4)
	require.InDelta(t, 0.8, used, 1e-9)

	v.ClearActiveHorizontal()
	require.Zero(t, v.HorizontalFreedom())
	require.Zero(t, v.UseHorizontal(1, 5))
}

func TestCreditsExpireLazily(t *testing.T) {
	v := &Velocity{}
	v.Add(1, mgl64.Vec3{0.5, 0.4, 0}, 20)
	require.True(t, v.HasAnyVertical())

	v.Expire(21, 20)
	require.True(t, v.HasAnyVertical())

	v.Expire(22, 20)
	require.False(t, v.HasAnyVertical())
	require.Zero(t, v.UseHorizontal(1, 22))
}

func TestActiveHorizontalCreditsExpire(t *testing.T) {
	v := &Velocity{}
	v.Add(1, mgl64.Vec3{0.6, 0, 0}, 20)
	require.InDelta(t, 0.3, v.UseHorizontal(0.3, 2), 1e-9)

	// The rest of the queued credit expired, the used part stays for grace ticks after it was used.
	v.Expire(22, 20)
	require.True(t, v.HasActiveHorizontal())
	require.InDelta(t, 0.3, v.HorizontalFreedom(), 1e-9)
	require.Zero(t, v.UseHorizontal(1, 22))

	v.Expire(23, 20)
	require.False(t, v.HasActiveHorizontal())
	require.False(t, v.ResetJumpPhase())
	require.False(t, v.JumpPhase())
}

func TestVerticalCredit(t *testing.T) {
	v := &Velocity{}
	require.False(t, v.UseVertical(1))

	v.Add(1, mgl64.Vec3{0, 0.5, 0}, 20)
	require.True(t, v.UseVertical(2))
	require.Greater(t, v.VerticalFreedom(), 0.5)
	require.True(t, v.ResetJumpPhase())

	require.True(t, v.DropActiveVertical())
	require.False(t, v.ResetJumpPhase())
	require.False(t, v.JumpPhase())
}

func TestArcHeight(t *testing.T) {
	// A regular jump peaks at roughly 1.25 blocks.
	require.InDelta(t, 1.25, ArcHeight(0.42), 0.01)
	require.Zero(t, ArcHeight(0))
}
