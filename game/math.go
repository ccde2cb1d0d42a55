package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Round64 will round a float64 to a given precision.
func Round64(val float64, precision int) float64 {
	pwr := math.Pow(10, float64(precision))
	return math.Round(val*pwr) / pwr
}

// RoundVec64 will round a 64-bit vector to a given precision.
func RoundVec64(v mgl64.Vec3, p int) mgl64.Vec3 {
	return mgl64.Vec3{Round64(v.X(), p), Round64(v.Y(), p), Round64(v.Z(), p)}
}

// HorizontalLength returns the length of a vector on the X/Z plane.
func HorizontalLength(vec mgl64.Vec3) float64 {
	return math.Hypot(vec.X(), vec.Z())
}

// SameHorizontalPos returns true if both positions share the same X and Z coordinates.
func SameHorizontalPos(a, b mgl64.Vec3) bool {
	return a.X() == b.X() && a.Z() == b.Z()
}

// DirectionVector returns the horizontal direction a yaw value (in degrees) is facing.
func DirectionVector(yaw float64) mgl64.Vec3 {
	yawRad := mgl64.DegToRad(yaw)
	return mgl64.Vec3{-math.Sin(yawRad), 0, math.Cos(yawRad)}
}

// MovingBackwards returns true if a horizontal movement of (dx, dz) points away from the direction the
// yaw is facing.
func MovingBackwards(dx, dz, yaw float64) bool {
	if dx == 0 && dz == 0 {
		return false
	}
	dir := DirectionVector(yaw)
	return dx*dir.X()+dz*dir.Z() < 0
}

// ClampFloat clamp the given value to the given range.
func ClampFloat(num, min, max float64) float64 {
	if num < min {
		return min
	}
	return math.Min(num, max)
}

// Sign returns -1, 0 or 1 depending on the sign of the value passed.
func Sign(v float64) int {
	if v < 0 {
		return -1
	} else if v > 0 {
		return 1
	}
	return 0
}
