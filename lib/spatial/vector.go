// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"math"

	"github.com/hackvr/hackvr/lib/wire"
)

// Vec3 is re-exported from package wire so callers never convert
// between an on-wire vector and an internal one.
type Vec3 = wire.Vec3

// Up, Forward, Right (and their negations Left and Back) are the
// local-axis conventions the Euler-to-quaternion conversion and the
// tracking modes are defined against: a right-handed frame with +Y up
// and -Z forward, matching the convention most Go 3D engines in the
// example corpus (and the glTF/OpenGL family generally) use.
var (
	Up      = Vec3{X: 0, Y: 1, Z: 0}
	Down    = Vec3{X: 0, Y: -1, Z: 0}
	Forward = Vec3{X: 0, Y: 0, Z: -1}
	Back    = Vec3{X: 0, Y: 0, Z: 1}
	Right   = Vec3{X: 1, Y: 0, Z: 0}
	Left    = Vec3{X: -1, Y: 0, Z: 0}
)

// AddVec3 returns a + b.
func AddVec3(a, b Vec3) Vec3 {
	return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// SubVec3 returns a - b.
func SubVec3(a, b Vec3) Vec3 {
	return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// ScaleVec3 returns v scaled componentwise by s.
func ScaleVec3(v Vec3, s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// MulVec3 returns a and b multiplied componentwise, the effect of
// applying a non-uniform Scale(b) to the point a.
func MulVec3(a, b Vec3) Vec3 {
	return Vec3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

// DotVec3 returns the dot product of a and b.
func DotVec3(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// CrossVec3 returns the cross product a x b.
func CrossVec3(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// LengthVec3 returns the Euclidean length of v.
func LengthVec3(v Vec3) float64 {
	return math.Sqrt(DotVec3(v, v))
}

// NormalizeVec3 returns v scaled to unit length. Returns the zero
// vector if v is the zero vector (callers that must reject a zero
// vector, e.g. raycast direction, check LengthVec3 first).
func NormalizeVec3(v Vec3) Vec3 {
	l := LengthVec3(v)
	if l == 0 {
		return Vec3{}
	}
	return ScaleVec3(v, 1/l)
}

// LerpVec3 linearly interpolates between a and b at parameter t in
// [0, 1].
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return AddVec3(a, ScaleVec3(SubVec3(b, a), t))
}
