// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

// Mat4 is a 4x4 affine transform in row-major order, operating on
// column vectors: for a point p, Apply(m, p) computes m * p. Every
// Mat4 this package constructs is a composition of Translate,
// RotationFromQuaternion, and ScaleMat factors (a TRS matrix), which
// is exactly what the transition engine needs to invert cheaply: see
// InverseTRS.
type Mat4 struct {
	m [16]float64
}

// IdentityMat4 is the identity transform.
var IdentityMat4 = Mat4{m: [16]float64{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}}

// Translate returns the matrix that translates by v.
func Translate(v Vec3) Mat4 {
	m := IdentityMat4
	m.m[3] = v.X
	m.m[7] = v.Y
	m.m[11] = v.Z
	return m
}

// ScaleMat returns the matrix that scales componentwise by v.
func ScaleMat(v Vec3) Mat4 {
	return Mat4{m: [16]float64{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}}
}

// RotationFromQuaternion returns the rotation matrix equivalent to q.
func RotationFromQuaternion(q Quaternion) Mat4 {
	q = NormalizeQuaternion(q)
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return Mat4{m: [16]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y), 0,
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x), 0,
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}}
}

// Multiply returns a*b: applying the result to a point first applies
// b, then a — matching the "." composition spec.md §4.8 requires.
func Multiply(a, b Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a.m[row*4+k] * b.m[k*4+col]
			}
			out.m[row*4+col] = sum
		}
	}
	return out
}

// Apply transforms point p (implicit w=1) by m.
func Apply(m Mat4, p Vec3) Vec3 {
	return Vec3{
		X: m.m[0]*p.X + m.m[1]*p.Y + m.m[2]*p.Z + m.m[3],
		Y: m.m[4]*p.X + m.m[5]*p.Y + m.m[6]*p.Z + m.m[7],
		Z: m.m[8]*p.X + m.m[9]*p.Y + m.m[10]*p.Z + m.m[11],
	}
}

// TRS builds the local transform chain spec.md §4.8 defines for a
// single object: Translate(pos) . track . local . Scale(scale). track
// and local are the tracking-layer and authored-rotation quaternions;
// pass IdentityQuaternion for either when that layer contributes no
// rotation.
func TRS(pos Vec3, track, local Quaternion, scale Vec3) Mat4 {
	rot := MultiplyQuaternion(track, local)
	return Multiply(Translate(pos), Multiply(RotationFromQuaternion(rot), ScaleMat(scale)))
}

// InverseTRS returns the inverse of TRS(pos, track, local, scale)
// without a general 4x4 inverse: since every factor is individually
// and cheaply invertible (Translate(-pos), the rotation's conjugate,
// Scale(1/scale)), the inverse of the product is the product of the
// inverses in reverse order. scale components must be non-zero;
// callers never construct a degenerate (zero) scale through the
// set-object-transform command, which would make the object
// unrenderable regardless.
func InverseTRS(pos Vec3, track, local Quaternion, scale Vec3) Mat4 {
	rot := MultiplyQuaternion(track, local)
	invScale := Vec3{X: 1 / safeDiv(scale.X), Y: 1 / safeDiv(scale.Y), Z: 1 / safeDiv(scale.Z)}
	invRot := RotationFromQuaternion(Conjugate(rot))
	return Multiply(ScaleMat(invScale), Multiply(invRot, Translate(ScaleVec3(pos, -1))))
}

func safeDiv(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
