// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package spatial provides the vector, quaternion, and affine-matrix
// primitives the transition engine needs to evaluate spec.md §4.8's
// transform chain:
//
//	T_world(O) = T_world(P) . Translate(pos_O) . R_track(O) . R_local(O) . Scale(scale_O)
//
// where "." composes left-after-right on a column vector: (A.B).v ==
// A.(B.v). Rotations are stored and interpolated as quaternions (never
// as raw Euler angles) specifically to avoid gimbal lock during
// blending, per spec.md §4.8's explicit implementer note. Package
// transition is the only consumer; this package knows nothing about
// objects, scenes, or the wire protocol beyond reusing wire.Vec3 as
// its vector type so callers never convert between an on-wire vector
// and an internal one.
package spatial
