// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

// Pose is a translate-rotate-scale transform expressed as separate
// channels rather than a Mat4. Composing poses up a hierarchy this way
// (rather than multiplying Mat4 values and decomposing the result)
// keeps every intermediate value directly re-authorable as pos/rot/
// scale, which is what the scene graph's reparent and destroy
// operations need: the engine never has to decompose a general affine
// matrix back into TRS, only combine and invert TRS values that were
// always kept separate. This is the same non-uniform-scale-times-
// rotation approximation (ignoring the shear a true matrix product
// would introduce) that most transform hierarchies of this shape use;
// HackVR scenes do not rely on shear.
type Pose struct {
	Pos   Vec3
	Rot   Quaternion
	Scale Vec3
}

// IdentityPose is the pose of $global.
var IdentityPose = Pose{Rot: IdentityQuaternion, Scale: Vec3{X: 1, Y: 1, Z: 1}}

// ComposePose returns the world pose of a child whose local pose is
// local and whose parent's world pose is parent.
func ComposePose(parent, local Pose) Pose {
	return Pose{
		Pos:   AddVec3(parent.Pos, RotateVec3(parent.Rot, MulVec3(local.Pos, parent.Scale))),
		Rot:   MultiplyQuaternion(parent.Rot, local.Rot),
		Scale: MulVec3(parent.Scale, local.Scale),
	}
}

// DecomposePose is the inverse of ComposePose: given a parent's world
// pose and a child's desired world pose, it returns the child's local
// pose relative to that parent.
func DecomposePose(parent, world Pose) Pose {
	invParentRot := Conjugate(parent.Rot)
	invScale := Vec3{X: 1 / safeDiv(parent.Scale.X), Y: 1 / safeDiv(parent.Scale.Y), Z: 1 / safeDiv(parent.Scale.Z)}
	return Pose{
		Pos:   MulVec3(RotateVec3(invParentRot, SubVec3(world.Pos, parent.Pos)), invScale),
		Rot:   MultiplyQuaternion(invParentRot, world.Rot),
		Scale: MulVec3(world.Scale, invScale),
	}
}
