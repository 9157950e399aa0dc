// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import "math"

// Euler is the pan/tilt/roll angle triple in degrees, per spec.md
// §4.8. Angles are authored on R_local, applied intrinsically
// roll -> tilt -> pan.
type Euler struct {
	Pan, Tilt, Roll float64
}

// ToQuaternion converts e to a quaternion, the only form this
// implementation stores or interpolates rotations in (spec.md §4.8:
// "Implementers convert Euler to quaternion before storage/
// interpolation to avoid gimbal lock during blending").
//
// Axes are chosen by effect, not bare right-hand-rule, per spec.md:
// pan about local Up turns right as pan increases; tilt about local
// Left looks up as tilt increases; roll about local Forward tilts the
// head right as roll increases. Composition is intrinsic roll then
// tilt then pan, which as quaternion multiplication (where the
// left-hand operand is applied last) is qPan * qTilt * qRoll.
//
// Gimbal-lock tie-break: at tilt = +-90 degrees, pan and roll rotate
// about the same effective axis and are not individually recoverable
// from the resulting orientation; this implementation does not
// attempt to special-case that boundary during conversion — the
// degenerate orientation it produces is well-defined even though the
// (pan, roll) split that produced it is not, and Slerp blends the
// resulting quaternions exactly as it would any other pair. A
// zero-roll tie-break would apply only to code that must
// decompose a quaternion back into Euler form, which this
// implementation never does (no command re-derives Euler angles from
// stored rotation state).
func (e Euler) ToQuaternion() Quaternion {
	qRoll := FromAxisAngle(Forward, degToRad(e.Roll))
	qTilt := FromAxisAngle(Left, -degToRad(e.Tilt))
	qPan := FromAxisAngle(Up, -degToRad(e.Pan))
	return NormalizeQuaternion(MultiplyQuaternion(qPan, MultiplyQuaternion(qTilt, qRoll)))
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
