// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"math"
	"testing"
)

func almostEqualVec3(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestIdentityEulerIsIdentityQuaternion(t *testing.T) {
	q := Euler{}.ToQuaternion()
	if !almostEqualVec3(RotateVec3(q, Forward), Forward, 1e-9) {
		t.Fatalf("expected identity rotation, got forward rotated to %+v", RotateVec3(q, Forward))
	}
}

func TestSlerpEndpoints(t *testing.T) {
	a := IdentityQuaternion
	b := FromAxisAngle(Up, math.Pi/2)
	if got := Slerp(a, b, 0); !almostEqualQuat(got, a) {
		t.Fatalf("Slerp at t=0 should equal a, got %+v", got)
	}
	if got := Slerp(a, b, 1); !almostEqualQuat(got, b) {
		t.Fatalf("Slerp at t=1 should equal b, got %+v", got)
	}
}

func almostEqualQuat(a, b Quaternion) bool {
	const eps = 1e-9
	return math.Abs(a.W-b.W) < eps && math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestSlerpTakesShortestArc(t *testing.T) {
	a := FromAxisAngle(Up, 0.01)
	b := FromAxisAngle(Up, -0.01+2*math.Pi) // the long way around to nearly the same orientation
	mid := Slerp(a, b, 0.5)
	// The shortest-arc midpoint should stay close to a and b, not swing
	// all the way around through the opposite hemisphere.
	if DotQuaternion(mid, a) < 0 {
		t.Fatalf("expected shortest-arc interpolation, got a quaternion on the far hemisphere: %+v", mid)
	}
}

func TestTRSInverseRoundTrips(t *testing.T) {
	pos := Vec3{X: 1, Y: 2, Z: 3}
	track := FromAxisAngle(Up, 0.3)
	local := FromAxisAngle(Right, 0.7)
	scale := Vec3{X: 2, Y: 1, Z: 0.5}

	m := TRS(pos, track, local, scale)
	inv := InverseTRS(pos, track, local, scale)

	p := Vec3{X: 5, Y: -1, Z: 2}
	roundTrip := Apply(inv, Apply(m, p))
	if !almostEqualVec3(roundTrip, p, 1e-9) {
		t.Fatalf("expected inverse to round-trip, got %+v want %+v", roundTrip, p)
	}
}

func TestEulerTiltPositiveLooksUp(t *testing.T) {
	q := Euler{Tilt: 10}.ToQuaternion()
	got := RotateVec3(q, Forward)
	if got.Y <= 0 {
		t.Fatalf("positive tilt should look up (Y > 0), got %+v", got)
	}
}

func TestEulerRollPositiveTiltsHeadRight(t *testing.T) {
	q := Euler{Roll: 10}.ToQuaternion()
	got := RotateVec3(q, Up)
	if got.X <= 0 {
		t.Fatalf("positive roll should tilt the head right (X > 0), got %+v", got)
	}
}

func TestEulerPanPositiveTurnsRight(t *testing.T) {
	q := Euler{Pan: 10}.ToQuaternion()
	got := RotateVec3(q, Forward)
	if got.X <= 0 {
		t.Fatalf("positive pan should turn right (X > 0), got %+v", got)
	}
}

func TestMultiplyComposesLeftAfterRight(t *testing.T) {
	translate := Translate(Vec3{X: 10, Y: 0, Z: 0})
	scale := ScaleMat(Vec3{X: 2, Y: 2, Z: 2})
	combined := Multiply(translate, scale)

	p := Vec3{X: 1, Y: 0, Z: 0}
	got := Apply(combined, p)
	want := Apply(translate, Apply(scale, p))
	if !almostEqualVec3(got, want, 1e-9) {
		t.Fatalf("Multiply(a, b) applied to p should equal a(b(p)): got %+v want %+v", got, want)
	}
}
