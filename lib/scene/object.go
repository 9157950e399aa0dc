// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"github.com/hackvr/hackvr/lib/identifier"
	"github.com/hackvr/hackvr/lib/spatial"
)

// TrackMode names the rotation-aiming behavior track-object's
// tracking layer applies, distinct from the authored R_local rotation.
type TrackMode string

const (
	TrackNone  TrackMode = ""
	TrackPlane TrackMode = "plane"
	TrackFocus TrackMode = "focus"
)

// Object is one node of the scene graph. Pos/Rot/Scale are the
// object's current authored local pose — the value the transition
// engine's channels settle onto between transitions, and the value it
// interpolates away from when a new transition begins. Graph writes
// these only in Reparent and Destroy (to re-express a world pose under
// a new parent), so package transition is free to own the
// time-evolution of this value from outside.
type Object struct {
	ID     identifier.ID
	Parent identifier.ID

	// Rot is stored as a quaternion, never as Euler, matching spec.md
	// §4.8: "convert Euler to quaternion before storage/interpolation
	// to avoid gimbal lock during blending". set-object-transform's
	// rot:euler argument is converted once on receipt; nothing in this
	// package ever decomposes a quaternion back into Euler form.
	Pos   spatial.Vec3
	Rot   spatial.Quaternion
	Scale spatial.Vec3

	Geometry identifier.ID // empty means no attached geometry

	TrackTarget identifier.ID // empty means not tracking
	TrackMode   TrackMode

	Clickable bool
	TextInput bool
	Href      string
}

// LocalPose returns o's local translate-rotate-scale pose, R_local
// only — the tracking rotation R_track is a transition-engine render
// overlay, not part of the authored local pose a reparent or destroy
// preserves (see doc.go).
func (o *Object) LocalPose() spatial.Pose {
	return spatial.Pose{Pos: o.Pos, Rot: o.Rot, Scale: o.Scale}
}
