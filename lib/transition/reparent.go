// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transition

import (
	"time"

	"github.com/hackvr/hackvr/lib/identifier"
	"github.com/hackvr/hackvr/lib/scene"
	"github.com/hackvr/hackvr/lib/spatial"
)

// ReparentPolicy selects how Reparent handles a channel transition
// that is in flight when its object is reparented. WorldSpacePolicy is
// the only implementation: an in-flight transition is converted into
// world space at the moment of reparenting and continues there, then
// is re-expressed in the new local frame — the least surprising
// behavior for a viewer, since the object's visible motion through
// world space is unaffected by a reparent that happens to land
// mid-transition.
type ReparentPolicy int

const WorldSpacePolicy ReparentPolicy = 0

// Reparent moves id to newParent in mode, exactly as scene.Graph.Reparent
// does, but first converts any in-flight pos/rot/scale transition on id
// into world space so it continues visually unchanged across the move.
// Callers must use this method instead of calling graph.Reparent
// directly whenever an Engine is tracking transitions for the scene.
func (e *Engine) Reparent(id, newParent identifier.ID, mode scene.ReparentMode, now time.Time) error {
	oldParentID, ok := e.parentOf(id)
	if !ok {
		return e.graph.Reparent(id, newParent, mode)
	}
	oldParentWorld := e.graph.WorldPose(oldParentID)

	posCh, hasPos := e.pos[id]
	rotCh, hasRot := e.rot[id]
	scaleCh, hasScale := e.scale[id]

	if err := e.graph.Reparent(id, newParent, mode); err != nil {
		return err
	}
	newParentWorld := e.graph.WorldPose(newParent)

	if hasPos {
		e.pos[id] = &vecChannel{
			start:     localize(oldParentWorld, newParentWorld, posCh.start, true),
			target:    localize(oldParentWorld, newParentWorld, posCh.target, true),
			startTime: posCh.startTime,
			duration:  posCh.duration,
		}
	}
	if hasRot {
		e.rot[id] = &rotChannel{
			start:     spatial.MultiplyQuaternion(spatial.Conjugate(newParentWorld.Rot), spatial.MultiplyQuaternion(oldParentWorld.Rot, rotCh.start)),
			target:    spatial.MultiplyQuaternion(spatial.Conjugate(newParentWorld.Rot), spatial.MultiplyQuaternion(oldParentWorld.Rot, rotCh.target)),
			startTime: rotCh.startTime,
			duration:  rotCh.duration,
		}
	}
	if hasScale {
		e.scale[id] = &vecChannel{
			start:     localize(oldParentWorld, newParentWorld, scaleCh.start, false),
			target:    localize(oldParentWorld, newParentWorld, scaleCh.target, false),
			startTime: scaleCh.startTime,
			duration:  scaleCh.duration,
		}
	}
	return nil
}

func (e *Engine) parentOf(id identifier.ID) (identifier.ID, bool) {
	o, ok := e.graph.Object(id)
	if !ok {
		return "", false
	}
	return o.Parent, true
}

// localize re-expresses a local value (position, when asPosition, or
// scale) authored against oldParent's world pose as the equivalent
// local value against newParent's world pose, by converting through
// world space.
func localize(oldParent, newParent spatial.Pose, v spatial.Vec3, asPosition bool) spatial.Vec3 {
	if asPosition {
		world := spatial.ComposePose(oldParent, spatial.Pose{Pos: v, Rot: spatial.IdentityQuaternion, Scale: spatial.Vec3{X: 1, Y: 1, Z: 1}}).Pos
		return spatial.DecomposePose(newParent, spatial.Pose{Pos: world, Rot: spatial.IdentityQuaternion, Scale: spatial.Vec3{X: 1, Y: 1, Z: 1}}).Pos
	}
	worldScale := spatial.MulVec3(oldParent.Scale, v)
	return spatial.Vec3{
		X: worldScale.X / safeDivScale(newParent.Scale.X),
		Y: worldScale.Y / safeDivScale(newParent.Scale.Y),
		Z: worldScale.Z / safeDivScale(newParent.Scale.Z),
	}
}

func safeDivScale(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
