// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transition

import (
	"math"
	"time"

	"github.com/hackvr/hackvr/lib/identifier"
	"github.com/hackvr/hackvr/lib/scene"
	"github.com/hackvr/hackvr/lib/spatial"
)

// trackState is one object's tracking configuration: a target, an
// aiming mode, and the blend that smooths switching onto (or off of,
// or between configurations of) tracking, per spec.md §4.8's "the t
// parameter smooths enabling/disabling/reconfiguring tracking,
// independent of target motion". Continuous motion of the tracked
// target is never itself smoothed: only the command-triggered
// transition between blend.start and the live aim is.
type trackState struct {
	target identifier.ID
	mode   scene.TrackMode

	// preTrackingUp is R_track's effect on Up the moment this
	// configuration replaced the previous one — the fallback up-hint
	// for focus mode when the live aim direction is nearly parallel to
	// local Up (Open Question: falls back to pre-tracking local up,
	// not a world axis, to avoid a sudden flip).
	preTrackingUp spatial.Vec3

	blendStart    spatial.Quaternion
	blendStarted  time.Time
	blendDuration time.Duration

	lastRot spatial.Quaternion
}

// SetTrack implements track-object: configures id to aim at target
// using mode, blending from id's current R_track over duration. An
// empty target clears tracking (R_track blends back to identity).
// Self-tracking and tracking a descendant of id are ignored, per
// spec.md §4.8.
func (e *Engine) SetTrack(id, target identifier.ID, mode scene.TrackMode, duration time.Duration, now time.Time) error {
	if duration < 0 {
		return ErrInvalidDuration
	}
	if target != "" {
		if id == target || e.graph.IsDescendant(id, target) {
			return nil
		}
	}

	prior, ok := e.tracks[id]
	startRot := spatial.IdentityQuaternion
	preUp := spatial.Up
	if ok {
		startRot = prior.lastRot
		preUp = spatial.RotateVec3(prior.lastRot, spatial.Up)
	}

	if target == "" {
		delete(e.tracks, id)
		if duration == 0 {
			return nil
		}
		e.tracks[id] = &trackState{
			blendStart:    startRot,
			blendStarted:  now,
			blendDuration: duration,
			lastRot:       startRot,
		}
		return nil
	}

	e.tracks[id] = &trackState{
		target:        target,
		mode:          mode,
		preTrackingUp: preUp,
		blendStart:    startRot,
		blendStarted:  now,
		blendDuration: duration,
		lastRot:       startRot,
	}
	return nil
}

// evaluateTracks recomputes every object's current R_track at now:
// the live aim rotation toward a moving target, cross-faded from the
// configuration's blendStart over blendDuration.
func (e *Engine) evaluateTracks(now time.Time) {
	for id, ts := range e.tracks {
		if ts.target == "" {
			// Tracking disabled; blend back to identity then forget.
			ts.lastRot = blendRot(ts.blendStart, spatial.IdentityQuaternion, ts.blendStarted, ts.blendDuration, now)
			if !now.Before(ts.blendStarted.Add(ts.blendDuration)) {
				delete(e.tracks, id)
			}
			continue
		}
		if !e.graph.Exists(ts.target) {
			// Target missing: R_track = identity until it reappears,
			// per spec.md §4.8.
			ts.lastRot = spatial.IdentityQuaternion
			continue
		}
		aim := e.computeAim(id, ts)
		ts.lastRot = blendRot(ts.blendStart, aim, ts.blendStarted, ts.blendDuration, now)
	}
}

func blendRot(start, target spatial.Quaternion, startTime time.Time, duration time.Duration, now time.Time) spatial.Quaternion {
	if duration <= 0 || !now.Before(startTime.Add(duration)) {
		return target
	}
	t := float64(now.Sub(startTime)) / float64(duration)
	return spatial.Slerp(start, target, t)
}

// computeAim returns id's live, unblended R_track toward ts.target.
func (e *Engine) computeAim(id identifier.ID, ts *trackState) spatial.Quaternion {
	o, ok := e.graph.Object(id)
	if !ok {
		return spatial.IdentityQuaternion
	}
	parentWorld := e.graph.WorldPose(o.Parent)
	objectWorldPos := e.graph.WorldPose(id).Pos
	targetWorldPos := e.graph.WorldPose(ts.target).Pos

	worldDir := spatial.SubVec3(targetWorldPos, objectWorldPos)
	if spatial.LengthVec3(worldDir) == 0 {
		return ts.lastRot
	}
	localDir := spatial.RotateVec3(spatial.Conjugate(parentWorld.Rot), spatial.NormalizeVec3(worldDir))

	switch ts.mode {
	case scene.TrackFocus:
		up := spatial.Up
		if math.Abs(spatial.DotVec3(localDir, spatial.Up)) > 0.999 && spatial.LengthVec3(ts.preTrackingUp) != 0 {
			up = ts.preTrackingUp
		}
		return spatial.FromLookRotation(localDir, up)
	default: // scene.TrackPlane
		return planeAim(localDir)
	}
}

// planeAim rotates about Up only, so Forward projects onto the plane
// orthogonal to Up and points toward dir.
func planeAim(dir spatial.Vec3) spatial.Quaternion {
	projected := spatial.SubVec3(dir, spatial.ScaleVec3(spatial.Up, spatial.DotVec3(dir, spatial.Up)))
	if spatial.LengthVec3(projected) < 1e-9 {
		// dir points straight along Up/Down: no well-defined yaw, so
		// R_track falls back to identity (no yaw).
		return spatial.IdentityQuaternion
	}
	f := spatial.NormalizeVec3(projected)
	cosA := spatial.DotVec3(spatial.Forward, f)
	sinA := spatial.DotVec3(spatial.CrossVec3(spatial.Forward, f), spatial.Up)
	angle := math.Atan2(sinA, cosA)
	return spatial.FromAxisAngle(spatial.Up, angle)
}
