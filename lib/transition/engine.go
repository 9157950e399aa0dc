// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transition

import (
	"errors"
	"time"

	"github.com/hackvr/hackvr/lib/identifier"
	"github.com/hackvr/hackvr/lib/scene"
	"github.com/hackvr/hackvr/lib/spatial"
)

// ErrInvalidDuration is returned for a negative transition or
// track-object duration, per spec.md §4.8's "t<0 is invalid".
var ErrInvalidDuration = errors.New("transition: duration must be >= 0")

// Engine holds every in-flight transform transition and tracking
// configuration for one scene. It mutates the scene.Graph it was
// constructed with: once a channel's transition arrives, the
// corresponding Object field holds the target exactly and the active
// channel is dropped, so a Graph with no in-flight transitions reads
// back exactly as it would without this package involved at all.
type Engine struct {
	graph *scene.Graph

	pos   map[identifier.ID]*vecChannel
	scale map[identifier.ID]*vecChannel
	rot   map[identifier.ID]*rotChannel

	tracks map[identifier.ID]*trackState

	freeLookEnabled bool
}

// NewEngine returns an Engine operating on graph.
func NewEngine(graph *scene.Graph) *Engine {
	return &Engine{
		graph:  graph,
		pos:    make(map[identifier.ID]*vecChannel),
		scale:  make(map[identifier.ID]*vecChannel),
		rot:    make(map[identifier.ID]*rotChannel),
		tracks: make(map[identifier.ID]*trackState),
	}
}

// currentPos returns id's current interpolated position at now,
// without advancing or clearing any active channel.
func (e *Engine) currentPos(id identifier.ID, now time.Time) spatial.Vec3 {
	if ch, ok := e.pos[id]; ok {
		return ch.evaluate(now)
	}
	if o, ok := e.graph.Object(id); ok {
		return o.Pos
	}
	return spatial.Vec3{}
}

func (e *Engine) currentScale(id identifier.ID, now time.Time) spatial.Vec3 {
	if ch, ok := e.scale[id]; ok {
		return ch.evaluate(now)
	}
	if o, ok := e.graph.Object(id); ok {
		return o.Scale
	}
	return spatial.Vec3{X: 1, Y: 1, Z: 1}
}

func (e *Engine) currentRot(id identifier.ID, now time.Time) spatial.Quaternion {
	if ch, ok := e.rot[id]; ok {
		return ch.evaluate(now)
	}
	if o, ok := e.graph.Object(id); ok {
		return o.Rot
	}
	return spatial.IdentityQuaternion
}

// SetPos starts (or cancels-and-restarts) a position transition on
// id, from its current interpolated position to target over duration.
// duration==0 applies target instantaneously.
func (e *Engine) SetPos(id identifier.ID, target spatial.Vec3, duration time.Duration, now time.Time) error {
	if duration < 0 {
		return ErrInvalidDuration
	}
	start := e.currentPos(id, now)
	if duration == 0 {
		delete(e.pos, id)
		if o, ok := e.graph.Object(id); ok {
			o.Pos = target
		}
		return nil
	}
	e.pos[id] = &vecChannel{start: start, target: target, startTime: now, duration: duration}
	return nil
}

// SetScale is SetPos for the scale channel.
func (e *Engine) SetScale(id identifier.ID, target spatial.Vec3, duration time.Duration, now time.Time) error {
	if duration < 0 {
		return ErrInvalidDuration
	}
	start := e.currentScale(id, now)
	if duration == 0 {
		delete(e.scale, id)
		if o, ok := e.graph.Object(id); ok {
			o.Scale = target
		}
		return nil
	}
	e.scale[id] = &vecChannel{start: start, target: target, startTime: now, duration: duration}
	return nil
}

// SetRot starts (or cancels-and-restarts) a rotation transition on id
// to target (already converted from the command's Euler argument to a
// quaternion by the caller), blended by shortest-arc Slerp.
func (e *Engine) SetRot(id identifier.ID, target spatial.Quaternion, duration time.Duration, now time.Time) error {
	if duration < 0 {
		return ErrInvalidDuration
	}
	start := e.currentRot(id, now)
	if duration == 0 {
		delete(e.rot, id)
		if o, ok := e.graph.Object(id); ok {
			o.Rot = target
		}
		return nil
	}
	e.rot[id] = &rotChannel{start: start, target: target, startTime: now, duration: duration}
	return nil
}

// Evaluate advances every active channel to now, writing arrived
// channels' exact target values into the graph and dropping them, and
// writing in-flight channels' interpolated values into the graph so
// that a reader of the graph's Object fields always sees the current
// rendered pose. It also recomputes every object's tracking rotation
// (see track.go) and must be called before any code reads world pose
// for rendering/hit-testing if transitions may be in flight.
func (e *Engine) Evaluate(now time.Time) {
	for id, ch := range e.pos {
		o, ok := e.graph.Object(id)
		if !ok {
			delete(e.pos, id)
			continue
		}
		o.Pos = ch.evaluate(now)
		if ch.arrived(now) {
			delete(e.pos, id)
		}
	}
	for id, ch := range e.scale {
		o, ok := e.graph.Object(id)
		if !ok {
			delete(e.scale, id)
			continue
		}
		o.Scale = ch.evaluate(now)
		if ch.arrived(now) {
			delete(e.scale, id)
		}
	}
	for id, ch := range e.rot {
		o, ok := e.graph.Object(id)
		if !ok {
			delete(e.rot, id)
			continue
		}
		o.Rot = ch.evaluate(now)
		if ch.arrived(now) {
			delete(e.rot, id)
		}
	}
	e.evaluateTracks(now)
}

// Forget drops all active channels and track state for id, called
// when the dispatcher destroys an object.
func (e *Engine) Forget(id identifier.ID) {
	delete(e.pos, id)
	delete(e.scale, id)
	delete(e.rot, id)
	delete(e.tracks, id)
}

// FreeLookEnabled reports the camera's current free-look flag.
func (e *Engine) FreeLookEnabled() bool {
	return e.freeLookEnabled
}

// SetFreeLookEnabled implements enable-free-look. Disabling resets
// R_free to identity, per spec.md §4.8 — that reset happens on the
// viewer, which owns R_free; this flag is the server's record of
// which state it last told the viewer to be in.
func (e *Engine) SetFreeLookEnabled(enabled bool) {
	e.freeLookEnabled = enabled
}

// RenderRotation returns R_render($camera) = R_track ∘ R_local ∘
// R_free, per spec.md §4.8's camera composition formula. free is the
// viewer-local free-look rotation (identity if disabled or unknown to
// the server, since R_free is never reported back to the server —
// see spec.md's non-goal on viewer-initiated world mutation); it is a
// parameter rather than engine state because only the viewer ever
// knows its live value.
func (e *Engine) RenderRotation(camera identifier.ID, free spatial.Quaternion) spatial.Quaternion {
	trackRot := spatial.IdentityQuaternion
	if track, ok := e.tracks[camera]; ok {
		trackRot = track.lastRot
	}
	local := spatial.IdentityQuaternion
	if o, ok := e.graph.Object(camera); ok {
		local = o.Rot
	}
	return spatial.MultiplyQuaternion(trackRot, spatial.MultiplyQuaternion(local, free))
}
