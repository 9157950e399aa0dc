// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"errors"

	"github.com/hackvr/hackvr/lib/identifier"
	"github.com/hackvr/hackvr/lib/spatial"
)

// ErrUnknownObject, ErrCycle, ErrImmutableRoot, and ErrObjectCap name
// the graph-shape violations Create/Reparent/Destroy refuse rather
// than silently ignore, since unlike most command-level no-ops these
// indicate the caller (the dispatcher) did not pre-validate against
// the current population snapshot. A duplicate Create and a Destroy of
// an unknown id are not errors.
var (
	ErrUnknownObject = errors.New("scene: unknown object")
	ErrCycle         = errors.New("scene: reparent would create a cycle")
	ErrImmutableRoot = errors.New("scene: $global cannot be reparented; $global and $camera cannot be destroyed")
	ErrObjectCap     = errors.New("scene: object cap exceeded")
)

// ReparentMode selects how ReparentObject computes the moved object's
// new local pose.
type ReparentMode int

const (
	// ReparentWorld recomputes the local pose so the object's world
	// pose is unchanged.
	ReparentWorld ReparentMode = iota
	// ReparentLocal keeps the local pose unchanged, moving the
	// object's world pose with its new parent.
	ReparentLocal
)

// Graph is the scene graph: the object population plus parent/child
// topology. $global and $camera always exist. A Graph is not safe for
// concurrent use.
type Graph struct {
	limits   Limits
	objects  map[identifier.ID]*Object
	children map[identifier.ID]map[identifier.ID]struct{}
}

// NewGraph returns a graph pre-populated with $global and $camera, per
// spec.md §3.
func NewGraph(limits Limits) *Graph {
	g := &Graph{
		limits:   limits,
		objects:  make(map[identifier.ID]*Object),
		children: make(map[identifier.ID]map[identifier.ID]struct{}),
	}
	g.objects[identifier.GlobalObject] = &Object{ID: identifier.GlobalObject, Rot: spatial.IdentityQuaternion, Scale: spatial.Vec3{X: 1, Y: 1, Z: 1}}
	g.objects[identifier.CameraObject] = &Object{ID: identifier.CameraObject, Parent: identifier.GlobalObject, Rot: spatial.IdentityQuaternion, Scale: spatial.Vec3{X: 1, Y: 1, Z: 1}}
	g.children[identifier.GlobalObject] = map[identifier.ID]struct{}{identifier.CameraObject: {}}
	g.children[identifier.CameraObject] = map[identifier.ID]struct{}{}
	return g
}

// Object returns the object named id, for direct field mutation by
// the transition engine.
func (g *Graph) Object(id identifier.ID) (*Object, bool) {
	o, ok := g.objects[id]
	return o, ok
}

// Exists reports whether id names a known object.
func (g *Graph) Exists(id identifier.ID) bool {
	_, ok := g.objects[id]
	return ok
}

// Len returns the current object count.
func (g *Graph) Len() int {
	return len(g.objects)
}

// IDs returns every known object id, for selector population
// snapshots. Order is unspecified.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.objects))
	for id := range g.objects {
		ids = append(ids, string(id))
	}
	return ids
}

// Children returns the direct children of id. Order is unspecified.
func (g *Graph) Children(id identifier.ID) []identifier.ID {
	kids := g.children[id]
	out := make([]identifier.ID, 0, len(kids))
	for k := range kids {
		out = append(out, k)
	}
	return out
}

// Depth returns id's depth in the forest ($global is depth 0).
func (g *Graph) Depth(id identifier.ID) int {
	depth := 0
	for cur := id; cur != identifier.GlobalObject; {
		o, ok := g.objects[cur]
		if !ok {
			break
		}
		cur = o.Parent
		depth++
	}
	return depth
}

// Create creates object id as a child of $global. Ignored if id
// already exists (matching the geometry population's duplicate-create
// rule); returns ErrObjectCap if the object cap is reached.
func (g *Graph) Create(id identifier.ID) error {
	if g.Exists(id) {
		return nil
	}
	if len(g.objects) >= g.limits.MaxObjects {
		return ErrObjectCap
	}
	g.objects[id] = &Object{ID: id, Parent: identifier.GlobalObject, Rot: spatial.IdentityQuaternion, Scale: spatial.Vec3{X: 1, Y: 1, Z: 1}}
	g.children[id] = map[identifier.ID]struct{}{}
	g.children[identifier.GlobalObject][id] = struct{}{}
	return nil
}

// WorldPose returns id's current world pose, composed up the parent
// chain via the authored local poses (R_track excluded, see doc.go).
func (g *Graph) WorldPose(id identifier.ID) spatial.Pose {
	o, ok := g.objects[id]
	if !ok {
		return spatial.IdentityPose
	}
	if id == identifier.GlobalObject {
		return spatial.IdentityPose
	}
	return spatial.ComposePose(g.WorldPose(o.Parent), o.LocalPose())
}

// IsDescendant reports whether candidate is id or a descendant of id
// in the current graph shape.
func (g *Graph) IsDescendant(id, candidate identifier.ID) bool {
	return g.isDescendant(id, candidate)
}

// isDescendant reports whether candidate is id or a descendant of id.
func (g *Graph) isDescendant(id, candidate identifier.ID) bool {
	for cur := candidate; ; {
		if cur == id {
			return true
		}
		o, ok := g.objects[cur]
		if !ok || cur == identifier.GlobalObject {
			return false
		}
		cur = o.Parent
	}
}

// Reparent moves id to be a child of newParent. mode selects whether
// id's world pose or local pose is preserved. Rejects loop formation
// (newParent must not be id or a descendant of id) and reparenting
// $global.
func (g *Graph) Reparent(id, newParent identifier.ID, mode ReparentMode) error {
	if id == identifier.GlobalObject {
		return ErrImmutableRoot
	}
	o, ok := g.objects[id]
	if !ok {
		return ErrUnknownObject
	}
	if _, ok := g.objects[newParent]; !ok {
		return ErrUnknownObject
	}
	if g.isDescendant(id, newParent) {
		return ErrCycle
	}
	if o.Parent == newParent {
		return nil
	}

	var newLocal spatial.Pose
	switch mode {
	case ReparentWorld:
		worldBefore := g.WorldPose(id)
		newLocal = spatial.DecomposePose(g.WorldPose(newParent), worldBefore)
	case ReparentLocal:
		newLocal = o.LocalPose()
	}

	delete(g.children[o.Parent], id)
	o.Parent = newParent
	g.children[newParent][id] = struct{}{}

	o.Pos = newLocal.Pos
	o.Rot = newLocal.Rot
	o.Scale = newLocal.Scale
	return nil
}

// Destroy removes id. Its children are reparented to $global with
// their world pose preserved, per spec.md §3/§8's "destroy preserves
// world transform" invariant. $global and $camera cannot be
// destroyed.
func (g *Graph) Destroy(id identifier.ID) error {
	if id == identifier.GlobalObject || id == identifier.CameraObject {
		return ErrImmutableRoot
	}
	o, ok := g.objects[id]
	if !ok {
		return nil
	}

	for child := range g.children[id] {
		world := g.WorldPose(child)
		c := g.objects[child]
		c.Parent = identifier.GlobalObject
		c.Pos = world.Pos
		c.Rot = world.Rot
		c.Scale = world.Scale
		g.children[identifier.GlobalObject][child] = struct{}{}
	}

	delete(g.children[o.Parent], id)
	delete(g.children, id)
	delete(g.objects, id)
	return nil
}

// SetGeometry attaches geomID (or clears the attachment, if geomID is
// empty) to id. No-ops on an unknown object.
func (g *Graph) SetGeometry(id, geomID identifier.ID) {
	if o, ok := g.objects[id]; ok {
		o.Geometry = geomID
	}
}

// SetProperty sets one of the object property-bag fields
// (clickable/textinput/href). Unknown property names and unknown
// objects are no-ops, matching the dispatcher's optimistic error
// regime for post-establishment commands.
func (g *Graph) SetProperty(id identifier.ID, property, value string) {
	o, ok := g.objects[id]
	if !ok {
		return
	}
	switch property {
	case "clickable":
		o.Clickable = value == "true"
	case "textinput":
		o.TextInput = value == "true"
	case "href":
		o.Href = value
	}
}

// SetTrack sets id's tracking target and mode. An empty target clears
// tracking.
func (g *Graph) SetTrack(id, target identifier.ID, mode TrackMode) {
	o, ok := g.objects[id]
	if !ok {
		return
	}
	o.TrackTarget = target
	o.TrackMode = mode
}
