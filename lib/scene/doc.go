// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package scene implements the HackVR scene state engine (C8):
// geometries (triangle soup, sprite, text sprite), objects, the scene
// graph, and the property bags attached to objects and text geometries.
//
// Following spec.md §9's design note, the graph is an
// arena-with-stable-indices: objects and geometries live in
// map[identifier.ID]*Object / map[identifier.ID]*Geometry
// rather than owning Go pointers between entities, grounded on the
// teacher's lib/ref + lib/stewardshipindex index-by-identifier
// convention. Parent/child/tracking-target references are
// identifier-valued, so a destroyed tracking target is a structurally
// harmless lookup miss rather than a dangling pointer.
//
// A Scene is not safe for concurrent use — like the rest of a
// connection's session state, it is owned by exactly one per-connection
// agent (spec.md §5).
//
// An object's rotation is stored as a quaternion, never Euler, and a
// reparent or destroy operation composes/decomposes world pose through
// package spatial's Pose helpers rather than a general affine matrix:
// position, rotation, and scale stay separate channels all the way up
// and down the hierarchy, so preserving a child's world transform
// across a reparent never requires decomposing a matrix back into
// those channels. This composition ignores the shear a true matrix
// product would introduce under non-uniform scale plus rotation,
// which HackVR scenes do not rely on.
//
// World pose composition here excludes the transition engine's
// tracking rotation R_track: tracking recomputes every evaluation from
// the current target position regardless of graph shape, so it is not
// part of the pose a reparent or destroy needs to preserve.
package scene
