// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scene

import "github.com/hackvr/hackvr/lib/identifier"

// Banner is the current transient on-screen banner, set by
// set-banner. Banner has no object identity: it cannot be selected,
// tapped, or targeted by any other command, and — unlike every other
// piece of scene state — does not survive session resumption, since
// it is UI chrome rather than world state.
type Banner struct {
	Text     string
	Duration float64 // seconds; zero means until replaced or cleared
	Set      bool
}

// Scene is the complete server-authored world state for one
// connection: the scene graph, the geometry population, the
// background clear color, and the transient banner. It is the handle
// the command dispatcher mutates and the handle package transition
// reads for topology.
type Scene struct {
	Limits     Limits
	Graph      *Graph
	Geometries *GeometryStore

	BackgroundColor  identifier.Color
	backgroundColSet bool

	Banner Banner
}

// New returns an empty scene (just $global/$camera and an empty
// $global geometry) built from limits.
func New(limits Limits) *Scene {
	return &Scene{
		Limits:     limits,
		Graph:      NewGraph(limits),
		Geometries: NewGeometryStore(limits),
	}
}

// SetBackgroundColor sets the scene-wide clear color.
func (s *Scene) SetBackgroundColor(c identifier.Color) {
	s.BackgroundColor = c
	s.backgroundColSet = true
}

// BackgroundColorSet reports whether set-background-color has ever
// been applied to this scene.
func (s *Scene) BackgroundColorSet() bool {
	return s.backgroundColSet
}

// SetBanner replaces the current banner, or clears it when text is
// empty.
func (s *Scene) SetBanner(text string, duration float64) {
	if text == "" {
		s.Banner = Banner{}
		return
	}
	s.Banner = Banner{Text: text, Duration: duration, Set: true}
}
