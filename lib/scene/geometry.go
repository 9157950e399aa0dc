// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"errors"
	"net/url"

	"github.com/hackvr/hackvr/lib/identifier"
	"github.com/hackvr/hackvr/lib/wire"
)

// Variant names which concrete shape a Geometry holds. Once a geometry
// id is created with one variant, it can never switch — spec.md §3's
// "one geometry id -> one variant (no variant switching)" invariant —
// enforced here by every mutation method checking the stored Variant
// and no-op'ing on any other.
type Variant int

const (
	VariantSoup Variant = iota
	VariantSprite
	VariantText
)

// ErrTriangleCapExceeded is returned when adding triangles would push
// a geometry's triangle count past Limits.MaxTrianglesPerGeometry.
var ErrTriangleCapExceeded = errors.New("scene: triangle cap exceeded")

// Triangle is one tagged, colored triangle in a soup geometry.
type Triangle struct {
	Tag   identifier.Tag
	Color identifier.Color
	V0    wire.Vec3
	V1    wire.Vec3
	V2    wire.Vec3
}

// Asset identifies a content-addressed image or font resource by
// (uri, sha256), per spec.md §6's asset interface.
type Asset struct {
	URI    *url.URL
	SHA256 [32]byte
}

// Sprite holds the fields of an image sprite geometry.
type Sprite struct {
	Size     wire.Vec2
	Image    Asset
	SizeMode wire.SizeMode
	Anchor   wire.Anchor
}

// TextSprite holds the fields of a text sprite geometry: as Sprite,
// but with a font asset, mutable text, and mutable text/background
// color, per spec.md §3.
type TextSprite struct {
	Size            wire.Vec2
	Font            Asset
	Anchor          wire.Anchor
	Text            string
	TextColor       identifier.Color
	BackgroundColor identifier.Color
}

// Geometry is one entry in the geometry population: a tagged sum over
// the three variants, dispatched on Variant rather than a Go
// interface so that mutation methods can cheaply no-op on a
// variant mismatch instead of a failed type assertion.
type Geometry struct {
	ID      identifier.ID
	Variant Variant

	Soup   []Triangle  // VariantSoup
	Sprite *Sprite     // VariantSprite
	Text   *TextSprite // VariantText
}

// GeometryStore is the geometry population: map[id]*Geometry, plus the
// always-present $global triangle soup.
type GeometryStore struct {
	limits Limits
	byID   map[identifier.ID]*Geometry
}

// NewGeometryStore returns a store pre-populated with $global as an
// empty triangle soup, per spec.md §3's invariant that $global always
// exists as a triangle soup.
func NewGeometryStore(limits Limits) *GeometryStore {
	s := &GeometryStore{limits: limits, byID: make(map[identifier.ID]*Geometry)}
	s.byID[identifier.GlobalObject] = &Geometry{ID: identifier.GlobalObject, Variant: VariantSoup}
	return s
}

// Get returns the geometry for id, if it exists.
func (s *GeometryStore) Get(id identifier.ID) (*Geometry, bool) {
	g, ok := s.byID[id]
	return g, ok
}

// Exists reports whether id names a known geometry.
func (s *GeometryStore) Exists(id identifier.ID) bool {
	_, ok := s.byID[id]
	return ok
}

// IDs returns every known geometry id, for selector population
// snapshots. Order is unspecified.
func (s *GeometryStore) IDs() []string {
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, string(id))
	}
	return ids
}

// CreateSoup creates an empty triangle-soup geometry. Duplicate create
// (an id that already exists, in any variant) is ignored per spec.md
// §4.8's "duplicate create is ignored" invariant.
func (s *GeometryStore) CreateSoup(id identifier.ID) {
	if s.Exists(id) {
		return
	}
	s.byID[id] = &Geometry{ID: id, Variant: VariantSoup}
}

// CreateSprite creates an image sprite geometry. Ignored if id exists.
func (s *GeometryStore) CreateSprite(id identifier.ID, sprite Sprite) {
	if s.Exists(id) {
		return
	}
	s.byID[id] = &Geometry{ID: id, Variant: VariantSprite, Sprite: &sprite}
}

// CreateText creates a text sprite geometry. Ignored if id exists.
func (s *GeometryStore) CreateText(id identifier.ID, text TextSprite) {
	if s.Exists(id) {
		return
	}
	s.byID[id] = &Geometry{ID: id, Variant: VariantText, Text: &text}
}

// Destroy removes a geometry. $global may be destroyed by this method
// — spec.md names $global as always-existing by default but does not
// list it among the objects that cannot be destroyed (that invariant
// names only $global/$camera objects); callers that want to forbid
// destroying the $global geometry enforce that at the command layer,
// matching how every other forbidden-identifier check is a dispatch
// concern, not a storage concern.
func (s *GeometryStore) Destroy(id identifier.ID) {
	delete(s.byID, id)
}

// AddTriangleList appends triangles formed from consecutive
// (color, v0, v1, v2) quads sharing one tag, per spec.md §4.8.
// No-ops if geomID doesn't exist or isn't a soup, and if the addition
// would exceed the triangle cap (the whole command is dropped, no
// partial application — consistent with the selector-expansion
// over-cap rule elsewhere in the protocol).
func (s *GeometryStore) AddTriangleList(geomID identifier.ID, tag identifier.Tag, quads []TriangleQuad) error {
	g, ok := s.byID[geomID]
	if !ok || g.Variant != VariantSoup {
		return nil
	}
	if len(g.Soup)+len(quads) > s.limits.MaxTrianglesPerGeometry {
		return ErrTriangleCapExceeded
	}
	for _, q := range quads {
		g.Soup = append(g.Soup, Triangle{Tag: tag, Color: q.Color, V0: q.V0, V1: q.V1, V2: q.V2})
	}
	return nil
}

// TriangleQuad is one (color, v0, v1, v2) unit of add-triangle-list.
type TriangleQuad struct {
	Color identifier.Color
	V0, V1, V2 wire.Vec3
}

// AddTriangleStrip appends a triangle strip: p0,p1,p2 seed the first
// triangle, then each position in tail forms (seq[n-2], seq[n-1], pos)
// with the rest of the sequence, all sharing color and tag.
func (s *GeometryStore) AddTriangleStrip(geomID identifier.ID, tag identifier.Tag, color identifier.Color, p0, p1, p2 wire.Vec3, tail []wire.Vec3) error {
	g, ok := s.byID[geomID]
	if !ok || g.Variant != VariantSoup {
		return nil
	}
	added := 1 + len(tail)
	if len(g.Soup)+added > s.limits.MaxTrianglesPerGeometry {
		return ErrTriangleCapExceeded
	}
	seq := append([]wire.Vec3{p0, p1, p2}, tail...)
	g.Soup = append(g.Soup, Triangle{Tag: tag, Color: color, V0: seq[0], V1: seq[1], V2: seq[2]})
	for n := 3; n < len(seq); n++ {
		g.Soup = append(g.Soup, Triangle{Tag: tag, Color: color, V0: seq[n-2], V1: seq[n-1], V2: seq[n]})
	}
	return nil
}

// AddTriangleFan appends a triangle fan: p0,p1,p2 seed the first
// triangle, then each subsequent position forms (seq[0], seq[n-1], pos).
func (s *GeometryStore) AddTriangleFan(geomID identifier.ID, tag identifier.Tag, color identifier.Color, p0, p1, p2 wire.Vec3, tail []wire.Vec3) error {
	g, ok := s.byID[geomID]
	if !ok || g.Variant != VariantSoup {
		return nil
	}
	added := 1 + len(tail)
	if len(g.Soup)+added > s.limits.MaxTrianglesPerGeometry {
		return ErrTriangleCapExceeded
	}
	seq := append([]wire.Vec3{p0, p1, p2}, tail...)
	g.Soup = append(g.Soup, Triangle{Tag: tag, Color: color, V0: seq[0], V1: seq[1], V2: seq[2]})
	for n := 3; n < len(seq); n++ {
		g.Soup = append(g.Soup, Triangle{Tag: tag, Color: color, V0: seq[0], V1: seq[n-1], V2: seq[n]})
	}
	return nil
}

// RemoveTriangles deletes every triangle in geomID whose tag is in
// matchedTags. Untagged (empty-tag) triangles are never removed, per
// spec.md §4.8 — callers must exclude the empty tag from
// matchedTags since the empty tag is never matched by a selector
// anyway (identifier.Tag.Unreferenceable).
func (s *GeometryStore) RemoveTriangles(geomID identifier.ID, matchedTags map[identifier.Tag]bool) {
	g, ok := s.byID[geomID]
	if !ok || g.Variant != VariantSoup {
		return
	}
	kept := g.Soup[:0]
	for _, tri := range g.Soup {
		if tri.Tag.Unreferenceable() || !matchedTags[tri.Tag] {
			kept = append(kept, tri)
		}
	}
	g.Soup = kept
}

// Tags returns the distinct non-empty tags currently present on
// geomID's triangles, for selector population snapshots passed to
// remove-triangles.
func (s *GeometryStore) Tags(geomID identifier.ID) []string {
	g, ok := s.byID[geomID]
	if !ok || g.Variant != VariantSoup {
		return nil
	}
	seen := make(map[identifier.Tag]bool)
	var tags []string
	for _, tri := range g.Soup {
		if tri.Tag.Unreferenceable() || seen[tri.Tag] {
			continue
		}
		seen[tri.Tag] = true
		tags = append(tags, string(tri.Tag))
	}
	return tags
}

// SetTextProperty mutates a text geometry's text, text color, or
// background color. No-ops on any other variant or unknown property
// name.
func (s *GeometryStore) SetTextProperty(geomID identifier.ID, property, value string) error {
	g, ok := s.byID[geomID]
	if !ok || g.Variant != VariantText {
		return nil
	}
	switch property {
	case "text":
		g.Text.Text = value
	case "text-color":
		c, err := identifier.ParseColor(value)
		if err != nil {
			return nil
		}
		g.Text.TextColor = c
	case "background-color":
		c, err := identifier.ParseColor(value)
		if err != nil {
			return nil
		}
		g.Text.BackgroundColor = c
	}
	return nil
}
