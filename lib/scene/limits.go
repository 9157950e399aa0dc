// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Limits holds the soft implementation limits spec.md §6 names as
// defaults, exposed as configuration rather than compiled-in constants
// per SPEC_FULL.md's ambient-stack requirement — matching the
// teacher's lib/config struct-literal-plus-defaulting-helper pattern
// rather than package-level mutable globals.
type Limits struct {
	MaxTrianglesPerGeometry int `yaml:"max_triangles_per_geometry"`
	MaxObjects              int `yaml:"max_objects"`
	MaxNestingDepth         int `yaml:"max_nesting_depth"`
	MaxCommandsPerSecond    int `yaml:"max_commands_per_second"`
	MaxCreateSelectorExpand int `yaml:"max_create_selector_expansion"`
}

// DefaultLimits returns the soft defaults spec.md §6 names.
func DefaultLimits() Limits {
	return Limits{
		MaxTrianglesPerGeometry: 100_000,
		MaxObjects:              10_000,
		MaxNestingDepth:         16,
		MaxCommandsPerSecond:    1_000,
		MaxCreateSelectorExpand: 1_000,
	}
}

// Option adjusts a Limits value built from DefaultLimits.
type Option func(*Limits)

// WithMaxTrianglesPerGeometry overrides the per-geometry triangle cap.
func WithMaxTrianglesPerGeometry(n int) Option {
	return func(l *Limits) { l.MaxTrianglesPerGeometry = n }
}

// WithMaxObjects overrides the scene-wide object cap.
func WithMaxObjects(n int) Option {
	return func(l *Limits) { l.MaxObjects = n }
}

// WithMaxNestingDepth overrides the scene graph depth cap.
func WithMaxNestingDepth(n int) Option {
	return func(l *Limits) { l.MaxNestingDepth = n }
}

// WithMaxCreateSelectorExpand overrides the create-family selector
// expansion cap (the non-bare-star, non-destroy-or-modify cap named in
// spec.md §6).
func WithMaxCreateSelectorExpand(n int) Option {
	return func(l *Limits) { l.MaxCreateSelectorExpand = n }
}

// NewLimits builds a Limits from the defaults plus any options.
func NewLimits(opts ...Option) Limits {
	l := DefaultLimits()
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// LoadLimits reads a YAML limits file at path, overlaying it on
// DefaultLimits — a field absent from the file keeps its default.
// Mirrors the teacher's lib/config file-loading shape, scoped down to
// this one struct since the core has no broader deployment config of
// its own.
func LoadLimits(path string) (Limits, error) {
	l := DefaultLimits()
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("scene: reading limits file: %w", err)
	}
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Limits{}, fmt.Errorf("scene: parsing limits file: %w", err)
	}
	return l, nil
}
