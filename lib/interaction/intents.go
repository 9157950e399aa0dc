// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package interaction

import "github.com/hackvr/hackvr/lib/identifier"

// Registry is the intent population: a mapping from intent id to
// human label, per spec.md §3. Initially populated with the seven
// predefined movement intents.
type Registry struct {
	labels map[identifier.ID]string
}

// PredefinedIntents are the intent ids a fresh Registry is seeded
// with.
var PredefinedIntents = []identifier.ID{
	identifier.IntentForward,
	identifier.IntentBack,
	identifier.IntentLeft,
	identifier.IntentRight,
	identifier.IntentUp,
	identifier.IntentDown,
	identifier.IntentStop,
}

// defaultLabels gives each predefined intent its conventional label.
var defaultLabels = map[identifier.ID]string{
	identifier.IntentForward: "Forward",
	identifier.IntentBack:    "Back",
	identifier.IntentLeft:    "Left",
	identifier.IntentRight:   "Right",
	identifier.IntentUp:      "Up",
	identifier.IntentDown:    "Down",
	identifier.IntentStop:    "Stop",
}

// NewRegistry returns a registry seeded with the predefined intents.
func NewRegistry() *Registry {
	r := &Registry{labels: make(map[identifier.ID]string, len(PredefinedIntents))}
	for _, id := range PredefinedIntents {
		r.labels[id] = defaultLabels[id]
	}
	return r
}

// Upsert implements create-intent: inserts or replaces id's label,
// including a predefined intent's label.
func (r *Registry) Upsert(id identifier.ID, label string) {
	r.labels[id] = label
}

// Destroy implements destroy-intent: removes id, including a
// predefined intent, per spec.md §3.
func (r *Registry) Destroy(id identifier.ID) {
	delete(r.labels, id)
}

// Label returns id's current label, if it exists.
func (r *Registry) Label(id identifier.ID) (string, bool) {
	label, ok := r.labels[id]
	return label, ok
}

// Exists reports whether id names a known intent.
func (r *Registry) Exists(id identifier.ID) bool {
	_, ok := r.labels[id]
	return ok
}

// IDs returns every known intent id, for selector population
// snapshots. Order is unspecified.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.labels))
	for id := range r.labels {
		ids = append(ids, string(id))
	}
	return ids
}
