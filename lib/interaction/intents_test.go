// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package interaction

import (
	"testing"

	"github.com/hackvr/hackvr/lib/identifier"
)

func TestNewRegistrySeedsPredefinedIntents(t *testing.T) {
	r := NewRegistry()
	for _, id := range PredefinedIntents {
		if !r.Exists(id) {
			t.Fatalf("expected predefined intent %s to exist", id)
		}
	}
}

func TestUpsertReplacesLabel(t *testing.T) {
	r := NewRegistry()
	r.Upsert("jump", "Jump")
	label, ok := r.Label("jump")
	if !ok || label != "Jump" {
		t.Fatalf("expected Jump label, got %q ok=%v", label, ok)
	}
	r.Upsert("jump", "Double Jump")
	label, _ = r.Label("jump")
	if label != "Double Jump" {
		t.Fatalf("expected upsert to replace the label, got %q", label)
	}
}

func TestDestroyRemovesPredefinedIntent(t *testing.T) {
	r := NewRegistry()
	r.Destroy(identifier.IntentForward)
	if r.Exists(identifier.IntentForward) {
		t.Fatal("expected destroy-intent to remove even a predefined intent")
	}
}
