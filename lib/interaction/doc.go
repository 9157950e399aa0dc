// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package interaction implements the HackVR interaction mode gates
// (C10): the text-input and raycast mode flags, and the intent
// registry. Both mode flags are small explicit finite automata, in
// the same style as package auth's userid state machine — a struct
// with named boolean/state fields and methods for each transition,
// rather than a generic state-machine abstraction.
//
// text_input_mode's viewer-held draft text is never represented here:
// spec.md §3 describes it as "opaque viewer-held" state, so the
// server side of this protocol only ever tracks whether the mode is
// currently active, never the draft's contents.
package interaction
