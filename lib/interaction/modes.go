// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package interaction

import "github.com/hackvr/hackvr/lib/spatial"

// Modes holds one connection's text-input and raycast mode flags.
// The zero value is both modes disabled, matching a freshly
// established connection.
type Modes struct {
	TextInputMode bool
	RaycastMode   bool
}

// RequestInput implements request-input: sets text_input_mode true. A
// new request-input replaces any prior one without discarding the
// viewer-held draft, which this package never represents (see doc.go)
// and so has nothing to discard.
func (m *Modes) RequestInput() {
	m.TextInputMode = true
}

// CancelInput implements cancel-input: sets text_input_mode false.
func (m *Modes) CancelInput() {
	m.TextInputMode = false
}

// SendInput implements the viewer's send-input: valid only while
// text_input_mode is true, per spec.md §4.9. Returns false (a no-op,
// not an error surfaced to the connection) if the mode was not active
// at submission. Clears text_input_mode on either outcome's caller
// path through the mode gate — per spec.md, the viewer emitting
// send-input is itself one of the ways text_input_mode turns false.
func (m *Modes) SendInput() bool {
	wasActive := m.TextInputMode
	m.TextInputMode = false
	return wasActive
}

// RaycastRequest implements raycast-request: sets raycast_mode true.
// Idempotent: requesting while already active is a no-op beyond
// already being true.
func (m *Modes) RaycastRequest() {
	m.RaycastMode = true
}

// RaycastCancel implements raycast-cancel, valid from either
// direction: sets raycast_mode false.
func (m *Modes) RaycastCancel() {
	m.RaycastMode = false
}

// Raycast implements the viewer's raycast <origin> <dir>: valid only
// while raycast_mode is true, and dir must be non-zero (a zero vector
// is a command error, ignored per spec.md §4.9). On success clears
// raycast_mode, since the viewer emitting raycast is itself one of
// the ways raycast_mode turns false. Returns false if the raycast was
// rejected (mode inactive or degenerate direction).
func (m *Modes) Raycast(origin, dir spatial.Vec3) bool {
	if !m.RaycastMode {
		return false
	}
	if spatial.LengthVec3(dir) == 0 {
		return false
	}
	m.RaycastMode = false
	return true
}
