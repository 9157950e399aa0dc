// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewerclient

import (
	"crypto/ed25519"
	"errors"

	"github.com/hackvr/hackvr/lib/identifier"
	"github.com/hackvr/hackvr/lib/spatial"
	"github.com/hackvr/hackvr/lib/wire"
)

// ErrWrongSignatureLength is returned by Authenticate when the supplied
// signature is not exactly ed25519.SignatureSize bytes.
var ErrWrongSignatureLength = errors.New("viewerclient: wrong signature length")

// Client assembles the ten client-to-server commands into wire frames.
// It holds no connection state of its own — package session and package
// interaction own the mode flags and pending-nonce state that gate which
// of these calls are meaningful to send; Client only formats and encodes.
type Client struct{}

// Chat implements chat: free-form text, either direction. On the viewer
// side it carries only the message; the server attributes it to the
// connection's current userid.
func (Client) Chat(message string) ([]byte, error) {
	return wire.Encode("chat", message)
}

// SetUser implements set-user, beginning (or completing, for
// $anonymous) the auth sequence.
func (Client) SetUser(user identifier.UserID) ([]byte, error) {
	return wire.Encode("set-user", string(user))
}

// Authenticate implements authenticate: user plus the Ed25519 signature
// over "hackvr-auth-v1:<user>:<lowercase-hex-nonce>", per spec.md §4.6.
// signature must be ed25519.SignatureSize (64) bytes.
func (Client) Authenticate(user identifier.UserID, signature []byte) ([]byte, error) {
	if len(signature) != ed25519.SignatureSize {
		return nil, ErrWrongSignatureLength
	}
	return wire.Encode("authenticate", string(user), wire.FormatBytesN(signature))
}

// ResumeSession implements resume-session.
func (Client) ResumeSession(token identifier.SessionToken) ([]byte, error) {
	return wire.Encode("resume-session", token.String())
}

// SendInput implements the viewer's send-input, valid only while
// text_input_mode is true (see package interaction).
func (Client) SendInput(text string) ([]byte, error) {
	return wire.Encode("send-input", text)
}

// TapObject implements tap-object, emitted only when the tapped
// object's clickable property is true and the picked triangle carries
// a non-empty tag (sprites always do), per spec.md §4.9.
func (Client) TapObject(obj identifier.ID, kind wire.TapKind, tag identifier.Tag) ([]byte, error) {
	return wire.Encode("tap-object", string(obj), string(kind), string(tag))
}

// TellObject implements tell-object, emitted only when the target
// object's textinput property is true.
func (Client) TellObject(obj identifier.ID, text string) ([]byte, error) {
	return wire.Encode("tell-object", string(obj), text)
}

// Intent implements intent: a continuous movement intent id plus the
// viewer's current view direction, in world coordinates.
func (Client) Intent(intentID identifier.ID, viewDir spatial.Vec3) ([]byte, error) {
	return wire.Encode("intent", string(intentID), wire.FormatVec3(viewDir))
}

// Raycast implements the viewer's raycast <origin> <dir>, valid only
// while raycast_mode is true. dir need not be unit length but must be
// non-zero, per spec.md §4.9 — that validation belongs to package
// interaction's Modes.Raycast, not to this formatting layer.
func (Client) Raycast(origin, dir spatial.Vec3) ([]byte, error) {
	return wire.Encode("raycast", wire.FormatVec3(origin), wire.FormatVec3(dir))
}

// RaycastCancel implements raycast-cancel, legal from either direction.
func (Client) RaycastCancel() ([]byte, error) {
	return wire.Encode("raycast-cancel")
}
