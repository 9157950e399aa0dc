// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"github.com/hackvr/hackvr/lib/identifier"
	"github.com/hackvr/hackvr/lib/spatial"
	"github.com/hackvr/hackvr/lib/wire"
)

// Events holds the callbacks Feed invokes as it dispatches inbound
// viewer commands. Every field is optional; a nil callback is simply
// skipped. Callbacks run synchronously on the goroutine that called
// Feed and must not block or call back into this Agent.
type Events struct {
	// OnSend is invoked with every outbound wire frame this Agent
	// produces, whether from an inbound reply (accept-user,
	// reject-user, request-authentication) or a host-driven call
	// (CreateObject, AnnounceSession, ...). This is the Agent's only path to the
	// transport; the caller owns writing bytes to the wire.
	OnSend func(frame []byte)

	// OnChat reports a viewer chat message.
	OnChat func(message string)

	// OnTapObject reports a gated tap-object (see spec.md §4.9's
	// clickable/tag preconditions, enforced before this fires).
	OnTapObject func(obj identifier.ID, kind wire.TapKind, tag identifier.Tag)

	// OnTellObject reports a gated tell-object.
	OnTellObject func(obj identifier.ID, text string)

	// OnSendInput reports a gated send-input.
	OnSendInput func(text string)

	// OnIntent reports a continuous movement intent update.
	OnIntent func(intentID identifier.ID, viewDir spatial.Vec3)

	// OnRaycast reports a gated raycast.
	OnRaycast func(origin, dir spatial.Vec3)

	// OnResumeSession reports a resume-session attempt and whether the
	// token was valid and bound to this Agent's origin. Re-
	// authentication policy on a valid resume is the host's decision,
	// per spec.md §4.7's "semantics are server-defined".
	OnResumeSession func(token identifier.SessionToken, valid bool)

	// OnDropped reports a command this Agent silently dropped per the
	// optimistic error regime (spec.md §4.10/§7): unknown command,
	// wrong direction, malformed argument, or a mode-gate violation.
	// Never fires for framing violations, which are strict-regime and
	// the caller's responsibility to detect from Feed's return error.
	OnDropped func(command string, err error)
}
