// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package viewerclient assembles the viewer's outbound (client-to-server)
// commands into wire frames: chat, set-user, authenticate, resume-session,
// send-input, tap-object, tell-object, intent, raycast, and raycast-cancel.
//
// Assembly is grounded on this module's own package wire — every method
// here is a thin argument-formatting wrapper around wire.Encode, the same
// primitive package command's server-side dispatcher decodes with. The
// original hackvr-py retrieval names a RemoteBase.send_cmd helper used by
// this side of the protocol (hackvr-py/src/hackvr/server.py's RemoteClient
// methods each call self.send_cmd(name, *args)), and that call shape is
// mirrored here as one method per command taking typed arguments. The
// RemoteBase class itself is absent from the retrieved base.py, so the
// concrete formatting of each argument follows server.py's Server abstract
// method signatures and this module's existing wire.Format* helpers rather
// than RemoteBase's body.
package viewerclient
