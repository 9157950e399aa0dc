// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"fmt"
	"time"

	"github.com/hackvr/hackvr/lib/identifier"
	"github.com/hackvr/hackvr/lib/protoerr"
	"github.com/hackvr/hackvr/lib/scene"
	"github.com/hackvr/hackvr/lib/selector"
	"github.com/hackvr/hackvr/lib/spatial"
	"github.com/hackvr/hackvr/lib/wire"
)

// send encodes cmd and args and hands the frame to Events.OnSend, the
// caller's transport-write path. A malformed argument here is a
// programming error in this package, not a viewer-triggerable
// condition, so it panics rather than threading an error return
// through every host-facing method.
func (a *Agent) send(cmd string, args ...string) {
	frame, err := wire.Encode(cmd, args...)
	if err != nil {
		panic("agent: " + cmd + ": " + err.Error())
	}
	if a.events.OnSend != nil {
		a.events.OnSend(frame)
	}
}

func optionalStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return wire.FormatFloat(*f)
}

// resolveExisting expands a non-create-family selector pattern against
// population and returns the matched ids, honoring the bare-'*'
// fast-path. Modify/destroy selectors are uncapped per spec.md §4.4/§6
// — they are already bounded by the population size, which in turn is
// bounded by MaxObjects — so no soft expansion cap applies here.
func (a *Agent) resolveExisting(pattern string, population []string) ([]string, error) {
	return selector.Select(pattern, population, -1)
}

// resolveCreate expands a create-family selector pattern, which may
// only use the '{...}' group/range forms, then enforces the soft
// expansion cap spec.md §6 assigns to create-family commands (which
// have no existing population to bound them).
func (a *Agent) resolveCreate(pattern string) ([]string, error) {
	ids, err := selector.ExpandCreate(pattern)
	if err != nil {
		return nil, err
	}
	if cap := a.Scene.Limits.MaxCreateSelectorExpand; cap >= 0 && len(ids) > cap {
		return nil, fmt.Errorf("%w: %d matches exceed cap %d", selector.ErrOverExpansion, len(ids), cap)
	}
	return ids, nil
}

// --- Auth (C6) ---

// RequestUser implements request-user, beginning the auth sequence.
func (a *Agent) RequestUser(prompt *string) error {
	if err := a.Auth.BeginRequestUser(); err != nil {
		return err
	}
	a.send("request-user", optionalStr(prompt))
	return nil
}

func (a *Agent) sendAcceptUser(user identifier.UserID) {
	a.send("accept-user", string(user))
}

func (a *Agent) sendRejectUser(user identifier.UserID, reason string) {
	a.Auth.Reject()
	a.send("reject-user", string(user), reason)
}

func (a *Agent) sendRequestAuthentication(user identifier.UserID, nonce [16]byte) {
	a.send("request-authentication", string(user), wire.FormatBytesN(nonce[:]))
}

// --- Session (C7) ---

// AnnounceSession implements announce-session: mints a fresh token,
// registers it server-wide bound to this Agent's origin, and records
// it as this connection's currently-announced token.
func (a *Agent) AnnounceSession(lifetime time.Duration) (identifier.SessionToken, error) {
	token, err := identifier.NewSessionToken()
	if err != nil {
		return identifier.SessionToken{}, err
	}
	a.sessions.Announce(token, a.origin, lifetime)
	a.SessionCtx.Announce(token, a.origin)
	var lifetimeArg *float64
	if lifetime > 0 {
		seconds := lifetime.Seconds()
		lifetimeArg = &seconds
	}
	a.send("announce-session", token.String(), optionalFloat(lifetimeArg))
	return token, nil
}

// RevokeSession implements revoke-session. If token is this
// connection's currently held token, it is cleared.
func (a *Agent) RevokeSession(token identifier.SessionToken) {
	a.sessions.Revoke(token)
	if current, ok := a.SessionCtx.Current(); ok && current == token {
		a.SessionCtx.Clear()
	}
	a.send("revoke-session", token.String())
}

// --- Chat ---

// Chat implements the server's chat, attributing message to user
// (the viewer's own outbound chat carries no attribution, since the
// server always knows the sender; broadcasting to others requires it).
func (a *Agent) Chat(user identifier.UserID, message string) {
	a.send("chat", string(user), message)
}

// --- Banner ---

// SetBanner implements set-banner.
func (a *Agent) SetBanner(text *string, duration *float64) {
	a.Scene.SetBanner(optionalStr(text), derefFloat(duration))
	a.send("set-banner", optionalStr(text), optionalFloat(duration))
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// --- Interaction mode gates & intents (C10) ---

// RequestInput implements request-input.
func (a *Agent) RequestInput(prompt string, def *string) {
	a.Modes.RequestInput()
	a.send("request-input", prompt, optionalStr(def))
}

// CancelInput implements cancel-input.
func (a *Agent) CancelInput() {
	a.Modes.CancelInput()
	a.send("cancel-input")
}

// RaycastRequest implements raycast-request.
func (a *Agent) RaycastRequest() {
	a.Modes.RaycastRequest()
	a.send("raycast-request")
}

// RaycastCancel implements the server's raycast-cancel.
func (a *Agent) RaycastCancel() {
	a.Modes.RaycastCancel()
	a.send("raycast-cancel")
}

// CreateIntent implements create-intent (upsert).
func (a *Agent) CreateIntent(intentID identifier.ID, label string) {
	a.Intents.Upsert(intentID, label)
	a.send("create-intent", string(intentID), label)
}

// DestroyIntent implements destroy-intent.
func (a *Agent) DestroyIntent(intentID identifier.ID) {
	a.Intents.Destroy(intentID)
	a.send("destroy-intent", string(intentID))
}

// --- Geometry (C8) ---

// CreateGeometry implements create-geometry: pattern may only use the
// '{...}' selector forms, per the create-family restriction.
func (a *Agent) CreateGeometry(pattern string) error {
	ids, err := a.resolveCreate(pattern)
	if err != nil {
		return err
	}
	for _, raw := range ids {
		id, err := identifier.Parse(raw)
		if err != nil || id.Reserved() {
			return protoerr.ErrForbiddenIdentifier
		}
		a.Scene.Geometries.CreateSoup(id)
	}
	a.send("create-geometry", pattern)
	return nil
}

// CreateSpriteGeometry implements create-sprite-geometry.
func (a *Agent) CreateSpriteGeometry(pattern string, sprite scene.Sprite) error {
	ids, err := a.resolveCreate(pattern)
	if err != nil {
		return err
	}
	for _, raw := range ids {
		id, err := identifier.Parse(raw)
		if err != nil || id.Reserved() {
			return protoerr.ErrForbiddenIdentifier
		}
		a.Scene.Geometries.CreateSprite(id, sprite)
	}
	a.send("create-sprite-geometry", pattern, wire.FormatVec2(sprite.Size), sprite.Image.URI.String(),
		wire.FormatBytesN(sprite.Image.SHA256[:]), string(sprite.SizeMode), sprite.Anchor.String())
	return nil
}

// CreateTextGeometry implements create-text-geometry.
func (a *Agent) CreateTextGeometry(pattern string, text scene.TextSprite) error {
	ids, err := a.resolveCreate(pattern)
	if err != nil {
		return err
	}
	for _, raw := range ids {
		id, err := identifier.Parse(raw)
		if err != nil || id.Reserved() {
			return protoerr.ErrForbiddenIdentifier
		}
		a.Scene.Geometries.CreateText(id, text)
	}
	a.send("create-text-geometry", pattern, wire.FormatVec2(text.Size), text.Font.URI.String(),
		wire.FormatBytesN(text.Font.SHA256[:]), text.Text, text.Anchor.String())
	return nil
}

// DestroyGeometry implements destroy-geometry. Duplicate create is a
// command error per spec.md §4.8; destroying first is how a server
// replaces a geometry it already created.
func (a *Agent) DestroyGeometry(pattern string) error {
	ids, err := a.resolveExisting(pattern, a.Scene.Geometries.IDs())
	if err != nil {
		return err
	}
	for _, raw := range ids {
		id, _ := identifier.Parse(raw)
		a.Scene.Geometries.Destroy(id)
	}
	a.send("destroy-geometry", pattern)
	return nil
}

// SetTextProperty implements set-text-property.
func (a *Agent) SetTextProperty(pattern, property, value string) error {
	ids, err := a.resolveExisting(pattern, a.Scene.Geometries.IDs())
	if err != nil {
		return err
	}
	for _, raw := range ids {
		id, _ := identifier.Parse(raw)
		_ = a.Scene.Geometries.SetTextProperty(id, property, value)
	}
	a.send("set-text-property", pattern, property, value)
	return nil
}

// AddTriangleList implements add-triangle-list. tag may be empty
// (untagged triangles).
func (a *Agent) AddTriangleList(geomID identifier.ID, tag identifier.Tag, quads []scene.TriangleQuad) error {
	if err := a.Scene.Geometries.AddTriangleList(geomID, tag, quads); err != nil {
		return err
	}
	args := make([]string, 0, 2+4*len(quads))
	args = append(args, string(geomID), string(tag))
	for _, q := range quads {
		args = append(args, q.Color.String(), wire.FormatVec3(q.V0), wire.FormatVec3(q.V1), wire.FormatVec3(q.V2))
	}
	a.send("add-triangle-list", args...)
	return nil
}

// AddTriangleStrip implements add-triangle-strip.
func (a *Agent) AddTriangleStrip(geomID identifier.ID, tag identifier.Tag, color identifier.Color, p0, p1, p2 wire.Vec3, tail []wire.Vec3) error {
	if err := a.Scene.Geometries.AddTriangleStrip(geomID, tag, color, p0, p1, p2, tail); err != nil {
		return err
	}
	a.emitStripOrFan("add-triangle-strip", geomID, tag, color, p0, p1, p2, tail)
	return nil
}

// AddTriangleFan implements add-triangle-fan.
func (a *Agent) AddTriangleFan(geomID identifier.ID, tag identifier.Tag, color identifier.Color, p0, p1, p2 wire.Vec3, tail []wire.Vec3) error {
	if err := a.Scene.Geometries.AddTriangleFan(geomID, tag, color, p0, p1, p2, tail); err != nil {
		return err
	}
	a.emitStripOrFan("add-triangle-fan", geomID, tag, color, p0, p1, p2, tail)
	return nil
}

func (a *Agent) emitStripOrFan(cmd string, geomID identifier.ID, tag identifier.Tag, color identifier.Color, p0, p1, p2 wire.Vec3, tail []wire.Vec3) {
	args := make([]string, 0, 6+len(tail))
	args = append(args, string(geomID), string(tag), color.String(), wire.FormatVec3(p0), wire.FormatVec3(p1), wire.FormatVec3(p2))
	for _, p := range tail {
		args = append(args, wire.FormatVec3(p))
	}
	a.send(cmd, args...)
}

// RemoveTriangles implements remove-triangles: tag selects over the
// tag population of geomID's triangles.
func (a *Agent) RemoveTriangles(geomID identifier.ID, tagPattern string) error {
	matched, err := a.resolveExisting(tagPattern, a.Scene.Geometries.Tags(geomID))
	if err != nil {
		return err
	}
	tags := make(map[identifier.Tag]bool, len(matched))
	for _, t := range matched {
		tags[identifier.Tag(t)] = true
	}
	a.Scene.Geometries.RemoveTriangles(geomID, tags)
	a.send("remove-triangles", string(geomID), tagPattern)
	return nil
}

// --- Scene graph (C8) ---

// CreateObject implements create-object.
func (a *Agent) CreateObject(pattern string, geomID *identifier.ID) error {
	ids, err := a.resolveCreate(pattern)
	if err != nil {
		return err
	}
	for _, raw := range ids {
		id, err := identifier.Parse(raw)
		if err != nil || (id.Reserved() && !a.Scene.Graph.Exists(id)) {
			return protoerr.ErrForbiddenIdentifier
		}
		if err := a.Scene.Graph.Create(id); err != nil {
			return err
		}
		if geomID != nil {
			a.Scene.Graph.SetGeometry(id, *geomID)
		}
	}
	geomArg := ""
	if geomID != nil {
		geomArg = string(*geomID)
	}
	a.send("create-object", pattern, geomArg)
	return nil
}

// DestroyObject implements destroy-object.
func (a *Agent) DestroyObject(pattern string) error {
	ids, err := a.resolveExisting(pattern, a.Scene.Graph.IDs())
	if err != nil {
		return err
	}
	for _, raw := range ids {
		id, _ := identifier.Parse(raw)
		if err := a.Scene.Graph.Destroy(id); err != nil {
			return err
		}
		a.Transitions.Forget(id)
	}
	a.send("destroy-object", pattern)
	return nil
}

// SetObjectProperty implements set-object-property.
func (a *Agent) SetObjectProperty(pattern, property, value string) error {
	ids, err := a.resolveExisting(pattern, a.Scene.Graph.IDs())
	if err != nil {
		return err
	}
	for _, raw := range ids {
		id, _ := identifier.Parse(raw)
		a.Scene.Graph.SetProperty(id, property, value)
	}
	a.send("set-object-property", pattern, property, value)
	return nil
}

// ReparentObject implements reparent-object.
func (a *Agent) ReparentObject(newParent identifier.ID, pattern string, mode scene.ReparentMode) error {
	ids, err := a.resolveExisting(pattern, a.Scene.Graph.IDs())
	if err != nil {
		return err
	}
	now := a.clk.Now()
	for _, raw := range ids {
		id, _ := identifier.Parse(raw)
		if err := a.Transitions.Reparent(id, newParent, mode, now); err != nil {
			return err
		}
	}
	a.send("reparent-object", string(newParent), pattern, reparentModeWireString(mode))
	return nil
}

func reparentModeWireString(mode scene.ReparentMode) string {
	if mode == scene.ReparentWorld {
		return "world"
	}
	return "local"
}

// SetObjectGeometry implements set-object-geometry.
func (a *Agent) SetObjectGeometry(pattern string, geomID *identifier.ID) error {
	ids, err := a.resolveExisting(pattern, a.Scene.Graph.IDs())
	if err != nil {
		return err
	}
	for _, raw := range ids {
		id, _ := identifier.Parse(raw)
		if geomID != nil {
			a.Scene.Graph.SetGeometry(id, *geomID)
		} else {
			a.Scene.Graph.SetGeometry(id, "")
		}
	}
	geomArg := ""
	if geomID != nil {
		geomArg = string(*geomID)
	}
	a.send("set-object-geometry", pattern, geomArg)
	return nil
}

// TransformDelta names the channels set-object-transform may update; a
// nil field leaves that channel's in-flight transition (if any)
// untouched, per spec.md §4.8's "omitted channel means no change".
type TransformDelta struct {
	Pos      *spatial.Vec3
	Rot      *spatial.Euler
	Scale    *spatial.Vec3
	Duration *float64
}

// SetObjectTransform implements set-object-transform.
func (a *Agent) SetObjectTransform(pattern string, delta TransformDelta) error {
	ids, err := a.resolveExisting(pattern, a.Scene.Graph.IDs())
	if err != nil {
		return err
	}
	now := a.clk.Now()
	duration := time.Duration(derefFloat(delta.Duration) * float64(time.Second))
	for _, raw := range ids {
		id, _ := identifier.Parse(raw)
		if delta.Pos != nil {
			if err := a.Transitions.SetPos(id, *delta.Pos, duration, now); err != nil {
				return err
			}
		}
		if delta.Rot != nil {
			if err := a.Transitions.SetRot(id, delta.Rot.ToQuaternion(), duration, now); err != nil {
				return err
			}
		}
		if delta.Scale != nil {
			if err := a.Transitions.SetScale(id, *delta.Scale, duration, now); err != nil {
				return err
			}
		}
	}
	posArg, rotArg, scaleArg := "", "", ""
	if delta.Pos != nil {
		posArg = wire.FormatVec3(*delta.Pos)
	}
	if delta.Rot != nil {
		rotArg = wire.FormatEuler(wire.Euler(*delta.Rot))
	}
	if delta.Scale != nil {
		scaleArg = wire.FormatVec3(*delta.Scale)
	}
	a.send("set-object-transform", pattern, posArg, rotArg, scaleArg, optionalFloat(delta.Duration))
	return nil
}

// TrackObject implements track-object. An empty target clears
// tracking.
func (a *Agent) TrackObject(pattern string, target identifier.ID, mode scene.TrackMode, duration *float64) error {
	ids, err := a.resolveExisting(pattern, a.Scene.Graph.IDs())
	if err != nil {
		return err
	}
	now := a.clk.Now()
	dur := time.Duration(derefFloat(duration) * float64(time.Second))
	for _, raw := range ids {
		id, _ := identifier.Parse(raw)
		a.Scene.Graph.SetTrack(id, target, mode)
		if err := a.Transitions.SetTrack(id, target, mode, dur, now); err != nil {
			return err
		}
	}
	targetArg, modeArg := "", ""
	if target != "" {
		targetArg = string(target)
		modeArg = string(mode)
	}
	a.send("track-object", pattern, targetArg, modeArg, optionalFloat(duration))
	return nil
}

// EnableFreeLook implements enable-free-look.
func (a *Agent) EnableFreeLook(enabled bool) {
	a.Transitions.SetFreeLookEnabled(enabled)
	value := "false"
	if enabled {
		value = "true"
	}
	a.send("enable-free-look", value)
}

// SetBackgroundColor implements set-background-color.
func (a *Agent) SetBackgroundColor(c identifier.Color) {
	a.Scene.SetBackgroundColor(c)
	a.send("set-background-color", c.String())
}
