// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

// Direction records which side of the connection may send a command.
type Direction int

const (
	ServerToClient Direction = iota
	ClientToServer
	Either
)

func (d Direction) String() string {
	switch d {
	case ServerToClient:
		return "server-to-client"
	case ClientToServer:
		return "client-to-server"
	case Either:
		return "either"
	}
	return "unknown"
}

// Allows reports whether a command with direction d may be sent by the
// observed sender.
func (d Direction) Allows(observed Direction) bool {
	if d == Either || observed == Either {
		return true
	}
	return d == observed
}

// Population names the identifier space a selector parameter draws
// from, used only for documentation and for choosing which population
// snapshot to pass to package selector at dispatch time.
type Population int

const (
	NoPopulation Population = iota
	ObjectPopulation
	GeometryPopulation
	IntentPopulation
	TagPopulation
)

// Spec describes one command's invariant shape: its direction, whether
// it is a create-family command (selector parameters may use only the
// '{...}' expansion forms), and which of its parameter positions (by
// index, zero-based) are selectors and over which population.
type Spec struct {
	Name         string
	Direction    Direction
	CreateFamily bool
	Selectors    map[int]Population
}

// Catalog is the full HackVR command table, name to Spec.
var Catalog = buildCatalog()

func buildCatalog() map[string]Spec {
	specs := []Spec{
		// Establishment is handled entirely by package establishment;
		// hackvr-hello never appears in this catalog because it is
		// only ever legal before establishment completes.

		// Auth state machine (C6).
		{Name: "request-user", Direction: ServerToClient},
		{Name: "set-user", Direction: ClientToServer},
		{Name: "request-authentication", Direction: ServerToClient},
		{Name: "authenticate", Direction: ClientToServer},
		{Name: "accept-user", Direction: ServerToClient},
		{Name: "reject-user", Direction: ServerToClient},

		// Session engine (C7).
		{Name: "announce-session", Direction: ServerToClient},
		{Name: "revoke-session", Direction: ServerToClient},
		{Name: "resume-session", Direction: ClientToServer},

		// Scene graph (C8).
		{Name: "create-object", Direction: ServerToClient, CreateFamily: true,
			Selectors: map[int]Population{0: ObjectPopulation}},
		{Name: "destroy-object", Direction: ServerToClient,
			Selectors: map[int]Population{0: ObjectPopulation}},
		{Name: "set-object-property", Direction: ServerToClient,
			Selectors: map[int]Population{0: ObjectPopulation}},
		{Name: "reparent-object", Direction: ServerToClient,
			Selectors: map[int]Population{0: ObjectPopulation}},
		{Name: "set-object-geometry", Direction: ServerToClient,
			Selectors: map[int]Population{0: ObjectPopulation}},

		// Transition engine (C9).
		{Name: "set-object-transform", Direction: ServerToClient,
			Selectors: map[int]Population{0: ObjectPopulation}},
		{Name: "track-object", Direction: ServerToClient,
			Selectors: map[int]Population{0: ObjectPopulation}},
		{Name: "enable-free-look", Direction: ServerToClient},
		{Name: "set-background-color", Direction: ServerToClient},

		// Geometry (C8).
		{Name: "create-geometry", Direction: ServerToClient, CreateFamily: true,
			Selectors: map[int]Population{0: GeometryPopulation}},
		{Name: "create-sprite-geometry", Direction: ServerToClient, CreateFamily: true,
			Selectors: map[int]Population{0: GeometryPopulation}},
		{Name: "create-text-geometry", Direction: ServerToClient, CreateFamily: true,
			Selectors: map[int]Population{0: GeometryPopulation}},
		{Name: "set-text-property", Direction: ServerToClient,
			Selectors: map[int]Population{0: GeometryPopulation}},
		{Name: "destroy-geometry", Direction: ServerToClient,
			Selectors: map[int]Population{0: GeometryPopulation}},
		{Name: "add-triangle-list", Direction: ServerToClient},
		{Name: "add-triangle-strip", Direction: ServerToClient},
		{Name: "add-triangle-fan", Direction: ServerToClient},
		{Name: "remove-triangles", Direction: ServerToClient,
			Selectors: map[int]Population{1: TagPopulation}},

		// Intents (C10).
		{Name: "create-intent", Direction: ServerToClient, CreateFamily: true,
			Selectors: map[int]Population{0: IntentPopulation}},
		{Name: "destroy-intent", Direction: ServerToClient,
			Selectors: map[int]Population{0: IntentPopulation}},

		// Interaction mode gates (C10).
		{Name: "request-input", Direction: ServerToClient},
		{Name: "cancel-input", Direction: ServerToClient},
		{Name: "send-input", Direction: ClientToServer},
		{Name: "tap-object", Direction: ClientToServer},
		{Name: "tell-object", Direction: ClientToServer},
		{Name: "intent", Direction: ClientToServer},
		{Name: "raycast-request", Direction: ServerToClient},
		{Name: "raycast-cancel", Direction: Either},
		{Name: "raycast", Direction: ClientToServer},

		// Banner and chat (supplemented from the original catalog).
		{Name: "set-banner", Direction: ServerToClient},
		{Name: "chat", Direction: Either},
	}

	catalog := make(map[string]Spec, len(specs))
	for _, s := range specs {
		catalog[s.Name] = s
	}
	return catalog
}

// Lookup returns the Spec for name, if known.
func Lookup(name string) (Spec, bool) {
	spec, ok := Catalog[name]
	return spec, ok
}
