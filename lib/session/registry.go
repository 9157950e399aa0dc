// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"sync"
	"time"

	"github.com/hackvr/hackvr/lib/clock"
	"github.com/hackvr/hackvr/lib/identifier"
)

// DefaultLifetime is how long an announced token remains valid without
// being refreshed by a repeat announce-session for the same token.
const DefaultLifetime = 10 * time.Minute

// entry tracks one announced session token's expiry and the origin it
// is bound to.
type entry struct {
	origin  Origin
	expires time.Time
	revoked bool
}

// Registry is the server-wide session token table: single-writer,
// mutex-guarded, read-mostly, tolerant of stale entries — per spec.md
// §5's shared-resource policy. It is shaped on the teacher's
// servicetoken.Blacklist (expiring-entry map with Cleanup), generalized
// from a revoked-ID set to a live token table since HackVR tokens
// carry no embedded expiry of their own to verify against.
type Registry struct {
	clk clock.Clock

	mu      sync.RWMutex
	entries map[identifier.SessionToken]*entry
}

// NewRegistry returns an empty Registry. A nil clock defaults to
// clock.Real().
func NewRegistry(clk clock.Clock) *Registry {
	if clk == nil {
		clk = clock.Real()
	}
	return &Registry{clk: clk, entries: make(map[identifier.SessionToken]*entry)}
}

// Announce records token as valid, bound to origin, for lifetime. If
// lifetime is zero, DefaultLifetime applies. Re-announcing the same
// token refreshes its expiry in place; announcing a different token
// does not implicitly invalidate any token previously announced on
// some other connection — per-connection "the previous one becomes
// invalid for this connection" is the agent's concern (it simply stops
// treating the old token as current), not the registry's.
func (r *Registry) Announce(token identifier.SessionToken, origin Origin, lifetime time.Duration) {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[token] = &entry{origin: origin, expires: r.clk.Now().Add(lifetime)}
}

// Revoke marks token world-wide invalid. A revoked token stays in the
// table (rather than being deleted) until Cleanup reaps it once its
// natural expiry passes; IsValid reports it invalid exactly as it does
// a token that was never announced.
func (r *Registry) Revoke(token identifier.SessionToken) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[token]; ok {
		e.revoked = true
	} else {
		r.entries[token] = &entry{revoked: true, expires: r.clk.Now().Add(DefaultLifetime)}
	}
}

// IsValid reports whether token is currently announced, not revoked,
// and not expired, and returns the Origin it is bound to.
func (r *Registry) IsValid(token identifier.SessionToken) (origin Origin, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, found := r.entries[token]
	if !found || e.revoked {
		return Origin{}, false
	}
	if r.clk.Now().After(e.expires) {
		return Origin{}, false
	}
	return e.origin, true
}

// Cleanup removes entries whose expiry has passed, bounding the
// table's size. Callers should invoke this periodically (e.g. on a
// ticker, or opportunistically on each Announce).
func (r *Registry) Cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.clk.Now()
	removed := 0
	for token, e := range r.entries {
		if now.After(e.expires) {
			delete(r.entries, token)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked entries, live and revoked.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Context is the per-connection session state a viewer or server keeps
// for the currently-announced token, distinct from the server-wide
// Registry: it is what a viewer consults before attaching a token from
// a URL fragment to an outbound resume-session, and what an Agent
// tracks to know which token, if any, the other side most recently
// announced.
type Context struct {
	token  identifier.SessionToken
	origin Origin
	has    bool
}

// Announce updates the context to the newly announced token, replacing
// any previously held token for this connection — per spec.md §4.7,
// "if it differs from the previously announced token on this
// connection, the previous one becomes invalid for this connection."
func (c *Context) Announce(token identifier.SessionToken, origin Origin) {
	c.token = token
	c.origin = origin
	c.has = true
}

// Clear drops the held token (e.g. on revoke-session for the held
// token, or on transport close).
func (c *Context) Clear() {
	*c = Context{}
}

// Current returns the currently held token and whether one is held.
func (c *Context) Current() (identifier.SessionToken, bool) {
	return c.token, c.has
}

// MayAttach reports whether the held token may be attached to an
// outbound connection bound for target, per spec.md §4.7: "Viewers
// refuse to attach a token from a URL unless the target connection
// matches the bound origin."
func (c *Context) MayAttach(target Origin) bool {
	return c.has && c.origin.Equal(target)
}
