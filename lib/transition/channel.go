// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transition

import (
	"time"

	"github.com/hackvr/hackvr/lib/spatial"
)

// Channel names one of the three independent transform channels
// set-object-transform addresses.
type Channel int

const (
	ChannelPos Channel = iota
	ChannelRot
	ChannelScale
)

// vecChannel is an active transition on a Vec3-valued channel
// (position or scale).
type vecChannel struct {
	start, target spatial.Vec3
	startTime     time.Time
	duration      time.Duration
}

func (c *vecChannel) arrived(now time.Time) bool {
	return !now.Before(c.startTime.Add(c.duration))
}

func (c *vecChannel) evaluate(now time.Time) spatial.Vec3 {
	if c.duration <= 0 || c.arrived(now) {
		return c.target
	}
	t := float64(now.Sub(c.startTime)) / float64(c.duration)
	return spatial.LerpVec3(c.start, c.target, t)
}

// rotChannel is an active transition on the quaternion-valued
// rotation channel, blended via shortest-arc spherical interpolation
// per spec.md §4.8.
type rotChannel struct {
	start, target spatial.Quaternion
	startTime     time.Time
	duration      time.Duration
}

func (c *rotChannel) arrived(now time.Time) bool {
	return !now.Before(c.startTime.Add(c.duration))
}

func (c *rotChannel) evaluate(now time.Time) spatial.Quaternion {
	if c.duration <= 0 || c.arrived(now) {
		return c.target
	}
	t := float64(now.Sub(c.startTime)) / float64(c.duration)
	return spatial.Slerp(c.start, c.target, t)
}
