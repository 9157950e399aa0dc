// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package command holds the static HackVR command catalog — one entry
// per command name recording its direction and which parameter
// positions accept selectors — plus the optional-parameter mapping
// helper shared by every command's argument parsing. Unlike the
// decorator-registered, type-hint-driven dispatch of the original
// reference implementation, this package exposes an explicit lookup
// table: the per-command typed-argument parsing and business logic
// lives in package agent, written as ordinary Go functions rather than
// reflected over the catalog.
package command
