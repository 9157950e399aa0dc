// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package selector implements the HackVR selector grammar: per-part
// '*' and '?' wildcards, '{a,b,c}' enumerations, and '{N..M}' integer
// ranges, expanded either as a pure Cartesian product (for the
// create-family commands, which may use only the '{...}' forms) or
// against an existing identifier population (for modify/destroy
// commands, which may use any form).
package selector
