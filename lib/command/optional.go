// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

// OptionalArg implements the optional-parameter mapping rule from the
// typed argument codec: a parameter position past the end of the
// supplied argument list is absent; a supplied-but-empty value is
// absent unless the parameter's type is zstring (the only type for
// which an explicit empty string is a meaningful, present value).
func OptionalArg(args []string, index int, zstring bool) (value string, present bool) {
	if index < 0 || index >= len(args) {
		return "", false
	}
	v := args[index]
	if v == "" && !zstring {
		return "", false
	}
	return v, true
}

// RequiredArg returns the argument at index, or absent if args is too
// short — callers treat absence of a required argument as a malformed
// command (drop post-establishment, fatal during establishment).
func RequiredArg(args []string, index int) (value string, present bool) {
	if index < 0 || index >= len(args) {
		return "", false
	}
	return args[index], true
}
