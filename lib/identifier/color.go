// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package identifier

import (
	"encoding/hex"
	"errors"
	"strings"
)

// ErrInvalidColor is returned when a candidate string is not a
// well-formed #RRGGBB color.
var ErrInvalidColor = errors.New("identifier: invalid color")

// Color is a 24-bit sRGB color.
type Color struct {
	R, G, B uint8
}

// ParseColor parses a "#RRGGBB" string, hex case-insensitive.
func ParseColor(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, ErrInvalidColor
	}
	raw, err := hex.DecodeString(s[1:])
	if err != nil || len(raw) != 3 {
		return Color{}, ErrInvalidColor
	}
	return Color{R: raw[0], G: raw[1], B: raw[2]}, nil
}

// String renders the canonical lowercase "#rrggbb" form.
func (c Color) String() string {
	var buf [7]byte
	buf[0] = '#'
	hex.Encode(buf[1:3], []byte{c.R})
	hex.Encode(buf[3:5], []byte{c.G})
	hex.Encode(buf[5:7], []byte{c.B})
	return strings.ToLower(string(buf[:]))
}
