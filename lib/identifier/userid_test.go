// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package identifier

import (
	"strings"
	"testing"
)

func TestParseUserID(t *testing.T) {
	if _, err := ParseUserID("alice"); err != nil {
		t.Fatalf("ParseUserID(alice): %v", err)
	}
	if _, err := ParseUserID(AnonymousUser); err != nil {
		t.Fatalf("ParseUserID($anonymous): %v", err)
	}

	cases := []string{
		"",
		" alice",
		"alice ",
		"ali\nce",
		strings.Repeat("a", MaxUserIDCodepoints+1),
	}
	for _, s := range cases {
		if _, err := ParseUserID(s); err == nil {
			t.Errorf("ParseUserID(%q): expected error, got none", s)
		}
	}
}

func TestUserIDAnonymous(t *testing.T) {
	id, err := ParseUserID("$anonymous")
	if err != nil {
		t.Fatal(err)
	}
	if !id.Anonymous() {
		t.Fatal("expected Anonymous() true")
	}
	id2, err := ParseUserID("bob")
	if err != nil {
		t.Fatal(err)
	}
	if id2.Anonymous() {
		t.Fatal("expected Anonymous() false")
	}
}
