// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"net/url"
	"testing"
)

func TestFromRawURIIgnoresFragmentAndDefaultsPort(t *testing.T) {
	u, err := url.Parse("hackvr://Example.COM/world?room=1#token-slot")
	if err != nil {
		t.Fatal(err)
	}
	o, err := FromRawURI(u)
	if err != nil {
		t.Fatal(err)
	}
	if o.Host != "example.com" {
		t.Fatalf("expected lowercased host, got %q", o.Host)
	}
	if o.Port != DefaultRawPort {
		t.Fatalf("expected default raw port, got %q", o.Port)
	}
	if o.PathAndQuery != "/world?room=1" {
		t.Fatalf("unexpected path+query: %q", o.PathAndQuery)
	}
}

func TestFromRawURIExplicitPort(t *testing.T) {
	u, err := url.Parse("hackvrs://example.com:9999/world")
	if err != nil {
		t.Fatal(err)
	}
	o, err := FromRawURI(u)
	if err != nil {
		t.Fatal(err)
	}
	if o.Port != "9999" {
		t.Fatalf("expected explicit port to be preserved, got %q", o.Port)
	}
}

func TestFromHTTPUpgradeCanonicalizesHostHeader(t *testing.T) {
	o, err := FromHTTPUpgrade("https+hackvr", "Example.com:8443", "/world?room=1")
	if err != nil {
		t.Fatal(err)
	}
	if o.Host != "example.com" || o.Port != "8443" {
		t.Fatalf("unexpected origin: %+v", o)
	}
	if o.PathAndQuery != "/world?room=1" {
		t.Fatalf("expected request-target carried verbatim, got %q", o.PathAndQuery)
	}
}

func TestOriginEqualityDistinguishesDifferentOrigins(t *testing.T) {
	a := Origin{Scheme: "hackvr", Host: "a.example", Port: "7890"}
	b := Origin{Scheme: "hackvr", Host: "b.example", Port: "7890"}
	if a.Equal(b) {
		t.Fatal("expected distinct hosts to produce distinct origins")
	}
	if !a.Equal(a) {
		t.Fatal("expected an origin to equal itself")
	}
}
