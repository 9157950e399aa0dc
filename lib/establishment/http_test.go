// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package establishment

import (
	"bufio"
	"strings"
	"testing"
)

func TestHTTPUpgradeHappyPath(t *testing.T) {
	request := "GET /world HTTP/1.1\r\n" +
		"Host: example\r\n" +
		"Connection: upgrade\r\n" +
		"Upgrade: hackvr\r\n" +
		"Hackvr-Version: v1\r\n" +
		"\r\n"

	r := bufio.NewReader(strings.NewReader(request))
	var w strings.Builder
	token, err := ServerHTTPUpgrade(r, &w)
	if err != nil {
		t.Fatalf("ServerHTTPUpgrade: %v", err)
	}
	if token != nil {
		t.Fatal("expected no session token")
	}
	if !strings.Contains(w.String(), "101 Switching Protocols") {
		t.Fatalf("unexpected response: %q", w.String())
	}
}

func TestHTTPUpgradeRejectsMismatchedUpgradeHeader(t *testing.T) {
	request := "GET /world HTTP/1.1\r\n" +
		"Host: example\r\n" +
		"Connection: upgrade\r\n" +
		"Upgrade: websocket\r\n" +
		"Hackvr-Version: v1\r\n" +
		"\r\n"
	r := bufio.NewReader(strings.NewReader(request))
	var w strings.Builder
	if _, err := ServerHTTPUpgrade(r, &w); err == nil {
		t.Fatal("expected handshake error for wrong Upgrade header")
	}
}

func TestHTTPUpgradeRejectsUppercaseVersionValue(t *testing.T) {
	request := "GET /world HTTP/1.1\r\n" +
		"Host: example\r\n" +
		"CONNECTION: Upgrade\r\n" +
		"upgrade: HackVR\r\n" +
		"hackvr-version: V1\r\n" +
		"\r\n"
	r := bufio.NewReader(strings.NewReader(request))
	var w strings.Builder
	if _, err := ServerHTTPUpgrade(r, &w); err == nil {
		t.Fatal("header VALUES are case-insensitive but this test intentionally cases \"V1\" which must still fail since only exact \"v1\" is pinned")
	}
}
