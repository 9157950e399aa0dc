// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package establishment

import (
	"io"
	"net/url"
	"testing"

	"github.com/hackvr/hackvr/lib/wire"
)

var errEOFOnEmptyPipe = io.EOF

func TestRawHandshakeHappyPath(t *testing.T) {
	clientToServer, serverToClient := pipe()

	target, err := url.Parse("hackvr://example/world")
	if err != nil {
		t.Fatal(err)
	}
	if err := ClientSendHello(clientToServer, wire.Version{Number: 2}, target, nil); err != nil {
		t.Fatal(err)
	}

	serverFramer := wire.NewFramer()
	hello, err := ServerReadClientHello(serverFramer, clientToServer)
	if err != nil {
		t.Fatalf("server read client hello: %v", err)
	}
	if hello.MaxVersion.Number != 2 {
		t.Fatalf("got max version %d, want 2", hello.MaxVersion.Number)
	}

	if err := ServerSendHello(serverToClient, wire.Version{Number: 1}); err != nil {
		t.Fatal(err)
	}
	clientFramer := wire.NewFramer()
	serverVersion, err := ClientReadServerHello(clientFramer, serverToClient)
	if err != nil {
		t.Fatalf("client read server hello: %v", err)
	}

	effective, err := NegotiateVersion(hello.MaxVersion, serverVersion)
	if err != nil {
		t.Fatal(err)
	}
	if effective.Number != 1 {
		t.Fatalf("effective version = %d, want 1", effective.Number)
	}
}

func TestRawHandshakeStripsFragment(t *testing.T) {
	clientToServer, _ := pipe()
	target, _ := url.Parse("hackvr://example/world#frag")
	err := ClientSendHello(clientToServer, wire.Version{Number: 1}, target, nil)
	if err != nil {
		t.Fatal(err)
	}
	serverFramer := wire.NewFramer()
	_, err = ServerReadClientHello(serverFramer, clientToServer)
	if err != nil {
		t.Fatal("ClientSendHello should have stripped the fragment before sending")
	}
}

func TestRawHandshakeRejectsNonHelloFirstLine(t *testing.T) {
	clientToServer, _ := pipe()
	data, err := wire.Encode("chat", "hello")
	if err != nil {
		t.Fatal(err)
	}
	clientToServer.feed(data)

	serverFramer := wire.NewFramer()
	if _, err := ServerReadClientHello(serverFramer, clientToServer); err == nil {
		t.Fatal("expected handshake error for non-hello first line")
	}
}

func TestNegotiateVersionRejectsBelowV1(t *testing.T) {
	_, err := NegotiateVersion(wire.Version{Number: 0}, wire.Version{Number: 0})
	if err == nil {
		t.Fatal("expected error for effective version below v1")
	}
}

// memPipe is a minimal in-memory unidirectional byte pipe used to
// drive the handshake functions without a real socket.
type memPipe struct {
	data []byte
}

func pipe() (*memPipe, *memPipe) {
	return &memPipe{}, &memPipe{}
}

func (p *memPipe) feed(b []byte) { p.data = append(p.data, b...) }

func (p *memPipe) Write(b []byte) (int, error) {
	p.data = append(p.data, b...)
	return len(b), nil
}

func (p *memPipe) Read(b []byte) (int, error) {
	if len(p.data) == 0 {
		return 0, errEOFOnEmptyPipe
	}
	n := copy(b, p.data)
	p.data = p.data[n:]
	return n, nil
}
