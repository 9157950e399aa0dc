// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package establishment

import (
	"fmt"
	"io"
	"net/url"

	"github.com/hackvr/hackvr/lib/identifier"
	"github.com/hackvr/hackvr/lib/protoerr"
	"github.com/hackvr/hackvr/lib/wire"
)

// HelloTimeoutless is a marker value documenting that this package
// applies no handshake deadline of its own — callers that need one
// should wrap r with a deadline-aware reader (e.g. by setting a
// net.Conn read deadline before calling these functions).
const HelloTimeoutless = 0

// ClientHello is the parsed contents of a client's hackvr-hello line.
type ClientHello struct {
	MaxVersion   wire.Version
	URI          *url.URL
	SessionToken *identifier.SessionToken
}

// pullFrame reads from r into fr until fr.Pull yields a result,
// returning any framing violation as a *protoerr.HandshakeError. The
// framer is caller-owned: bytes read past the hello line (if the peer
// pipelines its next frame before the handshake finishes) remain
// buffered in fr for the caller to consume after establishment.
func pullFrame(fr *wire.Framer, r io.Reader) (wire.Frame, error) {
	buf := make([]byte, 4096)
	for {
		frame, ferr, ok := fr.Pull()
		if ok {
			if ferr != nil {
				return wire.Frame{}, protoerr.NewHandshakeError("framing violation during establishment", ferr)
			}
			return frame, nil
		}
		n, err := r.Read(buf)
		if n > 0 {
			fr.Push(buf[:n])
		}
		if err != nil {
			if err == io.EOF {
				return wire.Frame{}, protoerr.NewHandshakeError("connection closed before hello line completed", err)
			}
			return wire.Frame{}, protoerr.NewHandshakeError("read error during establishment", err)
		}
	}
}

// ServerReadClientHello reads and validates the client's first line as
// a raw hackvr-hello. fr must be a fresh Framer dedicated to this
// connection; the caller continues using it (via the framer's normal
// Push/Pull) for all frames after establishment.
func ServerReadClientHello(fr *wire.Framer, r io.Reader) (ClientHello, error) {
	frame, err := pullFrame(fr, r)
	if err != nil {
		return ClientHello{}, err
	}
	if frame.Name != "hackvr-hello" {
		return ClientHello{}, protoerr.NewHandshakeError("first line was not hackvr-hello", nil)
	}
	if len(frame.Args) < 2 {
		return ClientHello{}, protoerr.NewHandshakeError("hackvr-hello missing required arguments", nil)
	}
	maxVersion, err := wire.ParseVersion(frame.Args[0])
	if err != nil {
		return ClientHello{}, protoerr.NewHandshakeError("hackvr-hello version did not parse", err)
	}
	uri, err := wire.ParseURI(frame.Args[1])
	if err != nil {
		return ClientHello{}, protoerr.NewHandshakeError("hackvr-hello uri did not parse", err)
	}
	if uri.Fragment != "" {
		return ClientHello{}, protoerr.NewHandshakeError("hackvr-hello uri must not contain a fragment", nil)
	}

	hello := ClientHello{MaxVersion: maxVersion, URI: uri}
	if len(frame.Args) >= 3 && frame.Args[2] != "" {
		tok, err := identifier.ParseSessionToken(frame.Args[2])
		if err != nil {
			return ClientHello{}, protoerr.NewHandshakeError("hackvr-hello session token did not parse", err)
		}
		hello.SessionToken = &tok
	}
	return hello, nil
}

// ServerSendHello writes the server's hackvr-hello reply.
func ServerSendHello(w io.Writer, maxVersion wire.Version) error {
	data, err := wire.Encode("hackvr-hello", maxVersion.String())
	if err != nil {
		return protoerr.NewHandshakeError("failed to encode server hello", err)
	}
	if _, err := w.Write(data); err != nil {
		return protoerr.NewHandshakeError("failed to write server hello", err)
	}
	return nil
}

// ClientSendHello writes the client's hackvr-hello line.
func ClientSendHello(w io.Writer, maxVersion wire.Version, target *url.URL, token *identifier.SessionToken) error {
	if target.Fragment != "" {
		stripped := *target
		stripped.Fragment = ""
		target = &stripped
	}
	args := []string{maxVersion.String(), target.String()}
	if token != nil {
		args = append(args, token.String())
	}
	data, err := wire.Encode("hackvr-hello", args...)
	if err != nil {
		return protoerr.NewHandshakeError("failed to encode client hello", err)
	}
	if _, err := w.Write(data); err != nil {
		return protoerr.NewHandshakeError("failed to write client hello", err)
	}
	return nil
}

// ClientReadServerHello reads and validates the server's hackvr-hello
// reply, returning its advertised max version.
func ClientReadServerHello(fr *wire.Framer, r io.Reader) (wire.Version, error) {
	frame, err := pullFrame(fr, r)
	if err != nil {
		return wire.Version{}, err
	}
	if frame.Name != "hackvr-hello" {
		return wire.Version{}, protoerr.NewHandshakeError("server's first line was not hackvr-hello", nil)
	}
	if len(frame.Args) < 1 {
		return wire.Version{}, protoerr.NewHandshakeError("server hello missing version", nil)
	}
	version, err := wire.ParseVersion(frame.Args[0])
	if err != nil {
		return wire.Version{}, protoerr.NewHandshakeError("server hello version did not parse", err)
	}
	return version, nil
}

// NegotiateVersion computes the effective version and rejects any
// result below v1.
func NegotiateVersion(a, b wire.Version) (wire.Version, error) {
	effective := wire.EffectiveVersion(a, b)
	if effective.Number < 1 {
		return wire.Version{}, protoerr.NewHandshakeError(fmt.Sprintf("effective version %s is below v1", effective), nil)
	}
	return effective, nil
}
