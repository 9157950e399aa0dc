// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package establishment

import (
	"bufio"
	"fmt"
	"io"
	"net/textproto"
	"strings"

	"github.com/hackvr/hackvr/lib/identifier"
	"github.com/hackvr/hackvr/lib/protoerr"
)

// httpVersionPinned is the only HackVr-Version the HTTP Upgrade path
// accepts; HTTP pins to v1 per the establishment engine's design.
const httpVersionPinned = "v1"

// ServerHTTPUpgrade reads an HTTP/1.1 Upgrade request from r, and on
// success writes the 101 response to w and returns the request's
// session token (if any). The caller passes the same *bufio.Reader it
// used here into package wire's Framer-feeding loop for the HackVR
// stream that begins immediately after the blank line — this function
// consumes only the request line and headers, never peeking past the
// blank line, so no bytes are lost.
func ServerHTTPUpgrade(r *bufio.Reader, w io.Writer) (*identifier.SessionToken, error) {
	tp := textproto.NewReader(r)

	requestLine, err := tp.ReadLine()
	if err != nil {
		return nil, protoerr.NewHandshakeError("failed to read HTTP request line", err)
	}
	if !strings.HasSuffix(requestLine, "HTTP/1.1") || !strings.HasPrefix(requestLine, "GET ") {
		return nil, protoerr.NewHandshakeError("expected a GET ... HTTP/1.1 request line", nil)
	}

	header, err := tp.ReadMIMEHeader()
	if err != nil {
		return nil, protoerr.NewHandshakeError("failed to read HTTP headers", err)
	}

	if !headerEqualsFold(header, "Connection", "upgrade") {
		return nil, protoerr.NewHandshakeError("missing or mismatched Connection header", nil)
	}
	if !headerEqualsFold(header, "Upgrade", "hackvr") {
		return nil, protoerr.NewHandshakeError("missing or mismatched Upgrade header", nil)
	}
	if strings.TrimSpace(header.Get("Hackvr-Version")) != httpVersionPinned {
		return nil, protoerr.NewHandshakeError("missing or unsupported HackVr-Version header", nil)
	}

	var token *identifier.SessionToken
	if raw := header.Get("Hackvr-Session"); raw != "" {
		tok, err := identifier.ParseSessionToken(raw)
		if err != nil {
			return nil, protoerr.NewHandshakeError("HackVr-Session header did not parse", err)
		}
		token = &tok
	}

	response := "HTTP/1.1 101 Switching Protocols\r\n" +
		"Connection: upgrade\r\n" +
		"Upgrade: hackvr\r\n" +
		"\r\n"
	if _, err := io.WriteString(w, response); err != nil {
		return nil, protoerr.NewHandshakeError("failed to write 101 response", err)
	}
	return token, nil
}

// ClientHTTPUpgrade writes an HTTP/1.1 Upgrade request to w and
// validates the 101 response read from r.
func ClientHTTPUpgrade(r *bufio.Reader, w io.Writer, host, requestTarget string, token *identifier.SessionToken) error {
	var b strings.Builder
	fmt.Fprintf(&b, "GET %s HTTP/1.1\r\n", requestTarget)
	fmt.Fprintf(&b, "Host: %s\r\n", host)
	b.WriteString("Connection: upgrade\r\n")
	b.WriteString("Upgrade: hackvr\r\n")
	fmt.Fprintf(&b, "Hackvr-Version: %s\r\n", httpVersionPinned)
	if token != nil {
		fmt.Fprintf(&b, "Hackvr-Session: %s\r\n", token.String())
	}
	b.WriteString("\r\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return protoerr.NewHandshakeError("failed to write HTTP upgrade request", err)
	}

	tp := textproto.NewReader(r)
	statusLine, err := tp.ReadLine()
	if err != nil {
		return protoerr.NewHandshakeError("failed to read HTTP status line", err)
	}
	if !strings.Contains(statusLine, "101") {
		return protoerr.NewHandshakeError("server did not respond 101 Switching Protocols: "+statusLine, nil)
	}

	header, err := tp.ReadMIMEHeader()
	if err != nil {
		return protoerr.NewHandshakeError("failed to read HTTP response headers", err)
	}
	if !headerEqualsFold(header, "Connection", "upgrade") {
		return protoerr.NewHandshakeError("101 response missing or mismatched Connection header", nil)
	}
	if !headerEqualsFold(header, "Upgrade", "hackvr") {
		return protoerr.NewHandshakeError("101 response missing or mismatched Upgrade header", nil)
	}
	return nil
}

func headerEqualsFold(header map[string][]string, key, want string) bool {
	for _, v := range header[textproto.CanonicalMIMEHeaderKey(key)] {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}
	return false
}
