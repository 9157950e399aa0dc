// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// DefaultRawPort and DefaultRawTLSPort are the implementation-assumed
// default ports for the hackvr:// and hackvrs:// schemes, used for
// origin-binding canonicalization when a URI omits an explicit port.
// The protocol draft does not name a default; these values are an
// implementation choice.
const (
	DefaultRawPort    = "7890"
	DefaultRawTLSPort = "7891"
)

// Origin is the canonicalized tuple a session token is bound to.
// Equality is by value, so comparing two Origins with == or the Equal
// method both work — Equal exists for readability at call sites.
type Origin struct {
	Scheme       string
	Host         string
	Port         string
	PathAndQuery string
}

// Equal reports whether o and other bind to the same origin.
func (o Origin) Equal(other Origin) bool {
	return o == other
}

// FromRawURI canonicalizes a hackvr:// or hackvrs:// target URI into an
// Origin per spec.md §4.7: (scheme, lowercased host with
// IDNA-to-A-label, explicit or default port, path, query). The URI
// fragment is never part of the bound origin even if present.
func FromRawURI(u *url.URL) (Origin, error) {
	host, err := canonicalHost(u.Hostname())
	if err != nil {
		return Origin{}, fmt.Errorf("session: canonicalizing origin host: %w", err)
	}
	port := u.Port()
	if port == "" {
		port = defaultPortForScheme(u.Scheme)
	}
	pathAndQuery := u.EscapedPath()
	if u.RawQuery != "" {
		pathAndQuery += "?" + u.RawQuery
	}
	return Origin{
		Scheme:       strings.ToLower(u.Scheme),
		Host:         host,
		Port:         port,
		PathAndQuery: pathAndQuery,
	}, nil
}

// FromHTTPUpgrade canonicalizes the request that completed an HTTP/1.1
// Upgrade into an Origin per spec.md §4.7: (scheme, Host header
// canonicalized, request-target). requestTarget is carried verbatim
// (it already combines path and query as sent on the wire).
func FromHTTPUpgrade(scheme, hostHeader, requestTarget string) (Origin, error) {
	hostname, port, err := splitHostHeader(hostHeader)
	if err != nil {
		return Origin{}, err
	}
	host, err := canonicalHost(hostname)
	if err != nil {
		return Origin{}, fmt.Errorf("session: canonicalizing origin host: %w", err)
	}
	if port == "" {
		port = defaultPortForScheme(scheme)
	}
	return Origin{
		Scheme:       strings.ToLower(scheme),
		Host:         host,
		Port:         port,
		PathAndQuery: requestTarget,
	}, nil
}

func splitHostHeader(hostHeader string) (hostname, port string, err error) {
	if hostHeader == "" {
		return "", "", fmt.Errorf("session: empty Host header")
	}
	if i := strings.LastIndex(hostHeader, ":"); i >= 0 && !strings.Contains(hostHeader[i+1:], "]") {
		return hostHeader[:i], hostHeader[i+1:], nil
	}
	return hostHeader, "", nil
}

func canonicalHost(host string) (string, error) {
	host = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(host, "["), "]"))
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		// Not every valid hostname (e.g. a bare IP literal) round-trips
		// through IDNA's lookup profile; fall back to the lowercased
		// form rather than rejecting the origin outright.
		return host, nil
	}
	return ascii, nil
}

func defaultPortForScheme(scheme string) string {
	switch strings.ToLower(scheme) {
	case "hackvr", "http+hackvr":
		if scheme == "http+hackvr" {
			return "80"
		}
		return DefaultRawPort
	case "hackvrs":
		return DefaultRawTLSPort
	case "https+hackvr":
		return "443"
	default:
		return ""
	}
}
