// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package sec

import (
	"net/http"
	"strings"
)

// cookieTokenKey is the cookie segment that carries the session token.
const cookieTokenKey = "token"

// TokenSource selects which transport channel carries the session token.
//
// The mode is fixed process-wide at startup: extraction is branch-free per
// request instead of sniffing both channels on every call.
type TokenSource int

const (
	// TokenSourceCookie reads the token from the `token=` segment of the
	// raw Cookie header.
	TokenSourceCookie TokenSource = iota

	// TokenSourceHeader reads the token from the Authorization header,
	// accepting both `Bearer <token>` and bare-token forms.
	TokenSourceHeader
)

// String implements fmt.Stringer for startup logging.
func (s TokenSource) String() string {
	if s == TokenSourceHeader {
		return "header"
	}
	return "cookie"
}

// ParseTokenSource maps a configuration value onto a [TokenSource].
// Unrecognized values fall back to cookie mode.
func ParseTokenSource(value string) TokenSource {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "header", "authorization-header":
		return TokenSourceHeader
	default:
		return TokenSourceCookie
	}
}

// Extractor pulls the raw session token text out of request headers.
//
// It performs no decoding or verification; that is [TokenService.Verify]'s
// job. The extractor only locates the credential string.
type Extractor struct {
	source TokenSource
}

// NewExtractor creates an Extractor bound to the given transport mode.
func NewExtractor(source TokenSource) *Extractor {
	return &Extractor{source: source}
}

// Extract returns the raw token from the configured channel, and whether one
// was present at all.
func (e *Extractor) Extract(headers http.Header) (string, bool) {
	if e.source == TokenSourceHeader {
		return extractAuthorizationToken(headers.Get("Authorization"))
	}
	return extractCookieToken(headers.Get("Cookie"))
}

// extractCookieToken scans a raw Cookie header value for the token segment.
//
// Both `; `- and `;`-separated cookie strings parse. A header without a
// `token` key yields no credential.
func extractCookieToken(rawCookie string) (string, bool) {
	if rawCookie == "" {
		return "", false
	}

	for _, segment := range strings.Split(rawCookie, ";") {
		segment = strings.TrimSpace(segment)

		value, found := strings.CutPrefix(segment, cookieTokenKey+"=")
		if found {
			return value, true
		}
	}

	return "", false
}

// extractAuthorizationToken returns the last whitespace-separated field of an
// Authorization header, so `Bearer <token>` and a bare token behave the same.
func extractAuthorizationToken(rawHeader string) (string, bool) {
	fields := strings.Fields(rawHeader)
	if len(fields) == 0 {
		return "", false
	}

	return fields[len(fields)-1], true
}
