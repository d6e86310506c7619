// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package sec_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umutkirgoz/mecra/internal/platform/sec"
)

/*
TestParseTokenSource maps configuration strings onto transport modes, with
cookie as the fallback.
*/
func TestParseTokenSource(t *testing.T) {
	tests := []struct {
		value    string
		expected sec.TokenSource
	}{
		{"cookie", sec.TokenSourceCookie},
		{"header", sec.TokenSourceHeader},
		{"authorization-header", sec.TokenSourceHeader},
		{" HEADER ", sec.TokenSourceHeader},
		{"", sec.TokenSourceCookie},
		{"something-else", sec.TokenSourceCookie},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sec.ParseTokenSource(tt.value), "value %q", tt.value)
	}
}

/*
TestExtractor_Cookie covers the cookie transport: the token segment is found
regardless of its position, spacing, or neighbors.
*/
func TestExtractor_Cookie(t *testing.T) {
	extractor := sec.NewExtractor(sec.TokenSourceCookie)

	tests := []struct {
		name      string
		cookie    string
		wantToken string
		wantFound bool
	}{
		{"only_token", "token=abc123", "abc123", true},
		{"token_in_middle", "location=ist; token=abc123; theme=dark", "abc123", true},
		{"no_spaces", "location=ist;token=abc123;theme=dark", "abc123", true},
		{"token_absent", "location=ist", "", false},
		{"empty_header", "", "", false},
		{"empty_value", "token=", "", true},
		{"prefix_collision", "mytoken=zzz; token=abc123", "abc123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := http.Header{}
			if tt.cookie != "" {
				headers.Set("Cookie", tt.cookie)
			}

			token, found := extractor.Extract(headers)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

/*
TestExtractor_Header covers the Authorization transport: the Bearer prefix is
optional and only the trailing field counts.
*/
func TestExtractor_Header(t *testing.T) {
	extractor := sec.NewExtractor(sec.TokenSourceHeader)

	tests := []struct {
		name      string
		header    string
		wantToken string
		wantFound bool
	}{
		{"bearer_prefix", "Bearer abc123", "abc123", true},
		{"bare_token", "abc123", "abc123", true},
		{"header_absent", "", "", false},
		{"whitespace_only", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := http.Header{}
			if tt.header != "" {
				headers.Set("Authorization", tt.header)
			}

			token, found := extractor.Extract(headers)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

/*
TestExtractor_ChannelIsolation verifies that each mode reads only its own
channel: a cookie-mode extractor ignores Authorization and vice versa.
*/
func TestExtractor_ChannelIsolation(t *testing.T) {
	headers := http.Header{}
	headers.Set("Cookie", "token=from-cookie")
	headers.Set("Authorization", "Bearer from-header")

	cookieToken, found := sec.NewExtractor(sec.TokenSourceCookie).Extract(headers)
	assert.True(t, found)
	assert.Equal(t, "from-cookie", cookieToken)

	headerToken, found := sec.NewExtractor(sec.TokenSourceHeader).Extract(headers)
	assert.True(t, found)
	assert.Equal(t, "from-header", headerToken)
}
