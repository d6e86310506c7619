// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umutkirgoz/mecra/internal/platform/sec"
)

const testSecret = "unit-test-signing-secret"

/*
TestTokenService_New rejects configurations that must abort startup.
*/
func TestTokenService_New(t *testing.T) {
	_, err := sec.NewTokenService("", time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenService(testSecret, 0)
	assert.Error(t, err)

	service, err := sec.NewTokenService(testSecret, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, service.Validity())
}

/*
TestTokenService_RoundTrip verifies that every claim survives a
generate-then-verify cycle field for field.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	token, issued, err := service.Generate(42, "gezgin", "gezgin@example.com", false, true, false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "gezgin", claims.Nickname)
	assert.Equal(t, "gezgin@example.com", claims.Email)
	assert.False(t, claims.IsAdmin)
	assert.True(t, claims.IsModerator)
	assert.False(t, claims.IsFaded)

	// Timestamps round to Unix seconds in transit.
	assert.Equal(t, issued.IssuedAt.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, issued.ExpiresAt.Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

/*
TestTokenService_TamperedToken verifies that any modification to the payload
invalidates the signature.
*/
func TestTokenService_TamperedToken(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	token, _, err := service.Generate(1, "dost", "dost@example.com", false, false, false)
	require.NoError(t, err)

	// Flip a character inside the payload segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = service.Verify(tampered)
	assert.Error(t, err)
}

/*
TestTokenService_WrongSecret verifies that a token signed with another secret
is rejected.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	issuer, err := sec.NewTokenService("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := sec.NewTokenService("secret-b", time.Hour)
	require.NoError(t, err)

	token, _, err := issuer.Generate(1, "dost", "dost@example.com", false, false, false)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

/*
TestTokenService_ExpiredToken verifies that a token past its expiry is
rejected outright.
*/
func TestTokenService_ExpiredToken(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, 1*time.Nanosecond)
	require.NoError(t, err)

	token, _, err := service.Generate(1, "dost", "dost@example.com", false, false, false)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = service.Verify(token)
	assert.Error(t, err)
}

/*
TestTokenService_Garbage verifies that non-JWT input fails cleanly.
*/
func TestTokenService_Garbage(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := service.Verify(input)
		assert.Error(t, err, "input %q should not verify", input)
	}
}
