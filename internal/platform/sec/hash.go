// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. The memory/time/parallelism triple follows the
// RFC 9106 low-memory recommendation; hashing stays in the tens of
// milliseconds on commodity hardware, which is acceptable for login paths.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// HashPassword hashes a plain-text password using argon2id.
//
// A fresh random salt is generated on every call, so hashing the same
// password twice yields two different strings. The result is a self-contained
// PHC-format string bundling algorithm parameters, salt, and digest:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt-b64>$<digest-b64>
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(plainTextPassword), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)

	return encoded, nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
//
// Verification re-derives the digest using the salt and parameters embedded
// in the encoded string and compares in constant time. It fails closed:
// any malformed input returns false rather than an error or a panic.
func CheckPasswordHash(plainTextPassword, encodedHash string) bool {
	salt, expected, timeCost, memoryCost, threads, ok := decodeHash(encodedHash)
	if !ok {
		return false
	}

	derived := argon2.IDKey([]byte(plainTextPassword), salt, timeCost, memoryCost, threads, uint32(len(expected)))

	return subtle.ConstantTimeCompare(derived, expected) == 1
}

// decodeHash parses a PHC-format argon2id string into its components.
func decodeHash(encodedHash string) (salt, digest []byte, timeCost, memoryCost uint32, threads uint8, ok bool) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, false
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memoryCost, &timeCost, &threads); err != nil {
		return nil, nil, 0, 0, 0, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return nil, nil, 0, 0, 0, false
	}

	digest, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return nil, nil, 0, 0, 0, false
	}

	return salt, digest, timeCost, memoryCost, threads, true
}
