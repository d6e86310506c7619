// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package sec

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the blake3 hex digest of a full signed token string.
//
// The revocation ledger stores fingerprints instead of tokens, so a database
// leak never exposes usable credentials. The digest covers the token's raw
// bytes (not its signature), which keeps ledger lookups valid even if the
// signing scheme changes.
func Fingerprint(token string) string {
	sum := blake3.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
