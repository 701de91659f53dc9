// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// HashAlgorithm names a content hash function.
type HashAlgorithm string

const (
	// SHA256 hashes with SHA-256. This is the default.
	SHA256 HashAlgorithm = "sha256"
	// BLAKE2b hashes with BLAKE2b-256.
	BLAKE2b HashAlgorithm = "blake2b"
)

// ParseHashAlgorithm returns the algorithm named by s (case-insensitive).
// An empty string selects SHA256.
func ParseHashAlgorithm(s string) (HashAlgorithm, error) {
	switch HashAlgorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "", SHA256:
		return SHA256, nil
	case BLAKE2b:
		return BLAKE2b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownHashAlgorithm, s)
	}
}

func (a HashAlgorithm) newHash() hash.Hash {
	switch a {
	case BLAKE2b:
		h, _ := blake2b.New(32, nil) // 32 bytes = 256 bits
		return h
	default:
		return sha256.New()
	}
}

// Sum returns the hex digest of value under the algorithm.
func (a HashAlgorithm) Sum(value string) string {
	h := a.newHash()
	h.Write([]byte(value))
	return hex.EncodeToString(h.Sum(nil))
}
