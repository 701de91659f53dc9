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
	"strings"

	"github.com/poiesic/strindex/core"
)

// Analyzer computes string properties with a fixed hash algorithm.
// The zero value uses SHA256. Analyzer is safe for concurrent use.
type Analyzer struct {
	algorithm HashAlgorithm
}

// NewAnalyzer creates an analyzer hashing with algorithm.
func NewAnalyzer(algorithm HashAlgorithm) Analyzer {
	return Analyzer{algorithm: algorithm}
}

// Algorithm returns the hash algorithm in use.
func (a Analyzer) Algorithm() HashAlgorithm {
	if a.algorithm == "" {
		return SHA256
	}
	return a.algorithm
}

// Hash returns the content hash of value.
func (a Analyzer) Hash(value string) string {
	return a.Algorithm().Sum(value)
}

// Compute derives the full property record of value.
// Identical input always yields identical output.
func (a Analyzer) Compute(value string) core.Properties {
	runes := []rune(value)

	freq := make(core.FrequencyMap, len(runes))
	for _, r := range runes {
		freq[r]++
	}

	return core.Properties{
		Length:             len(runes),
		IsPalindrome:       isPalindrome(value),
		UniqueCharacters:   len(freq),
		WordCount:          len(strings.Fields(value)),
		ContentHash:        a.Hash(value),
		CharacterFrequency: freq,
	}
}

// Compute derives the property record of value with SHA-256 hashing.
func Compute(value string) core.Properties {
	return Analyzer{}.Compute(value)
}

// isPalindrome compares the lower-cased string with its reversal.
// White space and punctuation are significant.
func isPalindrome(value string) bool {
	lowered := []rune(strings.ToLower(value))
	for i, j := 0, len(lowered)-1; i < j; i, j = i+1, j-1 {
		if lowered[i] != lowered[j] {
			return false
		}
	}
	return true
}
