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


package core

import (
	"encoding/json"
	"time"
)

// Properties holds the values derived from a single input string.
// All counts are in Unicode code points.
type Properties struct {
	Length             int          `json:"length"`
	IsPalindrome       bool         `json:"is_palindrome"`
	UniqueCharacters   int          `json:"unique_characters"`
	WordCount          int          `json:"word_count"`
	ContentHash        string       `json:"content_hash"`
	CharacterFrequency FrequencyMap `json:"character_frequency_map"`
}

// FrequencyMap maps each distinct character to its occurrence count.
type FrequencyMap map[rune]int

// MarshalJSON renders the map with one-character string keys.
func (m FrequencyMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, len(m))
	for r, n := range m {
		out[string(r)] = n
	}
	return json.Marshal(out)
}

// Total returns the sum of all counts.
func (m FrequencyMap) Total() int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

// StoredRecord is an analyzed string as kept in the record store.
// Its identity is the content hash of Value.
type StoredRecord struct {
	ID         string     `json:"id"`
	Value      string     `json:"value"`
	Properties Properties `json:"properties"`
	CreatedAt  time.Time  `json:"created_at"`
}

// MarshalJSON renders CreatedAt as ISO-8601 in UTC.
func (r StoredRecord) MarshalJSON() ([]byte, error) {
	type alias StoredRecord
	return json.Marshal(struct {
		alias
		CreatedAt string `json:"created_at"`
	}{
		alias:     alias(r),
		CreatedAt: r.CreatedAt.UTC().Format(TimestampFormat),
	})
}

// TimestampFormat is the wire format for creation timestamps.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// FilterSpec is the canonical set of optional predicates used to select
// stored records. A nil field imposes no constraint.
type FilterSpec struct {
	IsPalindrome      *bool
	MinLength         *int
	MaxLength         *int
	WordCount         *int
	ContainsCharacter *rune
}

// IsEmpty reports whether no predicate is set.
func (s FilterSpec) IsEmpty() bool {
	return s.IsPalindrome == nil &&
		s.MinLength == nil &&
		s.MaxLength == nil &&
		s.WordCount == nil &&
		s.ContainsCharacter == nil
}

// Equal reports whether both specs carry the same predicates and values.
func (s FilterSpec) Equal(o FilterSpec) bool {
	return equalPtr(s.IsPalindrome, o.IsPalindrome) &&
		equalPtr(s.MinLength, o.MinLength) &&
		equalPtr(s.MaxLength, o.MaxLength) &&
		equalPtr(s.WordCount, o.WordCount) &&
		equalPtr(s.ContainsCharacter, o.ContainsCharacter)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// MarshalJSON emits only the predicates that are present.
func (s FilterSpec) MarshalJSON() ([]byte, error) {
	out := struct {
		IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
		MinLength         *int    `json:"min_length,omitempty"`
		MaxLength         *int    `json:"max_length,omitempty"`
		WordCount         *int    `json:"word_count,omitempty"`
		ContainsCharacter *string `json:"contains_character,omitempty"`
	}{
		IsPalindrome: s.IsPalindrome,
		MinLength:    s.MinLength,
		MaxLength:    s.MaxLength,
		WordCount:    s.WordCount,
	}
	if s.ContainsCharacter != nil {
		c := string(*s.ContainsCharacter)
		out.ContainsCharacter = &c
	}
	return json.Marshal(out)
}

// Ptr returns a pointer to v. Handy for building a FilterSpec literal.
func Ptr[T any](v T) *T {
	return &v
}
