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


package filter

import (
	"strings"

	"github.com/poiesic/strindex/core"
)

// Apply returns the records matching every predicate in spec.
// An empty spec returns records unchanged.
func Apply(records []*core.StoredRecord, spec core.FilterSpec) []*core.StoredRecord {
	if spec.IsEmpty() {
		return records
	}

	// Single pass: a record is kept only if it matches all predicates
	matched := make([]*core.StoredRecord, 0, len(records))
	for _, record := range records {
		if record != nil && Match(record, spec) {
			matched = append(matched, record)
		}
	}
	return matched
}

// Match reports whether record satisfies every predicate in spec.
func Match(record *core.StoredRecord, spec core.FilterSpec) bool {
	props := &record.Properties

	if spec.IsPalindrome != nil && props.IsPalindrome != *spec.IsPalindrome {
		return false
	}
	if spec.MinLength != nil && props.Length < *spec.MinLength {
		return false
	}
	if spec.MaxLength != nil && props.Length > *spec.MaxLength {
		return false
	}
	if spec.WordCount != nil && props.WordCount != *spec.WordCount {
		return false
	}
	// Containment is checked against the raw value, case-sensitive
	if spec.ContainsCharacter != nil && !strings.ContainsRune(record.Value, *spec.ContainsCharacter) {
		return false
	}
	return true
}
