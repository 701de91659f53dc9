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
	"fmt"
	"unicode/utf8"
)

// ValidateFilterSpec checks a spec built from structured parameters.
//
// Validation rules:
//   - MinLength, MaxLength and WordCount must not be negative
//   - MinLength must not exceed MaxLength when both are set
//
// Negative bounds are a validation error, contradictory bounds a conflict.
func ValidateFilterSpec(spec FilterSpec) error {
	if spec.MinLength != nil && *spec.MinLength < 0 {
		return fmt.Errorf("%w: min_length must be non-negative, got %d", ErrValidation, *spec.MinLength)
	}
	if spec.MaxLength != nil && *spec.MaxLength < 0 {
		return fmt.Errorf("%w: max_length must be non-negative, got %d", ErrValidation, *spec.MaxLength)
	}
	if spec.WordCount != nil && *spec.WordCount < 0 {
		return fmt.Errorf("%w: word_count must be non-negative, got %d", ErrValidation, *spec.WordCount)
	}
	return CheckBounds(spec)
}

// CheckBounds returns ErrConflict if both length bounds are set and
// MinLength is greater than MaxLength.
func CheckBounds(spec FilterSpec) error {
	if spec.MinLength != nil && spec.MaxLength != nil && *spec.MinLength > *spec.MaxLength {
		return fmt.Errorf("%w (min_length=%d, max_length=%d)", ErrConflict, *spec.MinLength, *spec.MaxLength)
	}
	return nil
}

// ParseCharacter returns the single character in s.
func ParseCharacter(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: contains_character must be exactly one character, got %q", ErrValidation, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
