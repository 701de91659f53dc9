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


// Package query interprets short natural-language phrases as filter specs.
//
// Interpretation is a fixed set of pattern rules, not a grammar. All rules
// are scanned over the lower-cased phrase in a fixed order:
//
//  1. "palindrom" anywhere sets is_palindrome.
//  2. "single word"/"one word", "two word", "three word" set word_count
//     (first match wins).
//  3. "longer than N", "shorter than N", "at least N characters",
//     "at most N characters" and "exactly N characters" set length bounds.
//  4. "contains the letter X" and similar forms set contains_character.
//  5. "first vowel" sets contains_character to 'a'.
//
// Independent fields accumulate; a later rule overwrites an earlier one on
// the same field. A phrase that sets nothing fails with core.ErrNoMatch and
// contradictory length bounds fail with core.ErrConflict.
package query
