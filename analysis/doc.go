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


// Package analysis computes the derived properties of a string.
//
// Every property is computed over Unicode code points: length, unique
// character count, the frequency map and the palindrome reversal all
// iterate the runes of the string. Invalid UTF-8 bytes each count as one
// U+FFFD rune. Words are runs of non-white-space characters.
//
// The content hash is a hex digest of the raw string bytes and is the
// identity of a stored record. SHA-256 is the default; BLAKE2b-256 is
// available for stores created with it.
package analysis
