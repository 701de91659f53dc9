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

import "errors"

// Request-level errors. Each maps to a distinct caller-visible category;
// see KindOf.
var (
	// ErrDuplicate indicates a record with the same content hash already exists.
	ErrDuplicate = errors.New("string already exists in the system")

	// ErrNotFound indicates no record exists for the requested value.
	ErrNotFound = errors.New("string not found in the system")

	// ErrConflict indicates contradictory filter bounds.
	ErrConflict = errors.New("conflicting filters: min_length cannot be greater than max_length")

	// ErrNoMatch indicates a phrase yielded no recognizable predicate.
	ErrNoMatch = errors.New("unable to parse natural language query")

	// ErrValidation indicates malformed input parameters.
	ErrValidation = errors.New("invalid parameters")
)

// Kind classifies an error into one of the caller-visible failure categories.
type Kind int

const (
	// KindInternal is anything outside the request-level taxonomy.
	KindInternal Kind = iota
	KindDuplicate
	KindNotFound
	KindConflict
	KindNoMatch
	KindValidation
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDuplicate:
		return "duplicate"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindNoMatch:
		return "no_match"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// KindOf returns the category of err. A nil error is KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrDuplicate):
		return KindDuplicate
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrNoMatch):
		return KindNoMatch
	case errors.Is(err, ErrValidation):
		return KindValidation
	default:
		return KindInternal
	}
}
