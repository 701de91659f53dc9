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


// Package filter applies a core.FilterSpec to a sequence of stored records.
//
// Every present predicate must hold for a record to pass; absent predicates
// impose no constraint. The result is a stable subsequence of the input, so
// callers that pass records in insertion order get them back in insertion
// order. Apply is pure and safe for concurrent use.
package filter
