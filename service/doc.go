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


// Package service is the query façade over the record store.
//
// A Service creates, retrieves and deletes analyzed strings by value and
// answers filtered listings, either from a structured core.FilterSpec or
// from a natural-language phrase interpreted by package query. Both listing
// paths validate their spec before touching the store and then share the
// same filter.Apply pass over a snapshot of all records.
//
// Errors returned by a Service belong to the core taxonomy (core.ErrDuplicate,
// core.ErrNotFound, core.ErrConflict, core.ErrNoMatch, core.ErrValidation);
// anything else is an internal failure of the store.
package service
