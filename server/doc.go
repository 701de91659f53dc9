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


// Package server exposes the string analyzer over HTTP.
//
// Routes:
//
//	POST   /strings                                  analyze and store a string
//	GET    /strings                                  list with structured filters
//	GET    /strings/filter-by-natural-language       list with a phrase
//	GET    /strings/{value}                          fetch one record
//	DELETE /strings/{value}                          delete one record
//	GET    /                                         service info
//	GET    /health                                   liveness and record count
//
// Errors are returned as {"detail": ..., "error": ...} with a status derived
// from core.KindOf.
package server
