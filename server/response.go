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


package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/poiesic/strindex/core"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// statusFor maps an error category to an HTTP status code.
func statusFor(kind core.Kind) int {
	switch kind {
	case core.KindDuplicate:
		return http.StatusConflict
	case core.KindNotFound:
		return http.StatusNotFound
	case core.KindConflict:
		return http.StatusUnprocessableEntity
	case core.KindNoMatch, core.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes v as two-space indented JSON.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Default().Error("error encoding response", "err", err)
	}
}

// writeError writes err with the status of its category.
// Internal errors are logged and their message hidden from the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := core.KindOf(err)
	status := statusFor(kind)

	detail := err.Error()
	if kind == core.KindInternal {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path,
			"request_id", requestIDFrom(r.Context()), "err", err)
		detail = http.StatusText(status)
	}

	writeJSON(w, status, errorResponse{Detail: detail, Error: kind.String()})
}

// writeStatusError writes an error body with an explicit status, for
// failures the error taxonomy does not distinguish.
func writeStatusError(w http.ResponseWriter, status int, name, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail, Error: name})
}
