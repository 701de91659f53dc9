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
	"fmt"
	"net/http"
	"strings"

	"github.com/poiesic/strindex/core"
	"github.com/poiesic/strindex/query"
	"github.com/poiesic/strindex/service"
)

const (
	serviceName    = "String Analysis API"
	serviceVersion = "1.0.0"

	// maxBodyBytes caps the size of a create request body.
	maxBodyBytes = 1 << 20

	queryParam = "query"
)

// ListResponse is the body of a structured listing.
type ListResponse struct {
	Data           []*core.StoredRecord `json:"data"`
	Count          int                  `json:"count"`
	FiltersApplied core.FilterSpec      `json:"filters_applied"`
}

// PhraseResponse is the body of a natural-language listing.
type PhraseResponse struct {
	Data             []*core.StoredRecord `json:"data"`
	Count            int                  `json:"count"`
	InterpretedQuery query.Interpretation `json:"interpreted_query"`
}

// NewListResponse builds the response body for a structured listing.
func NewListResponse(result *service.ListResult) ListResponse {
	return ListResponse{
		Data:           nonNil(result.Records),
		Count:          len(result.Records),
		FiltersApplied: result.Filters,
	}
}

// NewPhraseResponse builds the response body for a natural-language listing.
func NewPhraseResponse(result *service.PhraseResult) PhraseResponse {
	return PhraseResponse{
		Data:             nonNil(result.Records),
		Count:            len(result.Records),
		InterpretedQuery: result.Interpretation,
	}
}

type infoResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type healthResponse struct {
	Status        string `json:"status"`
	StoredStrings int    `json:"stored_strings"`
}

var endpoints = map[string]string{
	"POST /strings":                           "Analyze and store a new string",
	"GET /strings/{value}":                    "Retrieve analyzed string by value",
	"GET /strings":                            "List and filter all analyzed strings",
	"GET /strings/filter-by-natural-language": "Filter strings using natural language",
	"DELETE /strings/{value}":                 "Delete a string from storage",
	"GET /health":                             "Liveness and stored string count",
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /strings", s.handleCreate)
	mux.HandleFunc("GET /strings", s.handleList)
	mux.HandleFunc("GET /strings/filter-by-natural-language", s.handlePhrase)
	mux.HandleFunc("GET /strings/{value}", s.handleGet)
	mux.HandleFunc("DELETE /strings/{value}", s.handleDelete)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleInfo)
	return mux
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil || body == nil {
		s.writeError(w, r, fmt.Errorf("%w: request body must be a JSON object", core.ErrValidation))
		return
	}

	raw, ok := body["value"]
	if !ok {
		s.writeError(w, r, fmt.Errorf("%w: missing \"value\" field", core.ErrValidation))
		return
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil || strings.TrimSpace(string(raw)) == "null" {
		writeStatusError(w, http.StatusUnprocessableEntity, core.KindValidation.String(),
			`invalid data type for "value" (must be string)`)
		return
	}

	record, err := s.svc.Create(r.Context(), value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := s.svc.GetByValue(r.Context(), r.PathValue("value"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteByValue(r.Context(), r.PathValue("value")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	spec, err := service.ParseFilterParams(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.svc.ListFiltered(r.Context(), spec)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, NewListResponse(result))
}

func (s *Server) handlePhrase(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if !params.Has(queryParam) {
		writeStatusError(w, http.StatusUnprocessableEntity, core.KindValidation.String(),
			fmt.Sprintf("missing %q parameter", queryParam))
		return
	}
	phrase := params.Get(queryParam)

	result, err := s.svc.ListByPhrase(r.Context(), phrase)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, NewPhraseResponse(result))
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, infoResponse{Name: serviceName, Version: serviceVersion, Endpoints: endpoints})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.Count(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", StoredStrings: n})
}

func nonNil(records []*core.StoredRecord) []*core.StoredRecord {
	if records == nil {
		return []*core.StoredRecord{}
	}
	return records
}
