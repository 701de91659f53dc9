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


package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/poiesic/strindex/core"
)

// Structured filter parameter names.
const (
	ParamIsPalindrome      = "is_palindrome"
	ParamMinLength         = "min_length"
	ParamMaxLength         = "max_length"
	ParamWordCount         = "word_count"
	ParamContainsCharacter = "contains_character"
)

// ParseFilterParams builds a spec from raw query parameters such as
// url.Values. Only the first value of each parameter is used and unknown
// parameters are ignored. Malformed values yield core.ErrValidation.
// Bound consistency is not checked here; see core.ValidateFilterSpec.
func ParseFilterParams(params map[string][]string) (core.FilterSpec, error) {
	var spec core.FilterSpec

	if v, ok := first(params, ParamIsPalindrome); ok {
		b, err := parseBool(v)
		if err != nil {
			return core.FilterSpec{}, fmt.Errorf("%w: %s must be a boolean, got %q", core.ErrValidation, ParamIsPalindrome, v)
		}
		spec.IsPalindrome = &b
	}

	for _, p := range []struct {
		name string
		dst  **int
	}{
		{ParamMinLength, &spec.MinLength},
		{ParamMaxLength, &spec.MaxLength},
		{ParamWordCount, &spec.WordCount},
	} {
		v, ok := first(params, p.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 {
			return core.FilterSpec{}, fmt.Errorf("%w: %s must be a non-negative integer, got %q", core.ErrValidation, p.name, v)
		}
		*p.dst = &n
	}

	if v, ok := first(params, ParamContainsCharacter); ok {
		r, err := core.ParseCharacter(v)
		if err != nil {
			return core.FilterSpec{}, err
		}
		spec.ContainsCharacter = &r
	}

	return spec, nil
}

func first(params map[string][]string, name string) (string, bool) {
	values, ok := params[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, strconv.ErrSyntax
	}
}
