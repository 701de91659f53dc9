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


package query

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/poiesic/strindex/core"
)

var (
	longerThanRe  = regexp.MustCompile(`longer than (\d+)`)
	shorterThanRe = regexp.MustCompile(`shorter than (\d+)`)
	atLeastRe     = regexp.MustCompile(`at least (\d+) characters?`)
	atMostRe      = regexp.MustCompile(`at most (\d+) characters?`)
	exactlyRe     = regexp.MustCompile(`exactly (\d+) characters?`)
	containsRe    = regexp.MustCompile(`contain(?:s|ing)? (?:the )?(?:letter |character )?['"]?([a-z])['"]?`)
)

// wordCountPhrases is checked in order; the first hit wins.
var wordCountPhrases = []struct {
	phrases []string
	count   int
}{
	{[]string{"single word", "one word"}, 1},
	{[]string{"two word"}, 2},
	{[]string{"three word"}, 3},
}

// Interpretation pairs a phrase with the spec inferred from it.
type Interpretation struct {
	Original      string          `json:"original"`
	ParsedFilters core.FilterSpec `json:"parsed_filters"`
}

// Interpret translates phrase into a filter spec.
// Returns core.ErrNoMatch if no rule applies and core.ErrConflict if the
// inferred length bounds contradict each other.
func Interpret(phrase string) (core.FilterSpec, error) {
	q := strings.ToLower(phrase)
	var spec core.FilterSpec

	if strings.Contains(q, "palindrom") {
		spec.IsPalindrome = core.Ptr(true)
	}

	for _, wc := range wordCountPhrases {
		if containsAny(q, wc.phrases) {
			spec.WordCount = core.Ptr(wc.count)
			break
		}
	}

	// Strict bounds
	if n, ok := extractInt(longerThanRe, q); ok {
		if n < math.MaxInt {
			n++
		}
		spec.MinLength = core.Ptr(n)
	}
	if n, ok := extractInt(shorterThanRe, q); ok {
		spec.MaxLength = core.Ptr(n - 1)
	}

	// Inclusive bounds
	if n, ok := extractInt(atLeastRe, q); ok {
		spec.MinLength = core.Ptr(n)
	}
	if n, ok := extractInt(atMostRe, q); ok {
		spec.MaxLength = core.Ptr(n)
	}
	if n, ok := extractInt(exactlyRe, q); ok {
		spec.MinLength = core.Ptr(n)
		spec.MaxLength = core.Ptr(n)
	}

	if m := containsRe.FindStringSubmatch(q); m != nil {
		spec.ContainsCharacter = core.Ptr(rune(m[1][0]))
	}

	// Overrides any containment match above
	if strings.Contains(q, "first vowel") {
		spec.ContainsCharacter = core.Ptr('a')
	}

	if err := core.CheckBounds(spec); err != nil {
		return core.FilterSpec{}, err
	}
	if spec.IsEmpty() {
		return core.FilterSpec{}, fmt.Errorf("%w: %q", core.ErrNoMatch, phrase)
	}
	return spec, nil
}

// Parse interprets phrase and returns the result alongside the phrase.
func Parse(phrase string) (*Interpretation, error) {
	spec, err := Interpret(phrase)
	if err != nil {
		return nil, err
	}
	return &Interpretation{Original: phrase, ParsedFilters: spec}, nil
}

// extractInt returns the first capture group of re in s as an int.
// Numbers too large for an int saturate at math.MaxInt.
func extractInt(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
