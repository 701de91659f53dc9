package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Deterministic(t *testing.T) {
	inputs := []string{"", "a", "Racecar", "hello world", "naïve café", "\xff\xfe", "  spaced  out  "}

	for _, in := range inputs {
		first := Compute(in)
		second := Compute(in)
		assert.Equal(t, first, second, "Compute(%q) not deterministic", in)
	}
}

func TestCompute_Palindrome(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Racecar", true},
		{"hello", false},
		{"", true},
		{"a", true},
		{"Abba", true},
		{"never odd or even", false}, // spaces are significant
		{"a b a", true},
		{"Ésé", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.input).IsPalindrome)
		})
	}
}

func TestCompute_Counts(t *testing.T) {
	props := Compute("Hello hello")

	assert.Equal(t, 11, props.Length)
	assert.Equal(t, 2, props.WordCount)
	// H e l o ' ' h -> 6 distinct, case-sensitive
	assert.Equal(t, 6, props.UniqueCharacters)
	assert.Equal(t, 4, props.CharacterFrequency['l'])
	assert.Equal(t, 1, props.CharacterFrequency['H'])
	assert.Equal(t, 1, props.CharacterFrequency['h'])
	assert.Equal(t, 1, props.CharacterFrequency[' '])
}

func TestCompute_EmptyString(t *testing.T) {
	props := Compute("")

	assert.Equal(t, 0, props.Length)
	assert.Equal(t, 0, props.WordCount)
	assert.Equal(t, 0, props.UniqueCharacters)
	assert.Empty(t, props.CharacterFrequency)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", props.ContentHash)
}

func TestCompute_CodePoints(t *testing.T) {
	props := Compute("café")

	assert.Equal(t, 4, props.Length)
	assert.Equal(t, 1, props.CharacterFrequency['é'])
}

func TestCompute_FrequencySumsToLength(t *testing.T) {
	inputs := []string{"", "mississippi", "The quick brown fox", "日本語のテキスト", "\xffinvalid\xfe", "tab\tand\nnewline"}

	for _, in := range inputs {
		props := Compute(in)
		assert.Equal(t, props.Length, props.CharacterFrequency.Total(), "input %q", in)
		assert.Equal(t, len(props.CharacterFrequency), props.UniqueCharacters, "input %q", in)
	}
}

func TestCompute_WordCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"two words", 2},
		{" leading and trailing ", 3},
		{"tabs\tand\nnewlines", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Compute(tt.input).WordCount, "input %q", tt.input)
	}
}

func TestAnalyzer_HashAlgorithms(t *testing.T) {
	sha := NewAnalyzer(SHA256)
	blake := NewAnalyzer(BLAKE2b)

	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", sha.Hash("hello"))
	assert.Len(t, blake.Hash("hello"), 64)
	assert.NotEqual(t, sha.Hash("hello"), blake.Hash("hello"))
	assert.Equal(t, blake.Hash("hello"), blake.Compute("hello").ContentHash)
	assert.NotEqual(t, sha.Hash("hello"), sha.Hash("Hello"))

	var zero Analyzer
	assert.Equal(t, SHA256, zero.Algorithm())
	assert.Equal(t, sha.Hash("x"), zero.Hash("x"))
}

func TestParseHashAlgorithm(t *testing.T) {
	got, err := ParseHashAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, SHA256, got)

	got, err = ParseHashAlgorithm("BLAKE2b")
	require.NoError(t, err)
	assert.Equal(t, BLAKE2b, got)

	_, err = ParseHashAlgorithm("md5")
	assert.ErrorIs(t, err, ErrUnknownHashAlgorithm)
}
