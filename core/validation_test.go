package core

import (
	"errors"
	"testing"
)

func TestValidateFilterSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    FilterSpec
		wantErr error
	}{
		{
			name:    "empty spec",
			spec:    FilterSpec{},
			wantErr: nil,
		},
		{
			name:    "equal bounds",
			spec:    FilterSpec{MinLength: Ptr(5), MaxLength: Ptr(5)},
			wantErr: nil,
		},
		{
			name:    "only min",
			spec:    FilterSpec{MinLength: Ptr(10)},
			wantErr: nil,
		},
		{
			name:    "min greater than max",
			spec:    FilterSpec{MinLength: Ptr(10), MaxLength: Ptr(5)},
			wantErr: ErrConflict,
		},
		{
			name:    "negative min length",
			spec:    FilterSpec{MinLength: Ptr(-1)},
			wantErr: ErrValidation,
		},
		{
			name:    "negative max length",
			spec:    FilterSpec{MaxLength: Ptr(-3)},
			wantErr: ErrValidation,
		},
		{
			name:    "negative word count",
			spec:    FilterSpec{WordCount: Ptr(-2)},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilterSpec(tt.spec)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFilterSpec() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFilterSpec() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckBounds_AllowsNegativeFromPhrases(t *testing.T) {
	// "shorter than 0" produces max_length -1; that is not a conflict on its own.
	if err := CheckBounds(FilterSpec{MaxLength: Ptr(-1)}); err != nil {
		t.Errorf("CheckBounds() error = %v, want nil", err)
	}
	if err := CheckBounds(FilterSpec{MinLength: Ptr(0), MaxLength: Ptr(-1)}); !errors.Is(err, ErrConflict) {
		t.Errorf("CheckBounds() error = %v, want %v", err, ErrConflict)
	}
}

func TestParseCharacter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    rune
		wantErr bool
	}{
		{name: "ascii letter", input: "a", want: 'a'},
		{name: "multibyte", input: "é", want: 'é'},
		{name: "space", input: " ", want: ' '},
		{name: "empty", input: "", wantErr: true},
		{name: "two characters", input: "ab", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCharacter(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("ParseCharacter(%q) error = %v, want %v", tt.input, err, ErrValidation)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCharacter(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCharacter(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
