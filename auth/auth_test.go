// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckPSK(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
		ok   bool
	}{
		{"exact match", "correct", "correct", true},
		{"both empty", "", "", true},
		{"mismatch", "wrong", "correct", false},
		{"empty got", "", "correct", false},
		{"prefix", "corr", "correct", false},
		{"longer", "correct!", "correct", false},
		{"case differs", "Correct", "correct", false},
		{"trailing space", "correct ", "correct", false},
		{"unicode", "pässwörd", "pässwörd", true},
		{"long key", strings.Repeat("k", 4096), strings.Repeat("k", 4096), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPSK(tt.got, tt.want); got != tt.ok {
				t.Errorf("CheckPSK(%q, %q) = %v, want %v", tt.got, tt.want, got, tt.ok)
			}
		})
	}
}

func TestValidatePSK(t *testing.T) {
	if err := ValidatePSK("correct", "correct"); err != nil {
		t.Errorf("ValidatePSK() unexpected error = %v", err)
	}

	err := ValidatePSK("wrong", "correct")
	if !errors.Is(err, ErrInvalidPSK) {
		t.Errorf("ValidatePSK() error = %v, want ErrInvalidPSK", err)
	}
}
