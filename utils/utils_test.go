package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestIsInvalidSeason(t *testing.T) {
	tests := []struct {
		season  string
		invalid bool
	}{
		{"2024-25", false},
		{"2023-24", false},
		{"1999-00", false},
		{"2024-26", true},
		{"2024", true},
		{"ALL", true},
		{"", true},
		{"24-25", true},
	}

	for _, tt := range tests {
		t.Run(tt.season, func(t *testing.T) {
			if got := IsInvalidSeason(tt.season); got != tt.invalid {
				t.Errorf("IsInvalidSeason(%q) = %v, want %v", tt.season, got, tt.invalid)
			}
		})
	}
}

func TestErrorWithTrace(t *testing.T) {
	base := errors.New("boom")
	err := ErrorWithTrace(base)
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to match base")
	}
	if !strings.Contains(err.Error(), "utils_test.go") {
		t.Errorf("expected trace to name the caller file, got %q", err.Error())
	}
}

func TestDerefFloat64(t *testing.T) {
	if got := DerefFloat64(nil); got != 0 {
		t.Errorf("DerefFloat64(nil) = %v, want 0", got)
	}
	v := 12.5
	if got := DerefFloat64(&v); got != 12.5 {
		t.Errorf("DerefFloat64(&12.5) = %v", got)
	}
}
