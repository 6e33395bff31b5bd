package style

import (
	"math"
	"testing"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		in       string
		fontSize float64
		want     float64
		wantOK   bool
	}{
		{"100px", 16, 100, true},
		{"50", 16, 50, true},
		{"12pt", 16, 16, true},
		{"2em", 20, 40, true},
		{"1.5rem", 16, 24, true},
		{"1in", 16, 96, true},
		{"2.54cm", 16, 96, true},
		{"25.4mm", 16, 96, true},
		{"50%", 16, 0, false},
		{"auto", 16, 0, false},
		{"", 16, 0, false},
		{"abcpx", 16, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLength(tt.in, tt.fontSize)
			if ok != tt.wantOK {
				t.Fatalf("ParseLength(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 0.01 {
				t.Errorf("ParseLength(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
