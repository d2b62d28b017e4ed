package interpret

import (
	"math"
	"testing"
)

func TestSimilarityRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "microsoft", "microsoft", 1.0},
		{"empty both", "", "", 1.0},
		{"empty one", "apple", "", 0.0},
		{"disjoint", "abc", "xyz", 0.0},
		// 2*12/(12+13)
		{"dropped trailing letter", "goldman sach", "goldman sachs", 0.96},
		// 2*8/(8+9)
		{"dropped middle letter", "microsft", "microsoft", 0.9411764705882353},
		{"transposition", "micorsoft", "microsoft", 2.0 * 8.0 / 18.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := similarityRatio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("similarityRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"goldman sach", "goldman sachs"},
		{"microsft", "microsoft"},
		{"jp morgan", "jpmorgan chase"},
	}
	for _, p := range pairs {
		if ab, ba := similarityRatio(p[0], p[1]), similarityRatio(p[1], p[0]); ab != ba {
			t.Errorf("similarityRatio(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}
}
