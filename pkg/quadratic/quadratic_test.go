package quadratic

import (
	"math"
	"slices"
	"testing"
)

func TestRoots(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c int64
		want    []int64
	}{
		{"two roots", 1, -4, 3, []int64{1, 3}},
		{"double root", 1, -2, 1, []int64{1}},
		{"negative roots", 1, 5, 6, []int64{-3, -2}},
		{"no real roots", 1, 0, 1, []int64{}},
		{"irrational roots", 1, 0, -2, []int64{}},
		{"one integer root", 2, -3, 1, []int64{1}},
		{"rational non-integer", 4, 0, -1, []int64{}},
		{"negative leading", -1, 0, 4, []int64{-2, 2}},
		{"linear", 0, 2, -4, []int64{2}},
		{"linear fractional", 0, 2, -3, []int64{}},
		{"constant", 0, 0, 5, []int64{}},
		{"large", 1, -2_000_000_000, 999_999_999_999_999_999, []int64{999_999_999, 1_000_000_001}},
		{"near overflow", 1, 0, -(math.MaxInt32 * math.MaxInt32), []int64{-math.MaxInt32, math.MaxInt32}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Roots(tt.a, tt.b, tt.c)
			if err != nil {
				t.Fatalf("Roots() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Roots(%d, %d, %d) = %v, want %v", tt.a, tt.b, tt.c, got, tt.want)
			}
		})
	}
}

func TestRootsDegenerate(t *testing.T) {
	if _, err := Roots(0, 0, 0); err != ErrDegenerate {
		t.Errorf("Roots(0, 0, 0) error = %v, want ErrDegenerate", err)
	}
}
