package overlay

import "testing"

func TestNextPow2(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"one", 1, 1},
		{"two", 2, 2},
		{"three", 3, 4},
		{"already pow2", 256, 256},
		{"typical sprite", 200, 256},
		{"just above pow2", 257, 512},
		{"just below pow2", 255, 256},
		{"tiny", 5, 8},
		{"large", 1000, 1024},
		{"zero clamps to one", 0, 1},
		{"negative clamps to one", -7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextPow2(tt.in); got != tt.want {
				t.Errorf("NextPow2(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNextPow2_IsSmallest(t *testing.T) {
	// For every D in a representative range, NextPow2(D) is a power of
	// two, >= D, and halving it drops below D.
	for d := 1; d <= 4096; d++ {
		p := NextPow2(d)
		if !IsPow2(p) {
			t.Fatalf("NextPow2(%d) = %d is not a power of two", d, p)
		}
		if p < d {
			t.Fatalf("NextPow2(%d) = %d < %d", d, p, d)
		}
		if p > 1 && p/2 >= d {
			t.Fatalf("NextPow2(%d) = %d is not the smallest (p/2 = %d still >= d)", d, p, p/2)
		}
	}
}

func TestIsPow2(t *testing.T) {
	tests := []struct {
		in   int
		want bool
	}{
		{1, true},
		{2, true},
		{256, true},
		{0, false},
		{-4, false},
		{3, false},
		{255, false},
	}

	for _, tt := range tests {
		if got := IsPow2(tt.in); got != tt.want {
			t.Errorf("IsPow2(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
