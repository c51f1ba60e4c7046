package overlay

import "testing"

func TestARGB_Packing(t *testing.T) {
	tests := []struct {
		name       string
		c          Color
		a, r, g, b uint8
	}{
		{"opaque white", White, 0xFF, 0xFF, 0xFF, 0xFF},
		{"packed components", ARGB(0x12, 0x34, 0x56, 0x78), 0x12, 0x34, 0x56, 0x78},
		{"rgb is opaque", RGB(0x10, 0x20, 0x30), 0xFF, 0x10, 0x20, 0x30},
		{"zero is transparent black", Color(0), 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Alpha(); got != tt.a {
				t.Errorf("Alpha() = %#x, want %#x", got, tt.a)
			}
			if got := tt.c.Red(); got != tt.r {
				t.Errorf("Red() = %#x, want %#x", got, tt.r)
			}
			if got := tt.c.Green(); got != tt.g {
				t.Errorf("Green() = %#x, want %#x", got, tt.g)
			}
			if got := tt.c.Blue(); got != tt.b {
				t.Errorf("Blue() = %#x, want %#x", got, tt.b)
			}
		})
	}
}

func TestColor_WithAlpha(t *testing.T) {
	// Alpha replaced, RGB untouched.
	c := Color(0x112233).WithAlpha(0x80)
	if c != Color(0x80112233) {
		t.Errorf("WithAlpha = %v, want #80112233", c)
	}

	// Replacing again overwrites, not accumulates.
	c = c.WithAlpha(0x01)
	if c != Color(0x01112233) {
		t.Errorf("WithAlpha = %v, want #01112233", c)
	}
}

func TestColor_String(t *testing.T) {
	if got := ARGB(0x80, 0x11, 0x22, 0x33).String(); got != "#80112233" {
		t.Errorf("String() = %q, want %q", got, "#80112233")
	}
}
