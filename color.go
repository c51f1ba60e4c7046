package overlay

import "fmt"

// Color is a packed 32-bit ARGB color with alpha in the highest byte,
// matching the layout consumed by the sprite-batch draw call:
//
//	bits 24-31: alpha
//	bits 16-23: red
//	bits  8-15: green
//	bits  0-7:  blue
//
// The zero value is fully transparent black; White is the draw-item default.
type Color uint32

// White is fully opaque white, the default sprite modulation color.
const White Color = 0xFFFFFFFF

// ARGB packs four 8-bit components into a Color.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB packs three 8-bit components into a fully opaque Color.
func RGB(r, g, b uint8) Color {
	return ARGB(0xFF, r, g, b)
}

// Alpha returns the alpha component.
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

// Red returns the red component.
func (c Color) Red() uint8 { return uint8(c >> 16) }

// Green returns the green component.
func (c Color) Green() uint8 { return uint8(c >> 8) }

// Blue returns the blue component.
func (c Color) Blue() uint8 { return uint8(c) }

// WithAlpha returns the color with its alpha byte replaced and the RGB
// bytes untouched.
func (c Color) WithAlpha(a uint8) Color {
	return Color(uint32(c)&0x00FFFFFF | uint32(a)<<24)
}

// String returns the color as an AARRGGBB hex string.
func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}
