package overlay

import "overlayhijack/internal/gfx"

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGBA builds a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Float normalizes the channels to [0, 1].
func (c Color) Float() gfx.ColorF {
	return gfx.ColorF{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// Point is a position in render-target pixels, origin top-left.
type Point struct {
	X, Y float32
}

// Size is a width and height in render-target pixels.
type Size struct {
	Width, Height float32
}
