package math

// Color4 is an RGBA color with float components, typically in [0, 1].
type Color4 struct {
	R, G, B, A float32
}

// Add returns c + other.
func (c Color4) Add(other Color4) Color4 {
	return Color4{c.R + other.R, c.G + other.G, c.B + other.B, c.A + other.A}
}

// Sub returns c - other.
func (c Color4) Sub(other Color4) Color4 {
	return Color4{c.R - other.R, c.G - other.G, c.B - other.B, c.A - other.A}
}

// Scale returns c * s.
func (c Color4) Scale(s float32) Color4 {
	return Color4{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Lerp linearly blends c towards other.
func (c Color4) Lerp(other Color4, t float32) Color4 {
	return c.Add(other.Sub(c).Scale(t))
}

// IsBlack reports whether RGB are all near zero. Alpha is ignored.
func (c Color4) IsBlack() bool {
	const epsilon = 10e-3
	return abs32(c.R) < epsilon && abs32(c.G) < epsilon && abs32(c.B) < epsilon
}
