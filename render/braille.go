package render

// dotBits maps a micro-pixel column (0..1) and row (0..3) to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// canvas is a w×h grid of braille cells, each holding a 2×4 dot mask.
type canvas struct {
	w, h int
	m    []uint8
}

func newCanvas(w, h int) *canvas {
	return &canvas{w: w, h: h, m: make([]uint8, w*h)}
}

// set sets a micro-pixel at micro coords (2x4 per cell). Out of range is a no-op.
func (c *canvas) set(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cx >= c.w || cy >= c.h {
		return
	}
	c.m[cy*c.w+cx] |= dotBits[mx%2][my%4]
}

func glyph(mask uint8) rune {
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}
