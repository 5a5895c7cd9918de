package capture

import (
	"image"
	"math"
)

// Tables holds the lookup tables needed to decode a capture. A Tables is
// never modified once built so it can be shared freely.
type Tables struct {
	symbols [128]byte
	red     [1 << 5]uint8
	green   [1 << 6]uint8
	blue    [1 << 5]uint8
}

var defaultTables = NewTables(Gamma)

// DefaultTables returns the tables built with the default gamma.
func DefaultTables() *Tables {
	return defaultTables
}

func scale(i, max int, gamma float64) uint8 {
	return uint8(math.Round(math.Pow(float64(i)/float64(max), 1.0/gamma) * 255.0))
}

// NewTables builds the symbol and color lookup tables. Each color table
// maps a channel value to 8 bits with the given gamma correction.
func NewTables(gamma float64) *Tables {
	t := new(Tables)
	for i := 0; i < len(alphabet); i++ {
		t.symbols[alphabet[i]&0x7f] = byte(i)
	}
	for i := range t.red {
		t.red[i] = scale(i, len(t.red)-1, gamma)
		t.blue[i] = scale(i, len(t.blue)-1, gamma)
	}
	for i := range t.green {
		t.green[i] = scale(i, len(t.green)-1, gamma)
	}
	return t
}

func (t *Tables) lookup(s uint16) (uint8, uint8, uint8) {
	return t.red[s>>11&0x1f], t.green[s>>5&0x3f], t.blue[s&0x1f]
}

func clampRow(y int) int {
	switch {
	case y < 0:
		return 0
	case y >= Height:
		return Height - 1
	}
	return y
}

// Vertical-only unsharp mask
func sharpen(c, up, down uint8) uint8 {
	v := (4*int(c) - int(up) - int(down)) / 2
	switch {
	case v < 0:
		return 0
	case v > 0xff:
		return 0xff
	}
	return uint8(v)
}

// ToRGBA converts g to an opaque 8-bit image through the color tables. If
// sharp is set each channel is sharpened against the rows above and below,
// reusing the edge row at the top and bottom of the image.
func (t *Tables) ToRGBA(g *Grid16, sharp bool) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			s, _ := g.At(x, y)
			r, gr, b := t.lookup(s)

			if sharp {
				up, _ := g.At(x, clampRow(y-1))
				down, _ := g.At(x, clampRow(y+1))
				ur, ug, ub := t.lookup(up)
				dr, dg, db := t.lookup(down)

				r = sharpen(r, ur, dr)
				gr = sharpen(gr, ug, dg)
				b = sharpen(b, ub, db)
			}

			i := m.PixOffset(x, y)
			m.Pix[i+0] = r
			m.Pix[i+1] = gr
			m.Pix[i+2] = b
			m.Pix[i+3] = 0xff
		}
	}
	return m
}

// ExpandRGBA converts g to an opaque 8-bit image by replicating the top
// bits of each channel into the bottom bits.
func ExpandRGBA(g *Grid16) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			s, _ := g.At(x, y)
			r := uint8(s >> 11 & 0x1f)
			gr := uint8(s >> 5 & 0x3f)
			b := uint8(s & 0x1f)

			i := m.PixOffset(x, y)
			m.Pix[i+0] = r<<3 | r>>2
			m.Pix[i+1] = gr<<2 | gr>>4
			m.Pix[i+2] = b<<3 | b>>2
			m.Pix[i+3] = 0xff
		}
	}
	return m
}
