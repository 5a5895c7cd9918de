package capture

// Grid16 holds the RGB565 samples of a capture. Reads outside the grid
// report false and writes outside the grid are ignored, which lets the
// assemblers and filters run off the edges without bounds checks.
type Grid16 struct {
	pix [numPixels]uint16
}

// NewGrid16 returns a grid with every sample set to zero.
func NewGrid16() *Grid16 {
	return new(Grid16)
}

func inside(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// At returns the sample at (x, y). The second value is false if the
// coordinates are outside the grid.
func (g *Grid16) At(x, y int) (uint16, bool) {
	if !inside(x, y) {
		return 0, false
	}
	return g.pix[y*Width+x], true
}

// Set stores v at (x, y).
func (g *Grid16) Set(x, y int, v uint16) {
	if inside(x, y) {
		g.pix[y*Width+x] = v
	}
}

// Transpose swaps the axes within every 4 by 4 block of the grid. Doing it
// twice gets back to where you started.
func (g *Grid16) Transpose() {
	for bx := 0; bx < Width; bx += blockSize {
		for by := 0; by < Height; by += blockSize {
			var v [blockSize][blockSize]uint16
			for r := 0; r < blockSize; r++ {
				for c := 0; c < blockSize; c++ {
					v[r][c], _ = g.At(bx+c, by+r)
				}
			}
			for r := 0; r < blockSize; r++ {
				for c := 0; c < blockSize; c++ {
					g.Set(bx+c, by+r, v[c][r])
				}
			}
		}
	}
}
