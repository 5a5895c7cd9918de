package capture

import "encoding/binary"

// AssembleGameCube builds the grid from a symbol-decoded GameCube capture.
//
// Each 8 bytes hold one sample from each of 4 consecutive rows so the data
// is walked 4 times, once per row offset, before the tiles are transposed
// back into row-major order. Any data beyond what fills the grid is
// ignored.
func AssembleGameCube(b []byte) (*Grid16, error) {
	if len(b) < GameCubeOffset+sampleBytes {
		return nil, &SizeError{
			Stage: "gamecube",
			Want:  GameCubeOffset + sampleBytes,
			Got:   len(b),
		}
	}

	g := NewGrid16()
	for pass := 0; pass < gameCubePasses; pass++ {
		x, y := 0, pass
		for i := GameCubeOffset + pass*sampleBytes; i+sampleBytes <= len(b) && y < Height; i += gameCubeStride {
			g.Set(x, y, binary.BigEndian.Uint16(b[i:]))
			x++
			if x == Width {
				x = 0
				y += gameCubePasses
			}
		}
	}

	g.Transpose()

	return g, nil
}
