package capture

import "encoding/binary"

func withoutLineBreaks(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c != '\n' && c != '\r' {
			out = append(out, c)
		}
	}
	return out
}

// AssembleDreamcast builds the grid from a Dreamcast capture. If
// stripLineBreaks is set, every CR and LF byte is removed first, which
// undoes the damage from uploads that passed through something treating
// the capture as text. b is never modified.
func AssembleDreamcast(b []byte, stripLineBreaks bool) (*Grid16, error) {
	if stripLineBreaks {
		b = withoutLineBreaks(b)
	}

	if len(b) < DreamcastHeaderSize+dreamcastPixelBytes {
		return nil, &SizeError{
			Stage: "dreamcast",
			Want:  DreamcastHeaderSize + dreamcastPixelBytes,
			Got:   len(b),
		}
	}

	g := NewGrid16()
	pix := b[DreamcastHeaderSize:]
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			g.Set(x, y, binary.BigEndian.Uint16(pix[(y*Width+x)*sampleBytes:]))
		}
	}

	return g, nil
}
