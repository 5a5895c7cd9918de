/*
Package output writes decoded captures out as ordinary image files.

PNG is lossless. GIF is limited to 256 colors so the image is reduced with
a median cut quantizer first. BMP is written uncompressed at 24 bits per
pixel as the capture has no transparency.
*/
package output

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

const (
	maxColors = 256
	maxScale  = 8
)

var errBadScale = fmt.Errorf("output: scale must be between 1 and %d", maxScale)

// Format is an output image format.
type Format int

// Supported formats
const (
	PNG Format = iota
	GIF
	BMP
)

var formats = []string{
	PNG: "png",
	GIF: "gif",
	BMP: "bmp",
}

func (f Format) String() string {
	if int(f) < 0 || int(f) >= len(formats) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formats[f]
}

// Extension returns the filename extension for the format including the
// leading dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// ParseFormat returns the Format matching name, ignoring case.
func ParseFormat(name string) (Format, error) {
	name = strings.TrimPrefix(strings.ToLower(name), ".")
	for i, n := range formats {
		if n == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("output: unknown format %q", name)
}

// Formats returns the names of all supported formats.
func Formats() []string {
	return append([]string(nil), formats...)
}

// Options controls how an image is written. A nil *Options means a PNG at
// its original size.
type Options struct {
	Format Format
	// Scale is an integer multiplier applied to both dimensions using
	// nearest neighbour so the pixels stay sharp. Zero is treated as 1.
	Scale int
}

func scale(m image.Image, n int) image.Image {
	b := m.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*n, b.Dy()*n))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, b, draw.Src, nil)
	return dst
}

func paletted(m image.Image) *image.Paletted {
	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, maxColors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

// Encode writes m to w.
func Encode(w io.Writer, m image.Image, o *Options) error {
	if o == nil {
		o = &Options{}
	}

	switch {
	case o.Scale < 0 || o.Scale > maxScale:
		return errBadScale
	case o.Scale > 1:
		m = scale(m, o.Scale)
	}

	switch o.Format {
	case PNG:
		return png.Encode(w, m)
	case GIF:
		return gif.Encode(w, paletted(m), &gif.Options{NumColors: maxColors})
	case BMP:
		return bmp.Encode(w, m)
	default:
		return errors.New("output: unsupported format " + o.Format.String())
	}
}
