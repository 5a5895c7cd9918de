package output

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, 16, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 16; x++ {
			if (x+y)%2 == 0 {
				m.SetRGBA(x, y, color.RGBA{0xff, 0xff, 0xff, 0xff})
			} else {
				m.SetRGBA(x, y, color.RGBA{0x00, 0x00, 0x00, 0xff})
			}
		}
	}
	return m
}

func TestParseFormat(t *testing.T) {
	tables := []struct {
		name string
		want Format
	}{
		{"png", PNG},
		{"PNG", PNG},
		{".gif", GIF},
		{"bmp", BMP},
	}

	for _, table := range tables {
		f, err := ParseFormat(table.name)
		require.NoError(t, err, table.name)
		assert.Equal(t, table.want, f)
	}

	_, err := ParseFormat("jpeg")
	assert.Error(t, err)

	assert.Equal(t, ".bmp", BMP.Extension())
	assert.Equal(t, "Format(7)", Format(7).String())
	assert.Equal(t, []string{"png", "gif", "bmp"}, Formats())
}

func TestEncode(t *testing.T) {
	src := testImage()

	for _, f := range []Format{PNG, GIF, BMP} {
		t.Run(f.String(), func(t *testing.T) {
			b := new(bytes.Buffer)
			require.NoError(t, Encode(b, src, &Options{Format: f}))

			m, name, err := image.Decode(b)
			require.NoError(t, err)
			assert.Equal(t, f.String(), name)
			assert.Equal(t, src.Bounds(), m.Bounds())

			r, g, bl, _ := m.At(0, 0).RGBA()
			assert.True(t, r > 0xf000 && g > 0xf000 && bl > 0xf000)
			r, g, bl, _ = m.At(1, 0).RGBA()
			assert.True(t, r < 0x1000 && g < 0x1000 && bl < 0x1000)
		})
	}
}

func TestEncodeLossless(t *testing.T) {
	src := testImage()

	for _, f := range []Format{PNG, BMP} {
		b := new(bytes.Buffer)
		require.NoError(t, Encode(b, src, &Options{Format: f}))

		m, _, err := image.Decode(b)
		require.NoError(t, err)
		for y := 0; y < 12; y++ {
			for x := 0; x < 16; x++ {
				assert.Equal(t, color.RGBAModel.Convert(src.At(x, y)), color.RGBAModel.Convert(m.At(x, y)))
			}
		}
	}
}

func TestEncodeScale(t *testing.T) {
	src := testImage()

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, src, &Options{Scale: 3}))

	m, _, err := image.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 48, 36), m.Bounds())

	for _, p := range []image.Point{{0, 0}, {1, 0}, {5, 3}} {
		want := color.RGBAModel.Convert(src.At(p.X, p.Y))
		for dy := 0; dy < 3; dy++ {
			for dx := 0; dx < 3; dx++ {
				assert.Equal(t, want, color.RGBAModel.Convert(m.At(p.X*3+dx, p.Y*3+dy)))
			}
		}
	}

	assert.Equal(t, errBadScale, Encode(new(bytes.Buffer), src, &Options{Scale: -1}))
	assert.Equal(t, errBadScale, Encode(new(bytes.Buffer), src, &Options{Scale: maxScale + 1}))
	assert.Error(t, Encode(new(bytes.Buffer), src, &Options{Format: Format(9)}))
}

func TestEncodeNilOptions(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, testImage(), nil))

	_, name, err := image.DecodeConfig(b)
	require.NoError(t, err)
	assert.Equal(t, "png", name)
}
