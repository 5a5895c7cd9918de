package capture

import "image"

// Config controls how a capture is decoded. The zero value is ready to use.
type Config struct {
	// StripLineBreaks removes CR and LF bytes from Dreamcast captures
	// before decoding.
	StripLineBreaks bool
	// Tables overrides the default lookup tables.
	Tables *Tables
}

func (c Config) tables() *Tables {
	if c.Tables != nil {
		return c.Tables
	}
	return defaultTables
}

// Decode converts raw capture data for platform p into an image. No image
// is returned if there is an error.
func (c Config) Decode(p Platform, b []byte) (*image.RGBA, error) {
	switch p {
	case GameCubeEp12, GameCubeEp3:
		t := c.tables()
		d, err := t.DecodeSymbols(b)
		if err != nil {
			return nil, err
		}
		g, err := AssembleGameCube(d)
		if err != nil {
			return nil, err
		}
		return t.ToRGBA(g, true), nil
	case Dreamcast:
		g, err := AssembleDreamcast(b, c.StripLineBreaks)
		if err != nil {
			return nil, err
		}
		return ExpandRGBA(g), nil
	default:
		return nil, &UnknownPlatformError{Token: p.String()}
	}
}

// Decode converts raw capture data for platform p into an image using the
// default Config.
func Decode(p Platform, b []byte) (*image.RGBA, error) {
	return Config{}.Decode(p, b)
}
