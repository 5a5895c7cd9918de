package psoscreen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/psoscreen/capture"
	"github.com/bodgit/psoscreen/output"
)

// ConvertOptions controls how capture files are converted.
type ConvertOptions struct {
	// Platform forces the platform rather than working it out from the
	// filename.
	Platform        capture.Platform
	StripLineBreaks bool
	Output          output.Options
}

func outputFilename(file string, f output.Format) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + f.Extension()
}

func isOutputFile(file string) bool {
	_, err := output.ParseFormat(filepath.Ext(file))
	return err == nil
}

// ConvertFile decodes the capture in file and writes it to out. If out is
// empty, the output is written alongside file with the extension replaced.
func (p *PSOScreen) ConvertFile(file, out string, opts *ConvertOptions) error {
	if opts == nil {
		opts = &ConvertOptions{}
	}

	platform := opts.Platform
	if platform == capture.Unknown {
		var err error
		if platform, err = capture.PlatformFromFilename(file); err != nil {
			return err
		}
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	m, err := capture.Config{StripLineBreaks: opts.StripLineBreaks}.Decode(platform, raw)
	if err != nil {
		return err
	}

	if out == "" {
		out = outputFilename(file, opts.Output.Format)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := output.Encode(f, m, &opts.Output); err != nil {
		return err
	}

	p.logger.Printf("Converted %s capture \"%s\" to \"%s\"\n", platform, file, out)

	return f.Close()
}
