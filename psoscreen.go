/*
Package psoscreen is a library for converting the screenshots that
Phantasy Star Online lets players save from the GameCube and Dreamcast
versions of the game, and for running the small upload gallery that the
game's web browser can post them to.
*/
package psoscreen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bodgit/psoscreen/capture"
	"github.com/bodgit/psoscreen/output"
	"github.com/google/uuid"
)

var errNoGallery = errors.New("no gallery configured")

// PSOScreen ties the capture decoder to a gallery and a logger.
type PSOScreen struct {
	// StripLineBreaks removes any CR and LF bytes from uploaded Dreamcast
	// captures before decoding. Only set this if the captures have been
	// through something that mangles line endings, a clean capture will
	// have plenty of pixels containing those bytes.
	StripLineBreaks bool

	gallery *Gallery
	logger  *log.Logger
}

// New returns a PSOScreen. gallery may be nil if only file conversion is
// needed.
func New(gallery *Gallery, logger *log.Logger) *PSOScreen {
	return &PSOScreen{
		gallery: gallery,
		logger:  logger,
	}
}

// Upload decodes a raw capture for platform and stores it in the gallery
// as a PNG, returning the name it can be retrieved with.
func (p *PSOScreen) Upload(platform capture.Platform, raw []byte) (string, error) {
	if p.gallery == nil {
		return "", errNoGallery
	}

	m, err := capture.Config{StripLineBreaks: p.StripLineBreaks}.Decode(platform, raw)
	if err != nil {
		return "", err
	}

	b := new(bytes.Buffer)
	if err := output.Encode(b, m, nil); err != nil {
		return "", err
	}

	name, err := p.gallery.Add(fmt.Sprintf("%s_%s", platform.Token(), uuid.New()), platform, raw, b.Bytes())
	if err != nil {
		return "", err
	}

	p.logger.Printf("Stored %s capture as \"%s\"\n", platform, name)

	return name, nil
}

// Prune removes any capture from the gallery older than maxAge.
func (p *PSOScreen) Prune(maxAge time.Duration) (int64, error) {
	if p.gallery == nil {
		return 0, errNoGallery
	}

	n, err := p.gallery.Prune(p.gallery.now().Add(-maxAge))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		p.logger.Printf("Pruned %d capture(s) older than %s\n", n, maxAge)
	}

	return n, nil
}

// PruneEvery calls Prune every interval until ctx is cancelled. Errors are
// logged rather than stopping the loop. An interval of zero or less
// disables pruning and returns immediately.
func (p *PSOScreen) PruneEvery(ctx context.Context, interval, maxAge time.Duration) {
	if interval <= 0 {
		p.logger.Println("Pruning disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := p.Prune(maxAge); err != nil {
				p.logger.Printf("Pruning failed: %v\n", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
