package psoscreen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/bodgit/psoscreen/capture"
)

const (
	scanWorkers = 10

	// Nothing legitimate comes close; GameCube captures are ~140 KB
	maxCaptureSize = 1 << 20
)

func (p *PSOScreen) findCaptures(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() || info.Size() > maxCaptureSize {
				return nil
			}

			// Don't feed our own output back in
			if isOutputFile(file) {
				return nil
			}

			if _, err := capture.PlatformFromFilename(file); err != nil {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (p *PSOScreen) convertWorker(ctx context.Context, in <-chan string, opts *ConvertOptions) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := p.ConvertFile(file, "", opts); err != nil {
				var se *capture.SizeError
				if errors.As(err, &se) {
					// Truncated captures are common, skip them
					p.logger.Printf("Skipping \"%s\": %v\n", file, err)
					continue
				}
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path converting every capture it finds, writing the output
// alongside each one. The platform of each capture is worked out from its
// filename so opts.Platform is ignored.
func (p *PSOScreen) Scan(path string, opts *ConvertOptions) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	o := ConvertOptions{}
	if opts != nil {
		o = *opts
	}
	o.Platform = capture.Unknown

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := p.findCaptures(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < scanWorkers; i++ {
		errc, err := p.convertWorker(ctx, files, &o)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
