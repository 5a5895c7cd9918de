package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/bodgit/psoscreen"
	"github.com/bodgit/psoscreen/capture"
	"github.com/bodgit/psoscreen/output"
	"github.com/urfave/cli/v2"
)

const defaultDB = "psoscreen.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func convertOptions(c *cli.Context) (*psoscreen.ConvertOptions, error) {
	f, err := output.ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}

	opts := &psoscreen.ConvertOptions{
		StripLineBreaks: c.Bool("strip"),
		Output: output.Options{
			Format: f,
			Scale:  c.Int("scale"),
		},
	}

	if token := c.String("platform"); token != "" {
		if opts.Platform, err = capture.ParsePlatform(token); err != nil {
			return nil, err
		}
	}

	return opts, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "psoscreen"
	app.Usage = "Phantasy Star Online screenshot converter"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	outputFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   output.PNG.String(),
			Usage:   "output format, one of " + strings.Join(output.Formats(), ", "),
		},
		&cli.IntFlag{
			Name:  "scale",
			Value: 1,
			Usage: "scale output by an integer factor",
		},
		&cli.BoolFlag{
			Name:  "strip",
			Usage: "remove line breaks from Dreamcast captures before decoding",
		},
	}

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert a capture to an image",
			Description: "The platform is worked out from the filename unless --platform is given, e.g. PSO_SCREEN, PSO3_SCREEN or PSO_DC_SCREEN.",
			ArgsUsage:   "FILE [OUTPUT]",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:    "platform",
					Aliases: []string{"p"},
					Usage:   "platform token of the capture",
				},
			}, outputFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				opts, err := convertOptions(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				m := psoscreen.New(nil, newLogger(c))
				if err := m.ConvertFile(c.Args().Get(0), c.Args().Get(1), opts); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and convert any captures",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags:       outputFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				opts, err := convertOptions(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				m := psoscreen.New(nil, newLogger(c))
				if err := m.Scan(c.Args().First(), opts); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "serve",
			Usage: "Run the upload gallery",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "db",
					EnvVars: []string{"PSOSCREEN_DB"},
					Value:   filepath.Join(cwd, defaultDB),
					Usage:   "path to database",
				},
				&cli.StringFlag{
					Name:    "listen",
					EnvVars: []string{"PSOSCREEN_LISTEN"},
					Value:   ":3000",
					Usage:   "address to listen on",
				},
				&cli.StringFlag{
					Name:    "base-url",
					EnvVars: []string{"PSOSCREEN_BASE_URL"},
					Usage:   "URL the gallery is reachable at, used in QR codes",
				},
				&cli.DurationFlag{
					Name:    "max-age",
					EnvVars: []string{"PSOSCREEN_MAX_AGE"},
					Value:   30 * time.Minute,
					Usage:   "remove captures older than this",
				},
				&cli.DurationFlag{
					Name:  "prune-interval",
					Value: 5 * time.Minute,
					Usage: "how often to remove old captures, 0 disables",
				},
				&cli.BoolFlag{
					Name:    "strip",
					EnvVars: []string{"PSOSCREEN_STRIP"},
					Usage:   "remove line breaks from uploaded Dreamcast captures before decoding",
				},
			},
			Action: func(c *cli.Context) error {
				logger := newLogger(c)

				gallery, err := psoscreen.NewGallery(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer gallery.Close()

				m := psoscreen.New(gallery, logger)
				m.StripLineBreaks = c.Bool("strip")

				h, err := m.Handler(c.String("base-url"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
				defer cancel()

				go m.PruneEvery(ctx, c.Duration("prune-interval"), c.Duration("max-age"))

				srv := &http.Server{Addr: c.String("listen"), Handler: h}

				errc := make(chan error, 1)
				go func() {
					logger.Printf("Listening on %s\n", srv.Addr)
					errc <- srv.ListenAndServe()
				}()

				select {
				case err := <-errc:
					return cli.Exit(err, 1)
				case <-ctx.Done():
				}

				shutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancelShutdown()

				if err := srv.Shutdown(shutdown); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
