// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"errors"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli"

	"github.com/mikepound/opencubes/internal/archive"
	"github.com/mikepound/opencubes/internal/canon"
	"github.com/mikepound/opencubes/internal/dispatch"
	"github.com/mikepound/opencubes/internal/grid"
	"github.com/mikepound/opencubes/internal/perr"
	"github.com/mikepound/opencubes/internal/tier"
)

// VERSION is populated via build flags when packaging official binaries.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "polycubes"
	myApp.Usage = "generate every free polycube of a given size"
	myApp.Version = VERSION
	myApp.ArgsUsage = "N"
	myApp.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "cache",
			Usage: "persist and reuse each tier via the legacy cache",
		},
		cli.BoolFlag{
			Name:  "no-cache",
			Usage: "disable the legacy cache (overrides --cache)",
		},
		cli.BoolFlag{
			Name:  "multicore",
			Usage: "split each tier's work across a worker pool",
		},
		cli.BoolFlag{
			Name:  "no-multicore",
			Usage: "force serial execution (overrides --multicore)",
		},
		cli.BoolFlag{
			Name:  "render",
			Usage: "invoke the external renderer on the final tier",
		},
		cli.BoolFlag{
			Name:  "no-render",
			Usage: "skip rendering (overrides --render)",
		},
		cli.IntFlag{
			Name:   "workers",
			Value:  0,
			Usage:  "override the GOMAXPROCS-derived worker count",
			Hidden: true,
		},
		cli.IntFlag{
			Name:  "progress-period",
			Value: 1,
			Usage: "seconds between aggregated progress lines",
		},
		cli.StringFlag{
			Name:  "archive-dir",
			Value: ".",
			Usage: "directory to write the final tier's pcube archive into",
		},
		cli.StringFlag{
			Name:  "cache-dir",
			Value: ".",
			Usage: "directory holding the legacy per-tier cache files",
		},
		cli.BoolFlag{
			Name:  "compress",
			Usage: "gzip the written pcube archive",
		},
		cli.BoolFlag{
			Name:  "oriented",
			Usage: "re-derive each identifier's bitwise-highest rotation before writing, independent of how it was produced",
		},
		cli.StringFlag{
			Name:  "log",
			Value: "",
			Usage: "specify a log file to output, default goes to stderr",
		},
		cli.BoolFlag{
			Name:  "quiet",
			Usage: "suppress aggregated progress lines",
		},
		cli.StringFlag{
			Name:  "config",
			Value: "",
			Usage: "config from json file, which will override the command from shell",
		},
	}
	myApp.Action = func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.NewExitError("exactly one positional argument N is required", 1)
		}
		n, err := strconv.Atoi(c.Args().First())
		if err != nil {
			return cli.NewExitError("N must be an integer", 1)
		}

		config := Config{}
		config.N = n
		config.Cache = c.Bool("cache") && !c.Bool("no-cache")
		if !c.IsSet("cache") && !c.IsSet("no-cache") {
			config.Cache = true // spec default: cache on
		}
		config.Multicore = c.Bool("multicore") && !c.Bool("no-multicore")
		config.Render = c.Bool("render") && !c.Bool("no-render")
		config.Workers = c.Int("workers")
		config.ProgressPeriod = c.Int("progress-period")
		config.ArchiveDir = c.String("archive-dir")
		config.CacheDir = c.String("cache-dir")
		config.Compress = c.Bool("compress")
		config.Oriented = c.Bool("oriented")
		config.Log = c.String("log")
		config.Quiet = c.Bool("quiet")

		if c.String("config") != "" {
			err := parseJSONConfig(&config, c.String("config"))
			checkError(err)
		}

		if config.Log != "" {
			f, err := os.OpenFile(config.Log, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
			checkError(err)
			defer f.Close()
			log.SetOutput(f)
		}

		log.Println("version:", VERSION)
		log.Println("n:", config.N)
		log.Println("cache:", config.Cache)
		log.Println("multicore:", config.Multicore)
		log.Println("render:", config.Render)
		log.Println("workers:", config.Workers)
		log.Println("progress-period:", config.ProgressPeriod)
		log.Println("archive-dir:", config.ArchiveDir)
		log.Println("cache-dir:", config.CacheDir)
		log.Println("compress:", config.Compress)
		log.Println("oriented:", config.Oriented)
		log.Println("quiet:", config.Quiet)

		if config.N < 0 {
			return cli.NewExitError(perr.Wrap(perr.InvalidArgument, errNegativeN).Error(), 1)
		}

		if err := os.MkdirAll(config.ArchiveDir, 0o755); err != nil {
			return cli.NewExitError(perr.Wrap(perr.IOFailure, err).Error(), 1)
		}
		if err := os.MkdirAll(config.CacheDir, 0o755); err != nil {
			return cli.NewExitError(perr.Wrap(perr.IOFailure, err).Error(), 1)
		}

		var progressOut io.Writer = log.Writer()
		if config.Quiet {
			progressOut = io.Discard
		}
		rt := dispatch.NewRuntime(config.Workers, progressOut, time.Duration(config.ProgressPeriod)*time.Second)

		start := time.Now()
		shapes, err := tier.Generate(rt, config.CacheDir, config.N, config.Cache, config.Multicore)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		elapsed := time.Since(start)

		orientation := archive.Unsorted
		compression := archive.NoCompression
		if config.Compress {
			compression = archive.GzipCompression
		}
		if config.Oriented {
			orientation = archive.Oriented
		}
		ids := make([][]byte, 0, len(shapes))
		for _, g := range shapes {
			var (
				id  []byte
				err error
			)
			if config.Oriented {
				// Recompute the bitwise-highest rotation directly, rather
				// than trusting the chunk-private set optimization that
				// produced shapes: a trust-but-verify pass for archives
				// that must not depend on that optimization's invariant.
				id, err = canon.CanonicalShapeInvariant(g)
			} else {
				id, err = grid.Pack(g)
			}
			if err != nil {
				return cli.NewExitError(err.Error(), 1)
			}
			ids = append(ids, id)
		}
		archivePath := archive.Path(config.ArchiveDir, config.N)
		if err := archive.SaveAtomic(archivePath, ids, orientation, compression); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}

		if config.Render {
			render(shapes, config.ArchiveDir)
		}

		log.Printf("found %d unique polycubes\n", len(shapes))
		log.Printf("elapsed time: %s\n", elapsed)
		return nil
	}

	if err := myApp.Run(os.Args); err != nil {
		log.Printf("%+v\n", err)
		os.Exit(1)
	}
}

var errNegativeN = errors.New("n must be >= 0")

func checkError(err error) {
	if err != nil {
		log.Printf("%+v\n", err)
		os.Exit(-1)
	}
}
