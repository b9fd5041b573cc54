/*
DESCRIPTION
  image40compress is a single-purpose command line tool that compresses a
  PPM image to the COMP40 compressed stream format, or decompresses a
  COMP40 stream back to PPM.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// image40compress compresses a PPM image to the COMP40 stream format, or
// decompresses a COMP40 stream back to PPM.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/image40/image40"
	"github.com/ausocean/image40/ppm"
)

const pkg = "image40compress: "

func main() {
	mode := flag.String("mode", "", "compress or decompress (required)")
	logPath := flag.String("log", "", "path for a rotating log file; if unset, logs go to stderr only")
	verbosity := flag.String("v", "info", "log verbosity: debug, info, warning, error")
	flag.Parse()

	l := newLogger(*logPath, *verbosity)
	image40.Log = l

	if *mode != "compress" && *mode != "decompress" {
		l.Fatal(pkg+"invalid -mode", "mode", *mode)
	}

	in, err := inputReader(flag.Arg(0))
	if err != nil {
		l.Fatal(pkg+"could not open input", "error", err.Error())
	}

	if err := run(*mode, in, os.Stdout); err != nil {
		l.Fatal(pkg+"operation failed", "mode", *mode, "error", err.Error())
	}
}

// run performs the requested conversion, reading from r and writing to w.
func run(mode string, r io.Reader, w io.Writer) error {
	switch mode {
	case "compress":
		img, err := ppm.Decode(r)
		if err != nil {
			return err
		}
		return image40.Compress(w, img)
	case "decompress":
		return image40.Decompress(w, r)
	default:
		return fmt.Errorf("%sunreachable mode %q", pkg, mode)
	}
}

// inputReader opens path, or returns stdin if path is empty.
func inputReader(path string) (io.Reader, error) {
	if path == "" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

// newLogger builds a logging.Logger in the manner of this codebase's other
// cmd/* binaries: a rotating file sink via lumberjack when -log is given,
// stderr otherwise.
func newLogger(logPath, verbosity string) logging.Logger {
	var w io.Writer = os.Stderr
	if logPath != "" {
		w = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    100, // MB
			MaxBackups: 5,
			MaxAge:     28, // days
		}
	}
	var level = logging.Info
	switch verbosity {
	case "debug":
		level = logging.Debug
	case "warning":
		level = logging.Warning
	case "error":
		level = logging.Error
	}
	return logging.New(level, w, false)
}
