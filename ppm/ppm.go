/*
DESCRIPTION
  ppm.go reads and writes binary (P6) portable pixmap images: the PPM
  parser/writer that the image40 codec specification calls out as an
  external collaborator of the core transform pipeline. The core package
  never reads a PPM file itself; its compressor only ever sees an
  already-decoded Image.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ppm reads and writes binary (P6) portable pixmap images.
package ppm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ausocean/image40/image40err"
)

// Image is a decoded RGB raster: Width*Height pixels, each 3 bytes (R, G,
// B), row-major, with samples scaled to [0, Max].
type Image struct {
	Width, Height int
	Max           int
	Pix           []byte
}

const magic = "P6"

// Decode reads a binary PPM (P6) image from r. It accepts '#'-to-end-of-
// line comments anywhere a single whitespace-delimited header token is
// expected, matching the permissiveness of the Hanson pnmrdr library this
// codec's header format was historically read with.
func Decode(r io.Reader) (Image, error) {
	if r == nil {
		return Image{}, errors.Wrap(image40err.NullArgument, "ppm.Decode: nil reader")
	}

	s := newHeaderScanner(r)

	tok, err := s.token()
	if err != nil {
		return Image{}, errors.Wrap(image40err.InvalidInput, "ppm.Decode: reading magic: "+err.Error())
	}
	if tok != magic {
		return Image{}, errors.Wrapf(image40err.InvalidInput, "ppm.Decode: unsupported magic %q, want %q", tok, magic)
	}

	width, err := s.tokenUint("width")
	if err != nil {
		return Image{}, err
	}
	height, err := s.tokenUint("height")
	if err != nil {
		return Image{}, err
	}
	max, err := s.tokenUint("maxval")
	if err != nil {
		return Image{}, err
	}
	if max <= 0 || max > 65535 {
		return Image{}, errors.Wrapf(image40err.InvalidInput, "ppm.Decode: maxval %d out of range", max)
	}

	// Exactly one whitespace byte separates the header from the raster.
	if _, err := s.r.ReadByte(); err != nil {
		return Image{}, errors.Wrap(image40err.InvalidInput, "ppm.Decode: missing raster delimiter")
	}

	pix := make([]byte, width*height*3)
	if _, err := io.ReadFull(s.r, pix); err != nil {
		return Image{}, errors.Wrap(image40err.InvalidInput, "ppm.Decode: truncated raster: "+err.Error())
	}

	return Image{Width: width, Height: height, Max: max, Pix: pix}, nil
}

// Encode writes img to w as a binary PPM (P6) image.
func Encode(w io.Writer, img Image) error {
	if w == nil {
		return errors.Wrap(image40err.NullArgument, "ppm.Encode: nil writer")
	}
	if len(img.Pix) != img.Width*img.Height*3 {
		return errors.Wrapf(image40err.InvalidInput, "ppm.Encode: raster length %d does not match %dx%d", len(img.Pix), img.Width, img.Height)
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", magic, img.Width, img.Height, img.Max); err != nil {
		return errors.Wrap(image40err.IOError, err.Error())
	}
	if _, err := bw.Write(img.Pix); err != nil {
		return errors.Wrap(image40err.IOError, err.Error())
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(image40err.IOError, err.Error())
	}
	return nil
}

// headerScanner tokenizes whitespace-separated PPM header fields,
// skipping '#'-to-end-of-line comments between tokens. Adapted from this
// codebase's general-purpose byte scanner for the narrower job of reading
// a handful of decimal fields rather than an arbitrary delimited stream.
type headerScanner struct {
	r *bufio.Reader
}

func newHeaderScanner(r io.Reader) *headerScanner {
	return &headerScanner{r: bufio.NewReader(r)}
}

// token reads the next whitespace-delimited token, skipping leading
// whitespace and any '#' comments.
func (s *headerScanner) token() (string, error) {
	first, err := s.skipSpaceAndComments()
	if err != nil {
		return "", err
	}

	buf := []byte{first}
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return string(buf), nil
			}
			return "", err
		}
		if isSpace(b) {
			if err := s.r.UnreadByte(); err != nil {
				return "", err
			}
			return string(buf), nil
		}
		buf = append(buf, b)
	}
}

// skipSpaceAndComments consumes whitespace and '#'-to-end-of-line
// comments and returns the first byte of the following token.
func (s *headerScanner) skipSpaceAndComments() (byte, error) {
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch {
		case isSpace(b):
			continue
		case b == '#':
			if err := s.skipComment(); err != nil {
				return 0, err
			}
			continue
		default:
			return b, nil
		}
	}
}

// tokenUint reads the next token and parses it as a non-negative decimal,
// wrapping any failure with name for diagnostics.
func (s *headerScanner) tokenUint(name string) (int, error) {
	tok, err := s.token()
	if err != nil {
		return 0, errors.Wrapf(image40err.InvalidInput, "ppm.Decode: reading %s: %v", name, err)
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, errors.Wrapf(image40err.InvalidInput, "ppm.Decode: invalid %s %q", name, tok)
	}
	return n, nil
}

func (s *headerScanner) skipComment() error {
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return err
		}
		if b == '\n' {
			return nil
		}
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
