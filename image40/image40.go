/*
DESCRIPTION
  image40.go implements the image40 codec's pipeline driver: the six-stage
  transform described by the codec specification, run once per 2x2 block,
  in both the compression and decompression directions.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package image40 implements the lossy 2x2-block PPM image codec: RGB<->
// YPbPr color conversion, chroma averaging and quantization, a 2x2 DCT on
// luma, bit-field packing into a 32-bit codeword, and the COMP40
// compressed-stream framing. The package never parses PPM files itself:
// callers decode with package ppm and hand Compress an already-parsed
// ppm.Image. Decompress reads the compressed stream from an io.Reader and
// writes its PPM output through ppm.Encode.
package image40

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/image40/image40err"
	"github.com/ausocean/image40/internal/chromaindex"
	"github.com/ausocean/image40/internal/codeword"
	"github.com/ausocean/image40/internal/colorspace"
	"github.com/ausocean/image40/internal/dct"
	"github.com/ausocean/image40/ppm"
)

// Log, if non-nil, receives block-level and stream-level diagnostics.
// Callers that want logging set this once, in the manner of this
// codebase's codec packages (see the jpeg package's package-level Log
// var); it is never required for correct operation.
var Log logging.Logger

// header is the literal prefix that precedes every compressed stream.
// Deviation from it is a fatal InvalidInput parse error.
const header = "COMP40 Compressed image format 2\n"

// OutputDenominator is the maxval the decompressor always writes, per the
// codec specification.
const OutputDenominator = 255

// rgbBlock is four RGB pixels addressed by corner, as produced by
// reading a trimmed PPM raster two rows and two columns at a time.
type rgbBlock struct {
	topL, topR, botL, botR colorspace.RGB
}

// blocksWide and blocksHigh compute the number of 2x2 blocks in each
// dimension, trimming any odd row or column.
func blocksWide(width int) int  { return width / 2 }
func blocksHigh(height int) int { return height / 2 }

// readBlock extracts the 2x2 block at block-grid coordinate (br, bc) from
// img, scaling integer samples to [0, 1] using img.Max.
func readBlock(img ppm.Image, br, bc int) rgbBlock {
	px := func(row, col int) colorspace.RGB {
		i := (row*img.Width + col) * 3
		scale := 1 / float64(img.Max)
		return colorspace.RGB{
			R: float64(img.Pix[i]) * scale,
			G: float64(img.Pix[i+1]) * scale,
			B: float64(img.Pix[i+2]) * scale,
		}
	}
	r0, c0 := 2*br, 2*bc
	return rgbBlock{
		topL: px(r0, c0),
		topR: px(r0, c0+1),
		botL: px(r0+1, c0),
		botR: px(r0+1, c0+1),
	}
}

// compressBlock runs stages RGB->YPbPr, chroma, and luma over one block
// and packs the result into a codeword.
func compressBlock(b rgbBlock) (uint32, error) {
	tl := colorspace.ToYPbPr(b.topL)
	tr := colorspace.ToYPbPr(b.topR)
	bl := colorspace.ToYPbPr(b.botL)
	br := colorspace.ToYPbPr(b.botR)

	pbAvg := (tl.Pb + tr.Pb + bl.Pb + br.Pb) / 4
	prAvg := (tl.Pr + tr.Pr + bl.Pr + br.Pr) / 4

	coeffs := dct.Forward(dct.Samples{
		TopL: tl.Luma, TopR: tr.Luma, BotL: bl.Luma, BotR: br.Luma,
	})

	bit := codeword.Block{
		A:  dct.QuantizeA(coeffs.A, codeword.AWidth),
		B:  dct.QuantizeBCD(coeffs.B, codeword.BWidth),
		C:  dct.QuantizeBCD(coeffs.C, codeword.CWidth),
		D:  dct.QuantizeBCD(coeffs.D, codeword.DWidth),
		Pb: chromaindex.IndexOf(pbAvg),
		Pr: chromaindex.IndexOf(prAvg),
	}

	word, err := codeword.Pack(bit)
	if err != nil {
		return 0, errors.Wrap(err, "image40: packing block")
	}
	return word, nil
}

// decompressBlock unpacks a codeword and reverses chroma dequantization,
// luma dequantization, and the inverse DCT, then converts each of the
// block's four pixels back to RGB.
func decompressBlock(word uint32) rgbBlock {
	bit := codeword.Unpack(word)

	pb := chromaindex.Of(bit.Pb)
	pr := chromaindex.Of(bit.Pr)

	coeffs := dct.Coefficients{
		A: dct.DequantizeA(bit.A, codeword.AWidth),
		B: dct.DequantizeBCD(bit.B, codeword.BWidth),
		C: dct.DequantizeBCD(bit.C, codeword.CWidth),
		D: dct.DequantizeBCD(bit.D, codeword.DWidth),
	}
	samples := dct.Inverse(coeffs)

	toRGB := func(luma float64) colorspace.RGB {
		return colorspace.ToRGB(colorspace.YPbPr{Luma: luma, Pb: pb, Pr: pr})
	}

	return rgbBlock{
		topL: toRGB(samples.TopL),
		topR: toRGB(samples.TopR),
		botL: toRGB(samples.BotL),
		botR: toRGB(samples.BotR),
	}
}

// writeBlock scales and clamps a decompressed block's four pixels to
// integer samples and stores them into the output raster at block-grid
// coordinate (br, bc).
func writeBlock(pix []byte, width, br, bc int, b rgbBlock) {
	put := func(row, col int, p colorspace.RGB) {
		i := (row*width + col) * 3
		pix[i] = byte(colorspace.ScaleAndClamp(p.R, OutputDenominator))
		pix[i+1] = byte(colorspace.ScaleAndClamp(p.G, OutputDenominator))
		pix[i+2] = byte(colorspace.ScaleAndClamp(p.B, OutputDenominator))
	}
	r0, c0 := 2*br, 2*bc
	put(r0, c0, b.topL)
	put(r0, c0+1, b.topR)
	put(r0+1, c0, b.botL)
	put(r0+1, c0+1, b.botR)
}

// Compress reads img, trims it to even dimensions, and writes the COMP40
// compressed stream (header followed by one big-endian 32-bit codeword
// per 2x2 block, in row-major order) to w.
func Compress(w io.Writer, img ppm.Image) error {
	if w == nil {
		return errors.Wrap(image40err.NullArgument, "image40.Compress: nil writer")
	}
	if img.Max <= 0 {
		return errors.Wrap(image40err.InvalidInput, "image40.Compress: non-positive denominator")
	}

	width := img.Width - img.Width%2
	height := img.Height - img.Height%2
	bw, bh := blocksWide(width), blocksHigh(height)

	bufW := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bufW, "%s%d %d\n", header, width, height); err != nil {
		return errors.Wrap(image40err.IOError, err.Error())
	}

	for br := 0; br < bh; br++ {
		for bc := 0; bc < bw; bc++ {
			word, err := compressBlock(readBlock(img, br, bc))
			if err != nil {
				return err
			}
			bytes := codeword.WriteBytes(word)
			if _, err := bufW.Write(bytes[:]); err != nil {
				return errors.Wrap(image40err.IOError, err.Error())
			}
		}
	}

	if err := bufW.Flush(); err != nil {
		return errors.Wrap(image40err.IOError, err.Error())
	}

	if Log != nil {
		Log.Debug("compressed image", "width", width, "height", height, "blocks", bw*bh)
	}
	return nil
}

// Decompress reads a COMP40 compressed stream from r and writes the
// reconstructed PPM (P6, denominator 255) to w.
func Decompress(w io.Writer, r io.Reader) error {
	if r == nil {
		return errors.Wrap(image40err.NullArgument, "image40.Decompress: nil reader")
	}

	br, width, height, err := readHeader(r)
	if err != nil {
		return err
	}
	bw, bh := blocksWide(width), blocksHigh(height)

	pix := make([]byte, width*height*3)
	var buf [4]byte
	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			if _, err := io.ReadFull(br, buf[:]); err != nil {
				return errors.Wrap(image40err.InvalidInput, "image40.Decompress: truncated codeword stream: "+err.Error())
			}
			word := codeword.ReadBytes(buf)
			writeBlock(pix, width, by, bx, decompressBlock(word))
		}
	}

	if Log != nil {
		Log.Debug("decompressed image", "width", width, "height", height, "blocks", bw*bh)
	}

	return ppm.Encode(w, ppm.Image{Width: width, Height: height, Max: OutputDenominator, Pix: pix})
}

// readHeader validates and parses the COMP40 stream header: the literal
// prefix header, whitespace-separated width and height, and a single
// trailing newline. It returns the buffered reader positioned at the
// start of the codeword stream; callers must read the remaining bytes
// through it rather than through the original r, since the bufio.Reader
// may have buffered bytes ahead of the header.
func readHeader(r io.Reader) (br *bufio.Reader, width, height int, err error) {
	br = bufio.NewReader(r)
	for i := 0; i < len(header); i++ {
		b, err := br.ReadByte()
		if err != nil || b != header[i] {
			return nil, 0, 0, errors.Wrap(image40err.InvalidInput, "image40.Decompress: bad header prefix")
		}
	}
	if _, err := fmt.Fscanf(br, "%d %d", &width, &height); err != nil {
		return nil, 0, 0, errors.Wrap(image40err.InvalidInput, "image40.Decompress: bad header dimensions: "+err.Error())
	}
	nl, err := br.ReadByte()
	if err != nil || nl != '\n' {
		return nil, 0, 0, errors.Wrap(image40err.InvalidInput, "image40.Decompress: missing header newline")
	}
	if width < 0 || height < 0 {
		return nil, 0, 0, errors.Wrap(image40err.InvalidInput, "image40.Decompress: negative dimension")
	}
	return br, width, height, nil
}
