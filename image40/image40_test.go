/*
DESCRIPTION
  image40_test.go contains tests for the image40 package.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package image40

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/ausocean/image40/ppm"
)

// rawPPM builds a minimal P6 PPM from a row-major list of RGB triples.
func rawPPM(width, height int, pix []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "P6\n%d %d\n255\n", width, height)
	buf.Write(pix)
	return buf.Bytes()
}

func TestCompressDecompressGrayBlockRoundTrip(t *testing.T) {
	pix := make([]byte, 2*2*3)
	for i := range pix {
		pix[i] = 128
	}
	img, err := ppm.Decode(bytes.NewReader(rawPPM(2, 2, pix)))
	if err != nil {
		t.Fatalf("ppm.Decode setup failed: %v", err)
	}

	var compressed bytes.Buffer
	if err := Compress(&compressed, img); err != nil {
		t.Fatalf("Compress returned error: %v", err)
	}
	if !strings.HasPrefix(compressed.String(), header) {
		t.Fatalf("Compress output missing header, got %q", compressed.String()[:min(len(compressed.String()), 40)])
	}

	var decompressed bytes.Buffer
	if err := Decompress(&decompressed, bytes.NewReader(compressed.Bytes())); err != nil {
		t.Fatalf("Decompress returned error: %v", err)
	}

	out, err := ppm.Decode(bytes.NewReader(decompressed.Bytes()))
	if err != nil {
		t.Fatalf("ppm.Decode(Decompress(...)) failed: %v", err)
	}
	if out.Width != 2 || out.Height != 2 || out.Max != OutputDenominator {
		t.Fatalf("unexpected decompressed dimensions/max: %+v", out)
	}
	for i, v := range out.Pix {
		if math.Abs(float64(v)-128) > 2 {
			t.Errorf("pixel byte %d = %d, want close to 128", i, v)
		}
	}
}

func TestCompressTrimsOddDimensions(t *testing.T) {
	pix := make([]byte, 3*3*3)
	for i := range pix {
		pix[i] = 200
	}
	img, err := ppm.Decode(bytes.NewReader(rawPPM(3, 3, pix)))
	if err != nil {
		t.Fatalf("ppm.Decode setup failed: %v", err)
	}

	var compressed bytes.Buffer
	if err := Compress(&compressed, img); err != nil {
		t.Fatalf("Compress returned error: %v", err)
	}

	var decompressed bytes.Buffer
	if err := Decompress(&decompressed, bytes.NewReader(compressed.Bytes())); err != nil {
		t.Fatalf("Decompress returned error: %v", err)
	}
	out, err := ppm.Decode(bytes.NewReader(decompressed.Bytes()))
	if err != nil {
		t.Fatalf("ppm.Decode(Decompress(...)) failed: %v", err)
	}
	if out.Width != 2 || out.Height != 2 {
		t.Errorf("Compress did not trim odd dimensions: got %dx%d, want 2x2", out.Width, out.Height)
	}
}

func TestCompressDecompressPureRedRoundTrip(t *testing.T) {
	pix := []byte{
		255, 0, 0, 255, 0, 0,
		255, 0, 0, 255, 0, 0,
	}
	img, err := ppm.Decode(bytes.NewReader(rawPPM(2, 2, pix)))
	if err != nil {
		t.Fatalf("ppm.Decode setup failed: %v", err)
	}

	var compressed bytes.Buffer
	if err := Compress(&compressed, img); err != nil {
		t.Fatalf("Compress returned error: %v", err)
	}
	var decompressed bytes.Buffer
	if err := Decompress(&decompressed, bytes.NewReader(compressed.Bytes())); err != nil {
		t.Fatalf("Decompress returned error: %v", err)
	}
	out, err := ppm.Decode(bytes.NewReader(decompressed.Bytes()))
	if err != nil {
		t.Fatalf("ppm.Decode(Decompress(...)) failed: %v", err)
	}
	for px := 0; px < 4; px++ {
		r, g, b := out.Pix[px*3], out.Pix[px*3+1], out.Pix[px*3+2]
		if int(r) < 200 {
			t.Errorf("pixel %d red channel = %d, want >= 200", px, r)
		}
		if int(g) > 60 || int(b) > 60 {
			t.Errorf("pixel %d = (%d,%d,%d), want green/blue near 0", px, r, g, b)
		}
	}
}

func TestDecompressRejectsBadHeader(t *testing.T) {
	bad := "COMP40 Compressed image format 1\n2 2\n" + string([]byte{0, 0, 0, 0})
	if err := Decompress(&bytes.Buffer{}, strings.NewReader(bad)); err == nil {
		t.Error("Decompress accepted a wrong-version header, want error")
	}
}

func TestDecompressRejectsTruncatedCodewords(t *testing.T) {
	bad := header + "2 2\n" + string([]byte{0, 0})
	if err := Decompress(&bytes.Buffer{}, strings.NewReader(bad)); err == nil {
		t.Error("Decompress accepted a truncated codeword stream, want error")
	}
}

func TestCompressRejectsNilWriter(t *testing.T) {
	img := ppm.Image{Width: 2, Height: 2, Max: 255, Pix: make([]byte, 12)}
	if err := Compress(nil, img); err == nil {
		t.Error("Compress accepted a nil writer, want error")
	}
}

func TestDecompressRejectsNilReader(t *testing.T) {
	if err := Decompress(&bytes.Buffer{}, nil); err == nil {
		t.Error("Decompress accepted a nil reader, want error")
	}
}
