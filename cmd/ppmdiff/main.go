/*
DESCRIPTION
  ppmdiff compares two PPM images and reports the per-channel RMS
  difference between them, as a quick way to judge how lossy a
  compress/decompress round trip was.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// ppmdiff reports the per-channel RMS difference between two PPM images.
package main

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/image40/ppm"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: ppmdiff image1.ppm image2.ppm")
		os.Exit(1)
	}

	a, err := decodeFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ppmdiff:", err)
		os.Exit(1)
	}
	b, err := decodeFile(os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ppmdiff:", err)
		os.Exit(1)
	}

	rms, ok := diff(a, b)
	fmt.Printf("%.6f\n", rms)
	if !ok {
		os.Exit(1)
	}
}

func decodeFile(path string) (ppm.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return ppm.Image{}, err
	}
	defer f.Close()
	return ppm.Decode(f)
}

// diff computes the RMS difference between a and b's normalized samples
// over the region common to both, reconciling mismatched dimensions by
// taking the element-wise minimum. If either dimension differs by more
// than one pixel, diff reports 1.0 and ok is false; the signed difference
// is checked explicitly so that b being smaller than a never wraps around
// to a large unsigned value.
func diff(a, b ppm.Image) (rms float64, ok bool) {
	if dim := a.Width - b.Width; dim > 1 || dim < -1 {
		return 1.0, false
	}
	if dim := a.Height - b.Height; dim > 1 || dim < -1 {
		return 1.0, false
	}

	width := min(a.Width, b.Width)
	height := min(a.Height, b.Height)
	if width == 0 || height == 0 {
		return 0, true
	}

	squares := make([]float64, 0, width*height*3)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ai := (row*a.Width + col) * 3
			bi := (row*b.Width + col) * 3
			for c := 0; c < 3; c++ {
				av := float64(a.Pix[ai+c]) / float64(a.Max)
				bv := float64(b.Pix[bi+c]) / float64(b.Max)
				d := av - bv
				squares = append(squares, d*d)
			}
		}
	}

	return math.Sqrt(stat.Mean(squares, nil)), true
}
