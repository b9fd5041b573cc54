/*
DESCRIPTION
  colorspace.go converts individual pixels between RGB and YPbPr (luma,
  blue-difference chroma, red-difference chroma) using the ITU-R BT.601
  coefficients.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package colorspace implements the per-pixel RGB<->YPbPr transform at the
// core of the codec. Inputs and outputs are plain value types; no pixel is
// individually heap-allocated.
package colorspace

import "math"

// RGB is a pixel with channels scaled to [0, 1].
type RGB struct {
	R, G, B float64
}

// YPbPr is a pixel in luma/chroma space: Luma in [0, 1], Pb and Pr in
// [-0.5, 0.5].
type YPbPr struct {
	Luma, Pb, Pr float64
}

// ToYPbPr converts an RGB pixel to YPbPr using the BT.601 coefficients.
func ToYPbPr(p RGB) YPbPr {
	return YPbPr{
		Luma: 0.299*p.R + 0.587*p.G + 0.114*p.B,
		Pb:   -0.168736*p.R - 0.331264*p.G + 0.500000*p.B,
		Pr:   0.500000*p.R - 0.418688*p.G - 0.081312*p.B,
	}
}

// ToRGB converts a YPbPr pixel back to RGB using the BT.601 inverse
// coefficients. The result is not clamped; callers scaling to integer
// samples are responsible for clamping and truncation (see ScaleAndClamp).
func ToRGB(p YPbPr) RGB {
	return RGB{
		R: p.Luma + 1.402000*p.Pr,
		G: p.Luma - 0.344136*p.Pb - 0.714136*p.Pr,
		B: p.Luma + 1.772000*p.Pb,
	}
}

// ScaleAndClamp multiplies a single RGB channel value (as produced by
// ToRGB) by max and clamps the result to [0, max], truncating toward zero
// as required for bit-exact parity with the reference quantization.
func ScaleAndClamp(value float64, max int) int {
	scaled := math.Trunc(value * float64(max))
	v := int(scaled)
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
