/*
DESCRIPTION
  dct.go implements the 2x2 Hadamard-style "DCT" transform on a block's
  four luma samples, and the quantization of its four coefficients (a, b,
  c, d) to fixed-width integer fields.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package dct implements the block-local luma transform and its
// quantization to/from fixed-width integer fields. The forward transform
// produces one DC term (a) and three AC terms (b, c, d); only a is
// unsigned.
package dct

import "math"

// Quantization range constants. The DC term a ranges over its full
// analytic range [0, 1]. The AC terms b, c, d are clamped to a tighter
// +-0.3 before quantization: their analytic range for luma in [0, 1] is
// [-0.5, 0.5], but on natural images they concentrate within +-0.3, and
// the tighter bound buys quantization precision at the cost of clipping
// extreme gradients.
const (
	aMin, aMax     = 0.0, 1.0
	bcdMin, bcdMax = -0.3, 0.3
)

// Coefficients holds the four luma DCT coefficients of one 2x2 block in
// floating point, before quantization.
type Coefficients struct {
	A, B, C, D float64
}

// Samples holds the four luma values of one 2x2 block, addressed by
// corner.
type Samples struct {
	TopL, TopR, BotL, BotR float64
}

// Forward computes the DCT coefficients of a block's luma samples.
func Forward(s Samples) Coefficients {
	y1, y2, y3, y4 := s.TopL, s.TopR, s.BotL, s.BotR
	return Coefficients{
		A: (y4 + y3 + y2 + y1) / 4,
		B: (y4 + y3 - y2 - y1) / 4,
		C: (y4 - y3 + y2 - y1) / 4,
		D: (y4 - y3 - y2 + y1) / 4,
	}
}

// Inverse reconstructs a block's four luma samples from its DCT
// coefficients.
func Inverse(c Coefficients) Samples {
	a, b, cc, d := c.A, c.B, c.C, c.D
	return Samples{
		TopL: a - b - cc + d,
		TopR: a - b + cc - d,
		BotL: a + b - cc - d,
		BotR: a + b + cc + d,
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// maxForWidth returns 2^w - 1 as a float64.
func maxForWidth(w uint) float64 {
	return float64((uint64(1) << w) - 1)
}

// QuantizeA clamps a to [0, 1] and quantizes it to an unsigned integer
// with the given bit width, rounding toward zero.
func QuantizeA(a float64, width uint) uint64 {
	a = clamp(a, aMin, aMax)
	max := maxForWidth(width)
	return uint64(math.Trunc(a * max))
}

// DequantizeA inverts QuantizeA, clamping the result to [0, 1].
func DequantizeA(q uint64, width uint) float64 {
	max := maxForWidth(width)
	return clamp(float64(q)/max, aMin, aMax)
}

// QuantizeBCD clamps value to [-0.3, 0.3] and quantizes it to a signed
// integer with the given bit width, rounding toward zero.
func QuantizeBCD(value float64, width uint) int64 {
	value = clamp(value, bcdMin, bcdMax)
	max := maxForWidth(width - 1)
	return int64(math.Trunc(value / bcdMax * max))
}

// DequantizeBCD inverts QuantizeBCD, clamping the result to [-0.3, 0.3].
func DequantizeBCD(q int64, width uint) float64 {
	max := maxForWidth(width - 1)
	return clamp(float64(q)*bcdMax/max, bcdMin, bcdMax)
}
