/*
DESCRIPTION
  chromaindex.go implements the chroma value <-> 4-bit index tabulation
  that the codec specification treats as an external black box (the
  original course toolchain supplied this as "arith40"). It is isolated in
  its own package because bit-exactness of the compressed stream across
  implementations depends on every implementation sharing this exact
  table; only this file needs to change to adopt a different tabulation.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package chromaindex maps chroma (Pb or Pr) values in [-0.5, 0.5] to a
// 4-bit index (0-15) and back, via a fixed, shared, uniform quantization
// table.
package chromaindex

const (
	// NumLevels is the number of representable chroma levels (2^4).
	NumLevels = 16

	min = -0.5
	max = 0.5
)

// levels holds the representative chroma value for each of the 16
// indices: the centre of sixteen equal-width bins spanning [-0.5, 0.5].
var levels = func() [NumLevels]float64 {
	var t [NumLevels]float64
	step := (max - min) / NumLevels
	for i := range t {
		t[i] = min + step*(float64(i)+0.5)
	}
	return t
}()

// IndexOf quantizes a chroma value to its nearest 4-bit index. Values
// outside [-0.5, 0.5] are clamped first; this is the clamping the codec
// specification delegates to this function, rather than performing it
// before the call.
func IndexOf(value float64) uint64 {
	if value <= min {
		return 0
	}
	if value >= max {
		return NumLevels - 1
	}
	step := (max - min) / NumLevels
	idx := int((value - min) / step)
	if idx >= NumLevels {
		idx = NumLevels - 1
	}
	return uint64(idx)
}

// Of returns the representative chroma value for a 4-bit index. Indices
// outside [0, 15] are clamped to the nearest valid index.
func Of(index uint64) float64 {
	if index >= NumLevels {
		index = NumLevels - 1
	}
	return levels[index]
}
