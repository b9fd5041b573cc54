/*
DESCRIPTION
  bitpack.go provides value-semantics manipulation of bit fields within a
  64-bit word: width tests, field extraction, and field replacement, for
  both unsigned and two's-complement signed fields.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bitpack manipulates bit fields within 64-bit words. It underlies
// the image40 codeword packer: every field of a bit block (a, b, c, d, Pb,
// Pr) is read and written through the functions here.
//
// Every Get/New function shares the precondition that width <= 64,
// lsb < 64, and width+lsb <= 64; violating it is a caller-contract error
// and panics, since it indicates a programming mistake rather than bad
// input data. Overflow of a value against its declared width, by
// contrast, can legitimately arise from data and is reported as an error.
package bitpack

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/ausocean/image40/image40err"
)

const maxBit = 64

// FitsU reports whether the non-negative value n is representable in w
// unsigned bits. A width of 0 only fits n == 0; a width of 64 always fits.
func FitsU(n uint64, w uint) bool {
	if w >= maxBit {
		return true
	}
	max := (uint64(1) << w) - 1
	return n <= max
}

// FitsS reports whether the signed value n is representable in w two's
// complement bits. A width of 0 never fits.
func FitsS(n int64, w uint) bool {
	if w == 0 {
		return false
	}
	if w >= maxBit {
		return true
	}
	max := int64(1)<<(w-1) - 1
	min := -(int64(1) << (w - 1))
	return n >= min && n <= max
}

// checkWidthLSB panics if width and lsb violate the precondition shared by
// every Get/New function: width <= 64, lsb < 64, width+lsb <= 64.
func checkWidthLSB(w, lsb uint) {
	if w > maxBit || lsb >= maxBit || w+lsb > maxBit {
		panic(fmt.Sprintf("bitpack: invalid field width=%d lsb=%d", w, lsb))
	}
}

// shiftLU performs a logical left shift of n by magnitude bits, treating a
// magnitude equal to the word width as yielding 0, matching the behaviour
// required of a software bit-shift rather than the native shift
// instruction (which leaves a full-width shift undefined on common
// architectures).
func shiftLU(n uint64, magnitude uint) uint64 {
	if magnitude >= maxBit {
		return 0
	}
	return n << magnitude
}

// shiftRU is the logical right-shift counterpart of shiftLU.
func shiftRU(n uint64, magnitude uint) uint64 {
	if magnitude >= maxBit {
		return 0
	}
	return n >> magnitude
}

// shiftRS performs an arithmetic (sign-propagating) right shift of n by
// magnitude bits, treating a full-width shift as yielding -1 for a
// negative n and 0 for a non-negative n.
func shiftRS(n int64, magnitude uint) int64 {
	if magnitude >= maxBit {
		if n < 0 {
			return -1
		}
		return 0
	}
	return n >> magnitude
}

// GetU extracts the w-bit field at bit offset lsb from word, interpreted
// as unsigned.
func GetU(word uint64, w, lsb uint) uint64 {
	checkWidthLSB(w, lsb)
	mask := shiftLU(shiftLU(1, w)-1, lsb)
	return shiftRU(mask&word, lsb)
}

// GetS extracts the w-bit field at bit offset lsb from word, sign-extended
// to 64 bits.
func GetS(word uint64, w, lsb uint) int64 {
	checkWidthLSB(w, lsb)
	if w == 0 {
		return 0
	}
	result := int64(GetU(word, w, lsb))

	// If the field's sign bit is set, fill every bit at and above it with
	// 1s. Arithmetically right-shifting MinInt64 (1000...0) by 64-w sets
	// every bit from w-1 up to 63, which is exactly the mask we need to OR
	// in; this mirrors the shift-based sign extension the original bitpack
	// implementation used rather than a subtraction. Since w >= 1 here, the
	// shift magnitude is at most 63.
	signBit := int64(1) << (w - 1)
	if result&signBit != 0 {
		result |= shiftRS(math.MinInt64, maxBit-w)
	}
	return result
}

// NewU returns word with its w-bit field at lsb replaced by the unsigned
// value. It returns image40err.FieldOverflow, wrapped with context, if
// value does not fit in w bits.
func NewU(word uint64, w, lsb uint, value uint64) (uint64, error) {
	checkWidthLSB(w, lsb)
	if !FitsU(value, w) {
		return 0, errors.Wrapf(image40err.FieldOverflow, "value %d does not fit in %d unsigned bits", value, w)
	}
	mask := shiftLU(^uint64(0), w+lsb) | (shiftLU(1, lsb) - 1)
	word &= mask
	return word | shiftLU(value, lsb), nil
}

// NewS returns word with its w-bit field at lsb replaced by the signed
// value, stored in two's-complement form over exactly w bits. It returns
// image40err.FieldOverflow, wrapped with context, if value does not fit in
// w signed bits.
func NewS(word uint64, w, lsb uint, value int64) (uint64, error) {
	checkWidthLSB(w, lsb)
	if !FitsS(value, w) {
		return 0, errors.Wrapf(image40err.FieldOverflow, "value %d does not fit in %d signed bits", value, w)
	}
	var trunc uint64
	if w < maxBit {
		trunc = uint64(value) & (shiftLU(1, w) - 1)
	} else {
		trunc = uint64(value)
	}
	return NewU(word, w, lsb, trunc)
}
