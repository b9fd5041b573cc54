/*
DESCRIPTION
  codeword.go packs a quantized 2x2 block (a bit block: a, b, c, d, Pb, Pr)
  into a single 32-bit codeword at fixed bit offsets, and unpacks it again.
  It also provides the byte-level accessors that define the on-wire byte
  order for a codeword.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package codeword packs and unpacks the 32-bit representation of a 2x2
// image block. The field widths below are the codec's external contract:
// any implementation sharing them must produce bit-identical codewords.
package codeword

import (
	"fmt"

	"github.com/ausocean/image40/internal/bitpack"
)

// Field widths, in bits. These sum to 32 and are part of the wire format.
const (
	AWidth  = 6
	BWidth  = 6
	CWidth  = 6
	DWidth  = 6
	PbWidth = 4
	PrWidth = 4

	bitsPerByte = 8
	bytesInWord = 4
)

// Block holds the six quantized fields describing one 2x2 image block. A
// and the chroma indices are unsigned; B, C, and D are signed DCT
// coefficients.
type Block struct {
	A       uint64
	B, C, D int64
	Pb, Pr  uint64
}

// Pack places the fields of b into a 32-bit codeword at fixed bit offsets:
// a(6) | b(6) | c(6) | d(6) | Pb(4) | Pr(4), most-significant field first.
// Fields are written least-significant-offset first (Pr, Pb, d, c, b, a);
// any field that doesn't fit in its declared width yields
// image40err.FieldOverflow (via bitpack), wrapped with which field failed.
func Pack(b Block) (uint32, error) {
	var word uint64
	var lsb uint
	var err error

	word, err = bitpack.NewU(word, PrWidth, lsb, b.Pr)
	if err != nil {
		return 0, fieldErr("Pr", err)
	}
	lsb += PrWidth

	word, err = bitpack.NewU(word, PbWidth, lsb, b.Pb)
	if err != nil {
		return 0, fieldErr("Pb", err)
	}
	lsb += PbWidth

	word, err = bitpack.NewS(word, DWidth, lsb, b.D)
	if err != nil {
		return 0, fieldErr("d", err)
	}
	lsb += DWidth

	word, err = bitpack.NewS(word, CWidth, lsb, b.C)
	if err != nil {
		return 0, fieldErr("c", err)
	}
	lsb += CWidth

	word, err = bitpack.NewS(word, BWidth, lsb, b.B)
	if err != nil {
		return 0, fieldErr("b", err)
	}
	lsb += BWidth

	word, err = bitpack.NewU(word, AWidth, lsb, b.A)
	if err != nil {
		return 0, fieldErr("a", err)
	}
	lsb += AWidth

	if lsb != bitsPerByte*bytesInWord {
		panic("codeword: field widths do not sum to 32 bits")
	}

	return uint32(word), nil
}

// Unpack reads the fields of a 32-bit codeword in the same order Pack
// wrote them, returning a populated Block.
func Unpack(codeword uint32) Block {
	word := uint64(codeword)
	var lsb uint
	var b Block

	b.Pr = bitpack.GetU(word, PrWidth, lsb)
	lsb += PrWidth

	b.Pb = bitpack.GetU(word, PbWidth, lsb)
	lsb += PbWidth

	b.D = bitpack.GetS(word, DWidth, lsb)
	lsb += DWidth

	b.C = bitpack.GetS(word, CWidth, lsb)
	lsb += CWidth

	b.B = bitpack.GetS(word, BWidth, lsb)
	lsb += BWidth

	b.A = bitpack.GetU(word, AWidth, lsb)
	lsb += AWidth

	if lsb != bitsPerByte*bytesInWord {
		panic("codeword: field widths do not sum to 32 bits")
	}

	return b
}

// ExtractByte returns byte index of codeword; index 0 is the least
// significant byte.
func ExtractByte(codeword uint32, index int) byte {
	return byte(bitpack.GetU(uint64(codeword), bitsPerByte, uint(index*bitsPerByte)))
}

// StoreByte returns codeword with byte index replaced by b.
func StoreByte(b byte, codeword uint32, index int) uint32 {
	word, err := bitpack.NewU(uint64(codeword), bitsPerByte, uint(index*bitsPerByte), uint64(b))
	if err != nil {
		// A single byte always fits in an 8-bit field; this cannot happen.
		panic(err)
	}
	return uint32(word)
}

// WriteBytes returns the 4-byte big-endian encoding of codeword: byte
// index 3 (most significant) first, down to byte index 0.
func WriteBytes(codeword uint32) [bytesInWord]byte {
	var out [bytesInWord]byte
	for i := 0; i < bytesInWord; i++ {
		out[i] = ExtractByte(codeword, bytesInWord-1-i)
	}
	return out
}

// ReadBytes reassembles a codeword from 4 bytes in the big-endian order
// WriteBytes produced (index 3 first).
func ReadBytes(buf [bytesInWord]byte) uint32 {
	var codeword uint32
	for i := 0; i < bytesInWord; i++ {
		codeword = StoreByte(buf[i], codeword, bytesInWord-1-i)
	}
	return codeword
}

func fieldErr(name string, err error) error {
	return fmt.Errorf("field %q: %w", name, err)
}
