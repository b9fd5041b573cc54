/*
DESCRIPTION
  bitpack_test.go contains tests for the bitpack package.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package bitpack

import (
	"errors"
	"math"
	"testing"

	"github.com/ausocean/image40/image40err"
)

func TestFitsU(t *testing.T) {
	tests := []struct {
		n    uint64
		w    uint
		want bool
	}{
		{0, 0, true},
		{1, 0, false},
		{63, 6, true},
		{64, 6, false},
		{math.MaxUint64, 64, true},
		{0, 64, true},
	}
	for _, test := range tests {
		if got := FitsU(test.n, test.w); got != test.want {
			t.Errorf("FitsU(%d, %d) = %v, want %v", test.n, test.w, got, test.want)
		}
	}
}

func TestFitsS(t *testing.T) {
	tests := []struct {
		n    int64
		w    uint
		want bool
	}{
		{0, 0, false},
		{0, 1, true},
		{-1, 1, true},
		{1, 1, false},
		{31, 6, true},
		{32, 6, false},
		{-32, 6, true},
		{-33, 6, false},
		{math.MaxInt64, 64, true},
		{math.MinInt64, 64, true},
	}
	for _, test := range tests {
		if got := FitsS(test.n, test.w); got != test.want {
			t.Errorf("FitsS(%d, %d) = %v, want %v", test.n, test.w, got, test.want)
		}
	}
}

// TestUnsignedRoundTrip checks that every representable unsigned value
// round-trips through NewU/GetU at a variety of widths and offsets.
func TestUnsignedRoundTrip(t *testing.T) {
	widths := []uint{1, 4, 6, 8, 16, 32, 64}
	for _, w := range widths {
		lsbs := []uint{0, 1, 8, 32}
		for _, lsb := range lsbs {
			if w+lsb > 64 {
				continue
			}
			var max uint64
			if w == 64 {
				max = math.MaxUint64
			} else {
				max = (uint64(1) << w) - 1
			}
			samples := []uint64{0, max}
			if max > 2 {
				samples = append(samples, max/2, max-1, 1)
			}
			for _, n := range samples {
				word, err := NewU(0, w, lsb, n)
				if err != nil {
					t.Fatalf("NewU(0, %d, %d, %d) returned error: %v", w, lsb, n, err)
				}
				if got := GetU(word, w, lsb); got != n {
					t.Errorf("GetU(NewU(0,%d,%d,%d)) = %d, want %d", w, lsb, n, got, n)
				}
			}
		}
	}
}

// TestSignedRoundTrip checks that every representable signed value
// round-trips through NewS/GetS at a variety of widths and offsets.
func TestSignedRoundTrip(t *testing.T) {
	widths := []uint{1, 4, 6, 8, 16, 32, 64}
	for _, w := range widths {
		lsbs := []uint{0, 1, 8, 32}
		for _, lsb := range lsbs {
			if w+lsb > 64 {
				continue
			}
			var max, min int64
			if w == 64 {
				max, min = math.MaxInt64, math.MinInt64
			} else {
				max = int64(1)<<(w-1) - 1
				min = -(int64(1) << (w - 1))
			}
			for _, n := range []int64{min, max, 0} {
				word, err := NewS(0, w, lsb, n)
				if err != nil {
					t.Fatalf("NewS(0, %d, %d, %d) returned error: %v", w, lsb, n, err)
				}
				if got := GetS(word, w, lsb); got != n {
					t.Errorf("GetS(NewS(0,%d,%d,%d)) = %d, want %d", w, lsb, n, got, n)
				}
			}
		}
	}
}

func TestNewUDoesNotDisturbOtherBits(t *testing.T) {
	word := uint64(0xFFFFFFFFFFFFFFFF)
	word, err := NewU(word, 6, 8, 0)
	if err != nil {
		t.Fatalf("NewU returned error: %v", err)
	}
	want := uint64(0xFFFFFFFFFFFFC0FF)
	if word != want {
		t.Errorf("NewU cleared bits outside the target field: got %#x, want %#x", word, want)
	}
}

func TestFieldOverflow(t *testing.T) {
	if _, err := NewU(0, 6, 0, 64); !errors.Is(err, image40err.FieldOverflow) {
		t.Errorf("NewU(0, 6, 0, 64) error = %v, want wrapping image40err.FieldOverflow", err)
	}
	if _, err := NewS(0, 6, 0, 32); !errors.Is(err, image40err.FieldOverflow) {
		t.Errorf("NewS(0, 6, 0, 32) error = %v, want wrapping image40err.FieldOverflow", err)
	}
	if _, err := NewS(0, 6, 0, -33); !errors.Is(err, image40err.FieldOverflow) {
		t.Errorf("NewS(0, 6, 0, -33) error = %v, want wrapping image40err.FieldOverflow", err)
	}
}

func TestPreconditionPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"width too large", func() { GetU(0, 65, 0) }},
		{"lsb too large", func() { GetU(0, 1, 64) }},
		{"width plus lsb overflow", func() { GetU(0, 32, 40) }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("%s: expected panic, got none", test.name)
				}
			}()
			test.fn()
		})
	}
}
