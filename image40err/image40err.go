/*
DESCRIPTION
  image40err.go defines the small, fatal-by-default error taxonomy shared by
  the image40 codec packages.

AUTHORS
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package image40err defines the error taxonomy used across the image40
// codec packages. Every value here is fatal to the in-progress invocation;
// there is no internal recovery policy, only translation and logging at
// the CLI boundary. Call sites wrap these sentinels with
// github.com/pkg/errors.Wrap (or, in package codeword, fmt.Errorf with %w)
// to attach file/stage context; errors.Is against the sentinels below
// recovers the taxonomy member. errors.Cause recovers it only when every
// wrapper in the chain comes from github.com/pkg/errors.
package image40err

import "errors"

// Sentinel errors corresponding to the taxonomy in the codec specification.
// FieldOverflow is returned (never panicked) because it can legitimately
// arise from input data and must be testable; the remaining caller-contract
// violations described alongside it (bad widths, bad lsb) are programmer
// errors and remain panics at their call sites.
var (
	// InvalidInput covers malformed PPM headers, malformed COMP40 headers,
	// truncated bodies, and non-RGB PPM subtypes.
	InvalidInput = errors.New("image40: invalid input")

	// NullArgument covers a required buffer reference being absent.
	NullArgument = errors.New("image40: null argument")

	// FieldOverflow covers a bit-field write asked to store a value outside
	// its declared width.
	FieldOverflow = errors.New("image40: field overflow")

	// IOError covers read/write failure on an underlying stream.
	IOError = errors.New("image40: io error")

	// ResourceExhausted covers allocation failure.
	ResourceExhausted = errors.New("image40: resource exhausted")
)
