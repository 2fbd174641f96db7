// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source represents the simulation source term, either as a dense
// array or as a sparse coordinate (COO) list, and implements the
// partitioning of a source over a 3-D (or 4-D, for Maxwell) tile of
// subdomains.
package source

import "github.com/cpmech/gosl/la"

// Source holds one subdomain's (or the full grid's) portion of the source
// term. Exactly one of Dense or (Coords,Values) is populated.
type Source struct {
	Shape []int // field shape, e.g. [nx,ny,nz] or [nx,ny,nz,3] for Maxwell

	Dense []complex128 // row-major dense values, len == prod(Shape), or nil

	Coords [][]int      // one []int per nonzero entry (sparse only); nil if dense
	Values []complex128 // nonzero values, same order as Coords

	// mask is a real-valued sparse companion of Coords/Values, built lazily
	// by Mask, used only to answer occupancy questions without touching the
	// complex payload; partitioning does not use it. la.Triplet is
	// gosl's real sparse-matrix assembly type; here rows carry the
	// flattened linear index and cols are unused (always 0).
	mask *la.Triplet
}

// IsZero reports whether this source carries no energy at all, so Domain
// can skip AddSource entirely.
func (s *Source) IsZero() bool {
	if s == nil {
		return true
	}
	if s.Dense != nil {
		for _, v := range s.Dense {
			if v != 0 {
				return false
			}
		}
		return true
	}
	return len(s.Values) == 0
}

// NewDense builds a dense source of the given shape, initialized to zero.
func NewDense(shape []int) *Source {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return &Source{Shape: append([]int(nil), shape...), Dense: make([]complex128, n)}
}

// NewSparse builds a sparse (coordinate-list) source of the given shape.
func NewSparse(shape []int, coords [][]int, values []complex128) *Source {
	return &Source{Shape: append([]int(nil), shape...), Coords: coords, Values: values}
}
