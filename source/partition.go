// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import "github.com/cpmech/gosl/la"

// SubdomainSize returns ceil(n/nDomains) per axis; the last subdomain
// along an axis may end up smaller than this when the split is uneven.
func SubdomainSize(shape [3]int, nDomains [3]int) [3]int {
	var out [3]int
	for d := 0; d < 3; d++ {
		out[d] = (shape[d] + nDomains[d] - 1) / nDomains[d]
	}
	return out
}

// bounds returns [start,end) along axis for tile index ti, clipped to shape.
func bounds(shape [3]int, domainSize [3]int, ti [3]int) (start, end [3]int) {
	for d := 0; d < 3; d++ {
		start[d] = ti[d] * domainSize[d]
		end[d] = start[d] + domainSize[d]
		if end[d] > shape[d] {
			end[d] = shape[d]
		}
	}
	return
}

// Partition splits src (whose Shape's first 3 entries describe the grid,
// with an optional trailing polarization axis left untouched) into an
// nDomains[0] x nDomains[1] x nDomains[2] tile of per-subdomain Sources.
// Zero-valued subdomains are returned as nil.
func Partition(src *Source, nDomains [3]int) [][][]*Source {
	shape := [3]int{src.Shape[0], src.Shape[1], src.Shape[2]}
	trail := 1
	for _, d := range src.Shape[3:] {
		trail *= d
	}
	domainSize := SubdomainSize(shape, nDomains)

	out := make([][][]*Source, nDomains[0])
	for x := 0; x < nDomains[0]; x++ {
		out[x] = make([][]*Source, nDomains[1])
		for y := 0; y < nDomains[1]; y++ {
			out[x][y] = make([]*Source, nDomains[2])
		}
	}

	for x := 0; x < nDomains[0]; x++ {
		for y := 0; y < nDomains[1]; y++ {
			for z := 0; z < nDomains[2]; z++ {
				start, end := bounds(shape, domainSize, [3]int{x, y, z})
				var part *Source
				if src.Dense != nil {
					part = partitionDense(src, shape, trail, start, end)
				} else {
					part = partitionSparse(src, start, end)
				}
				if part.IsZero() {
					part = nil
				}
				out[x][y][z] = part
			}
		}
	}
	return out
}

func partitionDense(src *Source, shape [3]int, trail int, start, end [3]int) *Source {
	subShape := append([]int{end[0] - start[0], end[1] - start[1], end[2] - start[2]}, src.Shape[3:]...)
	n := 1
	for _, d := range subShape {
		n *= d
	}
	data := make([]complex128, n)
	idx := 0
	for ix := start[0]; ix < end[0]; ix++ {
		for iy := start[1]; iy < end[1]; iy++ {
			base := ((ix*shape[1])+iy)*shape[2] + start[2]
			base *= trail
			copy(data[idx:idx+(end[2]-start[2])*trail], src.Dense[base:base+(end[2]-start[2])*trail])
			idx += (end[2] - start[2]) * trail
		}
	}
	return &Source{Shape: subShape, Dense: data}
}

func partitionSparse(src *Source, start, end [3]int) *Source {
	subShape := append([]int{end[0] - start[0], end[1] - start[1], end[2] - start[2]}, src.Shape[3:]...)
	var coords [][]int
	var values []complex128
	for i, c := range src.Coords {
		if c[0] < start[0] || c[0] >= end[0] || c[1] < start[1] || c[1] >= end[1] || c[2] < start[2] || c[2] >= end[2] {
			continue
		}
		rebased := append([]int(nil), c...)
		rebased[0] -= start[0]
		rebased[1] -= start[1]
		rebased[2] -= start[2]
		coords = append(coords, rebased)
		values = append(values, src.Values[i])
	}
	return &Source{Shape: subShape, Coords: coords, Values: values}
}

// Mask lazily builds (and caches) a real-valued occupancy triplet for this
// source: one entry per nonzero coordinate, row = flattened linear index,
// col = 0, value = 1. Used by callers that need a quick real-sparse
// occupancy structure (e.g. for diagnostics) without touching Values.
func (s *Source) Mask() *la.Triplet {
	if s.mask != nil {
		return s.mask
	}
	t := new(la.Triplet)
	n := len(s.Coords)
	t.Init(len(s.Coords), 1, n)
	stride := make([]int, len(s.Shape))
	acc := 1
	for d := len(s.Shape) - 1; d >= 0; d-- {
		stride[d] = acc
		acc *= s.Shape[d]
	}
	for _, c := range s.Coords {
		lin := 0
		for d, v := range c {
			lin += v * stride[d]
		}
		t.Put(lin, 0, 1.0)
	}
	s.mask = t
	return s.mask
}
