// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package multidomain

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/wavesim/domain"
)

// extractBlock copies the [start,end) block of a row-major full-grid
// array (trail components per grid point) into a new contiguous buffer.
func extractBlock(full []complex128, shape [3]int, trail int, start, end [3]int) []complex128 {
	nz := end[2] - start[2]
	out := make([]complex128, (end[0]-start[0])*(end[1]-start[1])*nz*trail)
	idx := 0
	for ix := start[0]; ix < end[0]; ix++ {
		for iy := start[1]; iy < end[1]; iy++ {
			base := ((ix*shape[1]+iy)*shape[2] + start[2]) * trail
			copy(out[idx:idx+nz*trail], full[base:base+nz*trail])
			idx += nz * trail
		}
	}
	return out
}

// insertBlock writes a contiguous subdomain buffer back into the
// [start,end) block of a row-major full-grid array.
func insertBlock(full []complex128, shape [3]int, trail int, start, end [3]int, block []complex128) {
	nz := end[2] - start[2]
	idx := 0
	for ix := start[0]; ix < end[0]; ix++ {
		for iy := start[1]; iy < end[1]; iy++ {
			base := ((ix*shape[1]+iy)*shape[2] + start[2]) * trail
			copy(full[base:base+nz*trail], block[idx:idx+nz*trail])
			idx += nz * trail
		}
	}
}

// Get gathers the slot's contents from every subdomain into one
// full-grid buffer, row-major with trail components per grid point.
func (m *MultiDomain) Get(slot int) []complex128 {
	full := make([]complex128, m.fullShape[0]*m.fullShape[1]*m.fullShape[2]*m.trail)
	m.forEach(func(i int, d domain.Operations) {
		x, y, z := m.unflatten(i)
		start, end := m.bounds([3]int{x, y, z})
		insertBlock(full, m.fullShape, m.trail, start, end, d.Get(slot))
	})
	return full
}

// Set scatters a full-grid buffer over the subdomains into the slot.
func (m *MultiDomain) Set(slot int, data []complex128) {
	want := m.fullShape[0] * m.fullShape[1] * m.fullShape[2] * m.trail
	if len(data) != want {
		chk.Panic("multidomain: Set: length mismatch, got %d want %d", len(data), want)
	}
	m.forEach(func(i int, d domain.Operations) {
		x, y, z := m.unflatten(i)
		start, end := m.bounds([3]int{x, y, z})
		d.Set(slot, extractBlock(data, m.fullShape, m.trail, start, end))
	})
}
