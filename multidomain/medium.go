// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package multidomain

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/wavesim/domain"
)

// faceOffsets maps the face index (2*dim + high?1:0) to the tile-coordinate
// step towards the neighbour behind that face.
var faceOffsets = [6][3]int{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// vertexID renders a tile coordinate as the graph vertex identifier.
func vertexID(x, y, z int) string {
	return io.Sf("%d,%d,%d", x, y, z)
}

// buildGraph registers every subdomain as a vertex and every touching
// face pair as a directed edge weighted by the face index, so neighbour
// queries during edge exchange are plain graph lookups.
func (m *MultiDomain) buildGraph() {
	for x := 0; x < m.tile[0]; x++ {
		for y := 0; y < m.tile[1]; y++ {
			for z := 0; z < m.tile[2]; z++ {
				if err := m.graph.AddVertex(vertexID(x, y, z)); err != nil {
					chk.Panic("multidomain: cannot add tile vertex: %v", err)
				}
			}
		}
	}
	for x := 0; x < m.tile[0]; x++ {
		for y := 0; y < m.tile[1]; y++ {
			for z := 0; z < m.tile[2]; z++ {
				for face := 0; face < 6; face++ {
					off := faceOffsets[face]
					nx, ny, nz := x+off[0], y+off[1], z+off[2]
					if nx < 0 || nx >= m.tile[0] || ny < 0 || ny >= m.tile[1] || nz < 0 || nz >= m.tile[2] {
						continue
					}
					if _, err := m.graph.AddEdge(vertexID(x, y, z), vertexID(nx, ny, nz), int64(face)); err != nil {
						chk.Panic("multidomain: cannot add tile edge: %v", err)
					}
				}
			}
		}
	}
}

// neighbour returns the flat index of the subdomain behind the given face
// of tile coordinate (x,y,z), or ok=false at a tile boundary.
func (m *MultiDomain) neighbour(x, y, z, face int) (int, bool) {
	off := faceOffsets[face]
	nx, ny, nz := x+off[0], y+off[1], z+off[2]
	if !m.graph.HasEdge(vertexID(x, y, z), vertexID(nx, ny, nz)) {
		return 0, false
	}
	return m.flatten(nx, ny, nz), true
}

// Medium applies the composite medium operator B to the slot: every
// subdomain computes its edge corrections from the input, applies its
// local B, and then receives (a) its own corrections with opposite faces
// swapped pairwise, compensating the FFT wrap-around, and (b) each
// neighbour's facing-edge correction as the transfer correction. The
// steps are barriered in order: corrections, local medium, exchange,
// apply.
func (m *MultiDomain) Medium(in, out int) {
	edges := make([][6][]complex128, len(m.domains))
	m.forEach(func(i int, d domain.Operations) { edges[i] = d.ComputeCorrections(in) })
	m.forEach(func(i int, d domain.Operations) { d.Medium(in, out) })
	m.forEach(func(i int, d domain.Operations) {
		x, y, z := m.unflatten(i)
		own := edges[i]
		wrap := [6][]complex128{own[1], own[0], own[3], own[2], own[5], own[4]}
		var xfer [6][]complex128
		for face := 0; face < 6; face++ {
			nb, ok := m.neighbour(x, y, z, face)
			if !ok {
				continue
			}
			xfer[face] = edges[nb][face^1]
		}
		d.ApplyCorrections(wrap, xfer, out)
		if m.activityOpt {
			m.noteTransfer(i, d, xfer)
		}
	})
}

// noteTransfer feeds the activity heuristic: remember the last two
// incoming transfer-correction norms and deactivate a sourceless domain
// only once both are negligible. Edge exchange keeps running for
// inactive domains, so a domain reactivates as soon as a neighbour
// pushes energy back over the threshold.
func (m *MultiDomain) noteTransfer(i int, d domain.Operations, xfer [6][]complex128) {
	total := 0.0
	for _, slab := range xfer {
		if slab != nil {
			total += norm2(slab)
		}
	}
	m.xferNorms[i][0] = m.xferNorms[i][1]
	m.xferNorms[i][1] = total
	if m.xferSeen[i] < 2 {
		m.xferSeen[i]++
		return
	}
	if d.HasSource() {
		return
	}
	quiet := m.xferNorms[i][0] < activityThreshold && m.xferNorms[i][1] < activityThreshold
	d.SetActive(!quiet)
}

const activityThreshold = 1e-12

// norm2 accumulates the Euclidean norm of a correction slab.
func norm2(slab []complex128) float64 {
	sum := 0.0
	for _, v := range slab {
		a := cmplx.Abs(v)
		sum += a * a
	}
	return math.Sqrt(sum)
}
