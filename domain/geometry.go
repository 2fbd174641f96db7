// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

// geometry describes how a flat []complex128 slot buffer is laid out:
// row-major over (x,y,z), with `trail` polarization components packed
// contiguously per grid point (trail==1 for Helmholtz, 3 for Maxwell).
type geometry struct {
	shape   [3]int
	trail   int
	strides [3]int // step to advance by one index along each axis
}

func newGeometry(shape [3]int, trail int) geometry {
	g := geometry{shape: shape, trail: trail}
	g.strides[2] = trail
	g.strides[1] = shape[2] * trail
	g.strides[0] = shape[1] * shape[2] * trail
	return g
}

func (g geometry) size() int {
	return g.shape[0] * g.shape[1] * g.shape[2] * g.trail
}

// crossAxes returns the two axes orthogonal to dim.
func (g geometry) crossAxes(dim int) (a0, a1 int) {
	switch dim {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

// crossSize returns the number of (cross-axis) positions orthogonal to dim.
func (g geometry) crossSize(dim int) int {
	a0, a1 := g.crossAxes(dim)
	return g.shape[a0] * g.shape[a1]
}

// gatherAxis extracts a count-deep slab starting at index `start` along
// axis `dim`, returning a row-major (count x crossSize*trail) matrix: row k
// holds the values at along-axis index start+k, for every cross-section
// position and every trailing component.
func (g geometry) gatherAxis(data []complex128, dim, start, count int) []complex128 {
	a0, a1 := g.crossAxes(dim)
	cols := g.shape[a0] * g.shape[a1] * g.trail
	out := make([]complex128, count*cols)
	col := 0
	for i0 := 0; i0 < g.shape[a0]; i0++ {
		for i1 := 0; i1 < g.shape[a1]; i1++ {
			base := i0*g.strides[a0] + i1*g.strides[a1]
			for k := 0; k < count; k++ {
				off := base + (start+k)*g.strides[dim]
				copy(out[k*cols+col:k*cols+col+g.trail], data[off:off+g.trail])
			}
			col += g.trail
		}
	}
	return out
}

// transformAxis runs fn over every 1-D line of length shape[dim] along axis
// dim, for every cross-section position and every trailing component,
// writing the result back in place. Used to build the separable 3-D FFT
// from three independent 1-D passes.
func (g geometry) transformAxis(data []complex128, dim int, fn func([]complex128) []complex128) {
	n := g.shape[dim]
	if n <= 1 {
		return
	}
	a0, a1 := g.crossAxes(dim)
	buf := make([]complex128, n)
	for i0 := 0; i0 < g.shape[a0]; i0++ {
		for i1 := 0; i1 < g.shape[a1]; i1++ {
			base := i0*g.strides[a0] + i1*g.strides[a1]
			for c := 0; c < g.trail; c++ {
				for k := 0; k < n; k++ {
					buf[k] = data[base+k*g.strides[dim]+c]
				}
				out := fn(buf)
				for k := 0; k < n; k++ {
					data[base+k*g.strides[dim]+c] = out[k]
				}
			}
		}
	}
}

// scatterAxis writes a (count x crossSize*trail) matrix produced by
// gatherAxis back into data at axis dim starting at `start`, combining
// with the existing contents via combine(existing, incoming).
func (g geometry) scatterAxis(data []complex128, dim, start, count int, values []complex128, combine func(a, b complex128) complex128) {
	a0, a1 := g.crossAxes(dim)
	cols := g.shape[a0] * g.shape[a1] * g.trail
	col := 0
	for i0 := 0; i0 < g.shape[a0]; i0++ {
		for i1 := 0; i1 < g.shape[a1]; i1++ {
			base := i0*g.strides[a0] + i1*g.strides[a1]
			for k := 0; k < count; k++ {
				off := base + (start+k)*g.strides[dim]
				for c := 0; c < g.trail; c++ {
					data[off+c] = combine(data[off+c], values[k*cols+col+c])
				}
			}
			col += g.trail
		}
	}
}
