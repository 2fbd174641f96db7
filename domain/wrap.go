// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

// buildVwrap constructs the per-axis wrap-around correction matrices and
// their operator norms, ahead of calibration: a unit impulse is placed at
// the far corner of a scalar (trail=1) scratch buffer and convolved with
// the not-yet-shifted, not-yet-scaled inverse propagator kernel (the raw
// sum of per-axis Laplace kernels); the resulting far-edge line through the
// corner, along each non-periodic axis, is packed into an n_boundary x
// n_boundary matrix. Periodic axes (and n_boundary==0) get a nil entry.
func buildVwrap(shape [3]int, periodic [3]bool, nBoundary int, rawKernel []complex128, ffts [3]*fourier.CmplxFFT) ([3]*mat.CDense, [3]float64) {
	var vwrap [3]*mat.CDense
	var norm [3]float64
	if nBoundary == 0 {
		return vwrap, norm
	}

	scalar := newGeometry(shape, 1)
	impulse := make([]complex128, scalar.size())
	corner := (shape[0]-1)*scalar.strides[0] + (shape[1]-1)*scalar.strides[1] + (shape[2]-1)*scalar.strides[2]
	impulse[corner] = 1

	forwardTransform(scalar, ffts, impulse)
	multiplyKernel(1, impulse, func(i int) complex128 { return rawKernel[i] })
	inverseTransform(scalar, ffts, impulse)

	for dim := 0; dim < 3; dim++ {
		if periodic[dim] {
			continue
		}
		line := cornerLine(scalar, impulse, dim)
		m := makeWrapMatrix(line, nBoundary)
		vwrap[dim] = m
		norm[dim] = operatorNorm2(m)
	}
	return vwrap, norm
}

// cornerLine reads the shape[dim]-long line through the far corner of data
// (the last index on every other axis), running along axis dim.
func cornerLine(g geometry, data []complex128, dim int) []complex128 {
	a0, a1 := g.crossAxes(dim)
	base := (g.shape[a0]-1)*g.strides[a0] + (g.shape[a1]-1)*g.strides[a1]
	line := make([]complex128, g.shape[dim])
	for k := range line {
		line[k] = data[base+k*g.strides[dim]]
	}
	return line
}

// makeWrapMatrix packs the real part of a convolution line into the
// non-cyclic wrap-correction matrix: row r holds nBoundary consecutive
// line entries starting at index nBoundary-1-r, i.e.
// wrap[r][c] = real(line[nBoundary-1-r+c]).
func makeWrapMatrix(line []complex128, nBoundary int) *mat.CDense {
	m := mat.NewCDense(nBoundary, nBoundary, nil)
	for r := 0; r < nBoundary; r++ {
		for c := 0; c < nBoundary; c++ {
			m.Set(r, c, complex(real(line[nBoundary-1-r+c]), 0))
		}
	}
	return m
}

// operatorNorm2 estimates the spectral (2-)norm of a square matrix by power
// iteration on m^H*m, returning sqrt of the dominant eigenvalue.
func operatorNorm2(m *mat.CDense) float64 {
	_, n := m.Dims()
	var a mat.CDense
	a.Mul(m.H(), m)

	x := make([]complex128, n)
	for i := range x {
		x[i] = complex(1, 0)
	}

	var lambda, prev float64
	for iter := 0; iter < 50; iter++ {
		y := make([]complex128, n)
		for i := 0; i < n; i++ {
			var sum complex128
			for j := 0; j < n; j++ {
				sum += a.At(i, j) * x[j]
			}
			y[i] = sum
		}
		norm := 0.0
		for _, v := range y {
			norm += real(v)*real(v) + imag(v)*imag(v)
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			return 0
		}
		for i := range y {
			y[i] /= complex(norm, 0)
		}
		x = y
		lambda = norm
		if iter > 0 && math.Abs(lambda-prev) < 1e-10*math.Max(1, lambda) {
			break
		}
		prev = lambda
	}
	return math.Sqrt(lambda)
}
