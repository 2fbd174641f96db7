// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import "gonum.org/v1/gonum/dsp/fourier"

// newAxisFFTs builds one cached 1-D complex FFT plan per spatial axis,
// leaving a nil entry for any axis of length <= 1 (nothing to transform).
func newAxisFFTs(shape [3]int) [3]*fourier.CmplxFFT {
	var ffts [3]*fourier.CmplxFFT
	for dim, n := range shape {
		if n > 1 {
			ffts[dim] = fourier.NewCmplxFFT(n)
		}
	}
	return ffts
}

// forwardTransform applies a separable 3-D complex FFT to data in place,
// one 1-D pass per spatial axis, independently for every trailing
// (polarization) component that geom carries.
func forwardTransform(geom geometry, ffts [3]*fourier.CmplxFFT, data []complex128) {
	for dim := 0; dim < 3; dim++ {
		fft := ffts[dim]
		if fft == nil {
			continue
		}
		geom.transformAxis(data, dim, func(seq []complex128) []complex128 {
			return fft.Coefficients(seq, seq)
		})
	}
}

// inverseTransform applies the separable 3-D inverse FFT and normalizes by
// the product of the transformed axis lengths, since gonum/fourier's IFFT
// is unnormalized (FFT followed by IFFT scales the input by the sequence
// length).
func inverseTransform(geom geometry, ffts [3]*fourier.CmplxFFT, data []complex128) {
	n := 1
	for dim := 0; dim < 3; dim++ {
		fft := ffts[dim]
		if fft == nil {
			continue
		}
		n *= geom.shape[dim]
		geom.transformAxis(data, dim, func(seq []complex128) []complex128 {
			return fft.Sequence(seq, seq)
		})
	}
	if n == 1 {
		return
	}
	norm := complex(1/float64(n), 0)
	for i := range data {
		data[i] *= norm
	}
}

// multiplyKernel scales every trailing-component group of data by the
// scalar kernel value at that grid point: kernelAt indexes the (trail-less)
// Fourier-space grid, so the same value multiplies all `trail` components.
func multiplyKernel(trail int, data []complex128, kernelAt func(int) complex128) {
	k := 0
	for i := 0; i < len(data); i += trail {
		kv := kernelAt(k)
		for c := 0; c < trail; c++ {
			data[i+c] *= kv
		}
		k++
	}
}
