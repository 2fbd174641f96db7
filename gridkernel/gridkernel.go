// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gridkernel implements pure-function helpers shared by every
// subdomain: Fourier-space coordinate axes, the exact real-space Laplace
// kernel and its cached Fourier transform, and periodic-aware real-space
// coordinates. None of these functions hold state; Domain caches their
// results at construction time.
package gridkernel

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FourierAxis returns the Fourier-space coordinate p for each of the n bins
// along one axis, in the same bin ordering a complex FFT produces
// (0, 1, ..., n/2, -(n/2-1)... -1), scaled by 2*pi/(n*pixelSize).
func FourierAxis(n int, pixelSize float64) []float64 {
	p := make([]float64, n)
	if n <= 1 {
		return p
	}
	step := 2.0 * math.Pi / (float64(n) * pixelSize)
	half := n / 2
	for i := 0; i < n; i++ {
		k := i
		if i > half {
			k = i - n
		}
		p[i] = float64(k) * step
	}
	return p
}

// PeriodicAxis returns the real-space periodic coordinate grid along one
// axis: index 0 maps to 0, and the grid wraps symmetrically around the
// middle of the axis, with spacing pixelSize.
func PeriodicAxis(n int, pixelSize float64) []float64 {
	x := make([]float64, n)
	if n <= 1 {
		return x
	}
	half := n / 2
	for i := 0; i < n; i++ {
		k := i
		if i > half {
			k = i - n
		}
		x[i] = float64(k) * pixelSize
	}
	return x
}

// LaplaceKernel1D samples the exact real-space Laplace kernel on a periodic
// grid of length n and returns its Fourier transform, i.e. the per-axis
// contribution to the 3-D inverse propagator kernel (L = sum over axes).
//
// The physical periodic coordinates are rescaled by pi/pixelSize, so the
// sample spacing is exactly pi, the Nyquist-critical sampling of the
// band-limited kernel
//
//	k(x) = 2*cos(x)/x^2 - 2*sin(x)/x^3 + sin(x)/x,  k(0) = 1/3
//
// scaled overall by -pi^2/pixelSize^2. The returned values are the negated
// real part of the transform, so that the kernel matches +p^2 for a
// Fourier coordinate p from FourierAxis (up to the wrap-around artifact
// that the wrap-correction matrices capture). An axis of length 1
// contributes zero, since there is no periodic structure to sample along
// it.
func LaplaceKernel1D(n int, pixelSize float64) []complex128 {
	out := make([]complex128, n)
	if n <= 1 {
		return out
	}

	grid := PeriodicAxis(n, pixelSize)
	samples := make([]float64, n)
	for i, xv := range grid {
		samples[i] = kernelValue(xv * math.Pi / pixelSize)
	}
	scale := -math.Pi * math.Pi / (pixelSize * pixelSize)
	in := make([]complex128, n)
	for i := range in {
		in[i] = complex(samples[i]*scale, 0)
	}

	fft := fourier.NewCmplxFFT(n)
	f := fft.Coefficients(nil, in)
	for i := range f {
		out[i] = complex(-real(f[i]), 0)
	}
	return out
}

// kernelValue evaluates k(x) with the removable singularity handled at x=0.
// Near the origin the closed form cancels catastrophically, so small |x|
// uses its Taylor series 1/3 - x^2/10 + x^4/168 - x^6/6480 instead.
func kernelValue(x float64) float64 {
	if math.Abs(x) < 1e-2 {
		x2 := x * x
		return 1.0/3.0 - x2/10.0 + x2*x2/168.0 - x2*x2*x2/6480.0
	}
	c := math.Cos(x)
	s := math.Sin(x)
	return 2.0*c/(x*x) - 2.0*s/(x*x*x) + s/x
}

// SumAxisKernels adds the per-axis 1-D Laplace-kernel contributions into a
// 3-D Fourier-space array (shape[0]*shape[1]*shape[2], row-major, z fastest)
// and returns the inverse propagator kernel (not yet shifted or scaled).
func SumAxisKernels(shape [3]int, axisKernels [3][]complex128) []complex128 {
	nx, ny, nz := shape[0], shape[1], shape[2]
	out := make([]complex128, nx*ny*nz)
	idx := 0
	for ix := 0; ix < nx; ix++ {
		var kx complex128
		if len(axisKernels[0]) > 0 {
			kx = axisKernels[0][ix]
		}
		for iy := 0; iy < ny; iy++ {
			var ky complex128
			if len(axisKernels[1]) > 0 {
				ky = axisKernels[1][iy]
			}
			for iz := 0; iz < nz; iz++ {
				var kz complex128
				if len(axisKernels[2]) > 0 {
					kz = axisKernels[2][iz]
				}
				out[idx] = kx + ky + kz
				idx++
			}
		}
	}
	return out
}
