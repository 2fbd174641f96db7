// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import "github.com/cpmech/wavesim/gridkernel"

// HelmholtzDomain implements Operations for the scalar Helmholtz equation:
// one field component per grid point, a plain scalar propagator kernel.
type HelmholtzDomain struct {
	*baseDomain
}

// NewHelmholtzDomain builds a scalar subdomain from its index-squared
// (n^2) map, row-major over (x,y,z). The map is copied into slot 0 as the
// initial field data; the raw scattering potential, inverse-propagator
// kernel and wrap-correction matrices are computed from it immediately
// at construction. Calibration (shift/scale) still needs to run before
// the domain can be driven by the iteration.
func NewHelmholtzDomain(indexSquared []complex128, shape [3]int, pixelSize float64, wavelength *float64, periodic [3]bool, nBoundary, nSlots int, device string, debug bool) *HelmholtzDomain {
	d := newBaseDomain(shape, 1, pixelSize, periodic, nBoundary, nSlots, device, debug)
	copy(d.slots[0], indexSquared)

	var axisKernels [3][]complex128
	for dim := 0; dim < 3; dim++ {
		axisKernels[dim] = gridkernel.LaplaceKernel1D(shape[dim], pixelSize)
	}
	d.kernel = gridkernel.SumAxisKernels(shape, axisKernels)

	k0sq := k0Squared(pixelSize, wavelength)
	for i, v := range indexSquared {
		d.vRaw[i] = complex(-k0sq, 0) * v
	}

	d.periodic = effectivePeriodic(periodic, nBoundary)
	d.vwrap, d.vwrapNorm = buildVwrap(shape, d.periodic, nBoundary, d.kernel, d.ffts)

	return &HelmholtzDomain{d}
}

// Propagator applies (L+1)^-1 elementwise: FFT, multiply by the calibrated
// kernel, inverse FFT.
func (d *HelmholtzDomain) Propagator(in, out int) {
	d.checkSlot(in)
	d.checkSlot(out)
	if !d.active {
		return
	}
	if in != out {
		copy(d.slots[out], d.slots[in])
	}
	buf := d.slots[out]
	d.forwardTransform(buf)
	multiplyKernel(1, buf, func(i int) complex128 { return d.kernel[i] })
	d.inverseTransform(buf)
}
