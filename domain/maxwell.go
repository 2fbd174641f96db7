// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import "github.com/cpmech/wavesim/gridkernel"

// MaxwellDomain implements Operations for the vector Maxwell equation:
// three polarization components per grid point, and a propagator that
// applies the dyadic Green's operator instead of a plain scalar kernel.
type MaxwellDomain struct {
	*baseDomain

	// pAxes holds the per-axis Fourier coordinates used by the dyadic
	// (grad-div) term of the propagator.
	pAxes [3][]float64
}

// NewMaxwellDomain builds a vector subdomain from its permittivity (n^2)
// map, row-major over (x,y,z), one scalar per grid point. Slots carry a
// trailing polarization axis of size 3; the scattering potential, kernel
// and wrap matrices are scalar, shared by all three components.
func NewMaxwellDomain(permittivity []complex128, shape [3]int, pixelSize float64, wavelength *float64, periodic [3]bool, nBoundary, nSlots int, device string, debug bool) *MaxwellDomain {
	d := newBaseDomain(shape, 3, pixelSize, periodic, nBoundary, nSlots, device, debug)
	for i, v := range permittivity {
		d.slots[0][i*3] = v
	}

	var axisKernels [3][]complex128
	var pAxes [3][]float64
	for dim := 0; dim < 3; dim++ {
		axisKernels[dim] = gridkernel.LaplaceKernel1D(shape[dim], pixelSize)
		pAxes[dim] = gridkernel.FourierAxis(shape[dim], pixelSize)
	}
	d.kernel = gridkernel.SumAxisKernels(shape, axisKernels)

	k0sq := k0Squared(pixelSize, wavelength)
	for i, v := range permittivity {
		d.vRaw[i] = complex(-k0sq, 0) * v
	}

	d.periodic = effectivePeriodic(periodic, nBoundary)
	d.vwrap, d.vwrapNorm = buildVwrap(shape, d.periodic, nBoundary, d.kernel, d.ffts)

	return &MaxwellDomain{baseDomain: d, pAxes: pAxes}
}

// Propagator applies the vector resolvent: FFT each polarization
// component, add the grad-div coupling
//
//	d = scale*(p.F)/(scale*shift+1)
//	G[c] = K * (F[c] + p[c]*d)
//
// and inverse-FFT each component back.
func (d *MaxwellDomain) Propagator(in, out int) {
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

	cfac := d.scale / (d.scale*d.shift + 1)
	shape := d.geom.shape
	idx := 0
	k := 0
	for ix := 0; ix < shape[0]; ix++ {
		p0 := complex(d.pAxes[0][ix], 0)
		for iy := 0; iy < shape[1]; iy++ {
			p1 := complex(d.pAxes[1][iy], 0)
			for iz := 0; iz < shape[2]; iz++ {
				p2 := complex(d.pAxes[2][iz], 0)
				f0, f1, f2 := buf[idx], buf[idx+1], buf[idx+2]
				div := cfac * (p0*f0 + p1*f1 + p2*f2)
				kv := d.kernel[k]
				buf[idx] = kv * (f0 + p0*div)
				buf[idx+1] = kv * (f1 + p1*div)
				buf[idx+2] = kv * (f2 + p2*div)
				idx += 3
				k++
			}
		}
	}

	d.inverseTransform(buf)
}
