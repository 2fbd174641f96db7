// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import "math/cmplx"

// VBounds returns the bounding box, in the complex plane, of the raw
// (not-yet-shifted) scattering potential, used by calib to find the common
// shift center (calibration phase 1).
func (d *baseDomain) VBounds() (rMin, rMax, iMin, iMax float64) {
	rMin, iMin = real(d.vRaw[0]), imag(d.vRaw[0])
	rMax, iMax = rMin, iMin
	for _, v := range d.vRaw[1:] {
		r, i := real(v), imag(v)
		if r < rMin {
			rMin = r
		}
		if r > rMax {
			rMax = r
		}
		if i < iMin {
			iMin = i
		}
		if i > iMax {
			iMax = i
		}
	}
	return
}

// VwrapNorm returns the already-cached sum of wrap-matrix operator norms
// (computed at construction time, before shift/scale).
func (d *baseDomain) VwrapNorm() float64 {
	return d.vwrapNorm[0] + d.vwrapNorm[1] + d.vwrapNorm[2]
}

// InitializeShift applies the common shift center to the kernel and the
// scattering potential, and returns max|V_raw-shift| so calib can take the
// overall maximum across subdomains as the scattering-potential norm.
func (d *baseDomain) InitializeShift(shift complex128) float64 {
	for i := range d.kernel {
		d.kernel[i] += shift
	}
	maxAbs := 0.0
	for i := range d.vRaw {
		d.vRaw[i] -= shift
		if a := cmplx.Abs(d.vRaw[i]); a > maxAbs {
			maxAbs = a
		}
	}
	d.shift = shift
	return maxAbs
}

// InitializeScale applies the common scale factor to every operator: B =
// 1-scale*V (broadcast across trailing components), the kernel becomes
// 1/(scale*(L+shift)+1) (caching the pre-reciprocal value when debug is
// set), and every Vwrap matrix is scaled in place.
func (d *baseDomain) InitializeScale(scale complex128) {
	d.scale = scale
	trail := d.geom.trail
	d.bFull = make([]complex128, len(d.vRaw)*trail)
	for i, v := range d.vRaw {
		b := 1 - scale*v
		for c := 0; c < trail; c++ {
			d.bFull[i*trail+c] = b
		}
	}

	for i := range d.kernel {
		d.kernel[i] = d.kernel[i]*scale + 1
	}
	if d.debug {
		d.inverseDebug = append([]complex128(nil), d.kernel...)
	}
	for i := range d.kernel {
		d.kernel[i] = 1 / d.kernel[i]
	}

	for dim := 0; dim < 3; dim++ {
		if d.vwrap[dim] == nil {
			continue
		}
		d.vwrap[dim].Scale(scale, d.vwrap[dim])
	}
}
