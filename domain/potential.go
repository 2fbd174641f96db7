// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import "math"

// k0Squared returns k0^2, the free-space wavenumber squared used to scale
// the index-squared map into the raw scattering potential:
// k0 = 2*pi*pixelSize when wavelength is nil, else k0 = 2*pi/wavelength.
func k0Squared(pixelSize float64, wavelength *float64) float64 {
	var k0 float64
	if wavelength == nil {
		k0 = 2.0 * math.Pi * pixelSize
	} else {
		k0 = 2.0 * math.Pi / *wavelength
	}
	return k0 * k0
}

// effectivePeriodic disables wrap corrections on every axis when
// n_boundary is zero: with no boundary pixels to correct, every axis
// behaves as periodic.
func effectivePeriodic(periodic [3]bool, nBoundary int) [3]bool {
	if nBoundary > 0 {
		return periodic
	}
	return [3]bool{true, true, true}
}
