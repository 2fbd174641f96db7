// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calib computes the complex shift and scalar scale that put the
// scattering potential (including the wrap-correction operator norm)
// strictly inside the unit ball and rotate the spectrum of L+V into the
// right half-plane, making the preconditioned operator accretive.
package calib

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/wavesim/domain"
	"github.com/cpmech/wavesim/waveerr"
)

// margin keeps the scaled potential norm strictly below one.
const margin = 0.95

// Calibrate runs the two-phase shift/scale calibration over all
// subdomains. Phase 1 selects the center of the union bounding box of
// every subdomain's raw scattering potential and shifts kernel and
// potential by it; phase 2 derives the common complex scale
//
//	scale = margin*i / (Vscat + Vwrap)
//
// and applies it to every operator. Calibrate must run exactly once per
// domain set, before the first iteration.
func Calibrate(doms []domain.Operations, verbose bool) (shift, scale complex128, err error) {
	if len(doms) == 0 {
		return 0, 0, waveerr.NewConfigError("domains", "cannot calibrate an empty domain set")
	}

	rMin, rMax, iMin, iMax := doms[0].VBounds()
	for _, d := range doms[1:] {
		r0, r1, i0, i1 := d.VBounds()
		rMin = utl.Min(rMin, r0)
		rMax = utl.Max(rMax, r1)
		iMin = utl.Min(iMin, i0)
		iMax = utl.Max(iMax, i1)
	}
	shift = complex(0.5*(rMin+rMax), 0.5*(iMin+iMax))

	vScat := 0.0
	vWrap := 0.0
	for _, d := range doms {
		vScat = utl.Max(vScat, d.InitializeShift(shift))
		vWrap = utl.Max(vWrap, d.VwrapNorm())
	}

	total := vScat + vWrap
	if total == 0 {
		return shift, 0, waveerr.NewConfigError("potential", "scattering potential is identically zero after shifting; nothing to scale")
	}
	scale = complex(0, margin/total)

	for _, d := range doms {
		d.InitializeScale(scale)
	}

	if verbose {
		io.Pf("calibration: shift=%v scale=%v Vscat=%g Vwrap=%g\n", shift, scale, vScat, vWrap)
	}
	return shift, scale, nil
}
