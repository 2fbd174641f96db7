// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package iterate implements the preconditioned Richardson loop that
// drives the multi-domain operators: t = B*(u - (L+1)^-1 (B*u + s)),
// u <- u - alpha*t, with residual logging and convergence, divergence
// and stagnation detection.
package iterate

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/wavesim/multidomain"
	"github.com/cpmech/wavesim/simconfig"
	"github.com/cpmech/wavesim/waveerr"
)

// slot assignments of the driver: the field lives in slot 0, slot 1 is
// the running temporary, slot 2 holds one intermediate per half-step.
const (
	slotField = 0
	slotTmp   = 1
	slotAux   = 2
)

// Result carries the outcome of a solve: the field cropped to the region
// of interest, the iteration count, the last normalized residual, and
// the full and per-subdomain residual histories. Histories are indexed
// [iteration] and [subdomain][iteration] respectively, subdomains in the
// same order as MultiDomain.Domains().
type Result struct {
	Field                    []complex128
	Iterations               int
	Residual                 float64
	FullResidualHistory      []float64
	SubdomainResidualHistory [][]float64
	Diverged                 bool
}

// Params bundles the per-solve inputs that are not configuration: an
// optional initial field (nil starts from zero), the region of interest
// to crop the final field to (zero RoiShape keeps the full grid), and
// the verbosity flag.
type Params struct {
	Initial   []complex128
	RoiOffset [3]int
	RoiShape  [3]int
	Verbose   bool
}

// Solve runs the preconditioned Richardson iteration until convergence,
// divergence or iteration exhaustion. The returned Result is valid in
// all three cases; divergence and stagnation are additionally reported
// as *waveerr.DivergenceError and *waveerr.StagnationError so callers
// can branch without inspecting flags.
func Solve(md *multidomain.MultiDomain, cfg simconfig.IterationConfig, p Params) (*Result, error) {
	if cfg.NSlots < 3 {
		return nil, waveerr.NewConfigError("nSlots", "the driver schedule needs at least 3 slots")
	}
	alpha := complex(cfg.Alpha, 0)
	nd := len(md.Domains())

	res := &Result{
		SubdomainResidualHistory: make([][]float64, nd),
	}

	// initial norm ||B (L+1)^-1 s|| for residual normalization
	md.Clear(slotTmp)
	md.AddSource(slotTmp, 1)
	md.Propagator(slotTmp, slotTmp)
	md.Medium(slotTmp, slotTmp)
	initNorm := norm(md.InnerProduct(slotTmp, slotTmp))
	if initNorm == 0 {
		// zero source: fall back to absolute residuals
		initNorm = 1
	}

	if p.Initial != nil {
		md.Set(slotField, p.Initial)
	} else {
		md.Clear(slotField)
	}

	var err error
	for i := 0; i < cfg.MaxIterations; i++ {
		md.Clear(slotTmp)
		md.AddSource(slotTmp, 1)                // tmp = s
		md.Medium(slotField, slotAux)           // aux = B u
		md.Mix(1, slotTmp, 1, slotAux, slotTmp) // tmp = B u + s
		md.Propagator(slotTmp, slotTmp)         // tmp = (L+1)^-1 (B u + s)
		md.Mix(1, slotField, -1, slotTmp, slotAux)
		md.Medium(slotAux, slotTmp) // tmp = B (u - tmp)

		partials := md.PartialInnerProducts(slotTmp, slotTmp)
		var sum complex128
		for j, partial := range partials {
			sum += partial
			res.SubdomainResidualHistory[j] = append(res.SubdomainResidualHistory[j], norm(partial)/initNorm)
		}
		residual := norm(sum) / initNorm
		res.FullResidualHistory = append(res.FullResidualHistory, residual)
		res.Residual = residual
		res.Iterations = i + 1

		md.Mix(1, slotField, -alpha, slotTmp, slotField) // u = u - alpha*tmp

		if p.Verbose {
			io.Pf("iteration %4d: residual = %23.15e\n", i+1, residual)
		}

		if residual <= cfg.Threshold {
			break
		}
		if residual >= cfg.DivergenceLimit || math.IsNaN(residual) || math.IsInf(residual, 0) {
			res.Diverged = true
			err = waveerr.NewDivergenceError(i+1, residual, cfg.DivergenceLimit)
			break
		}
		if i == cfg.MaxIterations-1 {
			err = waveerr.NewStagnationError(i+1, residual, cfg.Threshold)
		}
	}

	res.Field = crop(md.Get(slotField), md.Shape(), md.Trail(), p.RoiOffset, p.RoiShape)
	return res, err
}

// norm converts an inner product of a slot with itself into the
// Euclidean norm, discarding the rounding-level imaginary part.
func norm(selfProduct complex128) float64 {
	return math.Sqrt(cmplx.Abs(selfProduct))
}

// crop extracts the region of interest from a full-grid buffer; a zero
// roiShape returns the buffer unchanged.
func crop(full []complex128, shape [3]int, trail int, roiOffset, roiShape [3]int) []complex128 {
	if roiShape == [3]int{} {
		return full
	}
	out := make([]complex128, roiShape[0]*roiShape[1]*roiShape[2]*trail)
	idx := 0
	nz := roiShape[2]
	for ix := 0; ix < roiShape[0]; ix++ {
		for iy := 0; iy < roiShape[1]; iy++ {
			base := (((roiOffset[0]+ix)*shape[1]+roiOffset[1]+iy)*shape[2] + roiOffset[2]) * trail
			copy(out[idx:idx+nz*trail], full[base:base+nz*trail])
			idx += nz * trail
		}
	}
	return out
}
