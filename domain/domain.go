// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package domain implements one subdomain's operators: the scattering
// potential and medium operator B=1-V, the propagator (L+1)^-1, the
// wrap-around correction, and the eight primitive operations the
// iteration driver drives, as a capability interface with two concrete
// implementations (HelmholtzDomain, MaxwellDomain) sharing a baseDomain.
package domain

import (
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/wavesim/source"
)

// Operations is the capability interface the iteration driver and
// MultiDomain drive. HelmholtzDomain and MaxwellDomain both implement it;
// they differ only in Propagator and in field rank.
type Operations interface {
	Clear(slot int)
	Set(slot int, data []complex128)
	Get(slot int) []complex128
	SetSource(src *source.Source)
	HasSource() bool
	AddSource(slot int, weight complex128)
	Mix(weightA complex128, slotA int, weightB complex128, slotB int, out int)
	InnerProduct(a, b int) complex128
	Medium(in, out int)
	Propagator(in, out int)
	InversePropagator(in, out int)
	ComputeCorrections(slot int) [6][]complex128
	ApplyCorrections(wrap, xfer [6][]complex128, slot int)
	VBounds() (rMin, rMax, iMin, iMax float64)
	VwrapNorm() float64
	InitializeShift(shift complex128) float64
	InitializeScale(scale complex128)
	Shape() [3]int
	Active() bool
	SetActive(active bool)
	Device() string
}

// baseDomain holds everything common to the scalar (Helmholtz) and vector
// (Maxwell) variants: slots, the scattering potential, the wrap-correction
// matrices and edge buffers, and the activity flag.
type baseDomain struct {
	geom      geometry
	pixelSize float64
	periodic  [3]bool
	nBoundary int
	device    string
	debug     bool

	slots   [][]complex128
	scratch []complex128 // reused by Mix to avoid an allocation per call
	source  *source.Source

	vRaw  []complex128 // scattering potential, per grid point (no trail)
	bFull []complex128 // B=1-scale*vRaw, broadcast across trail components

	kernel       []complex128 // Fourier-layout kernel: raw L before calibration, forward (L+1)^-1 after InitializeScale
	inverseDebug []complex128 // retained pre-reciprocal kernel, only if debug (see InversePropagator)

	ffts [3]*fourier.CmplxFFT // cached per-axis 1-D complex FFT plans, nil for length-1 axes

	vwrap     [3]*mat.CDense
	vwrapNorm [3]float64

	edgeBuf [6][]complex128

	active bool

	shift complex128
	scale complex128
}

func newBaseDomain(shape [3]int, trail int, pixelSize float64, periodic [3]bool, nBoundary int, nSlots int, device string, debug bool) *baseDomain {
	geom := newGeometry(shape, trail)
	d := &baseDomain{
		geom:      geom,
		pixelSize: pixelSize,
		periodic:  periodic,
		nBoundary: nBoundary,
		device:    device,
		debug:     debug,
		active:    true,
	}
	d.slots = make([][]complex128, nSlots)
	for i := range d.slots {
		d.slots[i] = make([]complex128, geom.size())
	}
	d.scratch = make([]complex128, geom.size())
	d.vRaw = make([]complex128, shape[0]*shape[1]*shape[2])
	d.ffts = newAxisFFTs(shape)
	return d
}

// forwardTransform runs the separable 3-D FFT over this domain's own
// geometry (trail included).
func (d *baseDomain) forwardTransform(data []complex128) {
	forwardTransform(d.geom, d.ffts, data)
}

// inverseTransform runs the separable 3-D inverse FFT, normalized, over
// this domain's own geometry.
func (d *baseDomain) inverseTransform(data []complex128) {
	inverseTransform(d.geom, d.ffts, data)
}

// inverseKernelAt returns the value that InversePropagator should multiply
// the Fourier-transformed field by at Fourier-space index i. Before
// calibration this is simply the raw L kernel (used by wrap-matrix
// construction). After InitializeScale has run, `kernel` has been replaced
// in place by the forward kernel 1/(scale*(L+shift)+1); in debug mode the
// pre-reciprocal value was cached in inverseDebug and is returned instead,
// giving an exact round trip. Without debug mode, the pre-reciprocal kernel
// is not retained, so InversePropagator after calibration is only exact
// when DeviceConfig.Debug is set.
func (d *baseDomain) inverseKernelAt(i int) complex128 {
	if d.inverseDebug != nil {
		return d.inverseDebug[i]
	}
	return d.kernel[i]
}

// InversePropagator applies (L+1) elementwise per trailing component; it is
// identical for HelmholtzDomain and MaxwellDomain since the forward operator
// has no dyadic coupling between polarization components (only the
// propagator's resolvent does).
func (d *baseDomain) InversePropagator(in, out int) {
	d.checkSlot(in)
	d.checkSlot(out)
	if in != out {
		copy(d.slots[out], d.slots[in])
	}
	buf := d.slots[out]
	d.forwardTransform(buf)
	multiplyKernel(d.geom.trail, buf, d.inverseKernelAt)
	d.inverseTransform(buf)
}

func (d *baseDomain) checkSlot(slot int) {
	if slot < 0 || slot >= len(d.slots) {
		chk.Panic("domain: slot index %d out of range [0,%d)", slot, len(d.slots))
	}
}

// Clear zeros the slot.
func (d *baseDomain) Clear(slot int) {
	d.checkSlot(slot)
	s := d.slots[slot]
	for i := range s {
		s[i] = 0
	}
}

// Set copies data into the slot.
func (d *baseDomain) Set(slot int, data []complex128) {
	d.checkSlot(slot)
	if len(data) != len(d.slots[slot]) {
		chk.Panic("domain: Set: length mismatch, got %d want %d", len(data), len(d.slots[slot]))
	}
	copy(d.slots[slot], data)
}

// Get returns a copy of the slot's contents.
func (d *baseDomain) Get(slot int) []complex128 {
	d.checkSlot(slot)
	out := make([]complex128, len(d.slots[slot]))
	copy(out, d.slots[slot])
	return out
}

// SetSource stores the subdomain's portion of the source; a zero source
// (or nil, per source.Partition's contract) is recorded as nil so
// AddSource can be skipped cheaply.
func (d *baseDomain) SetSource(src *source.Source) {
	if src.IsZero() {
		d.source = nil
		return
	}
	d.source = src
}

// AddSource adds weight*source into the slot; a zero source is a no-op.
func (d *baseDomain) AddSource(slot int, weight complex128) {
	d.checkSlot(slot)
	if d.source == nil || !d.active {
		return
	}
	dst := d.slots[slot]
	if d.source.Dense != nil {
		cmplxs.AddScaledTo(dst, dst, weight, d.source.Dense)
		return
	}
	trail := d.geom.trail
	for i, c := range d.source.Coords {
		idx := (c[0]*d.geom.shape[1]+c[1])*d.geom.shape[2] + c[2]
		idx *= trail
		comp := 0
		if len(c) > 3 {
			comp = c[3]
		}
		dst[idx+comp] += weight * d.source.Values[i]
	}
}

// Mix computes out = weightA*slotA + weightB*slotB, supporting aliasing of
// out with either input slot.
func (d *baseDomain) Mix(weightA complex128, slotA int, weightB complex128, slotB int, out int) {
	d.checkSlot(slotA)
	d.checkSlot(slotB)
	d.checkSlot(out)
	if !d.active {
		return
	}
	a := d.slots[slotA]
	b := d.slots[slotB]
	cmplxs.ScaleTo(d.scratch, weightA, a)
	cmplxs.AddScaledTo(d.slots[out], d.scratch, weightB, b)
}

// InnerProduct computes sum(conj(a)*b) over every element, trail included.
func (d *baseDomain) InnerProduct(a, b int) complex128 {
	d.checkSlot(a)
	d.checkSlot(b)
	return cmplxs.Dot(d.slots[a], d.slots[b])
}

// Medium applies B=1-V elementwise: out = B*in. No wrap/transfer
// correction; those live in MultiDomain.Medium.
func (d *baseDomain) Medium(in, out int) {
	d.checkSlot(in)
	d.checkSlot(out)
	if !d.active {
		return
	}
	cmplxs.MulTo(d.slots[out], d.slots[in], d.bFull)
}

// Shape returns the grid shape (not including the trailing polarization
// axis, which callers know from the concrete domain type).
func (d *baseDomain) Shape() [3]int { return d.geom.shape }

// Active reports whether this domain currently participates in
// medium/propagator/mix. An inactive domain still answers edge exchange.
func (d *baseDomain) Active() bool { return d.active }

// SetActive flips the activity flag; edge exchange still runs regardless.
func (d *baseDomain) SetActive(active bool) { d.active = active }

// Device returns this domain's assigned device/worker identity.
func (d *baseDomain) Device() string { return d.device }

// HasSource reports whether this domain carries a nonzero source term.
// Used by the multi-domain activity heuristic: a domain with a source is
// never deactivated.
func (d *baseDomain) HasSource() bool { return d.source != nil }
