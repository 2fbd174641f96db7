// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cpmech/gosl/rnd"
	"github.com/stretchr/testify/assert"

	"github.com/cpmech/wavesim/gridkernel"
)

func maxAbsDiff(a, b []complex128) float64 {
	worst := 0.0
	for i := range a {
		if d := cmplx.Abs(a[i] - b[i]); d > worst {
			worst = d
		}
	}
	return worst
}

func maxAbs(a []complex128) float64 {
	worst := 0.0
	for _, v := range a {
		if d := cmplx.Abs(v); d > worst {
			worst = d
		}
	}
	return worst
}

func TestPropagatorRoundTrip(t *testing.T) {
	rnd.Init(2001)
	d := newCalibrated1D(64)
	x := randomField(64)

	// (L+1) (L+1)^-1 x = x, aliased slots
	d.Set(1, x)
	d.Propagator(1, 1)
	d.InversePropagator(1, 1)
	assert.Less(t, maxAbsDiff(x, d.Get(1)), 1e-10*maxAbs(x))

	// (L+1)^-1 (L+1) x = x, distinct slots
	d.Set(1, x)
	d.InversePropagator(1, 2)
	d.Propagator(2, 2)
	assert.Less(t, maxAbsDiff(x, d.Get(2)), 1e-10*maxAbs(x))
}

// TestInversePropagatorPlaneWave checks the operator against its
// closed form: a plane wave at an exact Fourier grid point is an
// eigenvector of L+1 with eigenvalue 1 + scale*(p^2 + shift).
func TestInversePropagatorPlaneWave(t *testing.T) {
	const n = 64
	const pixelSize = 0.25
	d := newCalibrated1D(n)

	p := gridkernel.FourierAxis(n, pixelSize)
	j := 13
	wave := make([]complex128, n)
	for i := range wave {
		phase := 2 * math.Pi * float64(j*i) / float64(n)
		wave[i] = cmplx.Exp(complex(0, phase))
	}

	d.Set(1, wave)
	d.InversePropagator(1, 1)
	got := d.Get(1)

	lambda := 1 + d.scale*(complex(p[j]*p[j], 0)+d.shift)
	for i := range wave {
		want := lambda * wave[i]
		// the real-space kernel is compared against the exact Fourier
		// eigenvalue; they differ by the wrap-around artifact
		assert.InDelta(t, 0, cmplx.Abs(got[i]-want), 0.05*cmplx.Abs(lambda))
	}
}

// TestMaxwellTransverseMatchesHelmholtz drives the vector propagator
// with a purely transverse field: for a 1-D geometry and a y-polarized
// field, p.F = 0, so the dyadic term vanishes and the vector propagator
// must agree with the scalar one per component.
func TestMaxwellTransverseMatchesHelmholtz(t *testing.T) {
	const n = 48
	idx := testIndexMap(n, 12)
	shape := [3]int{n, 1, 1}
	periodic := [3]bool{false, true, true}

	h := NewHelmholtzDomain(idx, shape, 0.25, nil, periodic, 8, 3, "cpu", true)
	m := NewMaxwellDomain(idx, shape, 0.25, nil, periodic, 8, 3, "cpu", true)

	rMin, rMax, iMin, iMax := h.VBounds()
	center := complex(0.5*(rMin+rMax), 0.5*(iMin+iMax))
	vScat := h.InitializeShift(center)
	scale := complex(0, 0.95/(vScat+h.VwrapNorm()))
	h.InitializeScale(scale)
	m.InitializeShift(center)
	m.InitializeScale(scale)

	rnd.Init(2002)
	scalar := randomField(n)
	vector := make([]complex128, n*3)
	for i, v := range scalar {
		vector[i*3+1] = v // y-polarized
	}

	h.Set(1, scalar)
	h.Propagator(1, 1)
	m.Set(1, vector)
	m.Propagator(1, 1)

	hGot := h.Get(1)
	mGot := m.Get(1)
	for i := range scalar {
		assert.InDelta(t, 0, cmplx.Abs(mGot[i*3+1]-hGot[i]), 1e-10)
		assert.InDelta(t, 0, cmplx.Abs(mGot[i*3]), 1e-10)   // x stays empty
		assert.InDelta(t, 0, cmplx.Abs(mGot[i*3+2]), 1e-10) // z stays empty
	}
}

func rampValue(i, n, ramp int) float64 {
	d := i
	if n-1-i < d {
		d = n - 1 - i
	}
	if d >= ramp {
		return 0
	}
	return 0.2 * float64(ramp-d) / float64(ramp)
}

// testIndexMap2D builds an (nx,ny,1) unit-background map with absorbing
// ramps on all four non-periodic edges.
func testIndexMap2D(nx, ny, ramp int) []complex128 {
	idx := make([]complex128, nx*ny)
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			idx[x*ny+y] = complex(1, rampValue(x, nx, ramp)+rampValue(y, ny, ramp))
		}
	}
	return idx
}

// TestMaxwellObliquePlaneWave exercises the grad-div coupling with two
// simultaneously nonzero Fourier coordinates: an oblique plane wave with
// amplitude vector a is mapped to K*(a + p*(p.a)*scale/(scale*shift+1)),
// mixing the x and y components through the p.a contraction.
func TestMaxwellObliquePlaneWave(t *testing.T) {
	const nx, ny = 64, 64
	const pixelSize = 0.25
	idx := testIndexMap2D(nx, ny, 12)
	shape := [3]int{nx, ny, 1}
	m := NewMaxwellDomain(idx, shape, pixelSize, nil, [3]bool{false, false, true}, 8, 3, "cpu", true)
	rMin, rMax, iMin, iMax := m.VBounds()
	center := complex(0.5*(rMin+rMax), 0.5*(iMin+iMax))
	vScat := m.InitializeShift(center)
	m.InitializeScale(complex(0, 0.95/(vScat+m.VwrapNorm())))

	px := gridkernel.FourierAxis(nx, pixelSize)
	py := gridkernel.FourierAxis(ny, pixelSize)
	jx, jy := 9, 13
	amp := [3]complex128{0.8, complex(0, -0.5), 0.3}

	field := make([]complex128, nx*ny*3)
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			phase := 2 * math.Pi * (float64(jx*ix)/float64(nx) + float64(jy*iy)/float64(ny))
			wave := cmplx.Exp(complex(0, phase))
			for c := 0; c < 3; c++ {
				field[(ix*ny+iy)*3+c] = amp[c] * wave
			}
		}
	}

	m.Set(1, field)
	m.Propagator(1, 1)
	got := m.Get(1)

	p := [3]complex128{complex(px[jx], 0), complex(py[jy], 0), 0}
	cfac := m.scale / (m.scale*m.shift + 1)
	div := cfac * (p[0]*amp[0] + p[1]*amp[1] + p[2]*amp[2])
	kv := 1 / (1 + m.scale*(p[0]*p[0]+p[1]*p[1]+m.shift))
	var want [3]complex128
	worst := 0.0
	for c := 0; c < 3; c++ {
		want[c] = kv * (amp[c] + p[c]*div)
		if a := cmplx.Abs(want[c]); a > worst {
			worst = a
		}
	}
	// every z component picks up nothing (p[2]=0, amp mixing only via p.a)
	assert.InDelta(t, 0, cmplx.Abs(want[2]-kv*amp[2]), 1e-15)

	for i := 0; i < nx*ny; i++ {
		wave := field[i*3] / amp[0]
		for c := 0; c < 3; c++ {
			assert.InDelta(t, 0, cmplx.Abs(got[i*3+c]-want[c]*wave), 0.05*worst)
		}
	}
}

// TestMaxwellLongitudinalCoupling checks the grad-div term: for a field
// polarized along the propagation axis, the eigenvalue of the vector
// resolvent on a plane wave is K*(1 + p^2*scale/(scale*shift+1)).
func TestMaxwellLongitudinalCoupling(t *testing.T) {
	const n = 64
	const pixelSize = 0.25
	idx := testIndexMap(n, 12)
	shape := [3]int{n, 1, 1}
	m := NewMaxwellDomain(idx, shape, pixelSize, nil, [3]bool{false, true, true}, 8, 3, "cpu", true)
	rMin, rMax, iMin, iMax := m.VBounds()
	center := complex(0.5*(rMin+rMax), 0.5*(iMin+iMax))
	vScat := m.InitializeShift(center)
	m.InitializeScale(complex(0, 0.95/(vScat+m.VwrapNorm())))

	p := gridkernel.FourierAxis(n, pixelSize)
	j := 9
	vector := make([]complex128, n*3)
	for i := 0; i < n; i++ {
		phase := 2 * math.Pi * float64(j*i) / float64(n)
		vector[i*3] = cmplx.Exp(complex(0, phase)) // x-polarized, along the wavevector
	}

	m.Set(1, vector)
	m.Propagator(1, 1)
	got := m.Get(1)

	psq := complex(p[j]*p[j], 0)
	kv := 1 / (1 + m.scale*(psq+m.shift))
	lambda := kv * (1 + psq*m.scale/(m.scale*m.shift+1))
	for i := 0; i < n; i++ {
		want := lambda * vector[i*3]
		assert.InDelta(t, 0, cmplx.Abs(got[i*3]-want), 0.05*cmplx.Abs(lambda))
	}
}
