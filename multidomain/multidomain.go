// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package multidomain composes a 3-D tile of subdomains into one operator
// with the same operation set as a single domain. It routes slot
// operations to every subdomain, with one worker goroutine per compute
// device and a barrier after every primitive, and orchestrates the edge
// exchange that stitches the subdomains into a globally consistent
// medium operator.
package multidomain

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/katalvlaran/lvlath/graph/core"

	"github.com/cpmech/wavesim/domain"
	"github.com/cpmech/wavesim/simconfig"
	"github.com/cpmech/wavesim/source"
	"github.com/cpmech/wavesim/waveerr"
)

// MultiDomain holds the subdomain tile and the adjacency bookkeeping for
// edge exchange. Subdomains are stored flattened row-major over the tile
// (z fastest), matching the layout of the full grid itself.
type MultiDomain struct {
	tile      [3]int
	fullShape [3]int
	trail     int
	subSize   [3]int

	domains []domain.Operations
	devices []string
	byDev   map[string][]int

	// adjacency of the subdomain tile: vertices are "x,y,z" tile
	// coordinates, one directed edge per touching face, carrying the face
	// index as its weight. Medium consults it to find transfer-correction
	// neighbours.
	graph *core.Graph

	activityOpt bool
	xferNorms   [][2]float64
	xferSeen    []int
}

// New builds the subdomain tile from the full index-squared (n^2) map,
// row-major over cfg.Shape, splitting it per cfg.Grid.NDomains and
// assigning subdomains to cfg.Device.Devices round-robin. The domains are
// raw: calibration (calib.Calibrate) must run before iterating.
func New(cfg *simconfig.Config, indexMap []complex128) (*MultiDomain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	shape := cfg.Shape
	if len(indexMap) != shape[0]*shape[1]*shape[2] {
		return nil, waveerr.NewConfigError("indexMap", "length does not match the configured grid shape")
	}

	tile := cfg.Grid.NDomains
	m := &MultiDomain{
		tile:      tile,
		fullShape: shape,
		trail:     1,
		subSize:   source.SubdomainSize(shape, tile),
		devices:   cfg.Device.Devices,
		byDev:     make(map[string][]int),
		graph:     core.NewGraph(core.WithDirected(true), core.WithWeighted()),

		activityOpt: cfg.Device.ActivityOptimization,
	}
	if cfg.Maxwell {
		m.trail = 3
	}

	n := tile[0] * tile[1] * tile[2]
	m.domains = make([]domain.Operations, n)
	m.xferNorms = make([][2]float64, n)
	m.xferSeen = make([]int, n)

	for x := 0; x < tile[0]; x++ {
		for y := 0; y < tile[1]; y++ {
			for z := 0; z < tile[2]; z++ {
				i := m.flatten(x, y, z)
				start, end := m.bounds([3]int{x, y, z})
				sub := extractBlock(indexMap, shape, 1, start, end)
				subShape := [3]int{end[0] - start[0], end[1] - start[1], end[2] - start[2]}
				dev := m.devices[i%len(m.devices)]
				if cfg.Maxwell {
					m.domains[i] = domain.NewMaxwellDomain(sub, subShape, cfg.Grid.PixelSize, cfg.Grid.Wavelength,
						cfg.Grid.Periodic, cfg.Grid.NBoundary, cfg.Iteration.NSlots, dev, cfg.Device.Debug)
				} else {
					m.domains[i] = domain.NewHelmholtzDomain(sub, subShape, cfg.Grid.PixelSize, cfg.Grid.Wavelength,
						cfg.Grid.Periodic, cfg.Grid.NBoundary, cfg.Iteration.NSlots, dev, cfg.Device.Debug)
				}
				m.byDev[dev] = append(m.byDev[dev], i)
			}
		}
	}

	m.buildGraph()
	return m, nil
}

func (m *MultiDomain) flatten(x, y, z int) int {
	return (x*m.tile[1]+y)*m.tile[2] + z
}

func (m *MultiDomain) unflatten(i int) (x, y, z int) {
	z = i % m.tile[2]
	y = (i / m.tile[2]) % m.tile[1]
	x = i / (m.tile[1] * m.tile[2])
	return
}

// bounds returns the [start,end) block of the full grid covered by tile
// index ti; the last subdomain along an axis may be smaller.
func (m *MultiDomain) bounds(ti [3]int) (start, end [3]int) {
	for d := 0; d < 3; d++ {
		start[d] = ti[d] * m.subSize[d]
		end[d] = start[d] + m.subSize[d]
		if end[d] > m.fullShape[d] {
			end[d] = m.fullShape[d]
		}
	}
	return
}

// forEach runs fn over every subdomain, one goroutine per device, and
// barriers before returning. Domains sharing a device run sequentially on
// its goroutine, so per-device work never overlaps with itself. A panic
// inside a subdomain operation is rewrapped as a DeviceError carrying the
// device identity and the offending tile coordinate; there is no
// failover to another device mid-run.
func (m *MultiDomain) forEach(fn func(i int, d domain.Operations)) {
	var wg sync.WaitGroup
	for dev, idxs := range m.byDev {
		wg.Add(1)
		go func(dev string, idxs []int) {
			defer wg.Done()
			for _, i := range idxs {
				m.runOn(dev, i, fn)
			}
		}(dev, idxs)
	}
	wg.Wait()
}

func (m *MultiDomain) runOn(dev string, i int, fn func(i int, d domain.Operations)) {
	defer func() {
		if r := recover(); r != nil {
			x, y, z := m.unflatten(i)
			panic(waveerr.NewDeviceError(dev, [3]int{x, y, z}, chk.Err("%v", r)))
		}
	}()
	fn(i, m.domains[i])
}

// Domains returns the flattened subdomain list, tile row-major, z fastest.
func (m *MultiDomain) Domains() []domain.Operations { return m.domains }

// Shape returns the full grid shape (without the trailing polarization axis).
func (m *MultiDomain) Shape() [3]int { return m.fullShape }

// Trail returns the number of field components per grid point (1 or 3).
func (m *MultiDomain) Trail() int { return m.trail }

// NDomains returns the subdomain tile counts.
func (m *MultiDomain) NDomains() [3]int { return m.tile }

// Clear zeros the slot on every subdomain.
func (m *MultiDomain) Clear(slot int) {
	m.forEach(func(i int, d domain.Operations) { d.Clear(slot) })
}

// SetSource partitions the full-grid source over the tile and stores each
// piece in its subdomain; empty pieces are stored as nil so the
// subdomains skip AddSource.
func (m *MultiDomain) SetSource(src *source.Source) {
	parts := source.Partition(src, m.tile)
	m.forEach(func(i int, d domain.Operations) {
		x, y, z := m.unflatten(i)
		d.SetSource(parts[x][y][z])
	})
}

// AddSource adds weight*source into the slot on every subdomain.
func (m *MultiDomain) AddSource(slot int, weight complex128) {
	m.forEach(func(i int, d domain.Operations) { d.AddSource(slot, weight) })
}

// Mix computes out = weightA*slotA + weightB*slotB on every subdomain.
func (m *MultiDomain) Mix(weightA complex128, slotA int, weightB complex128, slotB int, out int) {
	m.forEach(func(i int, d domain.Operations) { d.Mix(weightA, slotA, weightB, slotB, out) })
}

// Propagator applies the per-subdomain resolvent (L+1)^-1 to the slot.
func (m *MultiDomain) Propagator(in, out int) {
	m.forEach(func(i int, d domain.Operations) { d.Propagator(in, out) })
}

// InversePropagator applies the per-subdomain forward operator (L+1).
func (m *MultiDomain) InversePropagator(in, out int) {
	m.forEach(func(i int, d domain.Operations) { d.InversePropagator(in, out) })
}

// PartialInnerProducts returns each subdomain's contribution to the
// global inner product sum(conj(a)*b), indexed like Domains().
func (m *MultiDomain) PartialInnerProducts(a, b int) []complex128 {
	partials := make([]complex128, len(m.domains))
	m.forEach(func(i int, d domain.Operations) { partials[i] = d.InnerProduct(a, b) })
	return partials
}

// InnerProduct sums the per-subdomain partial inner products. The partials
// are combined after the barrier, in tile order, so the result is
// deterministic for a given decomposition.
func (m *MultiDomain) InnerProduct(a, b int) complex128 {
	var sum complex128
	for _, p := range m.PartialInnerProducts(a, b) {
		sum += p
	}
	return sum
}
