// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

// ComputeCorrections returns the six edge-wrap corrections Vwrap[dim]*slab
// for the given slot, always running regardless of the activity flag:
// edge exchange keeps going even for an inactive domain. Edge
// numbering is 2*dim (low face) and 2*dim+1 (high face). The contraction
// direction differs by edge parity: a low edge multiplies by Vwrap as-is,
// a high edge multiplies by its plain (non-conjugate) transpose, matching
// the index convention the wrap matrix was built with.
func (d *baseDomain) ComputeCorrections(slot int) [6][]complex128 {
	d.checkSlot(slot)
	data := d.slots[slot]
	var out [6][]complex128
	for edge := 0; edge < 6; edge++ {
		dim := edge / 2
		w := d.vwrap[dim]
		if w == nil {
			continue
		}
		nB, _ := w.Dims()
		start := 0
		if edge%2 == 1 {
			start = d.geom.shape[dim] - nB
		}
		slab := d.geom.gatherAxis(data, dim, start, nB)
		cols := len(slab) / nB
		res := d.edgeBuf[edge]
		if len(res) != nB*cols {
			res = make([]complex128, nB*cols)
			d.edgeBuf[edge] = res
		}
		if edge%2 == 0 {
			for r := 0; r < nB; r++ {
				for col := 0; col < cols; col++ {
					var sum complex128
					for c := 0; c < nB; c++ {
						sum += w.At(r, c) * slab[c*cols+col]
					}
					res[r*cols+col] = sum
				}
			}
		} else {
			for c := 0; c < nB; c++ {
				for col := 0; col < cols; col++ {
					var sum complex128
					for r := 0; r < nB; r++ {
						sum += w.At(r, c) * slab[r*cols+col]
					}
					res[c*cols+col] = sum
				}
			}
		}
		out[edge] = res
	}
	return out
}

// ApplyCorrections adds wrap corrections and subtracts transfer
// corrections into slot, in place, handling all four per-edge presence
// combinations. Like ComputeCorrections, this always runs regardless of
// the activity flag.
func (d *baseDomain) ApplyCorrections(wrap, xfer [6][]complex128, slot int) {
	d.checkSlot(slot)
	data := d.slots[slot]
	nB := d.nBoundary
	for edge := 0; edge < 6; edge++ {
		w := wrap[edge]
		x := xfer[edge]
		if w == nil && x == nil {
			continue
		}
		dim := edge / 2
		start := 0
		if edge%2 == 1 {
			start = d.geom.shape[dim] - nB
		}

		var combined []complex128
		switch {
		case w != nil && x == nil:
			combined = w
		case x != nil && w == nil:
			combined = make([]complex128, len(x))
			for i, v := range x {
				combined[i] = -v
			}
		default:
			combined = make([]complex128, len(w))
			for i := range w {
				combined[i] = w[i] - x[i]
			}
		}
		d.geom.scatterAxis(data, dim, start, nB, combined, func(a, b complex128) complex128 { return a + b })
	}
}
