// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubdomainSizeIsCeiling(t *testing.T) {
	assert.Equal(t, [3]int{4, 3, 1}, SubdomainSize([3]int{8, 9, 1}, [3]int{2, 3, 1}))
	assert.Equal(t, [3]int{5, 1, 1}, SubdomainSize([3]int{9, 1, 1}, [3]int{2, 1, 1}))
}

func TestPartitionDense(t *testing.T) {
	src := NewDense([]int{4, 1, 1})
	for i := range src.Dense {
		src.Dense[i] = complex(float64(i), 0)
	}
	parts := Partition(src, [3]int{2, 1, 1})
	assert.Equal(t, []complex128{0, 1}, parts[0][0][0].Dense)
	assert.Equal(t, []complex128{2, 3}, parts[1][0][0].Dense)
	assert.Equal(t, []int{2, 1, 1}, parts[0][0][0].Shape)
}

func TestPartitionDenseZeroBlocksBecomeNil(t *testing.T) {
	src := NewDense([]int{4, 1, 1})
	src.Dense[0] = 1 // only the first half carries energy
	parts := Partition(src, [3]int{2, 1, 1})
	assert.NotNil(t, parts[0][0][0])
	assert.Nil(t, parts[1][0][0])
}

func TestPartitionSparseRebasesCoordinates(t *testing.T) {
	src := NewSparse([]int{8, 1, 1}, [][]int{{1, 0, 0}, {6, 0, 0}}, []complex128{2, 3})
	parts := Partition(src, [3]int{2, 1, 1})

	lo := parts[0][0][0]
	assert.Equal(t, [][]int{{1, 0, 0}}, lo.Coords)
	assert.Equal(t, []complex128{2}, lo.Values)

	hi := parts[1][0][0]
	assert.Equal(t, [][]int{{2, 0, 0}}, hi.Coords)
	assert.Equal(t, []complex128{3}, hi.Values)
}

func TestPartitionSparseKeepsPolarizationComponent(t *testing.T) {
	src := NewSparse([]int{8, 1, 1, 3}, [][]int{{5, 0, 0, 2}}, []complex128{1})
	parts := Partition(src, [3]int{2, 1, 1})
	assert.Nil(t, parts[0][0][0])
	assert.Equal(t, [][]int{{1, 0, 0, 2}}, parts[1][0][0].Coords)
	assert.Equal(t, []int{4, 1, 1, 3}, parts[1][0][0].Shape)
}

func TestIsZero(t *testing.T) {
	var nilSrc *Source
	assert.True(t, nilSrc.IsZero())
	assert.True(t, NewDense([]int{2, 1, 1}).IsZero())
	assert.True(t, NewSparse([]int{2, 1, 1}, nil, nil).IsZero())

	d := NewDense([]int{2, 1, 1})
	d.Dense[1] = complex(0, 1)
	assert.False(t, d.IsZero())
	assert.False(t, NewSparse([]int{2, 1, 1}, [][]int{{0, 0, 0}}, []complex128{1}).IsZero())
}

func TestMaskFlattensCoordinates(t *testing.T) {
	src := NewSparse([]int{2, 2, 2}, [][]int{{1, 0, 1}, {0, 1, 0}}, []complex128{1, 1})
	m := src.Mask()
	assert.Equal(t, 2, m.Len())
	// cached on repeat calls
	assert.Same(t, m, src.Mask())
}
