// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simconfig

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cpmech/wavesim/waveerr"
)

func validConfig() *Config {
	cfg := &Config{Shape: [3]int{64, 32, 1}}
	cfg.Grid.PixelSize = 0.25
	cfg.Grid.Periodic = [3]bool{false, false, true}
	cfg.Grid.NDomains = [3]int{2, 1, 1}
	cfg.Grid.NBoundary = 8
	cfg.Iteration.SetDefault()
	return cfg
}

func TestSetDefaultFillsDocumentedValues(t *testing.T) {
	var it IterationConfig
	it.SetDefault()
	assert.Equal(t, 3, it.NSlots)
	assert.Equal(t, 1000, it.MaxIterations)
	assert.Equal(t, 1e-6, it.Threshold)
	assert.Equal(t, 1e6, it.DivergenceLimit)
	assert.Equal(t, 0.75, it.Alpha)
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
	// devices defaulted to a single cpu entry
	assert.Equal(t, []string{"cpu"}, cfg.Device.Devices)
}

func TestValidateRejectsBadShape(t *testing.T) {
	cfg := validConfig()
	cfg.Shape = [3]int{64, 0, 1}
	var cerr *waveerr.ConfigError
	assert.ErrorAs(t, cfg.Validate(), &cerr)
	assert.Equal(t, "shape", cerr.Field)
}

func TestValidateRejectsTooLargeBoundary(t *testing.T) {
	cfg := validConfig()
	cfg.Grid.NBoundary = 32 // subdomain size along x is 32, limit is 16
	var cerr *waveerr.ConfigError
	assert.ErrorAs(t, cfg.Validate(), &cerr)
	assert.Equal(t, "nBoundary", cerr.Field)

	// the same boundary is fine once the axis is periodic
	cfg.Grid.Periodic = [3]bool{true, true, true}
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadIteration(t *testing.T) {
	cfg := validConfig()
	cfg.Iteration.NSlots = 1
	var cerr *waveerr.ConfigError
	assert.ErrorAs(t, cfg.Validate(), &cerr)

	cfg = validConfig()
	cfg.Iteration.Alpha = 1.5
	assert.ErrorAs(t, cfg.Validate(), &cerr)
	assert.Equal(t, "alpha", cerr.Field)
}

func TestK0(t *testing.T) {
	g := GridConfig{PixelSize: 0.25}
	assert.InDelta(t, 2*math.Pi*0.25, g.K0(), 1e-15)

	wl := 0.5
	g.Wavelength = &wl
	assert.InDelta(t, 2*math.Pi/0.5, g.K0(), 1e-15)
}
