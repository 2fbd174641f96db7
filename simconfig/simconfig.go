// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simconfig implements the solver's external configuration,
// read from a JSON file, one struct per concern.
package simconfig

import (
	"encoding/json"
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/wavesim/waveerr"
)

// GridConfig describes the regular grid and its domain decomposition.
type GridConfig struct {
	PixelSize  float64    `json:"pixelSize"`          // grid spacing in wavelengths
	Wavelength *float64   `json:"wavelength"`         // if nil, k0 = 2*pi*pixelSize; else k0 = 2*pi/wavelength
	Periodic   [3]bool    `json:"periodic"`           // per-axis periodicity
	NDomains   [3]int     `json:"nDomains"`           // subdomain tile counts
	NBoundary  int        `json:"nBoundary"`          // correction matrix size
}

// IterationConfig describes the preconditioned Richardson loop.
type IterationConfig struct {
	NSlots          int     `json:"nSlots"`          // per-domain scratch slots, >= 2
	MaxIterations   int     `json:"maxIterations"`   // hard cap
	Threshold       float64 `json:"threshold"`       // convergence threshold
	DivergenceLimit float64 `json:"divergenceLimit"` // divergence threshold
	Alpha           float64 `json:"alpha"`           // Richardson step
}

// SetDefault fills in the documented defaults.
func (o *IterationConfig) SetDefault() {
	if o.NSlots == 0 {
		o.NSlots = 3
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = 1000
	}
	if o.Threshold == 0 {
		o.Threshold = 1e-6
	}
	if o.DivergenceLimit == 0 {
		o.DivergenceLimit = 1e6
	}
	if o.Alpha == 0 {
		o.Alpha = 0.75
	}
}

// DeviceConfig describes device assignment and optional debug behaviour.
type DeviceConfig struct {
	Devices              []string `json:"devices"`              // round-robin assignment target
	ActivityOptimization bool     `json:"activityOptimization"` // optional inactive-domain skip
	Debug                bool     `json:"debug"`                // keep inverse kernel after calibration
}

// Config bundles the full enumerated solver configuration.
type Config struct {
	Grid      GridConfig      `json:"grid"`
	Iteration IterationConfig `json:"iteration"`
	Device    DeviceConfig    `json:"device"`

	// Shape is the full refractive-index map shape (Nx,Ny,Nz); set by the
	// caller before Validate, since it comes from the input array, not JSON.
	Shape [3]int `json:"-"`
	// Maxwell selects the vector (Maxwell) domain variant; Helmholtz otherwise.
	Maxwell bool `json:"maxwell"`
}

// ReadFile reads and unmarshals a JSON configuration file, applying
// defaults before unmarshalling.
func ReadFile(path string) (*Config, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, waveerr.NewConfigError("path", "cannot read configuration file: "+err.Error())
	}
	var cfg Config
	cfg.Iteration.SetDefault()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, waveerr.NewConfigError("json", "cannot unmarshal configuration file: "+err.Error())
	}
	return &cfg, nil
}

// Validate checks the fatal, pre-allocation configuration invariants of
// starting a run: positive grid extents and subdomain counts on every
// axis, at least 2 slots, a Richardson step in (0,1], and n_boundary at
// most half the subdomain size on every non-periodic axis. Inconsistent
// tuple lengths cannot be expressed with the [3]-typed fields above. An
// empty device list is set to a single "cpu" entry.
func (c *Config) Validate() error {
	for d := 0; d < 3; d++ {
		if c.Shape[d] <= 0 {
			return waveerr.NewConfigError("shape", "refractive-index map must be 3-D with positive extents")
		}
		if c.Grid.NDomains[d] <= 0 {
			return waveerr.NewConfigError("nDomains", "each axis must have at least one subdomain")
		}
	}
	if c.Iteration.NSlots < 2 {
		return waveerr.NewConfigError("nSlots", "at least 2 scratch slots are required")
	}
	if c.Iteration.Alpha <= 0 || c.Iteration.Alpha > 1 {
		return waveerr.NewConfigError("alpha", "Richardson step must be in (0,1]")
	}
	for d := 0; d < 3; d++ {
		if c.Grid.Periodic[d] {
			continue
		}
		subSize := (c.Shape[d] + c.Grid.NDomains[d] - 1) / c.Grid.NDomains[d]
		if c.Grid.NBoundary > subSize/2 {
			return waveerr.NewConfigError("nBoundary", "exceeds half the subdomain size on a non-periodic axis")
		}
	}
	if len(c.Device.Devices) == 0 {
		c.Device.Devices = []string{"cpu"}
	}
	return nil
}

// K0 returns the free-space wavenumber implied by the configuration
// (k0 = 2*pi*pixelSize if wavelength is omitted, else 2*pi/wavelength).
func (g *GridConfig) K0() float64 {
	if g.Wavelength == nil {
		return 2.0 * math.Pi * g.PixelSize
	}
	return 2.0 * math.Pi / *g.Wavelength
}
