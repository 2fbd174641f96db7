// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/wavesim/calib"
	"github.com/cpmech/wavesim/iterate"
	"github.com/cpmech/wavesim/multidomain"
	"github.com/cpmech/wavesim/simconfig"
	"github.com/cpmech/wavesim/source"
)

func main() {

	verbose := true

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// message
	if mpi.Rank() == 0 {
		io.PfWhite("\nWavesim -- modified Born-series Helmholtz/Maxwell solver\n\n")
	}

	// configuration file and grid shape
	nx := flag.Int("nx", 128, "grid points along x")
	ny := flag.Int("ny", 1, "grid points along y")
	nz := flag.Int("nz", 1, "grid points along z")
	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("Please, provide a configuration filename. Ex.: simulation.json")
	}
	if io.FnExt(fnamepath) == "" {
		fnamepath += ".json"
	}
	if len(flag.Args()) > 1 {
		verbose = io.Atob(flag.Arg(1))
	}

	// profiling?
	defer utl.DoProf(false)()

	cfg, err := simconfig.ReadFile(fnamepath)
	if err != nil {
		chk.Panic("cannot read configuration: %v", err)
	}
	cfg.Shape = [3]int{*nx, *ny, *nz}

	// homogeneous unit-index map with a point source at the grid center.
	// Real simulations come with their own maps; this front-end only
	// demonstrates the solve loop end to end.
	n := cfg.Shape[0] * cfg.Shape[1] * cfg.Shape[2]
	indexMap := make([]complex128, n)
	for i := range indexMap {
		indexMap[i] = 1
	}

	md, err := multidomain.New(cfg, indexMap)
	if err != nil {
		chk.Panic("cannot build domains: %v", err)
	}
	if _, _, err = calib.Calibrate(md.Domains(), verbose); err != nil {
		chk.Panic("calibration failed: %v", err)
	}

	shape := []int{cfg.Shape[0], cfg.Shape[1], cfg.Shape[2]}
	center := [][]int{{cfg.Shape[0] / 2, cfg.Shape[1] / 2, cfg.Shape[2] / 2}}
	if cfg.Maxwell {
		shape = append(shape, 3)
		center[0] = append(center[0], 0)
	}
	md.SetSource(source.NewSparse(shape, center, []complex128{1}))

	res, err := iterate.Solve(md, cfg.Iteration, iterate.Params{Verbose: verbose})
	if err != nil {
		io.Pfred("solve finished without convergence: %v\n", err)
	}
	if mpi.Rank() == 0 {
		io.Pf("iterations = %d\n", res.Iterations)
		io.Pf("residual   = %g\n", res.Residual)
	}
}
