// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/all-in-one-of/MeltingSimulation/scene"
	"github.com/all-in-one-of/MeltingSimulation/sim"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input arguments
	fnamepath, _ := io.ArgToFilename(0, "", ".geo", true)
	outdir := io.ArgToString(1, "/tmp/melt")
	verbose := io.ArgToBool(2, true)
	doprof := io.ArgToInt(3, 0)

	// command-line overrides of scene parameters, for quick iteration
	// without editing the scene file
	dtOverride := io.ArgToFloat(4, 0)
	framesOverride := io.ArgToInt(5, 0)

	if verbose {
		io.PfWhite("\nMeltingSimulation -- MPM heat/elastoplastic core\n")
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"scene file path", "fnamepath", fnamepath,
			"output directory", "outdir", outdir,
			"show messages", "verbose", verbose,
			"profiling: 0=none 1=CPU 2=MEM", "doprof", doprof,
			"dt override (0=use scene)", "dtOverride", dtOverride,
			"frames override (0=use scene)", "framesOverride", framesOverride,
		))
	}

	// profiling?
	if doprof > 0 {
		defer utl.DoProf(false, doprof)()
	}

	// read scene
	sc, err := scene.ReadGeo(fnamepath)
	if err != nil {
		chk.Panic("failed to read scene:\n%v", err)
	}
	if dtOverride > 0 {
		sc.Dt = dtOverride
	}
	if framesOverride > 0 {
		sc.Frames = framesOverride
	}

	// build controller
	ctrl, err := sim.New(sc, verbose)
	if err != nil {
		chk.Panic("failed to build controller:\n%v", err)
	}

	// export each frame to CSV
	exp, err := sim.NewCSVExporter(outdir)
	if err != nil {
		chk.Panic("failed to create exporter:\n%v", err)
	}

	// run simulation
	err = ctrl.Run(exp)
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}
}
