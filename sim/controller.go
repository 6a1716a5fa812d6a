// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim implements the simulation controller: it owns the Grid and
// the Emitters, drives fixed-step iteration, triggers first-step volume
// initialisation, and hands frames to an external Exporter, the way
// fem.Domain/fem.Solver drive a FE analysis's load stages in the
// teacher.
package sim

import (
	"github.com/all-in-one-of/MeltingSimulation/emitter"
	"github.com/all-in-one-of/MeltingSimulation/grid"
	"github.com/all-in-one-of/MeltingSimulation/mkernel"
	"github.com/all-in-one-of/MeltingSimulation/scene"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Controller drives the simulation loop: owns the Emitters and the Grid,
// drives each time step, handles first-step volume initialisation, and
// triggers frame export.
type Controller struct {
	Grid     *grid.Grid
	Emitters []*emitter.Emitter

	Dt     float64
	Frames int
	Box    emitter.Box

	Verbose bool
	step    int
}

// New builds a Controller from a parsed Scene: constructs the Grid, and
// one Emitter per EmitterSpec, seeded as a plain or jittered lattice.
func New(sc *scene.Scene, verbose bool) (*Controller, error) {
	g, err := grid.New(grid.Config{
		BoxOrigin:  sc.BoxOrigin,
		BoxSide:    sc.BoxSide,
		N:          sc.N,
		Gravity:    sc.Gravity,
		TAmbient:   sc.TAmbient,
		THeat:      sc.THeat,
		HeatPlaneJ: sc.HeatPlaneJ,
		Implicit:   sc.Implicit,
		Tau:        sc.Tau,
		Alpha:      sc.Alpha,
		Beta:       sc.Beta,
		Solver:     mkernel.DefaultSolverConfig(),
	})
	if err != nil {
		return nil, err
	}

	c := &Controller{
		Grid:    g,
		Dt:      sc.Dt,
		Frames:  sc.Frames,
		Verbose: verbose,
		Box: emitter.Box{
			Min: sc.BoxOrigin,
			Max: [3]float64{
				sc.BoxOrigin[0] + sc.BoxSide,
				sc.BoxOrigin[1] + sc.BoxSide,
				sc.BoxOrigin[2] + sc.BoxSide,
			},
		},
	}

	for _, es := range sc.Emitters {
		mat, ok := sc.Materials[es.Material]
		if !ok {
			return nil, chk.Err("sim: emitter refers to unknown material %q", es.Material)
		}
		em := emitter.NewEmitter(mat)
		jitterFrac := 0.0
		if es.Jitter {
			jitterFrac = es.JitterFrac
		}
		particles := emitter.NewJittered(mat, es.Centre, es.Spacing, es.Nx, es.Ny, es.Nz, jitterFrac, es.Mass, es.Temperature)
		for _, p := range particles {
			p.MaterialTag = es.Tag
			if err := em.Add(p); err != nil {
				return nil, err
			}
		}
		c.Emitters = append(c.Emitters, em)
	}
	return c, nil
}

// Step advances the simulation by one Δt, in a fixed control flow:
//
//   clearCells -> accumulate -> transfer -> (first step) initVolumes ->
//   classify -> deviatoric -> boundary -> project -> heat -> scatter ->
//   (each particle) presetForStep -> update
func (c *Controller) Step() {
	g := c.Grid
	g.ClearCells()
	for _, em := range c.Emitters {
		g.AccumulateParticleContributions(em)
	}
	g.TransferParticleData()
	if g.IsFirstStep() {
		for _, em := range c.Emitters {
			g.ComputeInitialParticleVolumes(em)
		}
	}
	g.ClassifyCells()
	g.ComputeDeviatoricVelocity(c.Dt)
	g.ApplyBoundaryVelocities()
	if res := g.ProjectVelocity(c.Dt); !res.Converged && c.Verbose {
		io.PfYel("warning: pressure solve did not converge (iters=%d residual=%e)\n", res.Iters, res.Residual)
	}
	if res := g.SolveHeat(c.Dt); !res.Converged && c.Verbose {
		io.PfYel("warning: heat solve did not converge (iters=%d residual=%e)\n", res.Iters, res.Residual)
	}
	for _, em := range c.Emitters {
		g.ScatterToParticles(em)
		em.Each(func(p *emitter.Particle) {
			p.PresetForStep(g.Cfg.Alpha, g.Cfg.Beta)
			p.Update(c.Dt, c.Box)
		})
	}
	g.MarkStepDone()
	c.step++
}

// Run iterates Frames steps, handing each frame to exp. A nil exporter
// runs the simulation without exporting, useful for tests and headless
// benchmarking.
func (c *Controller) Run(exp Exporter) error {
	for f := 0; f < c.Frames; f++ {
		c.Step()
		if c.Verbose {
			io.Pf("frame %d/%d done\n", f+1, c.Frames)
		}
		if exp != nil {
			if err := exp.Export(f, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// StepCount returns the number of steps run so far.
func (c *Controller) StepCount() int {
	return c.step
}
