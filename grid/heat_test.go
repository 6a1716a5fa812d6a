// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/all-in-one-of/MeltingSimulation/mkernel"
	"github.com/cpmech/gosl/chk"
)

// newUnitGrid builds an n-cells-per-side grid with h=1 and default solver
// settings, for direct manipulation of cell/face state in isolation from
// particle transfer.
func newUnitGrid(tst *testing.T, n int) *Grid {
	g, err := New(Config{
		BoxOrigin: [3]float64{0, 0, 0},
		BoxSide:   float64(n - 2),
		N:         n,
		Solver:    mkernel.SolverConfig{MaxIters: 2000, Tol: 1e-9},
	})
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}
	if g.H != 1 {
		tst.Fatalf("expected h=1, got %v", g.H)
	}
	return g
}

// TestHeatDiffusionSteadyState checks the diffusion solve against a known
// steady state: all boundary cells held at T=100, interior initial T=0,
// kappa=1, m_c=1, h=1, dt=0.1, 200 steps -> interior temperatures converge
// to 100 within 1e-3.
func TestHeatDiffusionSteadyState(tst *testing.T) {
	chk.PrintTitle("heat diffusion steady state")
	n := 6
	g := newUnitGrid(tst, n)
	g.Cfg.Solver.MaxIters = 2000
	g.Cfg.Solver.Tol = 1e-9

	for idx := range g.Centres {
		c := &g.Centres[idx]
		if onWall(c.I, c.J, c.K, n) {
			c.State = Colliding
			c.Temp = 100
		} else {
			c.State = Interior
			c.Mass = 1
			c.Temp = 0
		}
	}
	for i := range g.FacesX {
		g.FacesX[i].Conductivity = 1
	}
	for i := range g.FacesY {
		g.FacesY[i].Conductivity = 1
	}
	for i := range g.FacesZ {
		g.FacesZ[i].Conductivity = 1
	}

	dt := 0.1
	for step := 0; step < 200; step++ {
		g.AHeat.Start()
		for i := range g.BHeat {
			g.BHeat[i] = 0
		}
		g.SolveHeat(dt)
	}

	for idx := range g.Centres {
		c := &g.Centres[idx]
		if c.State != Interior {
			continue
		}
		if diff := c.Temp - 100; diff > 1e-3 || diff < -1e-3 {
			tst.Fatalf("interior cell (%d,%d,%d) did not converge to 100: got %v", c.I, c.J, c.K, c.Temp)
		}
	}
}
