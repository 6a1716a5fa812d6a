// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"testing"

	"github.com/all-in-one-of/MeltingSimulation/emitter"
	"github.com/all-in-one-of/MeltingSimulation/grid"
	"github.com/all-in-one-of/MeltingSimulation/mkernel"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

func testMaterial(tst *testing.T) *emitter.Material {
	prms := fun.Prms{
		&fun.Prm{N: "mu0", V: 1.0e4},
		&fun.Prm{N: "lambda0", V: 1.0e4},
		&fun.Prm{N: "hardness", V: 10},
		&fun.Prm{N: "thetac", V: 0.025},
		&fun.Prm{N: "thetas", V: 0.0075},
		&fun.Prm{N: "cp_solid", V: 2.1},
		&fun.Prm{N: "cp_liquid", V: 4.2},
		&fun.Prm{N: "k_solid", V: 2.2},
		&fun.Prm{N: "k_liquid", V: 0.6},
		&fun.Prm{N: "latent_heat", V: 334.0},
		&fun.Prm{N: "tmelt", V: 1000.0},
	}
	mat, err := emitter.NewMaterial("ice", prms)
	if err != nil {
		tst.Fatalf("unexpected error building material: %v", err)
	}
	return mat
}

func newTestGrid(tst *testing.T, gravity [3]float64) *grid.Grid {
	g, err := grid.New(grid.Config{
		BoxOrigin: [3]float64{0.1, 0.1, 0.1},
		BoxSide:   0.8,
		N:         10,
		Gravity:   gravity,
		Tau:       6,
		Alpha:     0,
		Beta:      0,
		Solver:    mkernel.DefaultSolverConfig(),
	})
	if err != nil {
		tst.Fatalf("grid.New failed: %v", err)
	}
	return g
}

// TestSingleParticleGravityDrop checks a single particle at
// (0.5,0.5,0.5), mass 1, zero velocity/temperature, gravity on, explicit
// integration, one step of dt=0.01 -> new velocity ~= (0,-0.0981,0),
// position ~= (0.5, 0.499..., 0.5).
func TestSingleParticleGravityDrop(tst *testing.T) {
	chk.PrintTitle("single particle gravity drop")
	g := newTestGrid(tst, [3]float64{0, -9.81, 0})
	mat := testMaterial(tst)
	em := emitter.NewEmitter(mat)
	p := emitter.NewParticle(mat, [3]float64{0.5, 0.5, 0.5}, 1.0, 0)
	if err := em.Add(p); err != nil {
		tst.Fatalf("add particle failed: %v", err)
	}

	c := &Controller{
		Grid:     g,
		Emitters: []*emitter.Emitter{em},
		Dt:       0.01,
		Box:      emitter.Box{Min: [3]float64{0.1, 0.1, 0.1}, Max: [3]float64{0.9, 0.9, 0.9}},
	}
	c.Step()

	chk.Scalar(tst, "vx", 1e-6, p.Velocity[0], 0)
	chk.Scalar(tst, "vy", 1e-4, p.Velocity[1], -0.0981)
	chk.Scalar(tst, "vz", 1e-6, p.Velocity[2], 0)
	chk.Scalar(tst, "x", 1e-6, p.Position[0], 0.5)
	chk.Scalar(tst, "y", 1e-4, p.Position[1], 0.5+0.01*(-0.0981))
	chk.Scalar(tst, "z", 1e-6, p.Position[2], 0.5)
}

// TestEightParticleFaceVelocityAverage checks eight particles on a
// 0.02-spaced cube around (0.5,0.5,0.5), mass 0.1, velocity (0.1,0,0) ->
// after scatter, the surrounding cell-face X velocity averages to 0.1
// within 1e-6, and gather at alpha=0 returns 0.1 at each particle.
func TestEightParticleFaceVelocityAverage(tst *testing.T) {
	chk.PrintTitle("eight particle face velocity average")
	g := newTestGrid(tst, [3]float64{0, 0, 0})
	mat := testMaterial(tst)
	em := emitter.NewEmitter(mat)

	half := 0.01
	for _, dx := range []float64{-half, half} {
		for _, dy := range []float64{-half, half} {
			for _, dz := range []float64{-half, half} {
				pos := [3]float64{0.5 + dx, 0.5 + dy, 0.5 + dz}
				p := emitter.NewParticle(mat, pos, 0.1, 0)
				p.Velocity = [3]float64{0.1, 0, 0}
				if err := em.Add(p); err != nil {
					tst.Fatalf("add particle failed: %v", err)
				}
			}
		}
	}

	g.ClearCells()
	g.AccumulateParticleContributions(em)
	g.TransferParticleData()

	for i := range g.FacesX {
		f := &g.FacesX[i]
		if f.Mass == 0 {
			continue
		}
		chk.Scalar(tst, "face vx", 1e-6, f.Velocity, 0.1)
		f.VelocityStar = f.Velocity
	}
	for i := range g.FacesY {
		g.FacesY[i].VelocityStar = g.FacesY[i].Velocity
	}
	for i := range g.FacesZ {
		g.FacesZ[i].VelocityStar = g.FacesZ[i].Velocity
	}

	g.ScatterToParticles(em)
	em.Each(func(p *emitter.Particle) {
		chk.Scalar(tst, "particle vx", 1e-6, p.Velocity[0], 0.1)
	})
}

// TestMassConservationAcrossTransfer checks Sum_c m_c = Sum_p m_p, the
// mass-conservation invariant the transfer protocol must preserve.
func TestMassConservationAcrossTransfer(tst *testing.T) {
	chk.PrintTitle("mass conservation across transfer")
	g := newTestGrid(tst, [3]float64{0, 0, 0})
	mat := testMaterial(tst)
	em := emitter.NewEmitter(mat)
	for i := 0; i < 27; i++ {
		dx := float64(i%3-1) * 0.02
		dy := float64((i/3)%3-1) * 0.02
		dz := float64(i/9-1) * 0.02
		p := emitter.NewParticle(mat, [3]float64{0.5 + dx, 0.5 + dy, 0.5 + dz}, 0.05, 0)
		if err := em.Add(p); err != nil {
			tst.Fatalf("add particle failed: %v", err)
		}
	}

	g.ClearCells()
	g.AccumulateParticleContributions(em)
	g.TransferParticleData()

	var massViaCells float64
	for idx := range g.Centres {
		massViaCells += g.Centres[idx].Mass
	}
	chk.Scalar(tst, "sum m_c", 1e-6, massViaCells, em.TotalMass())
}
