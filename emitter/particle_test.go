// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emitter

import (
	"testing"

	"github.com/all-in-one-of/MeltingSimulation/mkernel"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

func testMaterial(tst *testing.T) *Material {
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
		&fun.Prm{N: "tmelt", V: 273.15},
	}
	mat, err := NewMaterial("ice", prms)
	if err != nil {
		tst.Fatalf("unexpected error building material: %v", err)
	}
	return mat
}

func TestNewParticleInvariants(tst *testing.T) {
	chk.PrintTitle("new particle invariants")
	mat := testMaterial(tst)
	p := NewParticle(mat, [3]float64{0.5, 0.5, 0.5}, 1.0, 250)
	if p.JE <= 0 || p.JP <= 0 {
		tst.Fatalf("expected positive determinants, got JE=%v JP=%v", p.JE, p.JP)
	}
	if p.PhaseState != Solid || p.U != 0 {
		tst.Fatalf("expected solid with U=0 below Tmelt, got phase=%v U=%v", p.PhaseState, p.U)
	}
}

func TestPlasticProjectionClampsSingularValues(tst *testing.T) {
	chk.PrintTitle("plastic projection clamps singular values")
	mat := testMaterial(tst)
	p := NewParticle(mat, [3]float64{0, 0, 0}, 1.0, 250)
	// a large stretch velocity gradient along x that would otherwise blow FE apart
	p.VelGrad = mkernel.Mat3{{10, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	box := Box{Min: [3]float64{-10, -10, -10}, Max: [3]float64{10, 10, 10}}
	p.Update(0.1, box)

	lo := 1 - mat.ThetaC
	hi := 1 + mat.ThetaS
	_, s, _, _ := mkernel.ClampSingularValues(p.FE, lo, hi)
	for i, v := range s {
		if v < lo-1e-9 || v > hi+1e-9 {
			tst.Fatalf("singular value %d out of [%v,%v]: %v", i, lo, hi, v)
		}
	}
	if p.JE <= 0 || p.JP <= 0 {
		tst.Fatalf("expected positive determinants after update, got JE=%v JP=%v", p.JE, p.JP)
	}
}

func TestPhaseTransitionLatchesAtLatentHeatBounds(tst *testing.T) {
	chk.PrintTitle("phase transition latches U at 0 and L")
	mat := testMaterial(tst)

	liquid := NewParticle(mat, [3]float64{0, 0, 0}, 1.0, mat.Tmelt+10)
	liquid.PhaseState = Liquid
	liquid.U = mat.LatentHeat
	liquid.PrevTemperature = liquid.Temperature
	liquid.Temperature = mat.Tmelt + 20
	liquid.runPhaseTransition(0.01)
	if liquid.U != mat.LatentHeat {
		tst.Fatalf("liquid particle above Tmelt should retain U=L, got %v", liquid.U)
	}

	solid := NewParticle(mat, [3]float64{0, 0, 0}, 1.0, mat.Tmelt-10)
	solid.PrevTemperature = solid.Temperature
	solid.Temperature = mat.Tmelt - 20
	solid.runPhaseTransition(0.01)
	if solid.U != 0 {
		tst.Fatalf("solid particle below Tmelt should retain U=0, got %v", solid.U)
	}
}

func TestPhaseTransitionDrainsPartiallyOnCoolDown(tst *testing.T) {
	chk.PrintTitle("mid-transition cool-down drains U incrementally")
	mat := testMaterial(tst)

	p := NewParticle(mat, [3]float64{0, 0, 0}, 1.0, mat.Tmelt)
	p.PhaseState = Solid
	p.U = mat.LatentHeat / 2 // already half-melted
	p.PrevTemperature = mat.Tmelt
	p.Temperature = mat.Tmelt - 1 // grid cooled it slightly below Tmelt

	p.runPhaseTransition(0.01)

	wantDrop := mat.CpFor(Solid) * p.Mass * 1.0
	wantU := mat.LatentHeat/2 - wantDrop
	if p.U != wantU {
		tst.Fatalf("expected U to drain by one step's heat loss to %v, got %v", wantU, p.U)
	}
	if p.PhaseState != Solid {
		tst.Fatalf("expected phase to remain Solid mid-transition, got %v", p.PhaseState)
	}
	if p.Temperature != mat.Tmelt {
		tst.Fatalf("expected temperature clamped to Tmelt while U > 0, got %v", p.Temperature)
	}
}

func TestBoxCollisionSticksVelocity(tst *testing.T) {
	chk.PrintTitle("box collision sticks normal velocity")
	mat := testMaterial(tst)
	p := NewParticle(mat, [3]float64{0, 0, 0}, 1.0, 250)
	p.Velocity = [3]float64{-1, 0, 0}
	box := Box{Min: [3]float64{0, -1, -1}, Max: [3]float64{1, 1, 1}}
	p.resolveBoxCollision(box)
	if p.Velocity[0] != 0 {
		tst.Fatalf("expected x-velocity stuck to 0, got %v", p.Velocity[0])
	}
}
