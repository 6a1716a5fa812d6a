// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emitter

import (
	"math"

	"github.com/all-in-one-of/MeltingSimulation/mkernel"
)

// Box is the static collision boundary the particle advects inside: an
// axis-aligned region with a thin collision layer at the outer edge,
// matching the grid's bounding box.
type Box struct {
	Min, Max [3]float64
}

// Update advances a particle by one time step: F = (I + dt*gradv)*FE*FP is
// split into new FE, FP (plastic projection), phase transition runs on U,
// the particle sticks on box collision, then position advects.
func (p *Particle) Update(dt float64, box Box) {
	p.advanceDeformationGradient(dt)
	p.runPlasticSplit()
	p.runPhaseTransition(dt)
	p.resolveBoxCollision(box)
	p.advancePosition(dt)
}

// advanceDeformationGradient computes F = (I + dt*gradv) * FE * FP and
// keeps the trial elastic part (I + dt*gradv) * FE for runPlasticSplit.
func (p *Particle) advanceDeformationGradient(dt float64) mkernel.Mat3 {
	var dF mkernel.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dF[i][j] = dt * p.VelGrad[i][j]
		}
		dF[i][i] += 1
	}
	FEtrial := mkernel.MulMat3(dF, p.FE)
	F := mkernel.MulMat3(FEtrial, p.FP)
	p.lastF = FEtrial
	return F
}

// runPlasticSplit diagonalises the trial FE via SVD, clamps each singular
// value to [1-thetaC, 1+thetaS], reconstructs FE', and pushes the overflow
// into FP' = V * Sigma_clamped^-1 * U^T * F * FP, where F is the trial FE.
func (p *Particle) runPlasticSplit() {
	F := p.lastF
	lo := 1 - p.Mat.ThetaC
	hi := 1 + p.Mat.ThetaS
	FEnew, clamped, U, V := mkernel.ClampSingularValues(F, lo, hi)

	var sigmaInv mkernel.Mat3
	for i := 0; i < 3; i++ {
		sigmaInv[i][i] = 1.0 / clamped[i]
	}
	Ut := mkernel.TransposeMat3(U)
	FPnew := mkernel.MulMat3(mkernel.MulMat3(mkernel.MulMat3(V, sigmaInv), Ut), mkernel.MulMat3(F, p.FP))

	p.FE = FEnew
	p.FP = FPnew
	p.JE = safeDet(mkernel.DetMat3(p.FE), &p.Diagnostics.ClampedJE)
	p.JP = safeDet(mkernel.DetMat3(p.FP), &p.Diagnostics.ClampedJP)
	p.J = p.JE * p.JP
	p.refreshFEhat()
	p.refreshLame()
}

// runPhaseTransition routes heat added this step, DeltaQ = cp*mass*DeltaT,
// into the latent-heat buffer U once the particle crosses Tmelt, clamping
// T to Tmelt during the transition. The buffer drains symmetrically in
// both directions (Solid cooling back below Tmelt, Liquid cooling below
// Tmelt) so a particle that reverses mid-transition loses only the heat
// it actually sheds, not its whole accumulated U in one step.
func (p *Particle) runPhaseTransition(dt float64) {
	deltaT := p.Temperature - p.PrevTemperature
	cp := p.Mat.CpFor(p.PhaseState)
	deltaQ := cp * p.Mass * deltaT
	L := p.Mat.LatentHeat

	switch p.PhaseState {
	case Solid:
		if p.Temperature >= p.Mat.Tmelt {
			p.U += deltaQ
			if p.U >= L {
				p.U = L
				p.PhaseState = Liquid
			} else {
				p.Temperature = p.Mat.Tmelt
			}
		} else {
			p.U += deltaQ // deltaQ is negative: heat is leaving, drain any partial progress
			if p.U <= 0 {
				p.U = 0
			} else {
				p.Temperature = p.Mat.Tmelt
			}
		}
	case Liquid:
		if p.Temperature < p.Mat.Tmelt {
			p.U += deltaQ // deltaQ is negative: heat is leaving
			if p.U <= 0 {
				p.U = 0
				p.PhaseState = Solid
			} else {
				p.Temperature = p.Mat.Tmelt
			}
		} else {
			p.U = L
		}
	}
	p.U = clamp01(p.U, 0, L)
	p.PrevTemperature = p.Temperature
}

// resolveBoxCollision sticks the velocity to zero in the boundary-normal
// direction when the particle is at or beyond a static box wall. This
// also recovers a particle that has escaped the grid: clamp position,
// zero outward velocity, flag diagnostics.
func (p *Particle) resolveBoxCollision(box Box) {
	for axis := 0; axis < 3; axis++ {
		if p.Position[axis] <= box.Min[axis] {
			if p.Position[axis] < box.Min[axis] {
				p.Diagnostics.EscapedGrid = true
			}
			p.Position[axis] = box.Min[axis]
			if p.Velocity[axis] < 0 {
				p.Velocity[axis] = 0
			}
		}
		if p.Position[axis] >= box.Max[axis] {
			if p.Position[axis] > box.Max[axis] {
				p.Diagnostics.EscapedGrid = true
			}
			p.Position[axis] = box.Max[axis]
			if p.Velocity[axis] > 0 {
				p.Velocity[axis] = 0
			}
		}
	}
}

// advancePosition advects x <- x + dt*v.
func (p *Particle) advancePosition(dt float64) {
	for axis := 0; axis < 3; axis++ {
		p.Position[axis] += dt * p.Velocity[axis]
	}
}

// clamp01 is a small helper used by the heat-transition logic above to
// keep U inside [0, L] under floating point drift.
func clamp01(u, lo, hi float64) float64 {
	return math.Min(math.Max(u, lo), hi)
}
