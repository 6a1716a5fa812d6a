// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emitter

import (
	"math"

	"github.com/all-in-one-of/MeltingSimulation/mkernel"
)

// Phase is the solid/liquid state of a particle.
type Phase int

const (
	Solid Phase = iota
	Liquid
)

// Dim is the fixed spatial dimension of the simulation.
const Dim = 3

const epsDet = 1e-12 // floor used when clamping a non-positive Jacobian

// Particle is a single Lagrangian material point carrying constitutive
// state. It holds a non-owning pointer to its Material rather than a
// back-reference to the whole Emitter, preferring an explicit handle
// over a singleton back-reference.
type Particle struct {
	Mat *Material

	Position     [3]float64
	Velocity     [3]float64
	PrevVelocity [3]float64
	VelGrad      mkernel.Mat3

	Mass        float64 // constant after creation
	InitDensity float64 // accumulated during the first step, then frozen
	InitVolume  float64 // mass / InitDensity, set after the first step

	FE mkernel.Mat3 // elastic deformation gradient, init I
	FP mkernel.Mat3 // plastic deformation gradient, init I

	JE, JP, J float64 // determinants, cached each step

	FEhat mkernel.Mat3 // deviatoric elastic deformation gradient, cached
	Rhat  mkernel.Mat3 // polar rotation of FEhat, cached
	Shat  mkernel.Mat3 // polar stretch of FEhat, cached

	Mu, Lambda float64 // current Lame parameters (depend on Hardness and JP)

	Temperature     float64
	PrevTemperature float64
	U               float64 // transition-heat buffer, in [0, L]
	PhaseState      Phase

	MaterialTag int // passthrough body index for the exporter/viewer only; no effect on physics

	Diagnostics Diagnostics

	lastF mkernel.Mat3 // scratch: trial FE = (I + dt*gradv)*FE from advanceDeformationGradient, consumed by runPlasticSplit
}

// Diagnostics records recoverable anomalies so inner per-particle loops
// never abort: they flag the entity and continue.
type Diagnostics struct {
	ClampedJE     bool // JE was non-positive and was clamped to eps
	ClampedJP     bool // JP was non-positive and was clamped to eps
	EscapedGrid   bool // position fell outside the collision layer and was pulled back
}

// NewParticle creates a particle with identity deformation gradients, at
// rest, at the given temperature: solid below Tmelt, liquid with U = L at
// or above it.
func NewParticle(mat *Material, pos [3]float64, mass, temperature float64) *Particle {
	p := &Particle{
		Mat:             mat,
		Position:        pos,
		Mass:            mass,
		FE:              mkernel.Identity3(),
		FP:              mkernel.Identity3(),
		JE:              1,
		JP:              1,
		J:               1,
		Temperature:     temperature,
		PrevTemperature: temperature,
		PhaseState:      Solid,
	}
	if temperature >= mat.Tmelt {
		p.PhaseState = Liquid
		p.U = mat.LatentHeat
		p.Temperature = math.Max(temperature, mat.Tmelt)
	}
	p.refreshFEhat()
	p.refreshLame()
	return p
}

// refreshFEhat recomputes the deviatoric elastic deformation gradient
// FEhat := JE^(-1/d) * FE and its polar decomposition.
func (p *Particle) refreshFEhat() {
	je := safeDet(p.JE, &p.Diagnostics.ClampedJE)
	scale := math.Pow(je, -1.0/float64(Dim))
	var FEhat mkernel.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			FEhat[i][j] = scale * p.FE[i][j]
		}
	}
	p.FEhat = FEhat
	p.Rhat, p.Shat = mkernel.PolarDecomposition(FEhat)
}

// refreshLame recomputes mu, lambda from the hardness xi and JP:
// mu = mu0 * e^(xi*(1-JP)), lambda = lambda0 * e^(xi*(1-JP)).
func (p *Particle) refreshLame() {
	factor := math.Exp(p.Mat.Hardness * (1 - p.JP))
	p.Mu = p.Mat.Mu0 * factor
	p.Lambda = p.Mat.Lambda0 * factor
}

// safeDet clamps a non-positive Jacobian to a small positive epsilon and
// flags the diagnostic.
func safeDet(j float64, flag *bool) float64 {
	if j <= 0 {
		*flag = true
		return epsDet
	}
	return j
}

// PresetForStep is the reserved step-initial hook: it refreshes
// FEhat/polar and current mu/lambda. The PIC/FLIP blend is already folded
// into Velocity/Temperature by the grid's gather step
// (Grid.ScatterToParticles); alpha and beta are accepted for interface
// symmetry with that blend and are not used here.
func (p *Particle) PresetForStep(alpha, beta float64) {
	p.refreshFEhat()
	p.refreshLame()
}

// GetParticleDataCellFace returns the data a cell-face interpolation
// record reads during scatter.
func (p *Particle) GetParticleDataCellFace() (mass float64, velocity [3]float64, phase Phase) {
	return p.Mass, p.Velocity, p.PhaseState
}

// GetParticleDataCellCentre returns the data a cell-centre interpolation
// record reads during scatter.
func (p *Particle) GetParticleDataCellCentre() (mass, j, jE float64, phase Phase, temperature, invLambda float64) {
	invLambda = 0
	if p.Lambda != 0 {
		invLambda = 1.0 / p.Lambda
	}
	return p.Mass, p.J, p.JE, p.PhaseState, p.Temperature, invLambda
}
