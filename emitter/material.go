// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package emitter implements the Particle and its owning container, the
// Emitter.
package emitter

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Material holds the constants shared by every particle of one body. It
// is parsed from scene parameters the way mdl/diffusion.M1.Init connects
// named fun.Prms, and is handed to particle routines as a non-owning
// read-only pointer rather than via a back-reference to the whole
// Emitter.
type Material struct {
	Name string

	Mu0      float64 // base Lame shear modulus
	Lambda0  float64 // base Lame first parameter
	Hardness float64 // xi, plastic hardening coefficient

	ThetaC float64 // compression limit (1-thetaC <= sigma_i)
	ThetaS float64 // stretch limit (sigma_i <= 1+thetaS)

	CpSolid  float64 // heat capacity, solid phase
	CpLiquid float64 // heat capacity, liquid phase
	KSolid   float64 // heat conductivity, solid phase
	KLiquid  float64 // heat conductivity, liquid phase

	LatentHeat float64 // L
	Tmelt      float64 // freezing/melting temperature, Kelvin
}

// NewMaterial builds a Material from scene parameters using fun.Prms,
// following mdl/diffusion.M1.Init's pattern of connecting named parameters.
func NewMaterial(name string, prms fun.Prms) (mat *Material, err error) {
	mat = &Material{Name: name}
	prms.Connect(&mat.Mu0, "mu0", "base shear modulus")
	prms.Connect(&mat.Lambda0, "lambda0", "base Lame lambda")
	prms.Connect(&mat.Hardness, "hardness", "plastic hardening coefficient")
	prms.Connect(&mat.ThetaC, "thetac", "compression limit")
	prms.Connect(&mat.ThetaS, "thetas", "stretch limit")
	prms.Connect(&mat.CpSolid, "cp_solid", "heat capacity, solid")
	prms.Connect(&mat.CpLiquid, "cp_liquid", "heat capacity, liquid")
	prms.Connect(&mat.KSolid, "k_solid", "heat conductivity, solid")
	prms.Connect(&mat.KLiquid, "k_liquid", "heat conductivity, liquid")
	prms.Connect(&mat.LatentHeat, "latent_heat", "latent heat L")
	prms.Connect(&mat.Tmelt, "tmelt", "freezing temperature")
	if mat.Mu0 <= 0 || mat.Lambda0 < 0 {
		return nil, chk.Err("material %q: mu0 and lambda0 must be given and mu0 > 0", name)
	}
	if mat.ThetaC <= 0 || mat.ThetaC >= 1 || mat.ThetaS < 0 {
		return nil, chk.Err("material %q: thetac must be in (0,1) and thetas >= 0", name)
	}
	if mat.LatentHeat <= 0 {
		return nil, chk.Err("material %q: latent_heat must be > 0", name)
	}
	return mat, nil
}

// CpFor returns the heat capacity for the given phase.
func (o *Material) CpFor(phase Phase) float64 {
	if phase == Liquid {
		return o.CpLiquid
	}
	return o.CpSolid
}

// KFor returns the heat conductivity for the given phase.
func (o *Material) KFor(phase Phase) float64 {
	if phase == Liquid {
		return o.KLiquid
	}
	return o.KSolid
}
