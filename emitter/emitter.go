// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emitter

import "github.com/cpmech/gosl/chk"

// Emitter owns the particle array for one material body and exposes the
// material constants cells read during scatter. The simulation
// controller owns the Emitter exclusively; cell interpolation records
// hold non-owning references into its particle slice, valid only during
// a step.
type Emitter struct {
	Mat       *Material
	particles []*Particle
}

// NewEmitter creates an Emitter bound to the given material. Particles are
// added with Add; NewParticle and NewJittered create them.
func NewEmitter(mat *Material) *Emitter {
	return &Emitter{Mat: mat}
}

// Add appends a particle to the emitter's owned array. The particle must
// belong to this emitter's material.
func (o *Emitter) Add(p *Particle) error {
	if p.Mat != o.Mat {
		return chk.Err("emitter: particle material does not match emitter material %q", o.Mat.Name)
	}
	o.particles = append(o.particles, p)
	return nil
}

// Count returns the number of particles owned by this emitter.
func (o *Emitter) Count() int {
	return len(o.particles)
}

// At returns the i-th particle (0-based).
func (o *Emitter) At(i int) *Particle {
	return o.particles[i]
}

// Each calls f for every particle, in index order. f must not retain the
// pointer beyond the step.
func (o *Emitter) Each(f func(p *Particle)) {
	for _, p := range o.particles {
		f(p)
	}
}

// TotalMass returns the sum of particle masses, used by mass-conservation
// checks.
func (o *Emitter) TotalMass() float64 {
	var m float64
	for _, p := range o.particles {
		m += p.Mass
	}
	return m
}
