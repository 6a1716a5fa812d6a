// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements the MAC staggered grid: the main workhorse of
// the simulation, owning cell-centre/cell-face records, particle<->grid
// transfer, cell classification, the deviatoric velocity update,
// pressure projection, the heat-diffusion solve, and gather.
package grid

import "github.com/all-in-one-of/MeltingSimulation/emitter"

// State classifies a cell centre or cell face.
type State int

const (
	Interior State = iota
	Empty
	Colliding
)

// InterpRecord is one particle's contribution to a cell centre or face:
// a non-owning reference to the particle plus its cubic B-spline
// weight/gradient and tight-quadratic weight/gradient at that position.
// Cleared and rebuilt every step.
type InterpRecord struct {
	P         *emitter.Particle
	N         float64    // cubic B-spline weight
	GradN     [3]float64 // cubic B-spline gradient
	Nbar      float64    // tight-quadratic weight
	GradNbar  [3]float64 // tight-quadratic gradient
}

// CellCentre is one grid cell's scalar record.
type CellCentre struct {
	I, J, K int

	Mass         float64
	DetF         float64
	DetFE        float64
	DetFP        float64
	HeatCapacity float64
	Temp         float64
	PrevTemp     float64
	InvLambda    float64

	State State

	Records          []InterpRecord
	ContributorCount int

	// pressure-projection scratch
	Pressure float64
}

// CellFace is one of the three (X, Y, Z) face records per cell, sitting at
// the negative side of the cell along its axis.
type CellFace struct {
	I, J, K int
	Axis    int // 0=X, 1=Y, 2=Z

	Mass         float64
	Velocity     float64 // face-normal velocity component, pre-projection: v_f
	VelocityStar float64 // post deviatoric-update, pre-projection: v*_f
	Conductivity float64
	DevForce     float64

	State State

	Records []InterpRecord
}

// reset clears a cell centre's aggregates and interpolation arena in
// place: the backing array is reused via a pointer reset (Records[:0])
// rather than reallocated or walked record-by-record.
func (c *CellCentre) reset() {
	c.Mass, c.DetF, c.DetFE, c.DetFP = 0, 0, 0, 0
	c.HeatCapacity, c.InvLambda = 0, 0
	c.Records = c.Records[:0]
	c.ContributorCount = 0
	c.State = Colliding // pessimistic default until classification runs
	c.Pressure = 0
}

// reset clears a cell face's aggregates and interpolation arena in place.
func (f *CellFace) reset() {
	f.Mass, f.Velocity, f.VelocityStar, f.Conductivity, f.DevForce = 0, 0, 0, 0, 0
	f.Records = f.Records[:0]
	f.State = Interior
}

// axisVec returns the unit normal e_x/e_y/e_z for a face axis.
func axisVec(axis int) [3]float64 {
	var e [3]float64
	e[axis] = 1
	return e
}
