// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "github.com/all-in-one-of/MeltingSimulation/mkernel"

// ProjectVelocity enforces mass-weighted incompressibility coupled to the
// plastic volume ratio on interior cells:
//
//   div(v_f) + (1/dt)*(1 - 1/J_E) + lambda^-1_c * p / dt = 0
//
// Assembled as a symmetric Poisson-like system A*p = b (seven-point
// stencil, Dirichlet p=0 at Empty cells, Neumann at Colliding faces, the
// lambda^-1_c/dt^2 term added to the diagonal), solved with CG, after
// which v_f <- v_f - dt*grad(p)/m_f on interior faces.
func (g *Grid) ProjectVelocity(dt float64) mkernel.Result {
	h := g.H
	h2inv := 1 / (h * h)
	n := g.N

	neighbourState := func(i, j, k int) State {
		if i < 0 || i >= n || j < 0 || j >= n || k < 0 || k >= n {
			return Colliding
		}
		return g.Centres[g.Index(i, j, k)].State
	}

	for idx := range g.Centres {
		c := &g.Centres[idx]
		if c.State != Interior {
			g.APressure.Put(idx, idx, 1)
			g.BPressure[idx] = 0
			continue
		}
		divv := g.faceDivergence(c.I, c.J, c.K)
		diag := c.InvLambda / (dt * dt)
		rhs := -(1.0/dt)*divv - (1.0/(dt*dt))*(1-1/safeJE(c.DetFE))

		neighbours := [6][3]int{
			{c.I - 1, c.J, c.K}, {c.I + 1, c.J, c.K},
			{c.I, c.J - 1, c.K}, {c.I, c.J + 1, c.K},
			{c.I, c.J, c.K - 1}, {c.I, c.J, c.K + 1},
		}
		for _, nb := range neighbours {
			st := neighbourState(nb[0], nb[1], nb[2])
			if st == Colliding {
				continue // Neumann: no flux through a colliding face
			}
			diag += h2inv
			if st == Interior {
				g.APressure.Put(idx, g.Index(nb[0], nb[1], nb[2]), -h2inv)
			}
			// Empty: Dirichlet p=0, contributes 0 to rhs, diag already counted
		}
		g.APressure.Put(idx, idx, diag)
		g.BPressure[idx] = rhs
	}

	Am := g.APressure.ToMatrix(nil)
	x0 := make([]float64, len(g.BPressure))
	for idx := range g.Centres {
		x0[idx] = g.Centres[idx].Pressure
	}
	p, res := mkernel.CG(Am, g.BPressure, x0, g.Cfg.Solver)
	for idx := range g.Centres {
		g.Centres[idx].Pressure = p[idx]
	}

	g.applyPressureGradient(dt)
	return res
}

// faceDivergence computes (1/h)*sum over axes of (vstar_upper - vstar_lower)
// at cell (i,j,k).
func (g *Grid) faceDivergence(i, j, k int) float64 {
	lowX := g.FacesX[g.Index(i, j, k)].VelocityStar
	lowY := g.FacesY[g.Index(i, j, k)].VelocityStar
	lowZ := g.FacesZ[g.Index(i, j, k)].VelocityStar
	var upX, upY, upZ float64
	if i+1 < g.N {
		upX = g.FacesX[g.Index(i+1, j, k)].VelocityStar
	}
	if j+1 < g.N {
		upY = g.FacesY[g.Index(i, j+1, k)].VelocityStar
	}
	if k+1 < g.N {
		upZ = g.FacesZ[g.Index(i, j, k+1)].VelocityStar
	}
	return ((upX - lowX) + (upY - lowY) + (upZ - lowZ)) / g.H
}

// applyPressureGradient updates v_f <- v_f - dt*grad(p)/m_f on interior
// faces.
func (g *Grid) applyPressureGradient(dt float64) {
	update := func(faces []CellFace, lower func(f *CellFace) float64, upper func(f *CellFace) float64) {
		parallelForFaces(faces, func(f *CellFace) {
			if f.State != Interior || f.Mass == 0 {
				return
			}
			gradp := (upper(f) - lower(f)) / g.H
			f.VelocityStar -= dt * gradp / f.Mass
		})
	}
	update(g.FacesX,
		func(f *CellFace) float64 {
			i := f.I
			if i > 0 {
				i--
			}
			return g.Centres[g.Index(i, f.J, f.K)].Pressure
		},
		func(f *CellFace) float64 { return g.Centres[g.Index(f.I, f.J, f.K)].Pressure })
	update(g.FacesY,
		func(f *CellFace) float64 {
			j := f.J
			if j > 0 {
				j--
			}
			return g.Centres[g.Index(f.I, j, f.K)].Pressure
		},
		func(f *CellFace) float64 { return g.Centres[g.Index(f.I, f.J, f.K)].Pressure })
	update(g.FacesZ,
		func(f *CellFace) float64 {
			k := f.K
			if k > 0 {
				k--
			}
			return g.Centres[g.Index(f.I, f.J, k)].Pressure
		},
		func(f *CellFace) float64 { return g.Centres[g.Index(f.I, f.J, f.K)].Pressure })
}

func safeJE(je float64) float64 {
	if je == 0 {
		return 1e-12
	}
	return je
}
