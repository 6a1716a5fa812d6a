// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "github.com/all-in-one-of/MeltingSimulation/mkernel"

// SolveHeat advances cell-centre temperatures by one implicit step (spec
// sec 4.4 Heat diffusion solve):
//
//   (T_c^{n+1} - T_c^n)/dt = sum_faces kappa_f/(m_c*h^2) * (T_c'^{n+1} - T_c^{n+1})
//
// Assembled as A*T = b with diagonal 1/dt + sum of neighbour coefficients,
// off-diagonal -coefficient per Interior neighbour; Empty neighbours
// contribute their (fixed) ambient temperature to b instead of being
// unknowns, and Colliding cells hold their already-assigned fixed
// temperature. Solved with CG.
func (g *Grid) SolveHeat(dt float64) mkernel.Result {
	h2 := g.H * g.H
	n := g.N

	neighbour := func(i, j, k int) (*CellCentre, bool) {
		if i < 0 || i >= n || j < 0 || j >= n || k < 0 || k >= n {
			return nil, false
		}
		return &g.Centres[g.Index(i, j, k)], true
	}

	faceConductivity := func(axis, i, j, k int) float64 {
		switch axis {
		case 0:
			return g.FacesX[g.Index(i, j, k)].Conductivity
		case 1:
			return g.FacesY[g.Index(i, j, k)].Conductivity
		default:
			return g.FacesZ[g.Index(i, j, k)].Conductivity
		}
	}

	for idx := range g.Centres {
		c := &g.Centres[idx]
		if c.State == Colliding || c.State == Empty {
			g.AHeat.Put(idx, idx, 1)
			g.BHeat[idx] = c.Temp
			continue
		}
		if c.Mass == 0 {
			g.AHeat.Put(idx, idx, 1)
			g.BHeat[idx] = c.Temp
			continue
		}

		diag := 1.0 / dt
		rhs := c.Temp / dt

		type nb struct {
			ni, nj, nk int
			axis       int
			fi, fj, fk int
		}
		offsets := [6]nb{
			{c.I - 1, c.J, c.K, 0, c.I, c.J, c.K},
			{c.I + 1, c.J, c.K, 0, c.I + 1, c.J, c.K},
			{c.I, c.J - 1, c.K, 1, c.I, c.J, c.K},
			{c.I, c.J + 1, c.K, 1, c.I, c.J + 1, c.K},
			{c.I, c.J, c.K - 1, 2, c.I, c.J, c.K},
			{c.I, c.J, c.K + 1, 2, c.I, c.J, c.K + 1},
		}
		for _, o := range offsets {
			other, ok := neighbour(o.ni, o.nj, o.nk)
			if !ok {
				continue
			}
			kappa := faceConductivity(o.axis, o.fi, o.fj, o.fk)
			if kappa == 0 {
				continue
			}
			coeff := kappa / (c.Mass * h2)
			diag += coeff
			switch other.State {
			case Interior:
				g.AHeat.Put(idx, g.Index(o.ni, o.nj, o.nk), -coeff)
			case Empty:
				rhs += coeff * other.Temp
			case Colliding:
				rhs += coeff * other.Temp
			}
		}
		g.AHeat.Put(idx, idx, diag)
		g.BHeat[idx] = rhs
	}

	Am := g.AHeat.ToMatrix(nil)
	x0 := make([]float64, len(g.BHeat))
	for idx := range g.Centres {
		x0[idx] = g.Centres[idx].Temp
	}
	T, res := mkernel.CG(Am, g.BHeat, x0, g.Cfg.Solver)
	for idx := range g.Centres {
		g.Centres[idx].PrevTemp = g.Centres[idx].Temp
		g.Centres[idx].Temp = T[idx]
	}
	return res
}
