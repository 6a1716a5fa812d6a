// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"

	"github.com/all-in-one-of/MeltingSimulation/emitter"
	"github.com/all-in-one-of/MeltingSimulation/mkernel"
	"github.com/cpmech/gosl/la"
)

// firstPiolaLike returns P(F_E)*F_E^T for the fixed-corotated elastic
// potential Psi = mu*||FEhat - Rhat||^2 + lambda/2*(JE-1)^2:
//
//   P = 2*mu*(FEhat - Rhat)*JE^(-1/d) + lambda*(JE-1)*JE*FE^-T
//
// The first term is the derivative of the deviatoric part w.r.t. FE via
// the chain rule FEhat = JE^(-1/d)*FE (holding Rhat fixed, the standard
// fixed-corotated linearisation); the second is the usual volumetric
// penalty term.
func firstPiolaLike(FE, FEhat, Rhat mkernel.Mat3, JE, mu, lambda float64) mkernel.Mat3 {
	scale := math.Pow(math.Max(JE, 1e-12), -1.0/3.0)
	var dev mkernel.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dev[i][j] = (FEhat[i][j] - Rhat[i][j]) * scale
		}
	}
	FEinvT := inverseTranspose(FE)
	var P mkernel.Mat3
	vol := lambda * (JE - 1) * JE
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			P[i][j] = 2*mu*dev[i][j] + vol*FEinvT[i][j]
		}
	}
	return mkernel.MulMat3(P, mkernel.TransposeMat3(FE))
}

func inverseTranspose(A mkernel.Mat3) mkernel.Mat3 {
	det := mkernel.DetMat3(A)
	if det == 0 {
		det = 1e-12
	}
	var adjT mkernel.Mat3
	adjT[0][0] = (A[1][1]*A[2][2] - A[1][2]*A[2][1]) / det
	adjT[0][1] = -(A[0][1]*A[2][2] - A[0][2]*A[2][1]) / det
	adjT[0][2] = (A[0][1]*A[1][2] - A[0][2]*A[1][1]) / det
	adjT[1][0] = -(A[1][0]*A[2][2] - A[1][2]*A[2][0]) / det
	adjT[1][1] = (A[0][0]*A[2][2] - A[0][2]*A[2][0]) / det
	adjT[1][2] = -(A[0][0]*A[1][2] - A[0][2]*A[1][0]) / det
	adjT[2][0] = (A[1][0]*A[2][1] - A[1][1]*A[2][0]) / det
	adjT[2][1] = -(A[0][0]*A[2][1] - A[0][1]*A[2][0]) / det
	adjT[2][2] = (A[0][0]*A[1][1] - A[0][1]*A[1][0]) / det
	return adjT
}

func matVec3(A mkernel.Mat3, v [3]float64) [3]float64 {
	var r [3]float64
	for i := 0; i < 3; i++ {
		r[i] = A[i][0]*v[0] + A[i][1]*v[1] + A[i][2]*v[2]
	}
	return r
}

// ComputeDeviatoricVelocity updates every interior face's VelocityStar
// ignoring the pressure gradient:
//
//   m_f v*_f = m_f v_f + dt*(F_dev + m_f*g.e)
//
// using either the explicit direct sum or, when Cfg.Implicit is set, an
// implicit MINRES/CG solve of (I - dt^2*H/m) v* = rhs per axis.
func (g *Grid) ComputeDeviatoricVelocity(dt float64) {
	if g.Cfg.Implicit {
		g.computeDeviatoricImplicit(dt)
		return
	}
	g.computeDeviatoricExplicit(dt)
}

func (g *Grid) computeDeviatoricExplicit(dt float64) {
	grav := g.Cfg.Gravity
	apply := func(faces []CellFace, axis int) {
		e := axisVec(axis)
		parallelForFaces(faces, func(f *CellFace) {
			if f.Mass == 0 {
				f.VelocityStar = 0
				return
			}
			var fdev float64
			for _, r := range f.Records {
				p := r.P
				P := firstPiolaLike(p.FE, p.FEhat, p.Rhat, p.JE, p.Mu, p.Lambda)
				force := matVec3(P, r.GradN)
				fdev += -p.InitVolume * dot3(force, e)
			}
			f.DevForce = fdev
			gdotE := grav[0]*e[0] + grav[1]*e[1] + grav[2]*e[2]
			f.VelocityStar = f.Velocity + dt*(fdev/f.Mass+gdotE)
		})
	}
	apply(g.FacesX, 0)
	apply(g.FacesY, 1)
	apply(g.FacesZ, 2)
}

func dot3(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// faceGrad pairs a face index with a particle's cubic-spline gradient at
// that face, used to assemble Hessian cross-terms below.
type faceGrad struct {
	idx  int
	grad [3]float64
}

// computeDeviatoricImplicit assembles (I + dt^2*H/m) v* = rhs per axis,
// with every row multiplied by its face mass, (M + dt^2*H) v* = M*rhs, so
// the matrix stays symmetric. It is built as an la.Triplet (the same
// assembly-then-solve split gofem's fem package uses for its global
// Jacobian Kb, e.g. fem/e_diffu.go's AddToKb) and solved with MINRES,
// falling back to CG when MINRES does not converge; the system is not
// tested for definiteness.
//
// H is assembled as a real seven-point-ish sparse Hessian, not a diagonal
// lump: every particle couples every pair of faces inside its own stencil,
// H_ij = 2*mu_p*V_p*(gradN_i . gradN_j), the fixed-corotated shear
// stiffness linearised about the particle's current state. This mirrors
// gofem's per-element stiffness assembly (many elements calling Kb.Put
// at a shared node) with the element replaced by a particle and the node
// replaced by a face; la.Triplet sums duplicate (i,j) entries the same
// way across both.
func (g *Grid) computeDeviatoricImplicit(dt float64) {
	grav := g.Cfg.Gravity
	axes := []struct {
		faces []CellFace
		axis  int
		A     *la.Triplet
		b     []float64
	}{
		{g.FacesX, 0, g.AX, g.BX},
		{g.FacesY, 1, g.AY, g.BY},
		{g.FacesZ, 2, g.AZ, g.BZ},
	}
	for _, ax := range axes {
		e := axisVec(ax.axis)
		gdotE := grav[0]*e[0] + grav[1]*e[1] + grav[2]*e[2]

		for idx := range ax.faces {
			f := &ax.faces[idx]
			var fdev float64
			for _, r := range f.Records {
				p := r.P
				P := firstPiolaLike(p.FE, p.FEhat, p.Rhat, p.JE, p.Mu, p.Lambda)
				force := matVec3(P, r.GradN)
				fdev += -p.InitVolume * dot3(force, e)
			}
			f.DevForce = fdev
			ax.b[idx] = 0
			if f.Mass > 0 {
				ax.b[idx] = f.Mass*f.Velocity + dt*(fdev+f.Mass*gdotE)
			}
		}

		stencil := make(map[*emitter.Particle][]faceGrad)
		for idx := range ax.faces {
			for _, r := range ax.faces[idx].Records {
				stencil[r.P] = append(stencil[r.P], faceGrad{idx, r.GradN})
			}
		}

		diag := make([]float64, len(ax.faces))
		for p, entries := range stencil {
			coeff := 2 * p.Mu * p.InitVolume
			for _, a := range entries {
				if ax.faces[a.idx].Mass == 0 {
					continue
				}
				for _, b := range entries {
					if ax.faces[b.idx].Mass == 0 {
						continue
					}
					h := coeff * dot3(a.grad, b.grad)
					if a.idx == b.idx {
						diag[a.idx] += h
						continue
					}
					ax.A.Put(a.idx, b.idx, dt*dt*h)
				}
			}
		}
		for idx := range ax.faces {
			if ax.faces[idx].Mass == 0 {
				ax.A.Put(idx, idx, 1)
				continue
			}
			ax.A.Put(idx, idx, ax.faces[idx].Mass+dt*dt*diag[idx])
		}

		Am := ax.A.ToMatrix(nil)
		x0 := make([]float64, len(ax.b))
		for idx := range ax.faces {
			if ax.faces[idx].Mass > 0 {
				x0[idx] = ax.b[idx] / ax.faces[idx].Mass
			}
		}
		x, res := mkernel.MINRES(Am, ax.b, x0, 0, nil, g.Cfg.Solver)
		if !res.Converged {
			x, res = mkernel.CG(Am, ax.b, x0, g.Cfg.Solver)
		}
		for idx := range ax.faces {
			ax.faces[idx].VelocityStar = x[idx]
		}
	}
}
