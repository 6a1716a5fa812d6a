// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mkernel

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// SolverConfig bundles the convergence controls shared by CG and MINRES,
// sourced from the scene/material configuration.
type SolverConfig struct {
	MaxIters int     // iteration cap
	Tol      float64 // residual tolerance ||Ax-b|| <= Tol
}

// DefaultSolverConfig returns sane defaults for grid-sized systems.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{MaxIters: 400, Tol: 1e-6}
}

// Result reports what happened during an iterative solve, so callers can
// log a warning on non-convergence and still accept the best iterate.
type Result struct {
	Iters     int
	Residual  float64
	Converged bool
}

// matvec multiplies y = A*x using the sparse compressed-column form, the
// same primitive fem/essenbcs.go uses (la.SpMatVecMulAdd against an
// la.CCMatrix built from a la.Triplet).
func matvec(A *la.CCMatrix, x []float64) []float64 {
	y := make([]float64, len(x))
	la.SpMatVecMulAdd(y, 1, A, x)
	return y
}

func norm(v []float64) float64 {
	return la.VecNorm(v)
}

func axpy(dst []float64, alpha float64, x []float64) {
	for i := range dst {
		dst[i] += alpha * x[i]
	}
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// CG runs the conjugate-gradient method on the symmetric positive-definite
// system A*x = b, starting from a copy of x0 (x0 itself is not modified). The
// residual norm is monotonically non-increasing up to numerical noise.
func CG(A *la.CCMatrix, b []float64, x0 []float64, cfg SolverConfig) (x []float64, res Result) {
	n := len(b)
	x = append([]float64(nil), x0...)
	r := make([]float64, n)
	Ax := matvec(A, x)
	for i := 0; i < n; i++ {
		r[i] = b[i] - Ax[i]
	}
	p := append([]float64(nil), r...)
	rsOld := dot(r, r)
	res.Residual = math.Sqrt(rsOld)
	if res.Residual <= cfg.Tol {
		res.Converged = true
		return
	}
	for it := 0; it < cfg.MaxIters; it++ {
		Ap := matvec(A, p)
		denom := dot(p, Ap)
		if denom == 0 {
			break
		}
		alpha := rsOld / denom
		axpy(x, alpha, p)
		axpy(r, -alpha, Ap)
		rsNew := dot(r, r)
		res.Iters = it + 1
		res.Residual = math.Sqrt(rsNew)
		if res.Residual <= cfg.Tol {
			res.Converged = true
			return
		}
		beta := rsNew / rsOld
		for i := 0; i < n; i++ {
			p[i] = r[i] + beta*p[i]
		}
		rsOld = rsNew
	}
	return
}

// MINRES runs the minimum-residual method (Paige & Saunders) on a symmetric
// (possibly indefinite) system (A - sigma*I)*x = b, with an optional
// symmetric positive-definite preconditioner M (nil means no
// preconditioning: precond is the identity). Used by the implicit
// deviatoric velocity update, whose Hessian-based system need not be
// SPD.
func MINRES(A *la.CCMatrix, b []float64, x0 []float64, sigma float64, precond func([]float64) []float64, cfg SolverConfig) (x []float64, res Result) {
	n := len(b)
	if precond == nil {
		precond = func(v []float64) []float64 { return append([]float64(nil), v...) }
	}
	apply := func(v []float64) []float64 {
		y := matvec(A, v)
		if sigma != 0 {
			for i := range y {
				y[i] -= sigma * v[i]
			}
		}
		return y
	}

	x = append([]float64(nil), x0...)
	r1 := make([]float64, n)
	Ax := apply(x)
	for i := 0; i < n; i++ {
		r1[i] = b[i] - Ax[i]
	}
	y := precond(r1)
	beta1 := math.Sqrt(dot(r1, y))
	res.Residual = norm(r1)
	if beta1 == 0 {
		res.Converged = true
		return
	}

	oldb := 0.0
	beta := beta1
	dbar := 0.0
	epsln := 0.0
	phibar := beta1
	cs := -1.0
	sn := 0.0
	w := make([]float64, n)
	w2 := make([]float64, n)
	r2 := append([]float64(nil), r1...)

	for it := 0; it < cfg.MaxIters; it++ {
		s := 1.0 / beta
		v := make([]float64, n)
		for i := 0; i < n; i++ {
			v[i] = s * y[i]
		}
		y = apply(v)
		if it > 0 {
			ratio := beta / oldb
			axpy(y, -ratio, r1)
		}
		alfa := dot(v, y)
		axpy(y, -alfa/beta, r2)
		r1, r2 = r2, y
		y = precond(r2)
		oldb = beta
		beta = math.Sqrt(dot(r2, y))

		// apply previous Givens rotation
		oldeps := epsln
		delta := cs*dbar + sn*alfa
		gbar := sn*dbar - cs*alfa
		epsln = sn * beta
		dbar = -cs * beta

		// compute and apply the new rotation eliminating beta
		gamma := math.Hypot(gbar, beta)
		if gamma < 1e-300 {
			gamma = 1e-300
		}
		cs = gbar / gamma
		sn = beta / gamma
		phi := cs * phibar
		phibar = sn * phibar

		denom := 1.0 / gamma
		w1 := w2
		w2 = w
		w = make([]float64, n)
		for i := 0; i < n; i++ {
			w[i] = (v[i] - oldeps*w1[i] - delta*w2[i]) * denom
		}
		axpy(x, phi, w)

		res.Iters = it + 1
		res.Residual = math.Abs(phibar)
		if res.Residual <= cfg.Tol {
			res.Converged = true
			return
		}
		if beta == 0 {
			break
		}
	}
	return
}
