// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mkernel

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// tridiagonal builds the n x n SPD tridiagonal matrix with 2 on the
// diagonal and -1 on the off-diagonals, a standard CG smoke-test system.
func tridiagonal(n int) *la.CCMatrix {
	T := new(la.Triplet)
	T.Init(n, n, 3*n)
	for i := 0; i < n; i++ {
		T.Put(i, i, 2.0)
		if i > 0 {
			T.Put(i, i-1, -1.0)
		}
		if i < n-1 {
			T.Put(i, i+1, -1.0)
		}
	}
	return T.ToMatrix(nil)
}

func TestCGSolvesTridiagonal(tst *testing.T) {
	chk.PrintTitle("CG on SPD tridiagonal system")
	n := 20
	A := tridiagonal(n)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1.0
	}
	x0 := make([]float64, n)
	cfg := SolverConfig{MaxIters: 200, Tol: 1e-10}
	x, res := CG(A, b, x0, cfg)
	if !res.Converged {
		tst.Fatalf("CG did not converge: residual=%v iters=%v", res.Residual, res.Iters)
	}
	Ax := matvec(A, x)
	for i := 0; i < n; i++ {
		if math.Abs(Ax[i]-b[i]) > 1e-6 {
			tst.Fatalf("Ax != b at %d: %v vs %v", i, Ax[i], b[i])
		}
	}
}

func TestMINRESSolvesIndefinite(tst *testing.T) {
	chk.PrintTitle("MINRES on symmetric indefinite system")
	n := 10
	T := new(la.Triplet)
	T.Init(n, n, 3*n)
	for i := 0; i < n; i++ {
		// shifted tridiagonal: indefinite for a range of i
		T.Put(i, i, float64(i)-float64(n)/2.0+0.5)
		if i > 0 {
			T.Put(i, i-1, 0.5)
			T.Put(i-1, i, 0.5)
		}
	}
	A := T.ToMatrix(nil)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1.0
	}
	x0 := make([]float64, n)
	cfg := SolverConfig{MaxIters: 500, Tol: 1e-9}
	x, res := MINRES(A, b, x0, 0, nil, cfg)
	Ax := matvec(A, x)
	var maxerr float64
	for i := 0; i < n; i++ {
		e := math.Abs(Ax[i] - b[i])
		if e > maxerr {
			maxerr = e
		}
	}
	if maxerr > 1e-4 {
		tst.Fatalf("MINRES residual too large: %v (reported residual=%v, iters=%v)", maxerr, res.Residual, res.Iters)
	}
}

func TestMINRESWithShift(tst *testing.T) {
	chk.PrintTitle("MINRES solves (A - sigma I) x = b")
	n := 8
	A := tridiagonal(n)
	b := make([]float64, n)
	for i := range b {
		b[i] = float64(i + 1)
	}
	x0 := make([]float64, n)
	sigma := 0.3
	cfg := SolverConfig{MaxIters: 300, Tol: 1e-9}
	x, _ := MINRES(A, b, x0, sigma, nil, cfg)
	Ax := matvec(A, x)
	for i := range Ax {
		Ax[i] -= sigma * x[i]
	}
	for i := 0; i < n; i++ {
		if math.Abs(Ax[i]-b[i]) > 1e-4 {
			tst.Fatalf("(A-sigma I)x != b at %d: %v vs %v", i, Ax[i], b[i])
		}
	}
}
