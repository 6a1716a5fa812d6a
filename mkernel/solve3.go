// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mkernel

import "github.com/cpmech/gosl/chk"

// Solve3x3 solves A*x = b for a dense 3x3 system via the adjugate
// (Cramer's rule), adequate for the tiny per-particle systems that never
// warrant a sparse factorisation.
func Solve3x3(A Mat3, b [3]float64) (x [3]float64, err error) {
	det := DetMat3(A)
	if det == 0 {
		return x, chk.Err("Solve3x3: matrix is singular")
	}
	inv := 1.0 / det
	x[0] = inv * (b[0]*(A[1][1]*A[2][2]-A[1][2]*A[2][1]) -
		A[0][1]*(b[1]*A[2][2]-A[1][2]*b[2]) +
		A[0][2]*(b[1]*A[2][1]-A[1][1]*b[2]))
	x[1] = inv * (A[0][0]*(b[1]*A[2][2]-A[1][2]*b[2]) -
		b[0]*(A[1][0]*A[2][2]-A[1][2]*A[2][0]) +
		A[0][2]*(A[1][0]*b[2]-b[1]*A[2][0]))
	x[2] = inv * (A[0][0]*(A[1][1]*b[2]-b[1]*A[2][1]) -
		A[0][1]*(A[1][0]*b[2]-b[1]*A[2][0]) +
		b[0]*(A[1][0]*A[2][1]-A[1][1]*A[2][0]))
	return x, nil
}
