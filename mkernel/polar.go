// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mkernel

// PolarDecomposition computes A = R*S with R a rotation (det R = +1) and S
// symmetric positive-semidefinite, via the SVD A = U*diag(s)*V^T:
//
//   R = U*V^T
//   S = V*diag(s)*V^T
//
// If det(U*V^T) < 0 the sign of the smallest singular value is flipped (and
// the corresponding column of U negated) so that R is a proper rotation,
// per spec.
func PolarDecomposition(A Mat3) (R, S Mat3) {
	U, V, s := SVD3(A)
	Vt := TransposeMat3(V)
	R = MulMat3(U, Vt)
	if DetMat3(R) < 0 {
		// flip the smallest singular value's column
		lo := 0
		for i := 1; i < 3; i++ {
			if s[i] < s[lo] {
				lo = i
			}
		}
		for r := 0; r < 3; r++ {
			U[r][lo] = -U[r][lo]
		}
		s[lo] = -s[lo]
		R = MulMat3(U, Vt)
	}
	var Sigma Mat3
	for i := 0; i < 3; i++ {
		Sigma[i][i] = s[i]
	}
	S = MulMat3(MulMat3(V, Sigma), Vt)
	return
}

// ClampSingularValues returns F' = U*diag(clamp(s))*V^T where each singular
// value is clamped to [lo, hi], plus the clamped values themselves. Used by
// the plastic projection step.
func ClampSingularValues(F Mat3, lo, hi float64) (Fp Mat3, clamped [3]float64, U, V Mat3) {
	var s [3]float64
	U, V, s = SVD3(F)
	for i := 0; i < 3; i++ {
		c := s[i]
		if c < lo {
			c = lo
		}
		if c > hi {
			c = hi
		}
		clamped[i] = c
	}
	var Sigma Mat3
	for i := 0; i < 3; i++ {
		Sigma[i][i] = clamped[i]
	}
	Fp = MulMat3(MulMat3(U, Sigma), TransposeMat3(V))
	return
}
