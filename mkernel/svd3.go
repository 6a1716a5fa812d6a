// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mkernel

import "math"

// Mat3 is a 3x3 matrix, row-major: Mat3[i][j].
type Mat3 [3][3]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// MulMat3 returns a*b.
func MulMat3(a, b Mat3) (c Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += a[i][k] * b[k][j]
			}
			c[i][j] = s
		}
	}
	return
}

// TransposeMat3 returns the transpose of a.
func TransposeMat3(a Mat3) (t Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = a[j][i]
		}
	}
	return
}

// DetMat3 returns det(a).
func DetMat3(a Mat3) float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// Sign returns the sign of x: -1, 0 or +1.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// SVD3 computes the singular value decomposition A = U*diag(S)*V^T of a 3x3
// matrix using one-sided Jacobi rotations on A^T*A. U and V are orthogonal,
// S holds the (non-negative, unsorted-but-stable) singular values.
//
// This is a small, fixed-size decomposition; it is intentionally
// hand-rolled rather than routed through a general n x n LAPACK-backed
// solver (see DESIGN.md).
func SVD3(A Mat3) (U, V Mat3, S [3]float64) {
	V = Identity3()
	B := A
	const maxSweeps = 40
	const tol = 1e-13
	for sweep := 0; sweep < maxSweeps; sweep++ {
		off := 0.0
		for p := 0; p < 2; p++ {
			for q := p + 1; q < 3; q++ {
				// column p, q of B = A*V so far; work on A^T*A implicitly
				// by one-sided Jacobi applied directly to B's columns.
				alpha, beta, gamma := colDot(B, p, p), colDot(B, q, q), colDot(B, p, q)
				off += gamma * gamma
				if math.Abs(gamma) < tol*math.Sqrt(alpha*beta+1e-300) {
					continue
				}
				zeta := (beta - alpha) / (2 * gamma)
				t := Sign(zeta) / (math.Abs(zeta) + math.Sqrt(1+zeta*zeta))
				if zeta == 0 {
					t = 1
				}
				c := 1 / math.Sqrt(1+t*t)
				s := t * c
				rotateCols(&B, p, q, c, s)
				rotateCols(&V, p, q, c, s)
			}
		}
		if off < tol*tol {
			break
		}
	}
	for i := 0; i < 3; i++ {
		s := math.Sqrt(colDot(B, i, i))
		S[i] = s
		if s > 1e-300 {
			for r := 0; r < 3; r++ {
				U[r][i] = B[r][i] / s
			}
		} else {
			for r := 0; r < 3; r++ {
				U[r][i] = 0
			}
			U[i][i] = 1
		}
	}
	return
}

func colDot(M Mat3, i, j int) float64 {
	return M[0][i]*M[0][j] + M[1][i]*M[1][j] + M[2][i]*M[2][j]
}

func rotateCols(M *Mat3, p, q int, c, s float64) {
	for r := 0; r < 3; r++ {
		mp, mq := M[r][p], M[r][q]
		M[r][p] = c*mp - s*mq
		M[r][q] = s*mp + c*mq
	}
}
