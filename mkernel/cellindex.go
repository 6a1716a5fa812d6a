// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mkernel

import "math"

// FlatIndex returns the flat cell index i + n*j + n*n*k for an n-cells-per
// side cubic grid.
func FlatIndex(i, j, k, n int) int {
	return i + n*j + n*n*k
}

// UnflattenIndex is the inverse of FlatIndex.
func UnflattenIndex(idx, n int) (i, j, k int) {
	i = idx % n
	j = (idx / n) % n
	k = idx / (n * n)
	return
}

// CellOf returns the integer cell (i,j,k) containing the position p, given
// the grid origin and cell size h: floor((p-origin)/h).
func CellOf(p [3]float64, origin [3]float64, h float64) (i, j, k int) {
	i = int(math.Floor((p[0] - origin[0]) / h))
	j = int(math.Floor((p[1] - origin[1]) / h))
	k = int(math.Floor((p[2] - origin[2]) / h))
	return
}

// Clip clamps v into [lo, hi].
func Clip(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClipF clamps a float into [lo, hi].
func ClipF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
