// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"runtime"
	"sync"
)

// parallelChunks splits [0,n) into static contiguous chunks, one per
// available core, and runs fn(lo,hi) on each chunk concurrently. Used by
// the clear/scatter-per-cell/classification loops that iterate independent
// cell indices; it replaces MPI-rank parallelism (dropped, see
// DESIGN.md) since this module's concurrency is shared-memory,
// single-process.
func parallelChunks(n int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

func parallelForCentres(cells []CellCentre, f func(c *CellCentre)) {
	parallelChunks(len(cells), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(&cells[i])
		}
	})
}

func parallelForFaces(faces []CellFace, f func(fc *CellFace)) {
	parallelChunks(len(faces), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(&faces[i])
		}
	})
}
