// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

// ApplyBoundaryVelocities sticks the normal velocity of every Colliding
// face to zero; faces adjacent to a Colliding cell also stick. No friction
// law is applied in this version.
func (g *Grid) ApplyBoundaryVelocities() {
	stick := func(faces []CellFace, lowerNeighbour, upperNeighbour func(f *CellFace) *CellCentre) {
		parallelForFaces(faces, func(f *CellFace) {
			if f.State == Colliding {
				f.VelocityStar = 0
				return
			}
			if lowerNeighbour(f).State == Colliding || upperNeighbour(f).State == Colliding {
				f.VelocityStar = 0
			}
		})
	}
	stick(g.FacesX, func(f *CellFace) *CellCentre {
		i := f.I
		if i > 0 {
			i--
		}
		return &g.Centres[g.Index(i, f.J, f.K)]
	}, func(f *CellFace) *CellCentre {
		return &g.Centres[g.Index(f.I, f.J, f.K)]
	})
	stick(g.FacesY, func(f *CellFace) *CellCentre {
		j := f.J
		if j > 0 {
			j--
		}
		return &g.Centres[g.Index(f.I, j, f.K)]
	}, func(f *CellFace) *CellCentre {
		return &g.Centres[g.Index(f.I, f.J, f.K)]
	})
	stick(g.FacesZ, func(f *CellFace) *CellCentre {
		k := f.K
		if k > 0 {
			k--
		}
		return &g.Centres[g.Index(f.I, f.J, k)]
	}, func(f *CellFace) *CellCentre {
		return &g.Centres[g.Index(f.I, f.J, f.K)]
	})
}
