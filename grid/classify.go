// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

// ClassifyCells assigns Interior/Empty/Colliding to every cell centre and
// face:
//
//   - a cell is Colliding when its (i,j,k) is 0 or n-1 on any axis (static
//     box walls); faces of cells at i in {0,1} (X faces), j in {0,1} (Y),
//     k in {0,1} (Z) are Colliding.
//   - otherwise a cell centre is Interior iff its own contributor count
//     and the counts of its six surrounding face lists all exceed tau;
//     else Empty.
//   - Colliding cells on the heat-source plane hold T=THeat; Empty cells
//     and Colliding cells elsewhere hold T=TAmbient.
func (g *Grid) ClassifyCells() {
	n := g.N
	tau := g.Cfg.Tau

	classifyFace := func(faces []CellFace, axis int) {
		parallelForFaces(faces, func(f *CellFace) {
			if onWall(f.I, f.J, f.K, n) || nearAxisWall(f.I, f.J, f.K, axis, n) {
				f.State = Colliding
			} else {
				f.State = Interior
			}
		})
	}
	classifyFace(g.FacesX, 0)
	classifyFace(g.FacesY, 1)
	classifyFace(g.FacesZ, 2)

	parallelForCentres(g.Centres, func(c *CellCentre) {
		if onWall(c.I, c.J, c.K, n) {
			c.State = Colliding
			if c.J == g.Cfg.HeatPlaneJ {
				c.Temp = g.Cfg.THeat
			} else {
				c.Temp = g.Cfg.TAmbient
			}
			return
		}
		if c.ContributorCount > tau && g.facesAroundExceedTau(c.I, c.J, c.K, tau) {
			c.State = Interior
		} else {
			c.State = Empty
			c.Temp = g.Cfg.TAmbient
		}
	})
}

// onWall reports whether (i,j,k) sits on the outermost layer (i, j, or k
// is 0 or n-1).
func onWall(i, j, k, n int) bool {
	return i == 0 || i == n-1 || j == 0 || j == n-1 || k == 0 || k == n-1
}

// nearAxisWall reports whether a face at (i,j,k) on the given axis sits in
// the collision layer of that axis: faces of cells at i in {0,1} or
// i = n-1 for X faces, likewise j for Y and k for Z.
func nearAxisWall(i, j, k, axis, n int) bool {
	switch axis {
	case 0:
		return i <= 1 || i >= n-1
	case 1:
		return j <= 1 || j >= n-1
	default:
		return k <= 1 || k >= n-1
	}
}

// facesAroundExceedTau reports whether all six surrounding (lower and
// upper) face contributor counts exceed tau.
func (g *Grid) facesAroundExceedTau(i, j, k, tau int) bool {
	lowX := len(g.FacesX[g.Index(i, j, k)].Records)
	lowY := len(g.FacesY[g.Index(i, j, k)].Records)
	lowZ := len(g.FacesZ[g.Index(i, j, k)].Records)
	var upX, upY, upZ int
	if i+1 < g.N {
		upX = len(g.FacesX[g.Index(i+1, j, k)].Records)
	}
	if j+1 < g.N {
		upY = len(g.FacesY[g.Index(i, j+1, k)].Records)
	}
	if k+1 < g.N {
		upZ = len(g.FacesZ[g.Index(i, j, k+1)].Records)
	}
	return lowX > tau && lowY > tau && lowZ > tau && upX > tau && upY > tau && upZ > tau
}
