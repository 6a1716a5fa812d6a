// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"github.com/all-in-one-of/MeltingSimulation/mkernel"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Config bundles the grid-level configuration read from the scene.
type Config struct {
	BoxOrigin    [3]float64 // world-space origin of the simulated bounding box
	BoxSide      float64    // side length of the bounding box
	N            int        // cells per side (n); interior is n-2 cells
	Gravity      [3]float64 // external force, default (0,-9.81,0)
	TAmbient     float64    // Kelvin
	THeat        float64    // Kelvin, on the heat-source plane
	HeatPlaneJ   int        // j-index of the heat-source plane, default 0
	Implicit     bool       // integration flag: implicit vs explicit deviatoric update
	Tau          int        // non-empty-cell particle threshold
	Alpha        float64    // PIC/FLIP velocity blend
	Beta         float64    // PIC/FLIP temperature blend
	Solver       mkernel.SolverConfig
}

// Grid is the MAC staggered grid: the process-wide workhorse owned
// exclusively by the simulation controller for the lifetime of the
// simulation.
type Grid struct {
	Cfg Config

	Origin [3]float64 // world position of the centre of cell (0,0,0): BoxOrigin minus half a cell
	H      float64     // cell size
	N      int         // cells per side

	Centres []CellCentre
	FacesX  []CellFace
	FacesY  []CellFace
	FacesZ  []CellFace

	// implicit deviatoric-update systems, one per axis
	AX, AY, AZ *la.Triplet
	BX, BY, BZ []float64

	// pressure-projection system
	APressure *la.Triplet
	BPressure []float64

	// heat-diffusion system
	AHeat *la.Triplet
	BHeat []float64

	firstStep bool
}

// New allocates a Grid: h = B/(n-2); origin = boxOrigin - (h/2,h/2,h/2);
// n^3 cell-centre and 3*n^3 cell-face records.
func New(cfg Config) (*Grid, error) {
	if cfg.N < 4 {
		return nil, chk.Err("grid: n must be >= 4, got %d", cfg.N)
	}
	if cfg.BoxSide <= 0 {
		return nil, chk.Err("grid: box side must be > 0")
	}
	if cfg.Tau <= 0 {
		cfg.Tau = 6 // default non-empty-cell threshold
	}
	h := cfg.BoxSide / float64(cfg.N-2)
	g := &Grid{
		Cfg: cfg,
		H:   h,
		N:   cfg.N,
		Origin: [3]float64{
			cfg.BoxOrigin[0] - h/2,
			cfg.BoxOrigin[1] - h/2,
			cfg.BoxOrigin[2] - h/2,
		},
		firstStep: true,
	}
	n3 := cfg.N * cfg.N * cfg.N
	g.Centres = make([]CellCentre, n3)
	g.FacesX = make([]CellFace, n3)
	g.FacesY = make([]CellFace, n3)
	g.FacesZ = make([]CellFace, n3)
	for idx := 0; idx < n3; idx++ {
		i, j, k := mkernel.UnflattenIndex(idx, cfg.N)
		g.Centres[idx] = CellCentre{I: i, J: j, K: k}
		g.FacesX[idx] = CellFace{I: i, J: j, K: k, Axis: 0}
		g.FacesY[idx] = CellFace{I: i, J: j, K: k, Axis: 1}
		g.FacesZ[idx] = CellFace{I: i, J: j, K: k, Axis: 2}
	}

	nnz := n3 * 27 // generous 27-point-stencil upper bound, shared by all systems
	g.AX, g.AY, g.AZ = new(la.Triplet), new(la.Triplet), new(la.Triplet)
	g.AX.Init(n3, n3, nnz)
	g.AY.Init(n3, n3, nnz)
	g.AZ.Init(n3, n3, nnz)
	g.BX, g.BY, g.BZ = make([]float64, n3), make([]float64, n3), make([]float64, n3)

	g.APressure = new(la.Triplet)
	g.APressure.Init(n3, n3, nnz)
	g.BPressure = make([]float64, n3)

	g.AHeat = new(la.Triplet)
	g.AHeat.Init(n3, n3, nnz)
	g.BHeat = make([]float64, n3)

	return g, nil
}

// Index returns the flat index of cell (i,j,k).
func (g *Grid) Index(i, j, k int) int {
	return mkernel.FlatIndex(i, j, k, g.N)
}

// FacePosition returns the world position of a face record: face X of
// cell (i,j,k) sits at (i*h - h/2, j*h, k*h) + origin, and analogously
// for Y/Z with the offset on the matching axis.
func (g *Grid) FacePosition(axis, i, j, k int) [3]float64 {
	p := [3]float64{
		g.Origin[0] + float64(i)*g.H,
		g.Origin[1] + float64(j)*g.H,
		g.Origin[2] + float64(k)*g.H,
	}
	p[axis] -= g.H / 2
	return p
}

// CentrePosition returns the world position of a cell centre.
func (g *Grid) CentrePosition(i, j, k int) [3]float64 {
	return [3]float64{
		g.Origin[0] + float64(i)*g.H,
		g.Origin[1] + float64(j)*g.H,
		g.Origin[2] + float64(k)*g.H,
	}
}

// IsFirstStep reports whether this is the first controller step (volume
// initialisation still pending).
func (g *Grid) IsFirstStep() bool {
	return g.firstStep
}

// MarkStepDone clears the first-step flag after the controller has run
// ComputeInitialParticleVolumes.
func (g *Grid) MarkStepDone() {
	g.firstStep = false
}

// ClearCells resets all cell aggregates to zero, clears interpolation
// lists, sets cell-centre state to Colliding (pessimistic default) and
// face states to Interior, and zeroes the linear systems in place.
func (g *Grid) ClearCells() {
	parallelForCentres(g.Centres, func(c *CellCentre) { c.reset() })
	parallelForFaces(g.FacesX, func(f *CellFace) { f.reset() })
	parallelForFaces(g.FacesY, func(f *CellFace) { f.reset() })
	parallelForFaces(g.FacesZ, func(f *CellFace) { f.reset() })

	g.AX.Start()
	g.AY.Start()
	g.AZ.Start()
	g.APressure.Start()
	g.AHeat.Start()
	for i := range g.BX {
		g.BX[i], g.BY[i], g.BZ[i] = 0, 0, 0
	}
	for i := range g.BPressure {
		g.BPressure[i] = 0
	}
	for i := range g.BHeat {
		g.BHeat[i] = 0
	}
}
