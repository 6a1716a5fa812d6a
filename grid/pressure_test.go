// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// TestPressureProjectionReducesDivergence checks projection against a
// divergent velocity field v_x = x on an all-interior cube with
// lambda^-1=0, zero Dirichlet pressure at the (Empty) boundary ->  after
// projection, face divergence |div(v)| < 1e-5 per interior cell.
func TestPressureProjectionReducesDivergence(tst *testing.T) {
	chk.PrintTitle("pressure projection reduces divergence")
	n := 8
	g := newUnitGrid(tst, n)

	for idx := range g.Centres {
		c := &g.Centres[idx]
		if onWall(c.I, c.J, c.K, n) {
			c.State = Empty // Dirichlet p=0
		} else {
			c.State = Interior
			c.DetFE = 1 // no plastic-volume source term
		}
	}
	for i := range g.FacesX {
		f := &g.FacesX[i]
		f.Mass = 1
		f.State = Interior
		x := g.FacePosition(0, f.I, f.J, f.K)[0]
		f.VelocityStar = x
	}
	for i := range g.FacesY {
		g.FacesY[i].Mass = 1
		g.FacesY[i].State = Interior
	}
	for i := range g.FacesZ {
		g.FacesZ[i].Mass = 1
		g.FacesZ[i].State = Interior
	}

	dt := 1.0
	res := g.ProjectVelocity(dt)
	if !res.Converged {
		tst.Logf("pressure CG did not fully converge: iters=%d residual=%e", res.Iters, res.Residual)
	}

	for idx := range g.Centres {
		c := &g.Centres[idx]
		if c.State != Interior {
			continue
		}
		div := g.faceDivergence(c.I, c.J, c.K)
		if math.Abs(div) > 1e-5 {
			tst.Fatalf("cell (%d,%d,%d) divergence too large after projection: %v", c.I, c.J, c.K, div)
		}
	}
}
