// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"github.com/all-in-one-of/MeltingSimulation/emitter"
	"github.com/all-in-one-of/MeltingSimulation/mkernel"
)

// bucket maps a flat cell index to the particles whose home cell (the
// cell containing their position) is that index. Built once per step so
// that accumulation can be cell-centric (each cell pulls its own
// particles from the neighbouring buckets) rather than particle-centric
// with atomic writes, keeping accumulation order deterministic.
func (g *Grid) buildBuckets(e *emitter.Emitter) [][]*emitter.Particle {
	buckets := make([][]*emitter.Particle, len(g.Centres))
	e.Each(func(p *emitter.Particle) {
		i, j, k := mkernel.CellOf(p.Position, g.Origin, g.H)
		i, j, k = mkernel.Clip(i, 0, g.N-1), mkernel.Clip(j, 0, g.N-1), mkernel.Clip(k, 0, g.N-1)
		idx := g.Index(i, j, k)
		buckets[idx] = append(buckets[idx], p)
	})
	return buckets
}

// AccumulateParticleContributions computes, for every cell centre and face
// within the support of each nearby particle, the cubic B-spline and
// tight-quadratic weights/gradients, appending an interpolation record
// when the cubic weight is non-zero.
func (g *Grid) AccumulateParticleContributions(e *emitter.Emitter) {
	buckets := g.buildBuckets(e)

	parallelForCentres(g.Centres, func(c *CellCentre) {
		g.accumulateAt(c.I, c.J, c.K, buckets, func(rec InterpRecord) {
			c.Records = append(c.Records, rec)
			c.ContributorCount++
		}, func(i, j, k int) [3]float64 { return g.CentrePosition(i, j, k) })
	})

	accumulateFace := func(faces []CellFace, axis int) {
		parallelForFaces(faces, func(f *CellFace) {
			g.accumulateAt(f.I, f.J, f.K, buckets, func(rec InterpRecord) {
				f.Records = append(f.Records, rec)
			}, func(i, j, k int) [3]float64 { return g.FacePosition(axis, i, j, k) })
		})
	}
	accumulateFace(g.FacesX, 0)
	accumulateFace(g.FacesY, 1)
	accumulateFace(g.FacesZ, 2)
}

// accumulateAt scans the 6x6x6 neighbourhood of buckets around target cell
// (ti,tj,tk) (particle home cells i_p-2..i_p+3 contribute to target i iff
// i_p in [i-3, i+2], the mirror image of the particle's forward support
// relation) and emits a record for every particle whose cubic B-spline weight at
// pos is non-zero.
func (g *Grid) accumulateAt(ti, tj, tk int, buckets [][]*emitter.Particle, emit func(InterpRecord), posOf func(i, j, k int) [3]float64) {
	pos := posOf(ti, tj, tk)
	for di := -3; di <= 2; di++ {
		i := ti + di
		if i < 0 || i >= g.N {
			continue
		}
		for dj := -3; dj <= 2; dj++ {
			j := tj + dj
			if j < 0 || j >= g.N {
				continue
			}
			for dk := -3; dk <= 2; dk++ {
				k := tk + dk
				if k < 0 || k >= g.N {
					continue
				}
				for _, p := range buckets[g.Index(i, j, k)] {
					d := [3]float64{
						(pos[0] - p.Position[0]) / g.H,
						(pos[1] - p.Position[1]) / g.H,
						(pos[2] - p.Position[2]) / g.H,
					}
					wc := mkernel.Cubic3(d, g.H)
					if wc.N == 0 {
						continue
					}
					wq := mkernel.TightQuadratic3(d, g.H)
					emit(InterpRecord{
						P:        p,
						N:        wc.N,
						GradN:    wc.Grad,
						Nbar:     wq.N,
						GradNbar: wq.Grad,
					})
				}
			}
		}
	}
}

// TransferParticleData scatters particle mass/velocity/temperature/... to
// the grid: for each face, accumulate m_f and
// (m.v)_f and kappa.m_f, then divide by m_f; for each centre, accumulate
// m_c, m.J, m.J_E, m.T, m.(1/lambda), m.c, then divide by m_c and compute
// J_P = J/J_E. Cells with zero mass retain zeros.
func (g *Grid) TransferParticleData() {
	scatterFaces := func(faces []CellFace, axis int) {
		parallelForFaces(faces, func(f *CellFace) {
			var mass, mv, mk float64
			e := axisVec(axis)
			for _, r := range f.Records {
				m, v, phase := r.P.GetParticleDataCellFace()
				vn := v[0]*e[0] + v[1]*e[1] + v[2]*e[2]
				mass += r.N * m
				mv += r.N * m * vn
				mk += r.N * m * r.P.Mat.KFor(phase)
			}
			f.Mass = mass
			if mass > 0 {
				f.Velocity = mv / mass
				f.Conductivity = mk / mass
			} else {
				f.Velocity = 0
				f.Conductivity = 0
			}
		})
	}
	scatterFaces(g.FacesX, 0)
	scatterFaces(g.FacesY, 1)
	scatterFaces(g.FacesZ, 2)

	parallelForCentres(g.Centres, func(c *CellCentre) {
		var mass, mJ, mJE, mT, mInvLambda, mC float64
		for _, r := range c.Records {
			m, j, jE, phase, temp, invLambda := r.P.GetParticleDataCellCentre()
			mass += r.N * m
			mJ += r.N * m * j
			mJE += r.N * m * jE
			mT += r.N * m * temp
			mInvLambda += r.N * m * invLambda
			mC += r.N * m * r.P.Mat.CpFor(phase)
		}
		c.Mass = mass
		if mass > 0 {
			c.DetF = mJ / mass
			c.DetFE = mJE / mass
			c.Temp = mT / mass
			c.InvLambda = mInvLambda / mass
			c.HeatCapacity = mC / mass
			if c.DetFE != 0 {
				c.DetFP = c.DetF / c.DetFE
			}
		} else {
			c.DetF, c.DetFE, c.DetFP, c.Temp, c.InvLambda, c.HeatCapacity = 0, 0, 0, 0, 0, 0
		}
	})
}

// ComputeInitialParticleVolumes runs once, on the first step: every
// contributing cell centre
// accumulates density += N_p*m_c/h^3, then every particle sets
// InitVolume = mass / accumulated density.
func (g *Grid) ComputeInitialParticleVolumes(e *emitter.Emitter) {
	if !g.firstStep {
		return
	}
	h3 := g.H * g.H * g.H
	densities := make(map[*emitter.Particle]float64)
	for ci := range g.Centres {
		c := &g.Centres[ci]
		for _, r := range c.Records {
			densities[r.P] += r.N * c.Mass / h3
		}
	}
	e.Each(func(p *emitter.Particle) {
		rho := densities[p]
		if rho > 0 {
			p.InitDensity = rho
			p.InitVolume = p.Mass / rho
		}
	})
}
